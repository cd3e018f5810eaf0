package service

import "hero_academy_backend/internal/model"

// AccessPolicy agrupa los predicados de autorización sobre entrenamientos.
// Son funciones puras: no tocan la base de datos ni el contexto HTTP.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// IsOwner indica si el estudiante es el instructor dueño del entrenamiento.
func (AccessPolicy) IsOwner(training *model.Training, studentID uint) bool {
	return training.InstructorID == studentID
}

// HasInstructorPrivilege distingue los roles que pueden crear
// entrenamientos. El switch es exhaustivo sobre StudentRole: añadir un rol
// obliga a decidir aquí.
func (AccessPolicy) HasInstructorPrivilege(student *model.Student) bool {
	switch student.Role {
	case model.RoleInstructor, model.RoleAdmin:
		return true
	case model.RoleStudent:
		return false
	}
	return false
}

// CanManage autoriza actualizar, eliminar y gestionar asistentes: el dueño
// del entrenamiento o un administrador.
func (p AccessPolicy) CanManage(training *model.Training, student *model.Student) bool {
	if p.IsOwner(training, student.ID) {
		return true
	}
	switch student.Role {
	case model.RoleAdmin:
		return true
	case model.RoleStudent, model.RoleInstructor:
		return false
	}
	return false
}
