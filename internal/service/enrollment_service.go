package service

import (
	"errors"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/util"

	"gorm.io/gorm"
)

// EnrollmentService aplica las reglas de inscripción y mantiene el conjunto
// de participantes de cada entrenamiento.
type EnrollmentService struct {
	TrainingRepo *repository.TrainingRepository
	StudentRepo  *repository.StudentRepository
	Policy       *AccessPolicy
}

func NewEnrollmentService(trainingRepo *repository.TrainingRepository, studentRepo *repository.StudentRepository, policy *AccessPolicy) *EnrollmentService {
	return &EnrollmentService{
		TrainingRepo: trainingRepo,
		StudentRepo:  studentRepo,
		Policy:       policy,
	}
}

// Enroll inscribe al estudiante. Orden de fallo: entrenamiento inexistente,
// estado no abierto, aforo completo, nivel insuficiente, ya inscrito. La
// capacidad y el duplicado se re-verifican dentro de la transacción de
// inserción.
func (s *EnrollmentService) Enroll(trainingID, studentID uint) (*model.TrainingView, error) {
	training, err := s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainingNotFound
		}
		return nil, err
	}

	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if training.Status != model.StatusScheduled {
		return nil, util.ErrTrainingNotOpen
	}
	if training.IsFull() {
		return nil, util.ErrTrainingFull
	}
	if student.Level < training.MinLevel {
		return nil, &util.MinLevelError{MinLevel: training.MinLevel}
	}
	if training.HasParticipant(studentID) {
		return nil, util.ErrAlreadyEnrolled
	}

	if err := s.TrainingRepo.AddParticipant(training, student); err != nil {
		return nil, err
	}

	return s.reload(trainingID)
}

// Unenroll retira al estudiante. No comprueba el estado del entrenamiento:
// un participante puede darse de baja incluso de uno completado.
func (s *EnrollmentService) Unenroll(trainingID, studentID uint) (*model.TrainingView, error) {
	training, err := s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainingNotFound
		}
		return nil, err
	}

	if !training.HasParticipant(studentID) {
		return nil, util.ErrNotEnrolled
	}

	if err := s.TrainingRepo.RemoveParticipant(trainingID, studentID); err != nil {
		return nil, err
	}

	return s.reload(trainingID)
}

// RemoveAttendees expulsa en bloque a los asistentes indicados. Solo el
// dueño (o un administrador) puede hacerlo; los IDs que no estén inscritos
// se ignoran sin error.
func (s *EnrollmentService) RemoveAttendees(trainingID uint, requester *model.Student, attendeeIDs []uint) (*model.TrainingView, error) {
	if len(attendeeIDs) == 0 {
		return nil, util.ErrEmptyAttendees
	}

	training, err := s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainingNotFound
		}
		return nil, err
	}

	if !s.Policy.CanManage(training, requester) {
		return nil, util.ErrNotOwner
	}

	if err := s.TrainingRepo.RemoveParticipants(trainingID, attendeeIDs); err != nil {
		return nil, err
	}

	return s.reload(trainingID)
}

func (s *EnrollmentService) reload(trainingID uint) (*model.TrainingView, error) {
	training, err := s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		return nil, err
	}
	return training.View(), nil
}
