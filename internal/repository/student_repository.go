package repository

import (
	"hero_academy_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.DB.Create(student).Error
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.First(&student, id).Error
	return &student, err
}

// FindByIDWithTrainings resuelve las dos listas de referencia del perfil.
func (r *StudentRepository) FindByIDWithTrainings(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.
		Preload("CreatedTrainings").
		Preload("AttendedTrainings").
		First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) FindByEmail(email string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("email = ?", email).First(&student).Error
	return &student, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Save(student).Error
}

func (r *StudentRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Student{}).Where("id = ?", id).Updates(fields).Error
}

// ApplyReward suma puntos de forma atómica y fija los campos de progresión
// ya acotados que calculó el servicio de finalización.
func (r *StudentRepository) ApplyReward(id uint, points int, fields map[string]interface{}) error {
	updates := map[string]interface{}{
		"score": gorm.Expr("score + ?", points),
	}
	for k, v := range fields {
		updates[k] = v
	}
	return r.DB.Model(&model.Student{}).Where("id = ?", id).Updates(updates).Error
}

// Ranking ordena por puntuación y nivel descendentes, con filtro de clase.
func (r *StudentRepository) Ranking(limit int, class string) ([]model.Student, error) {
	var students []model.Student
	query := r.DB.Model(&model.Student{})
	if class != "" {
		query = query.Where("class = ?", class)
	}
	err := query.
		Order("score DESC").
		Order("level DESC").
		Limit(limit).
		Find(&students).Error
	return students, err
}
