package repository

import (
	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const participantTable = "entrenamiento_participantes"

type TrainingRepository struct {
	DB *gorm.DB
}

func NewTrainingRepository(db *gorm.DB) *TrainingRepository {
	return &TrainingRepository{DB: db}
}

// TrainingFilter refleja los parámetros de consulta del catálogo.
type TrainingFilter struct {
	Status     model.TrainingStatus
	Type       string
	Difficulty string
	MinLevel   int
	MaxLevel   int
	Search     string
	SortBy     string
	SortDesc   bool
	Page       int
	Limit      int
}

// columnas admitidas para ordenar, indexadas por el nombre expuesto en la API
var sortColumns = map[string]string{
	"fechaHora":      "starts_at",
	"titulo":         "title",
	"nivelRequerido": "min_level",
	"dificultad":     "difficulty",
	"createdAt":      "created_at",
}

func (r *TrainingRepository) Create(training *model.Training) error {
	return r.DB.Create(training).Error
}

func (r *TrainingRepository) FindByID(id uint) (*model.Training, error) {
	var training model.Training
	err := r.DB.
		Preload("Instructor").
		Preload("Participants").
		First(&training, id).Error
	return &training, err
}

func (r *TrainingRepository) List(filter TrainingFilter) ([]model.Training, int64, error) {
	var trainings []model.Training
	var total int64

	query := r.DB.Model(&model.Training{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" && filter.Type != "all" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Difficulty != "" && filter.Difficulty != "all" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.MinLevel > 0 {
		query = query.Where("min_level >= ?", filter.MinLevel)
	}
	if filter.MaxLevel > 0 {
		query = query.Where("min_level <= ?", filter.MaxLevel)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "starts_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Instructor").
		Preload("Participants").
		Order(column + " " + direction).
		Offset(offset).
		Limit(filter.Limit).
		Find(&trainings).Error

	return trainings, total, err
}

func (r *TrainingRepository) Update(training *model.Training) error {
	return r.DB.Save(training).Error
}

func (r *TrainingRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Training{}).Where("id = ?", id).Updates(fields).Error
}

// Delete elimina el entrenamiento y sus filas de participación en una
// sola transacción.
func (r *TrainingRepository) Delete(training *model.Training) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+participantTable+" WHERE training_id = ?", training.ID).Error; err != nil {
			return err
		}
		return tx.Delete(training).Error
	})
}

// AddParticipant inserta la fila de participación re-verificando capacidad y
// duplicado dentro de la transacción. La fila del entrenamiento se lee con
// FOR UPDATE, así dos inscripciones simultáneas al mismo entrenamiento se
// serializan y el recuento no puede quedarse obsoleto entre la comprobación
// y el INSERT. SQLite no soporta FOR UPDATE; ahí su escritor único ya
// serializa las transacciones.
func (r *TrainingRepository) AddParticipant(training *model.Training, student *model.Student) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "mysql" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var locked model.Training
		if err := query.First(&locked, training.ID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Table(participantTable).
			Where("training_id = ?", training.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(locked.MaxCapacity) {
			return util.ErrTrainingFull
		}

		var dup int64
		if err := tx.Table(participantTable).
			Where("training_id = ? AND student_id = ?", training.ID, student.ID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return util.ErrAlreadyEnrolled
		}

		return tx.Exec(
			"INSERT INTO "+participantTable+" (training_id, student_id) VALUES (?, ?)",
			training.ID, student.ID,
		).Error
	})
}

func (r *TrainingRepository) RemoveParticipant(trainingID, studentID uint) error {
	return r.DB.Exec(
		"DELETE FROM "+participantTable+" WHERE training_id = ? AND student_id = ?",
		trainingID, studentID,
	).Error
}

// RemoveParticipants elimina en bloque; los IDs no inscritos se ignoran.
func (r *TrainingRepository) RemoveParticipants(trainingID uint, studentIDs []uint) error {
	return r.DB.Exec(
		"DELETE FROM "+participantTable+" WHERE training_id = ? AND student_id IN ?",
		trainingID, studentIDs,
	).Error
}

// TypeStats es el agregado por tipo del catálogo.
type TypeStats struct {
	Type      model.TrainingType `json:"tipo"`
	Total     int64              `json:"total"`
	Scheduled int64              `json:"programados"`
	Completed int64              `json:"completados"`
}

func (r *TrainingRepository) CountByType() ([]TypeStats, error) {
	var stats []TypeStats
	err := r.DB.Model(&model.Training{}).
		Select(
			"type AS type, " +
				"COUNT(*) AS total, " +
				"SUM(CASE WHEN status = 'programado' THEN 1 ELSE 0 END) AS scheduled, " +
				"SUM(CASE WHEN status = 'completado' THEN 1 ELSE 0 END) AS completed",
		).
		Group("type").
		Order("total DESC").
		Scan(&stats).Error
	return stats, err
}
