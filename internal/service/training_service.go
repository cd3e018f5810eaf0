package service

import (
	"errors"
	"time"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/util"

	"gorm.io/gorm"
)

// TrainingService gestiona el catálogo de entrenamientos.
type TrainingService struct {
	TrainingRepo *repository.TrainingRepository
	Policy       *AccessPolicy
}

func NewTrainingService(trainingRepo *repository.TrainingRepository, policy *AccessPolicy) *TrainingService {
	return &TrainingService{
		TrainingRepo: trainingRepo,
		Policy:       policy,
	}
}

// TrainingPage es la respuesta paginada del catálogo.
type TrainingPage struct {
	Trainings  []*model.TrainingView `json:"entrenamientos"`
	Pagination Pagination            `json:"paginacion"`
}

type Pagination struct {
	CurrentPage int   `json:"paginaActual"`
	TotalPages  int   `json:"totalPaginas"`
	Total       int64 `json:"totalEntrenamientos"`
	InPage      int   `json:"entrenamientosEnPagina"`
}

func (s *TrainingService) List(filter repository.TrainingFilter) (*TrainingPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	// El catálogo público solo muestra entrenamientos programados.
	if filter.Status == "" {
		filter.Status = model.StatusScheduled
	}

	trainings, total, err := s.TrainingRepo.List(filter)
	if err != nil {
		return nil, err
	}

	views := make([]*model.TrainingView, 0, len(trainings))
	for i := range trainings {
		views = append(views, trainings[i].View())
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &TrainingPage{
		Trainings: views,
		Pagination: Pagination{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			Total:       total,
			InPage:      len(views),
		},
	}, nil
}

func (s *TrainingService) Get(id uint) (*model.TrainingView, error) {
	training, err := s.TrainingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainingNotFound
		}
		return nil, err
	}
	return training.View(), nil
}

func (s *TrainingService) Stats() ([]repository.TypeStats, error) {
	return s.TrainingRepo.CountByType()
}

// Create da de alta un entrenamiento; el creador queda como dueño inmutable.
func (s *TrainingService) Create(training *model.Training, creator *model.Student) (*model.TrainingView, error) {
	if !s.Policy.HasInstructorPrivilege(creator) {
		return nil, util.ErrNotTeacher
	}
	if !training.StartsAt.After(time.Now()) {
		return nil, util.ErrPastStartDate
	}

	training.InstructorID = creator.ID
	training.Status = model.StatusScheduled
	if training.MinLevel == 0 {
		training.MinLevel = 1
	}
	if training.Difficulty == "" {
		training.Difficulty = model.DifficultyBeginner
	}
	if training.Rewards.Experience == 0 {
		training.Rewards.Experience = 10
	}
	if training.Rewards.Points == 0 {
		training.Rewards.Points = 5
	}

	if err := s.TrainingRepo.Create(training); err != nil {
		return nil, err
	}

	created, err := s.TrainingRepo.FindByID(training.ID)
	if err != nil {
		return nil, err
	}
	return created.View(), nil
}

// Update aplica un parche parcial; nunca toca instructor ni participantes.
func (s *TrainingService) Update(id uint, requester *model.Student, fields map[string]interface{}) (*model.TrainingView, error) {
	training, err := s.TrainingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTrainingNotFound
		}
		return nil, err
	}

	if !s.Policy.CanManage(training, requester) {
		return nil, util.ErrNotOwner
	}

	if len(fields) > 0 {
		if err := s.TrainingRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.TrainingRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return updated.View(), nil
}

func (s *TrainingService) Delete(id uint, requester *model.Student) error {
	training, err := s.TrainingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTrainingNotFound
		}
		return err
	}

	if !s.Policy.CanManage(training, requester) {
		return util.ErrNotOwner
	}

	return s.TrainingRepo.Delete(training)
}
