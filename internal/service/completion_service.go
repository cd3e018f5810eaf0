package service

import (
	"errors"
	"sync"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/util"
	"hero_academy_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompletionService cierra entrenamientos y reparte las recompensas entre
// los participantes inscritos.
type CompletionService struct {
	TrainingRepo *repository.TrainingRepository
	StudentRepo  *repository.StudentRepository
	Policy       *AccessPolicy
}

func NewCompletionService(trainingRepo *repository.TrainingRepository, studentRepo *repository.StudentRepository, policy *AccessPolicy) *CompletionService {
	return &CompletionService{
		TrainingRepo: trainingRepo,
		StudentRepo:  studentRepo,
		Policy:       policy,
	}
}

// statDelta es un incremento sobre una columna de estadística, con techo 10.
type statDelta struct {
	column string
	delta  float64
}

// mejoras por tipo de entrenamiento; mision-practica no otorga ninguna
var statRewards = map[model.TrainingType][]statDelta{
	model.TypeCombat:           {{"stat_strength", 0.1}, {"stat_technique", 0.1}},
	model.TypeRescue:           {{"stat_speed", 0.1}, {"stat_cooperation", 0.1}},
	model.TypeQuirkDevelopment: {{"stat_technique", 0.2}},
	model.TypeEndurance:        {{"stat_strength", 0.1}, {"stat_speed", 0.1}},
	model.TypeStrategy:         {{"stat_intelligence", 0.2}},
	model.TypeTeamwork:         {{"stat_cooperation", 0.2}},
}

func statValue(stats model.Stats, column string) float64 {
	switch column {
	case "stat_strength":
		return stats.Strength
	case "stat_speed":
		return stats.Speed
	case "stat_technique":
		return stats.Technique
	case "stat_intelligence":
		return stats.Intelligence
	case "stat_cooperation":
		return stats.Cooperation
	}
	return 0
}

// Complete marca el entrenamiento como completado y recompensa a cada
// participante: nivel +1 con techo 100, puntuación según la recompensa
// configurada y mejoras de estadísticas según el tipo. Las escrituras por
// participante se emiten en paralelo; un fallo individual se registra pero
// no revierte las demás.
func (s *CompletionService) Complete(trainingID, requesterID uint) (*model.TrainingView, int, error) {
	training, err := s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrTrainingNotFound
		}
		return nil, 0, err
	}

	if !s.Policy.IsOwner(training, requesterID) {
		return nil, 0, util.ErrOnlyInstructor
	}
	if training.Status == model.StatusCompleted {
		return nil, 0, util.ErrAlreadyCompleted
	}

	if err := s.TrainingRepo.UpdateFields(trainingID, map[string]interface{}{
		"status": model.StatusCompleted,
	}); err != nil {
		return nil, 0, err
	}

	var wg sync.WaitGroup
	for _, participant := range training.Participants {
		wg.Add(1)
		go func(p *model.Student) {
			defer wg.Done()
			if err := s.reward(training, p); err != nil {
				logger.Log.Error("reward failed",
					zap.Uint("training_id", training.ID),
					zap.Uint("student_id", p.ID),
					zap.Error(err))
			}
		}(participant)
	}
	wg.Wait()

	rewarded := len(training.Participants)

	training, err = s.TrainingRepo.FindByID(trainingID)
	if err != nil {
		return nil, rewarded, err
	}
	return training.View(), rewarded, nil
}

func (s *CompletionService) reward(training *model.Training, p *model.Student) error {
	fields := map[string]interface{}{}

	// Subida plana de un nivel por entrenamiento, independiente de la
	// experiencia configurada en la recompensa.
	level := p.Level + 1
	if level > 100 {
		level = 100
	}
	fields["level"] = level

	for _, d := range statRewards[training.Type] {
		value := statValue(p.Stats, d.column) + d.delta
		if value > 10 {
			value = 10
		}
		fields[d.column] = value
	}

	return s.StudentRepo.ApplyReward(p.ID, training.Rewards.Points, fields)
}
