package service

import (
	"fmt"
	"testing"
	"time"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB abre una base SQLite en memoria con el esquema migrado. Una
// sola conexión: las escrituras concurrentes del reparto de recompensas
// se serializan en vez de fallar con la base bloqueada.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db           *gorm.DB
	studentRepo  *repository.StudentRepository
	trainingRepo *repository.TrainingRepository
	policy       *AccessPolicy
}

func newTestEnv(t *testing.T) *testEnv {
	db := newTestDB(t)
	return &testEnv{
		db:           db,
		studentRepo:  repository.NewStudentRepository(db),
		trainingRepo: repository.NewTrainingRepository(db),
		policy:       NewAccessPolicy(),
	}
}

var emailSeq int

func (e *testEnv) seedStudent(t *testing.T, name string, role model.StudentRole, level int) *model.Student {
	t.Helper()
	emailSeq++
	student := &model.Student{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@ua.edu", role, emailSeq),
		Password: "hash",
		Quirk: model.Quirk{
			Name:        "Quirk de prueba",
			Description: "Descripción de prueba",
			Type:        model.QuirkEmission,
		},
		Class: "1-A",
		Role:  role,
		Level: level,
		Stats: model.Stats{Strength: 1, Speed: 1, Technique: 1, Intelligence: 1, Cooperation: 1},
	}
	require.NoError(t, e.studentRepo.Create(student))
	return student
}

func (e *testEnv) seedTraining(t *testing.T, instructorID uint, mutate func(*model.Training)) *model.Training {
	t.Helper()
	training := &model.Training{
		Title:        "Entrenamiento de prueba",
		Description:  "Sesión de prueba en el gimnasio",
		StartsAt:     time.Now().Add(24 * time.Hour),
		Location:     "Gimnasio Alfa",
		InstructorID: instructorID,
		MaxCapacity:  10,
		MinLevel:     1,
		Type:         model.TypeCombat,
		Difficulty:   model.DifficultyBeginner,
		Rewards:      model.Rewards{Experience: 10, Points: 5},
		Status:       model.StatusScheduled,
		Duration:     90,
	}
	if mutate != nil {
		mutate(training)
	}
	require.NoError(t, e.trainingRepo.Create(training))
	return training
}
