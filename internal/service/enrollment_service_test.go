package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentService(env *testEnv) *EnrollmentService {
	return NewEnrollmentService(env.trainingRepo, env.studentRepo, env.policy)
}

func TestEnrollAndUnenrollRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.MaxCapacity = 1
		tr.MinLevel = 10
	})

	view, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ParticipantCount)
	assert.True(t, view.IsFull)
	assert.Equal(t, 0, view.AvailableSlots)

	view, err = svc.Unenroll(training.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ParticipantCount)
	assert.False(t, view.IsFull)
	assert.Equal(t, 1, view.AvailableSlots)

	// Tras la baja la plaza queda libre para volver a inscribirse.
	view, err = svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ParticipantCount)
}

func TestEnrollFullBeforeLevel(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	y := env.seedStudent(t, "Estudiante Y", model.RoleStudent, 5)
	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.MaxCapacity = 1
		tr.MinLevel = 10
	})

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)

	// Con el aforo completo, el nivel insuficiente ni se llega a evaluar.
	_, err = svc.Enroll(training.ID, y.ID)
	assert.ErrorIs(t, err, util.ErrTrainingFull)
}

func TestEnrollConcurrentRespectsCapacity(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.MaxCapacity = 1
	})

	students := make([]uint, 5)
	for i := range students {
		students[i] = env.seedStudent(t, "Aspirante", model.RoleStudent, 12).ID
	}

	// Todas las inscripciones disparadas a la vez: la transacción de
	// inserción re-verifica el aforo, así que solo una puede entrar.
	var wg sync.WaitGroup
	var successes int32
	for _, id := range students {
		wg.Add(1)
		go func(studentID uint) {
			defer wg.Done()
			if _, err := svc.Enroll(training.ID, studentID); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)

	reloaded, err := env.trainingRepo.FindByID(training.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ParticipantCount())
}

func TestEnrollLevelTooLow(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	y := env.seedStudent(t, "Estudiante Y", model.RoleStudent, 5)
	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.MinLevel = 10
	})

	_, err := svc.Enroll(training.ID, y.ID)
	assert.ErrorIs(t, err, util.ErrLevelTooLow)
	// El mensaje incluye el nivel que le falta alcanzar.
	assert.EqualError(t, err, "Necesitas al menos nivel 10 para este entrenamiento")
}

func TestEnrollDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(training.ID, x.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	view, err := svc.reload(training.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ParticipantCount)
}

func TestEnrollRejectedWhenNotScheduled(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)

	for _, status := range []model.TrainingStatus{model.StatusInProgress, model.StatusCompleted, model.StatusCancelled} {
		training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
			tr.Status = status
		})
		_, err := svc.Enroll(training.ID, x.ID)
		assert.ErrorIs(t, err, util.ErrTrainingNotOpen, "estado %s", status)
	}
}

func TestEnrollTrainingNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)

	_, err := svc.Enroll(9999, x.ID)
	assert.ErrorIs(t, err, util.ErrTrainingNotFound)
}

func TestUnenrollNotEnrolled(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Unenroll(training.ID, x.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestUnenrollFromCompletedTraining(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)

	require.NoError(t, env.trainingRepo.UpdateFields(training.ID, map[string]interface{}{
		"status": model.StatusCompleted,
	}))

	// La baja no depende del estado del entrenamiento.
	view, err := svc.Unenroll(training.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.ParticipantCount)
}

func TestRemoveAttendees(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	y := env.seedStudent(t, "Estudiante Y", model.RoleStudent, 15)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(training.ID, y.ID)
	require.NoError(t, err)

	// Un ID nunca inscrito en la lista no provoca error.
	view, err := svc.RemoveAttendees(training.ID, instructor, []uint{x.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, view.ParticipantCount)
	assert.Equal(t, y.ID, view.Participants[0].ID)
}

func TestRemoveAttendeesRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	other := env.seedStudent(t, "Present Mic", model.RoleInstructor, 80)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)

	_, err = svc.RemoveAttendees(training.ID, other, []uint{x.ID})
	assert.ErrorIs(t, err, util.ErrNotOwner)

	view, err := svc.reload(training.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.ParticipantCount)
}

func TestRemoveAttendeesAdminBypass(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	admin := env.seedStudent(t, "Nezu", model.RoleAdmin, 100)
	x := env.seedStudent(t, "Estudiante X", model.RoleStudent, 12)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.Enroll(training.ID, x.ID)
	require.NoError(t, err)

	view, err := svc.RemoveAttendees(training.ID, admin, []uint{x.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, view.ParticipantCount)
}

func TestRemoveAttendeesEmptyList(t *testing.T) {
	env := newTestEnv(t)
	svc := newEnrollmentService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	training := env.seedTraining(t, instructor.ID, nil)

	_, err := svc.RemoveAttendees(training.ID, instructor, nil)
	assert.ErrorIs(t, err, util.ErrEmptyAttendees)
}
