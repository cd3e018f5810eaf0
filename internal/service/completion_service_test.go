package service

import (
	"testing"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionService(env *testEnv) *CompletionService {
	return NewCompletionService(env.trainingRepo, env.studentRepo, env.policy)
}

func TestCompleteCombatRewards(t *testing.T) {
	env := newTestEnv(t)
	enrollment := newEnrollmentService(env)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	p1 := env.seedStudent(t, "Participante 1", model.RoleStudent, 20)
	require.NoError(t, env.studentRepo.UpdateFields(p1.ID, map[string]interface{}{
		"stat_strength": 5.0,
		"score":         100,
	}))

	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.Type = model.TypeCombat
		tr.Rewards = model.Rewards{Experience: 10, Points: 20}
	})

	_, err := enrollment.Enroll(training.ID, p1.ID)
	require.NoError(t, err)

	view, rewarded, err := completion.Complete(training.ID, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rewarded)
	assert.Equal(t, model.StatusCompleted, view.Status)

	updated, err := env.studentRepo.FindByID(p1.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.1, updated.Stats.Strength, 0.001)
	assert.InDelta(t, 1.1, updated.Stats.Technique, 0.001)
	assert.Equal(t, 120, updated.Score)
	assert.Equal(t, 21, updated.Level)
}

func TestCompleteCapsLevelAndStats(t *testing.T) {
	env := newTestEnv(t)
	enrollment := newEnrollmentService(env)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	p1 := env.seedStudent(t, "Participante 1", model.RoleStudent, 100)
	require.NoError(t, env.studentRepo.UpdateFields(p1.ID, map[string]interface{}{
		"stat_strength":  10.0,
		"stat_technique": 9.95,
	}))

	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.Type = model.TypeCombat
	})

	_, err := enrollment.Enroll(training.ID, p1.ID)
	require.NoError(t, err)

	_, _, err = completion.Complete(training.ID, instructor.ID)
	require.NoError(t, err)

	updated, err := env.studentRepo.FindByID(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Level)
	assert.InDelta(t, 10.0, updated.Stats.Strength, 0.001)
	assert.InDelta(t, 10.0, updated.Stats.Technique, 0.001)
}

func TestCompletePracticalMissionNoStatGains(t *testing.T) {
	env := newTestEnv(t)
	enrollment := newEnrollmentService(env)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	p1 := env.seedStudent(t, "Participante 1", model.RoleStudent, 20)

	training := env.seedTraining(t, instructor.ID, func(tr *model.Training) {
		tr.Type = model.TypePracticalMission
	})

	_, err := enrollment.Enroll(training.ID, p1.ID)
	require.NoError(t, err)

	_, _, err = completion.Complete(training.ID, instructor.ID)
	require.NoError(t, err)

	updated, err := env.studentRepo.FindByID(p1.ID)
	require.NoError(t, err)
	// Sube nivel y puntuación, pero ninguna estadística.
	assert.Equal(t, 21, updated.Level)
	assert.Equal(t, 5, updated.Score)
	assert.InDelta(t, 1.0, updated.Stats.Strength, 0.001)
	assert.InDelta(t, 1.0, updated.Stats.Technique, 0.001)
}

func TestCompleteOnlyOwnerInstructor(t *testing.T) {
	env := newTestEnv(t)
	enrollment := newEnrollmentService(env)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	other := env.seedStudent(t, "Present Mic", model.RoleInstructor, 80)
	p1 := env.seedStudent(t, "Participante 1", model.RoleStudent, 20)

	training := env.seedTraining(t, instructor.ID, nil)
	_, err := enrollment.Enroll(training.ID, p1.ID)
	require.NoError(t, err)

	_, _, err = completion.Complete(training.ID, other.ID)
	assert.ErrorIs(t, err, util.ErrOnlyInstructor)

	// Nada cambió: ni el estado ni las recompensas.
	reloaded, err := env.trainingRepo.FindByID(training.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, reloaded.Status)

	updated, err := env.studentRepo.FindByID(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Level)
	assert.Equal(t, 0, updated.Score)
}

func TestCompleteTwiceRejected(t *testing.T) {
	env := newTestEnv(t)
	enrollment := newEnrollmentService(env)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	p1 := env.seedStudent(t, "Participante 1", model.RoleStudent, 20)

	training := env.seedTraining(t, instructor.ID, nil)
	_, err := enrollment.Enroll(training.ID, p1.ID)
	require.NoError(t, err)

	_, _, err = completion.Complete(training.ID, instructor.ID)
	require.NoError(t, err)

	_, _, err = completion.Complete(training.ID, instructor.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)

	// Las recompensas se repartieron una sola vez.
	updated, err := env.studentRepo.FindByID(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, updated.Level)
	assert.Equal(t, 5, updated.Score)
}

func TestCompleteWithoutParticipants(t *testing.T) {
	env := newTestEnv(t)
	completion := newCompletionService(env)

	instructor := env.seedStudent(t, "Aizawa", model.RoleInstructor, 90)
	training := env.seedTraining(t, instructor.ID, nil)

	view, rewarded, err := completion.Complete(training.ID, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, rewarded)
	assert.Equal(t, model.StatusCompleted, view.Status)
}
