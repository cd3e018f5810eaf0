package service

import (
	"testing"
	"time"

	"hero_academy_backend/internal/config"
	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "secreto-de-pruebas"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(env.studentRepo, cfg)
}

func TestRegisterDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	student := &model.Student{
		Name:     "Ochaco Uraraka",
		HeroName: "Uravity",
		Email:    "uraraka@ua.edu",
		Password: "plusultra",
		Quirk: model.Quirk{
			Name:        "Zero Gravity",
			Description: "Anula la gravedad de lo que toca",
			Type:        model.QuirkEmission,
		},
		Class: "1-A",
	}
	require.NoError(t, svc.Register(student))

	saved, err := env.studentRepo.FindByEmail("uraraka@ua.edu")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, saved.Role)
	assert.Equal(t, 1, saved.Level)
	assert.Equal(t, 0, saved.Score)
	assert.InDelta(t, 1.0, saved.Stats.Strength, 0.001)
	assert.InDelta(t, 1.0, saved.Stats.Cooperation, 0.001)

	// La contraseña se guarda como hash bcrypt, nunca en claro.
	assert.NotEqual(t, "plusultra", saved.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("plusultra")))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	first := &model.Student{Name: "A", Email: "  Mezcla@UA.edu ", Password: "x", Class: "1-A"}
	require.NoError(t, svc.Register(first))
	assert.Equal(t, "mezcla@ua.edu", first.Email)

	// El mismo email con otra capitalización es la misma cuenta.
	second := &model.Student{Name: "B", Email: "MEZCLA@ua.edu", Password: "y", Class: "1-B"}
	assert.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)

	// Y el login no distingue mayúsculas tampoco.
	logged, _, err := svc.Login("MeZcLa@Ua.EDU", "x")
	require.NoError(t, err)
	assert.Equal(t, first.ID, logged.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	first := &model.Student{Name: "A", Email: "dup@ua.edu", Password: "x", Class: "1-A"}
	require.NoError(t, svc.Register(first))

	second := &model.Student{Name: "B", Email: "dup@ua.edu", Password: "y", Class: "1-B"}
	err := svc.Register(second)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	student := &model.Student{Name: "Shoto", Email: "todoroki@ua.edu", Password: "mitad-mitad", Class: "1-A"}
	require.NoError(t, svc.Register(student))

	logged, token, err := svc.Login("todoroki@ua.edu", "mitad-mitad")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, student.ID, logged.ID)

	claims, err := util.ParseJWT(token, "secreto-de-pruebas")
	require.NoError(t, err)
	assert.Equal(t, student.ID, claims.StudentID)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	student := &model.Student{Name: "Shoto", Email: "todoroki@ua.edu", Password: "mitad-mitad", Class: "1-A"}
	require.NoError(t, svc.Register(student))

	_, _, err := svc.Login("todoroki@ua.edu", "incorrecta")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)

	_, _, err = svc.Login("nadie@ua.edu", "mitad-mitad")
	assert.ErrorIs(t, err, util.ErrInvalidCreds)
}
