package util

import (
	"testing"
	"time"

	"hero_academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	student := &model.Student{
		BaseModel: model.BaseModel{ID: 42},
		Email:     "midoriya@ua.edu",
		Role:      model.RoleStudent,
	}

	token, err := GenerateJWT(student, "secreto", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secreto")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.StudentID)
	assert.Equal(t, "midoriya@ua.edu", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestParseJWTWrongSecret(t *testing.T) {
	student := &model.Student{BaseModel: model.BaseModel{ID: 42}}

	token, err := GenerateJWT(student, "secreto", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "otro-secreto")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	student := &model.Student{BaseModel: model.BaseModel{ID: 42}}

	token, err := GenerateJWT(student, "secreto", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secreto")
	assert.Error(t, err)
}
