package service

import (
	"testing"

	"hero_academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicyIsOwner(t *testing.T) {
	policy := NewAccessPolicy()
	training := &model.Training{InstructorID: 7}

	assert.True(t, policy.IsOwner(training, 7))
	assert.False(t, policy.IsOwner(training, 8))
}

func TestAccessPolicyHasInstructorPrivilege(t *testing.T) {
	policy := NewAccessPolicy()

	assert.True(t, policy.HasInstructorPrivilege(&model.Student{Role: model.RoleInstructor}))
	assert.True(t, policy.HasInstructorPrivilege(&model.Student{Role: model.RoleAdmin}))
	assert.False(t, policy.HasInstructorPrivilege(&model.Student{Role: model.RoleStudent}))
}

func TestAccessPolicyCanManage(t *testing.T) {
	policy := NewAccessPolicy()
	training := &model.Training{InstructorID: 7}

	owner := &model.Student{BaseModel: model.BaseModel{ID: 7}, Role: model.RoleInstructor}
	otherInstructor := &model.Student{BaseModel: model.BaseModel{ID: 8}, Role: model.RoleInstructor}
	admin := &model.Student{BaseModel: model.BaseModel{ID: 9}, Role: model.RoleAdmin}
	student := &model.Student{BaseModel: model.BaseModel{ID: 10}, Role: model.RoleStudent}

	assert.True(t, policy.CanManage(training, owner))
	assert.False(t, policy.CanManage(training, otherInstructor))
	assert.True(t, policy.CanManage(training, admin))
	assert.False(t, policy.CanManage(training, student))
}
