package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func participants(ids ...uint) []*Student {
	out := make([]*Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, &Student{BaseModel: BaseModel{ID: id}})
	}
	return out
}

func TestTrainingDerivedFields(t *testing.T) {
	training := &Training{
		MaxCapacity:  3,
		Duration:     90,
		Participants: participants(1, 2),
	}

	assert.Equal(t, 2, training.ParticipantCount())
	assert.False(t, training.IsFull())
	assert.Equal(t, 1, training.AvailableSlots())
	assert.InDelta(t, 1.5, training.DurationHours(), 0.001)

	training.Participants = participants(1, 2, 3)
	assert.True(t, training.IsFull())
	assert.Equal(t, 0, training.AvailableSlots())
}

func TestHasParticipant(t *testing.T) {
	training := &Training{Participants: participants(4, 7)}

	assert.True(t, training.HasParticipant(7))
	assert.False(t, training.HasParticipant(5))
}

func TestTrainingView(t *testing.T) {
	instructor := &Student{BaseModel: BaseModel{ID: 1}, Name: "Aizawa", HeroName: "Eraserhead"}
	training := &Training{
		Title:        "Rescate urbano",
		MaxCapacity:  2,
		Duration:     60,
		Instructor:   instructor,
		Participants: participants(4),
	}

	view := training.View()
	assert.Equal(t, 1, view.ParticipantCount)
	assert.False(t, view.IsFull)
	assert.Equal(t, 1, view.AvailableSlots)
	assert.InDelta(t, 1.0, view.DurationHours, 0.001)
	assert.Equal(t, "Eraserhead", view.Instructor.HeroName)
	assert.Len(t, view.Participants, 1)
}

func TestIsValidLocation(t *testing.T) {
	assert.True(t, IsValidLocation("Gimnasio Alfa"))
	assert.True(t, IsValidLocation("Zona de Desastres"))
	assert.False(t, IsValidLocation("Cafetería"))
	assert.False(t, IsValidLocation(""))
}
