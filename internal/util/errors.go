package util

import (
	"errors"
	"fmt"
)

var (
	ErrStudentNotFound  = errors.New("Estudiante no encontrado")
	ErrEmailRegistered  = errors.New("Ya existe un estudiante con este email")
	ErrTrainingNotFound = errors.New("Entrenamiento no encontrado")
	ErrTrainingNotOpen  = errors.New("El entrenamiento no está abierto a inscripciones")
	ErrTrainingFull     = errors.New("El entrenamiento ha alcanzado su capacidad máxima")
	ErrLevelTooLow      = errors.New("Nivel insuficiente para este entrenamiento")
	ErrAlreadyEnrolled  = errors.New("Ya estás inscrito en este entrenamiento")
	ErrNotEnrolled      = errors.New("No estás inscrito en este entrenamiento")
	ErrNotOwner         = errors.New("No tienes permisos para modificar este entrenamiento")
	ErrOnlyInstructor   = errors.New("Solo el instructor puede completar el entrenamiento")
	ErrNotTeacher       = errors.New("Solo los profesores pueden crear entrenamientos")
	ErrAlreadyCompleted = errors.New("El entrenamiento ya fue completado")
	ErrEmptyAttendees   = errors.New("Se requiere al menos un ID de asistente para eliminar")
	ErrPastStartDate    = errors.New("La fecha del entrenamiento debe ser futura")
	ErrInvalidCreds     = errors.New("Credenciales inválidas")
)

// MinLevelError lleva el nivel requerido para que el mensaje se lo diga al
// estudiante. errors.Is lo clasifica como ErrLevelTooLow.
type MinLevelError struct {
	MinLevel int
}

func (e *MinLevelError) Error() string {
	return fmt.Sprintf("Necesitas al menos nivel %d para este entrenamiento", e.MinLevel)
}

func (e *MinLevelError) Is(target error) bool {
	return target == ErrLevelTooLow
}
