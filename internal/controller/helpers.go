package controller

import (
	"errors"
	"fmt"

	"hero_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondServiceError traduce los errores centinela de los servicios a la
// envoltura HTTP uniforme. Cualquier error no clasificado es un fallo
// interno: se registra con detalle y se responde con un mensaje genérico.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTrainingNotFound),
		errors.Is(err, util.ErrStudentNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNotOwner),
		errors.Is(err, util.ErrOnlyInstructor),
		errors.Is(err, util.ErrNotTeacher):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrTrainingNotOpen),
		errors.Is(err, util.ErrTrainingFull),
		errors.Is(err, util.ErrLevelTooLow),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrNotEnrolled),
		errors.Is(err, util.ErrAlreadyCompleted),
		errors.Is(err, util.ErrEmptyAttendees),
		errors.Is(err, util.ErrPastStartDate),
		errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCreds):
		util.Unauthorized(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// bindingErrors convierte los errores del validador en descriptores por
// campo para la lista `errors` de la envoltura.
func bindingErrors(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fmt.Sprintf("%s: no cumple la regla '%s'", fe.Field(), fe.Tag()))
		}
		return out
	}
	return []string{err.Error()}
}
