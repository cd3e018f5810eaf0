package controller

import (
	"errors"
	"strconv"
	"time"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/repository"
	"hero_academy_backend/internal/service"
	"hero_academy_backend/internal/util"
	"hero_academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// TrainingController atiende el catálogo de entrenamientos y el ciclo de
// inscripción y finalización.
type TrainingController struct {
	TrainingService   *service.TrainingService
	EnrollmentService *service.EnrollmentService
	CompletionService *service.CompletionService
	AuthService       *service.AuthService
	StorageService    *service.StorageService
}

func NewTrainingController(
	trainingService *service.TrainingService,
	enrollmentService *service.EnrollmentService,
	completionService *service.CompletionService,
	authService *service.AuthService,
	storageService *service.StorageService,
) *TrainingController {
	return &TrainingController{
		TrainingService:   trainingService,
		EnrollmentService: enrollmentService,
		CompletionService: completionService,
		AuthService:       authService,
		StorageService:    storageService,
	}
}

// List godoc
// @Summary Catálogo de entrenamientos programados
// @Description Filtros por tipo, dificultad y nivel, búsqueda y paginación
// @Tags Entrenamientos
// @Produce json
// @Param page query int false "Página" default(1)
// @Param limit query int false "Entradas por página" default(10)
// @Param estado query string false "Estado" default(programado)
// @Param tipo query string false "Tipo de entrenamiento"
// @Param dificultad query string false "Dificultad"
// @Param nivelMinimo query int false "Nivel requerido mínimo"
// @Param nivelMaximo query int false "Nivel requerido máximo"
// @Param busqueda query string false "Búsqueda en título y descripción"
// @Param ordenPor query string false "Campo de orden" default(fechaHora)
// @Param orden query string false "asc o desc" default(asc)
// @Success 200 {object} util.Response{data=service.TrainingPage} "Éxito"
// @Router /api/entrenamientos [get]
func (c *TrainingController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	minLevel, _ := strconv.Atoi(ctx.DefaultQuery("nivelMinimo", "0"))
	maxLevel, _ := strconv.Atoi(ctx.DefaultQuery("nivelMaximo", "0"))

	filter := repository.TrainingFilter{
		Status:     model.TrainingStatus(ctx.Query("estado")),
		Type:       ctx.Query("tipo"),
		Difficulty: ctx.Query("dificultad"),
		MinLevel:   minLevel,
		MaxLevel:   maxLevel,
		Search:     ctx.Query("busqueda"),
		SortBy:     ctx.DefaultQuery("ordenPor", "fechaHora"),
		SortDesc:   ctx.DefaultQuery("orden", "asc") == "desc",
		Page:       page,
		Limit:      limit,
	}

	pageData, err := c.TrainingService.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, "", pageData)
}

// Stats godoc
// @Summary Estadísticas por tipo de entrenamiento
// @Tags Entrenamientos
// @Produce json
// @Success 200 {object} util.Response{data=[]repository.TypeStats} "Éxito"
// @Router /api/entrenamientos/estadisticas [get]
func (c *TrainingController) Stats(ctx *gin.Context) {
	stats, err := c.TrainingService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "", stats)
}

// Get godoc
// @Summary Detalle de un entrenamiento
// @Tags Entrenamientos
// @Produce json
// @Param id path int true "ID del entrenamiento"
// @Success 200 {object} util.Response{data=model.TrainingView} "Éxito"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id} [get]
func (c *TrainingController) Get(ctx *gin.Context) {
	id := util.ParseUintOrZero(ctx.Param("id"))

	view, err := c.TrainingService.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "", view)
}

// swagger:model TrainingRequest
type TrainingRequest struct {
	Title       string `form:"titulo" json:"titulo" binding:"required,min=3,max=100"`
	Description string `form:"descripcion" json:"descripcion" binding:"required,min=10,max=1000"`
	StartsAt    string `form:"fechaHora" json:"fechaHora" binding:"required"`
	Location    string `form:"ubicacion" json:"ubicacion" binding:"required"`
	MaxCapacity int    `form:"capacidadMaxima" json:"capacidadMaxima" binding:"required,min=1,max=30"`
	MinLevel    int    `form:"nivelRequerido" json:"nivelRequerido" binding:"omitempty,min=1,max=100"`
	Type        string `form:"tipo" json:"tipo" binding:"required,oneof=combate rescate quirk-development resistencia estrategia trabajo-en-equipo mision-practica"`
	Difficulty  string `form:"dificultad" json:"dificultad" binding:"omitempty,oneof=principiante intermedio avanzado experto"`
	Duration    int    `form:"duracion" json:"duracion" binding:"required,min=30,max=480"`
	Experience  int    `form:"experiencia" json:"experiencia" binding:"omitempty,min=1"`
	Points      int    `form:"puntos" json:"puntos" binding:"omitempty,min=1"`
}

// Create godoc
// @Summary Crear un entrenamiento
// @Description Solo profesores y administradores; la fecha debe ser futura
// @Tags Entrenamientos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TrainingRequest true "Datos del entrenamiento"
// @Success 201 {object} util.Response{data=model.TrainingView} "Creado"
// @Failure 400 {object} util.Response "Datos inválidos"
// @Failure 403 {object} util.Response "Sin privilegio de instructor"
// @Router /api/entrenamientos [post]
func (c *TrainingController) Create(ctx *gin.Context) {
	creator := c.AuthService.GetCurrentStudent(ctx)
	if creator == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	var req TrainingRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.ValidationError(ctx, "Datos de entrada inválidos", bindingErrors(err))
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		util.BadRequest(ctx, "Debe proporcionar una fecha y hora válida")
		return
	}
	if !model.IsValidLocation(req.Location) {
		util.BadRequest(ctx, "Ubicación inválida")
		return
	}

	training := &model.Training{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    startsAt,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
		MinLevel:    req.MinLevel,
		Type:        model.TrainingType(req.Type),
		Difficulty:  model.Difficulty(req.Difficulty),
		Duration:    req.Duration,
		Rewards: model.Rewards{
			Experience: req.Experience,
			Points:     req.Points,
		},
	}

	if fh, err := ctx.FormFile("imagen"); err == nil {
		filename, err := c.StorageService.UploadImage(ctx.Request.Context(), fh, "entrenamientos")
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		training.Image = filename
	}

	view, err := c.TrainingService.Create(training, creator)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Created(ctx, "Entrenamiento creado exitosamente", view)
}

// swagger:model TrainingUpdateRequest
type TrainingUpdateRequest struct {
	Title       string `form:"titulo" json:"titulo" binding:"omitempty,min=3,max=100"`
	Description string `form:"descripcion" json:"descripcion" binding:"omitempty,min=10,max=1000"`
	StartsAt    string `form:"fechaHora" json:"fechaHora"`
	Location    string `form:"ubicacion" json:"ubicacion"`
	MaxCapacity int    `form:"capacidadMaxima" json:"capacidadMaxima" binding:"omitempty,min=1,max=30"`
	MinLevel    int    `form:"nivelRequerido" json:"nivelRequerido" binding:"omitempty,min=1,max=100"`
	Type        string `form:"tipo" json:"tipo" binding:"omitempty,oneof=combate rescate quirk-development resistencia estrategia trabajo-en-equipo mision-practica"`
	Difficulty  string `form:"dificultad" json:"dificultad" binding:"omitempty,oneof=principiante intermedio avanzado experto"`
	Duration    int    `form:"duracion" json:"duracion" binding:"omitempty,min=30,max=480"`
	Experience  int    `form:"experiencia" json:"experiencia" binding:"omitempty,min=1"`
	Points      int    `form:"puntos" json:"puntos" binding:"omitempty,min=1"`
}

// Update godoc
// @Summary Actualizar un entrenamiento
// @Description Parche parcial; solo el instructor dueño o un administrador
// @Tags Entrenamientos
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Param body body TrainingUpdateRequest true "Campos a actualizar"
// @Success 200 {object} util.Response{data=model.TrainingView} "Éxito"
// @Failure 403 {object} util.Response "Sin permisos"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id} [put]
func (c *TrainingController) Update(ctx *gin.Context) {
	requester := c.AuthService.GetCurrentStudent(ctx)
	if requester == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	var req TrainingUpdateRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.ValidationError(ctx, "Datos de entrada inválidos", bindingErrors(err))
		return
	}

	fields := map[string]interface{}{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.StartsAt != "" {
		startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			util.BadRequest(ctx, "Debe proporcionar una fecha y hora válida")
			return
		}
		fields["starts_at"] = startsAt
	}
	if req.Location != "" {
		if !model.IsValidLocation(req.Location) {
			util.BadRequest(ctx, "Ubicación inválida")
			return
		}
		fields["location"] = req.Location
	}
	if req.MaxCapacity > 0 {
		fields["max_capacity"] = req.MaxCapacity
	}
	if req.MinLevel > 0 {
		fields["min_level"] = req.MinLevel
	}
	if req.Type != "" {
		fields["type"] = req.Type
	}
	if req.Difficulty != "" {
		fields["difficulty"] = req.Difficulty
	}
	if req.Duration > 0 {
		fields["duration"] = req.Duration
	}
	if req.Experience > 0 {
		fields["reward_experience"] = req.Experience
	}
	if req.Points > 0 {
		fields["reward_points"] = req.Points
	}

	if fh, err := ctx.FormFile("imagen"); err == nil {
		filename, err := c.StorageService.UploadImage(ctx.Request.Context(), fh, "entrenamientos")
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		fields["image"] = filename
	}

	view, err := c.TrainingService.Update(id, requester, fields)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "Entrenamiento actualizado exitosamente", view)
}

// Delete godoc
// @Summary Eliminar un entrenamiento
// @Tags Entrenamientos
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Success 200 {object} util.Response "Éxito"
// @Failure 403 {object} util.Response "Sin permisos"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id} [delete]
func (c *TrainingController) Delete(ctx *gin.Context) {
	requester := c.AuthService.GetCurrentStudent(ctx)
	if requester == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	if err := c.TrainingService.Delete(id, requester); err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "Entrenamiento eliminado exitosamente", nil)
}

// enrollOutcome separa en la métrica los rechazos de negocio de los fallos
// de infraestructura o entidades inexistentes.
func enrollOutcome(err error) string {
	switch {
	case errors.Is(err, util.ErrTrainingNotOpen),
		errors.Is(err, util.ErrTrainingFull),
		errors.Is(err, util.ErrLevelTooLow),
		errors.Is(err, util.ErrAlreadyEnrolled):
		return "rejected"
	}
	return "error"
}

// Enroll godoc
// @Summary Inscribirse en un entrenamiento
// @Description Falla si no está programado, está lleno, el nivel es bajo o ya está inscrito
// @Tags Inscripciones
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Success 200 {object} util.Response{data=model.TrainingView} "Éxito"
// @Failure 400 {object} util.Response "Regla de inscripción violada"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id}/inscribirse [post]
func (c *TrainingController) Enroll(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	view, err := c.EnrollmentService.Enroll(id, claims.StudentID)
	if err != nil {
		monitoring.EnrollmentCounter.WithLabelValues(enrollOutcome(err)).Inc()
		respondServiceError(ctx, err)
		return
	}

	monitoring.EnrollmentCounter.WithLabelValues("success").Inc()
	util.Success(ctx, "Inscripción exitosa al entrenamiento", view)
}

// Unenroll godoc
// @Summary Cancelar la inscripción
// @Tags Inscripciones
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Success 200 {object} util.Response{data=model.TrainingView} "Éxito"
// @Failure 400 {object} util.Response "No inscrito"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id}/inscribirse [delete]
func (c *TrainingController) Unenroll(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	view, err := c.EnrollmentService.Unenroll(id, claims.StudentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "Inscripción cancelada exitosamente", view)
}

// Complete godoc
// @Summary Completar un entrenamiento
// @Description Solo el instructor dueño; reparte recompensas a los inscritos
// @Tags Inscripciones
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Success 200 {object} util.Response{data=object} "Éxito"
// @Failure 403 {object} util.Response "No es el instructor"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id}/completar [post]
func (c *TrainingController) Complete(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	view, rewarded, err := c.CompletionService.Complete(id, claims.StudentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	monitoring.RewardedStudents.Add(float64(rewarded))
	util.Success(ctx, "Entrenamiento completado. ¡Los estudiantes han mejorado sus habilidades!", gin.H{
		"entrenamiento":             view,
		"participantesActualizados": rewarded,
	})
}

// swagger:model RemoveAttendeesRequest
type RemoveAttendeesRequest struct {
	AttendeeIDs []uint `json:"attendeeIds" binding:"required"`
}

// RemoveAttendees godoc
// @Summary Eliminar asistentes de un entrenamiento
// @Description Solo el instructor dueño o un administrador; lista no vacía
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "ID del entrenamiento"
// @Param body body RemoveAttendeesRequest true "IDs de asistentes"
// @Success 200 {object} util.Response{data=model.TrainingView} "Éxito"
// @Failure 400 {object} util.Response "Lista vacía"
// @Failure 403 {object} util.Response "Sin permisos"
// @Failure 404 {object} util.Response "No encontrado"
// @Router /api/entrenamientos/{id}/asistentes [delete]
func (c *TrainingController) RemoveAttendees(ctx *gin.Context) {
	requester := c.AuthService.GetCurrentStudent(ctx)
	if requester == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))

	var req RemoveAttendeesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrEmptyAttendees.Error())
		return
	}

	view, err := c.EnrollmentService.RemoveAttendees(id, requester, req.AttendeeIDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, strconv.Itoa(len(req.AttendeeIDs))+" asistente(s) eliminado(s) exitosamente", view)
}
