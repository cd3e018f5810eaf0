package controller

import (
	"strconv"

	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/service"
	"hero_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthController atiende registro, login, perfil y ranking.
type AuthController struct {
	AuthService    *service.AuthService
	StudentService *service.StudentService
	StorageService *service.StorageService
}

func NewAuthController(authService *service.AuthService, studentService *service.StudentService, storageService *service.StorageService) *AuthController {
	return &AuthController{
		AuthService:    authService,
		StudentService: studentService,
		StorageService: storageService,
	}
}

// QuirkRequest describe el poder del estudiante en el registro.
// swagger:model QuirkRequest
type QuirkRequest struct {
	Name        string `json:"nombre" binding:"required,min=1,max=50"`
	Description string `json:"descripcion" binding:"required,min=1,max=200"`
	Type        string `json:"tipo" binding:"required,oneof=emision transformacion mutacion"`
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string       `json:"nombre" binding:"required,min=2,max=50"`
	HeroName string       `json:"nombreHeroe" binding:"omitempty,max=30"`
	Email    string       `json:"email" binding:"required,email"`
	Password string       `json:"password" binding:"required,min=6"`
	Quirk    QuirkRequest `json:"quirk" binding:"required"`
	Class    string       `json:"clase" binding:"required,oneof=1-A 1-B 2-A 2-B 3-A 3-B"`
	Role     string       `json:"rol" binding:"omitempty,oneof=estudiante profesor admin"`
}

// Register godoc
// @Summary Registrar un estudiante
// @Description Da de alta una cuenta nueva en la academia y devuelve su token
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Datos de registro"
// @Success 201 {object} util.Response{data=object} "Creado"
// @Failure 400 {object} util.Response "Datos inválidos o email duplicado"
// @Failure 500 {object} util.Response "Error interno"
// @Router /api/auth/registro [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, "Datos de entrada inválidos", bindingErrors(err))
		return
	}

	student := &model.Student{
		Name:     req.Name,
		HeroName: req.HeroName,
		Email:    req.Email,
		Password: req.Password,
		Quirk: model.Quirk{
			Name:        req.Quirk.Name,
			Description: req.Quirk.Description,
			Type:        model.QuirkType(req.Quirk.Type),
		},
		Class: req.Class,
		Role:  model.StudentRole(req.Role),
	}

	if err := c.AuthService.Register(student); err != nil {
		respondServiceError(ctx, err)
		return
	}

	token, err := util.GenerateJWT(student, c.AuthService.Cfg.JWT.Secret, c.AuthService.Cfg.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, "Estudiante registrado exitosamente en la U.A. High School!", gin.H{
		"estudiante": student,
		"token":      token,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Iniciar sesión
// @Description Valida credenciales y devuelve el token JWT
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credenciales"
// @Success 200 {object} util.Response{data=object} "Éxito"
// @Failure 400 {object} util.Response "Datos inválidos"
// @Failure 401 {object} util.Response "Credenciales inválidas"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, "Datos de entrada inválidos", bindingErrors(err))
		return
	}

	student, token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "¡Bienvenido de vuelta a la U.A., "+student.DisplayName()+"!", gin.H{
		"estudiante": student,
		"token":      token,
	})
}

// GetProfile godoc
// @Summary Perfil del estudiante autenticado
// @Description Devuelve el perfil con entrenamientos creados y asistidos
// @Tags Autenticación
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Student} "Éxito"
// @Failure 401 {object} util.Response "No autorizado"
// @Router /api/auth/perfil [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	student, err := c.StudentService.Profile(claims.StudentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "", student)
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name     string        `form:"nombre" json:"nombre" binding:"omitempty,min=2,max=50"`
	HeroName string        `form:"nombreHeroe" json:"nombreHeroe" binding:"omitempty,max=30"`
	Quirk    *QuirkRequest `json:"quirk"`
}

// UpdateProfile godoc
// @Summary Actualizar el perfil propio
// @Description Parche parcial del perfil; acepta avatar multipart
// @Tags Autenticación
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Student} "Éxito"
// @Failure 400 {object} util.Response "Datos inválidos"
// @Failure 401 {object} util.Response "No autorizado"
// @Router /api/auth/perfil [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Acceso denegado.")
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.ValidationError(ctx, "Datos de entrada inválidos", bindingErrors(err))
		return
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.HeroName != "" {
		fields["hero_name"] = req.HeroName
	}
	if req.Quirk != nil {
		fields["quirk_name"] = req.Quirk.Name
		fields["quirk_description"] = req.Quirk.Description
		fields["quirk_type"] = req.Quirk.Type
	}

	if fh, err := ctx.FormFile("avatar"); err == nil {
		filename, err := c.StorageService.UploadImage(ctx.Request.Context(), fh, "avatars")
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		fields["avatar"] = filename
	}

	student, err := c.StudentService.UpdateProfile(claims.StudentID, fields)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, "Perfil de héroe actualizado exitosamente", student)
}

// Ranking godoc
// @Summary Ranking de héroes
// @Description Ordena por puntuación y nivel descendentes, con filtro de clase
// @Tags Autenticación
// @Produce json
// @Param limite query int false "Máximo de entradas" default(10)
// @Param clase query string false "Filtrar por clase"
// @Success 200 {object} util.Response{data=[]service.RankingEntry} "Éxito"
// @Router /api/auth/ranking [get]
func (c *AuthController) Ranking(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limite", "10"))
	class := ctx.Query("clase")

	entries, err := c.StudentService.Ranking(ctx.Request.Context(), limit, class)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, "Ranking de héroes obtenido exitosamente", entries)
}
