package controller

import (
	"net/http"
	"time"

	"hero_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// HealthCheck godoc
// @Summary Estado del servicio
// @Tags Sistema
// @Produce json
// @Success 200 {object} util.Response "Éxito"
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Base de datos no disponible")
		return
	}

	util.Success(ctx, "Servidor funcionando correctamente", gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"components": gin.H{
			"database": "up",
		},
	})
}
