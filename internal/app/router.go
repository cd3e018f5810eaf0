package app

import (
	"hero_academy_backend/docs"
	"hero_academy_backend/internal/config"
	"hero_academy_backend/internal/middleware"
	"hero_academy_backend/internal/model"
	"hero_academy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerProtectedRoutes(router, c, cfg)
}

// Rutas accesibles sin token.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		public.POST("/auth/registro", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/auth/ranking", c.auth.Ranking)

		public.GET("/entrenamientos", c.training.List)
		public.GET("/entrenamientos/estadisticas", c.training.Stats)
		public.GET("/entrenamientos/:id", c.training.Get)
	}
}

// Rutas que exigen un token válido; crear entrenamientos exige además
// rol de profesor. El resto de permisos (dueño, inscrito) se valida en
// la capa de servicio.
func (a *App) registerProtectedRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/auth/perfil", c.auth.GetProfile)
		protected.PUT("/auth/perfil", c.auth.UpdateProfile)

		protected.POST("/entrenamientos", middleware.RoleMiddleware(model.RoleInstructor), c.training.Create)
		protected.PUT("/entrenamientos/:id", c.training.Update)
		protected.DELETE("/entrenamientos/:id", c.training.Delete)

		protected.POST("/entrenamientos/:id/inscribirse", c.training.Enroll)
		protected.DELETE("/entrenamientos/:id/inscribirse", c.training.Unenroll)
		protected.POST("/entrenamientos/:id/completar", c.training.Complete)
		protected.DELETE("/entrenamientos/:id/asistentes", c.training.RemoveAttendees)
	}
}
