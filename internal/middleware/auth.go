package middleware

import (
	"strings"

	"hero_academy_backend/internal/config"
	"hero_academy_backend/internal/model"
	"hero_academy_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resuelve el token Bearer a claims y los deja en el
// contexto. Sin token válido la petición no llega a los controladores.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c, "Acceso denegado. Token no proporcionado.")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c, "Token inválido o expirado.")
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// RoleMiddleware exige uno de los roles dados; admin siempre pasa.
func RoleMiddleware(roles ...model.StudentRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetClaimsFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "Acceso denegado.")
			c.Abort()
			return
		}

		if claims.Role == model.RoleAdmin {
			c.Next()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c, "No tienes permisos para realizar esta acción.")
		c.Abort()
	}
}
