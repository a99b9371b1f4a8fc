package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

const identityKey = "identity"

// Identity is the authenticated caller, resolved once at the auth boundary
// and passed explicitly to handlers. Role names the table ID points into.
type Identity struct {
	Role models.Role
	ID   uint
}

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{Role: claims.Role, ID: claims.AccountID})
		c.Next()
	}
}

// RequireRole creates a middleware that rejects callers whose credential
// does not belong to the given record type. It should be used *after*
// AuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			utils.InternalServerError(c, "Identity not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		if identity.Role != role {
			utils.Forbidden(c, "Unauthorized - "+roleLabel(role)+" only")
			c.Abort()
			return
		}

		c.Next()
	}
}

func roleLabel(role models.Role) string {
	switch role {
	case models.RolePatient:
		return "Patient"
	case models.RoleDoctor:
		return "Doctor"
	case models.RoleAssistant:
		return "Assistant"
	}
	return string(role)
}

// IdentityFromContext returns the authenticated identity set by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
