package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"prepvio_backend/internal/auth"
	"prepvio_backend/internal/config"
	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
)

// AuthMiddleware verifies the access token. The token is read from the
// Authorization header first; failing that, from the HTTP-only cookie whose
// name is configured for the token's audience. Which cookie applies is a
// deployment setting, never derived from the Origin header.
func AuthMiddleware() gin.HandlerFunc {
	cfg := config.GetConfig()

	return func(c *gin.Context) {
		tokenStr := extractToken(c, cfg)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization token missing"})
			return
		}

		claims, err := auth.ParseToken(tokenStr, cfg.JWT.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		role := claims.Role
		if claims.UserID == auth.AdminSubject {
			// Built-in admin identity, never present in the users table.
			role = models.UserRoleAdmin
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", claims.UserID)
		c.Set("role", role)
		c.Set("audience", claims.Audience)
		c.Next()
	}
}

func extractToken(c *gin.Context, cfg *config.Config) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	if cookie, err := c.Cookie(cfg.Auth.AdminCookie); err == nil && cookie != "" {
		return cookie
	}
	if cookie, err := c.Cookie(cfg.Auth.UserCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// RoleMiddleware restricts a route group to a single role.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied: no role"})
			return
		}
		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireRoles allows any of the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok || !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied: insufficient role"})
			return
		}
		c.Next()
	}
}

func roleFromContext(c *gin.Context) (models.UserRole, bool) {
	roleVal, exists := c.Get("role")
	if !exists {
		return "", false
	}
	role, ok := roleVal.(models.UserRole)
	if !ok {
		roleStr, isString := roleVal.(string)
		if !isString {
			return "", false
		}
		role = models.UserRole(roleStr)
	}
	return role, true
}

// GetUserID extracts the authenticated user ID from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
