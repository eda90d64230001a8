package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
	"github.com/harentsoaR/dentist-booking-web/internal/utils"
)

const (
	tokenKey    = "sessionToken"
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// AuthMiddleware requires a bearer session token and stores it, with the
// user id and role it carries, on the gin context.
func AuthMiddleware(parser *utils.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := parser.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(tokenKey, tokenString)
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, models.Role(claims.Role))

		c.Next()
	}
}

// SessionToken is the raw token forwarded to the backend.
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func SessionUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SessionRole is the role claimed by the token, empty when it carries none.
func SessionRole(c *gin.Context) models.Role {
	role, _ := c.Get(userRoleKey)
	r, _ := role.(models.Role)
	return r
}

// RequireRole lets through sessions whose token claims one of roles. Tokens
// that claim no role pass, and the backend decides.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := SessionRole(c)
		if role == "" {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied."})
	}
}
