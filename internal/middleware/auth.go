package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medilink/records-api/internal/handler"
	"github.com/medilink/records-api/internal/model"
	"github.com/medilink/records-api/internal/service/auth"
)

const contextSessionKey = "session"

type AuthMiddleware struct {
	authService auth.AuthService
}

func NewAuthMiddleware(authService auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and resolves the caller's session,
// profile included, into the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		profile, err := m.authService.Profile(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("account profile not found"))
			c.Abort()
			return
		}

		c.Set(contextSessionKey, &model.Session{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Profile: profile,
		})
		c.Next()
	}
}

// RequireRole guards role-specific routes. The stored profile role decides,
// not the token, so a role can never be widened by replaying an old token.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil || session.Profile == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("no active session"))
			c.Abort()
			return
		}

		if session.Profile.Role != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient role for this resource"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// SessionFromContext returns the authenticated session, or nil outside of
// authenticated routes.
func SessionFromContext(c *gin.Context) *model.Session {
	if v, ok := c.Get(contextSessionKey); ok {
		if session, ok := v.(*model.Session); ok {
			return session
		}
	}
	return nil
}
