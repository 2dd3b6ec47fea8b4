package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/ctxutil"
	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), authService: authService}
}

// RequireAdmin is the admin access guard: it authenticates the bearer token
// and rejects callers whose account is not an admin.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "Missing or invalid authorization token")
			c.Abort()
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			response.RespondError(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)

		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil || rd.Role != domain.RoleAdmin {
			response.RespondError(c, http.StatusForbidden, "Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
