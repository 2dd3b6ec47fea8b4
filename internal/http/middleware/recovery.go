package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/logger"
)

// Recovery converts panics into the generic 500 envelope so callers never see
// internals.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			log.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		}
		c.Abort()
		response.RespondError(c, http.StatusInternalServerError, "Internal server error")
	})
}
