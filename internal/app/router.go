package app

import (
	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		AuthMiddleware:    mw.Auth,
		HealthHandler:     handlerset.Health,
		AuthHandler:       handlerset.Auth,
		IntelHandler:      handlerset.Intel,
		AdminIntelHandler: handlerset.AdminIntel,
	})
}
