package app

import (
	"github.com/northquant/site-backend/internal/http/handlers"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Intel      *handlers.IntelHandler
	AdminIntel *handlers.AdminIntelHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(),
		Auth:       handlers.NewAuthHandler(log, serviceset.Auth),
		Intel:      handlers.NewIntelHandler(log, serviceset.Intel),
		AdminIntel: handlers.NewAdminIntelHandler(log, serviceset.Intel),
	}
}
