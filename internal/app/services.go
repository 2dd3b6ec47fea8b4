package app

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

type Services struct {
	Auth  services.AuthService
	Intel services.IntelService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache *goredis.Client) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:  services.NewAuthService(db, log, reposet.AdminUsers, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Intel: services.NewIntelService(db, log, reposet.Items, reposet.AuditLog, cache),
	}
}
