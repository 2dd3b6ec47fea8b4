package app

import (
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/data/repos"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type Repos struct {
	Items      repos.ItemRepo
	AdminUsers repos.AdminUserRepo
	AuditLog   repos.AuditEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Items:      repos.NewItemRepo(db, log),
		AdminUsers: repos.NewAdminUserRepo(db, log),
		AuditLog:   repos.NewAuditEventRepo(db, log),
	}
}
