package repos

import (
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/data/repos/audit"
	"github.com/northquant/site-backend/internal/data/repos/auth"
	"github.com/northquant/site-backend/internal/data/repos/intel"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type ItemRepo = intel.ItemRepo
type AdminUserRepo = auth.AdminUserRepo
type AuditEventRepo = audit.EventRepo

func NewItemRepo(db *gorm.DB, log *logger.Logger) ItemRepo {
	return intel.NewItemRepo(db, log)
}

func NewAdminUserRepo(db *gorm.DB, log *logger.Logger) AdminUserRepo {
	return auth.NewAdminUserRepo(db, log)
}

func NewAuditEventRepo(db *gorm.DB, log *logger.Logger) AuditEventRepo {
	return audit.NewEventRepo(db, log)
}
