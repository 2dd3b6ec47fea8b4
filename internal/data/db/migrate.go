package db

import (
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/domain"
)

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.AdminUser{},
		&domain.IntelItem{},
		&domain.AuditEvent{},
	)
}
