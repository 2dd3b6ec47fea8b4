package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleAdmin = "admin"

type AdminUser struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string `gorm:"type:text;not null" json:"-"`
	Role     string `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (AdminUser) TableName() string { return "admin_user" }

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
