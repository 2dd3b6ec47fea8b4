package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

func ValidImpact(v string) bool {
	switch v {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

// IntelItem is one entry in the market-intelligence feed. Date is the reported
// date of the item (ISO YYYY-MM-DD), not a creation timestamp. DisplayOrder has
// no uniqueness constraint; ties are resolved by Date descending at read time.
type IntelItem struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Impact      string `gorm:"type:varchar(10);not null" json:"impact"`
	Date        string `gorm:"type:varchar(10);not null;index" json:"date"`
	Description string `gorm:"type:text;not null" json:"description"`
	Explanation string `gorm:"type:text;not null" json:"explanation"`

	DisplayOrder int  `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool `gorm:"not null;default:true;index" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (IntelItem) TableName() string { return "market_intelligence" }

func (i *IntelItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
