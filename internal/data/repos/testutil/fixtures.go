package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/domain"
)

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, order int, date string, active bool) *domain.IntelItem {
	tb.Helper()
	it := &domain.IntelItem{
		ID:           uuid.New(),
		Title:        "Fed holds rates",
		Impact:       domain.ImpactMedium,
		Date:         date,
		Description:  "short",
		Explanation:  "long form",
		DisplayOrder: order,
		IsActive:     active,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return it
}

func SeedAdmin(tb testing.TB, ctx context.Context, tx *gorm.DB, email, password string) *domain.AdminUser {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &domain.AdminUser{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleAdmin,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	return u
}
