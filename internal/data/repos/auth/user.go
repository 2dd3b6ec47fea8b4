package auth

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/platform/dbctx"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type AdminUserRepo interface {
	Create(dbc dbctx.Context, row *domain.AdminUser) (*domain.AdminUser, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.AdminUser, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.AdminUser, error)
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	return &adminUserRepo{db: db, log: baseLog.With("repo", "AdminUserRepo")}
}

func (r *adminUserRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *adminUserRepo) Create(dbc dbctx.Context, row *domain.AdminUser) (*domain.AdminUser, error) {
	row.Email = strings.ToLower(strings.TrimSpace(row.Email))
	if err := r.handle(dbc).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *adminUserRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.AdminUser, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.AdminUser
	if err := r.handle(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *adminUserRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var out []*domain.AdminUser
	if err := r.handle(dbc).Where("email = ?", email).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
