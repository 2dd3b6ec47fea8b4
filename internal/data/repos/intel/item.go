package intel

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/platform/dbctx"
	"github.com/northquant/site-backend/internal/platform/logger"
)

// Feed ordering: manual position first, newest reported date within a position.
const feedOrder = "display_order ASC, date DESC"

type ItemRepo interface {
	ListActive(dbc dbctx.Context, limit int) ([]*domain.IntelItem, error)
	ListAll(dbc dbctx.Context) ([]*domain.IntelItem, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.IntelItem, error)
	MaxDisplayOrder(dbc dbctx.Context) (int, error)

	Create(dbc dbctx.Context, row *domain.IntelItem) (*domain.IntelItem, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *itemRepo) ListActive(dbc dbctx.Context, limit int) ([]*domain.IntelItem, error) {
	var out []*domain.IntelItem
	q := r.handle(dbc).
		Where("is_active = ?", true).
		Order(feedOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) ListAll(dbc dbctx.Context) ([]*domain.IntelItem, error) {
	var out []*domain.IntelItem
	if err := r.handle(dbc).Order(feedOrder).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *itemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.IntelItem, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.IntelItem
	if err := r.handle(dbc).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *itemRepo) MaxDisplayOrder(dbc dbctx.Context) (int, error) {
	var maxOrder int
	err := r.handle(dbc).
		Model(&domain.IntelItem{}).
		Select("COALESCE(MAX(display_order), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	return maxOrder, nil
}

func (r *itemRepo) Create(dbc dbctx.Context, row *domain.IntelItem) (*domain.IntelItem, error) {
	if err := r.handle(dbc).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *itemRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	res := r.handle(dbc).
		Model(&domain.IntelItem{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *itemRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	return r.handle(dbc).Where("id = ?", id).Delete(&domain.IntelItem{}).Error
}
