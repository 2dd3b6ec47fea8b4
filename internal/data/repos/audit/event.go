package audit

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/platform/dbctx"
	"github.com/northquant/site-backend/internal/platform/logger"
)

type EventRepo interface {
	Append(dbc dbctx.Context, row *domain.AuditEvent) error
	ListByEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*domain.AuditEvent, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "AuditEventRepo")}
}

func (r *eventRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *eventRepo) Append(dbc dbctx.Context, row *domain.AuditEvent) error {
	return r.handle(dbc).Create(row).Error
}

func (r *eventRepo) ListByEntity(dbc dbctx.Context, entityID uuid.UUID) ([]*domain.AuditEvent, error) {
	var out []*domain.AuditEvent
	if entityID == uuid.Nil {
		return out, nil
	}
	if err := r.handle(dbc).
		Where("entity_id = ?", entityID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
