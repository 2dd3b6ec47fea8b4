package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/northquant/site-backend/internal/data/repos"
	"github.com/northquant/site-backend/internal/domain"
	"github.com/northquant/site-backend/internal/platform/ctxutil"
	"github.com/northquant/site-backend/internal/platform/dbctx"
	"github.com/northquant/site-backend/internal/platform/logger"
)

// PublicListLimit caps the public feed. The admin listing has no limit.
const PublicListLimit = 100

const (
	publicCacheKey = "intel:public"
	publicCacheTTL = 30 * time.Second
)

// CreateItemInput carries the admin create payload. DisplayOrder and IsActive
// are optional; nil means "use the default".
type CreateItemInput struct {
	Title        string `json:"title"`
	Impact       string `json:"impact"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Explanation  string `json:"explanation"`
	DisplayOrder *int   `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateItemInput is a sparse update: nil fields are left untouched.
type UpdateItemInput struct {
	Title        *string `json:"title"`
	Impact       *string `json:"impact"`
	Date         *string `json:"date"`
	Description  *string `json:"description"`
	Explanation  *string `json:"explanation"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type IntelService interface {
	ListPublic(ctx context.Context) ([]*domain.IntelItem, error)
	ListAll(ctx context.Context) ([]*domain.IntelItem, error)
	Create(ctx context.Context, in CreateItemInput) (*domain.IntelItem, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*domain.IntelItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type intelService struct {
	db    *gorm.DB
	log   *logger.Logger
	items repos.ItemRepo
	audit repos.AuditEventRepo
	cache *goredis.Client
	group singleflight.Group
}

// NewIntelService builds the feed service. cache may be nil, in which case
// every public read goes straight to the store.
func NewIntelService(
	db *gorm.DB,
	log *logger.Logger,
	items repos.ItemRepo,
	audit repos.AuditEventRepo,
	cache *goredis.Client,
) IntelService {
	return &intelService{
		db:    db,
		log:   log.With("service", "IntelService"),
		items: items,
		audit: audit,
		cache: cache,
	}
}

func (s *intelService) ListPublic(ctx context.Context) ([]*domain.IntelItem, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, publicCacheKey).Bytes(); err == nil {
			var items []*domain.IntelItem
			if json.Unmarshal(raw, &items) == nil {
				return items, nil
			}
		}
	}

	v, err, _ := s.group.Do(publicCacheKey, func() (interface{}, error) {
		items, err := s.items.ListActive(dbctx.Context{Ctx: ctx}, PublicListLimit)
		if err != nil {
			return nil, storeError(err)
		}
		if s.cache != nil {
			if raw, mErr := json.Marshal(items); mErr == nil {
				if cErr := s.cache.Set(ctx, publicCacheKey, raw, publicCacheTTL).Err(); cErr != nil {
					s.log.Debug("public cache set failed", "error", cErr)
				}
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.IntelItem), nil
}

func (s *intelService) ListAll(ctx context.Context) ([]*domain.IntelItem, error) {
	items, err := s.items.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (s *intelService) Create(ctx context.Context, in CreateItemInput) (*domain.IntelItem, error) {
	if in.Title == "" || in.Impact == "" || in.Date == "" || in.Description == "" || in.Explanation == "" {
		return nil, &ValidationError{Msg: "Missing required fields: title, impact, date, description, explanation"}
	}
	if !domain.ValidImpact(in.Impact) {
		return nil, &ValidationError{Msg: "Invalid impact value. Must be High, Medium, or Low"}
	}

	dbc := dbctx.Context{Ctx: ctx}

	// Append-to-end default. Read-max-then-insert is deliberately not
	// transactional; concurrent creates may share an order value and the
	// feed's secondary date sort resolves the tie.
	displayOrder := 0
	if in.DisplayOrder != nil {
		displayOrder = *in.DisplayOrder
	} else {
		maxOrder, err := s.items.MaxDisplayOrder(dbc)
		if err != nil {
			return nil, storeError(err)
		}
		displayOrder = maxOrder + 1
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	row := &domain.IntelItem{
		Title:        in.Title,
		Impact:       in.Impact,
		Date:         in.Date,
		Description:  in.Description,
		Explanation:  in.Explanation,
		DisplayOrder: displayOrder,
		IsActive:     isActive,
	}
	created, err := s.items.Create(dbc, row)
	if err != nil {
		return nil, storeError(err)
	}

	s.recordAudit(ctx, "intel.create", created.ID, map[string]any{"title": created.Title})
	s.invalidatePublicCache(ctx)
	return created, nil
}

func (s *intelService) Update(ctx context.Context, id uuid.UUID, in UpdateItemInput) (*domain.IntelItem, error) {
	if in.Impact != nil && !domain.ValidImpact(*in.Impact) {
		return nil, &ValidationError{Msg: "Invalid impact value. Must be High, Medium, or Low"}
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Impact != nil {
		updates["impact"] = *in.Impact
	}
	if in.Date != nil {
		updates["date"] = *in.Date
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Explanation != nil {
		updates["explanation"] = *in.Explanation
	}
	if in.DisplayOrder != nil {
		updates["display_order"] = *in.DisplayOrder
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return nil, &ValidationError{Msg: "No fields to update"}
	}

	dbc := dbctx.Context{Ctx: ctx}

	// Update-then-verify: the not-found case is detected from the write
	// touching zero rows, not from a pre-check.
	rows, err := s.items.UpdateFields(dbc, id, updates)
	if err != nil {
		return nil, storeError(err)
	}
	if rows == 0 {
		return nil, ErrItemNotFound
	}
	updated, err := s.items.GetByID(dbc, id)
	if err != nil {
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, ErrItemNotFound
	}

	s.recordAudit(ctx, "intel.update", id, map[string]any{"fields": fieldNames(updates)})
	s.invalidatePublicCache(ctx)
	return updated, nil
}

func (s *intelService) Delete(ctx context.Context, id uuid.UUID) error {
	// No existence check: deleting an absent id reports success.
	if err := s.items.DeleteByID(dbctx.Context{Ctx: ctx}, id); err != nil {
		return storeError(err)
	}
	s.recordAudit(ctx, "intel.delete", id, nil)
	s.invalidatePublicCache(ctx)
	return nil
}

func (s *intelService) recordAudit(ctx context.Context, action string, entityID uuid.UUID, payload map[string]any) {
	if s.audit == nil {
		return
	}
	ev := &domain.AuditEvent{
		Action:   action,
		EntityID: entityID,
	}
	if rd := ctxutil.GetRequestData(ctx); rd != nil {
		ev.ActorID = rd.UserID
	}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			ev.Payload = datatypes.JSON(raw)
		}
	}
	if err := s.audit.Append(dbctx.Context{Ctx: ctx}, ev); err != nil {
		s.log.Warn("audit append failed", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *intelService) invalidatePublicCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, publicCacheKey).Err(); err != nil {
		s.log.Debug("public cache invalidate failed", "error", err)
	}
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for k := range updates {
		names = append(names, k)
	}
	return names
}
