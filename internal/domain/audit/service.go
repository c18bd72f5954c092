package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrobooks/internal/platform/timeutil"
)

// Service keeps an append-only trail of record creations. A nil *Service
// records nothing.
type Service struct {
	store StoreAPI
	now   func() time.Time
}

func New(store StoreAPI) *Service {
	return &Service{store: store, now: timeutil.Now}
}

// Record stores one event. Failures are logged, never returned: the change
// being audited has already been committed.
func (s *Service) Record(ctx context.Context, action, entityType, entityID, requestID, ip string, after any) {
	if s == nil {
		return
	}
	evt := Event{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestID,
		IP:         ip,
		CreatedAt:  s.now(),
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			slog.Warn("audit payload encode failed", "action", action, "err", err)
		} else {
			evt.After = payload
		}
	}
	if err := s.store.Insert(context.WithoutCancel(ctx), evt); err != nil {
		slog.Warn("audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}

func (s *Service) Events(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, int, error) {
	filter.Action = strings.TrimSpace(filter.Action)
	filter.EntityType = strings.TrimSpace(filter.EntityType)
	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	events, err := s.store.List(ctx, filter, includeDetails, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (s *Service) Export(ctx context.Context) ([]Event, error) {
	return s.store.ListAll(ctx)
}
