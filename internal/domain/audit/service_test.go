package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type memStore struct {
	events    []Event
	insertErr error
}

func (m *memStore) Insert(_ context.Context, evt Event) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.events = append(m.events, evt)
	return nil
}

func (m *memStore) matching(filter Filter) []Event {
	out := []Event{}
	for _, e := range m.events {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (m *memStore) Count(_ context.Context, filter Filter) (int, error) {
	return len(m.matching(filter)), nil
}

func (m *memStore) List(_ context.Context, filter Filter, _ bool, limit, offset int) ([]Event, error) {
	matched := m.matching(filter)
	if offset >= len(matched) {
		return []Event{}, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], nil
}

func (m *memStore) ListAll(context.Context) ([]Event, error) {
	return m.events, nil
}

func TestRecordStoresPayload(t *testing.T) {
	store := &memStore{}
	svc := New(store)
	fixed := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	svc.Record(context.Background(), ActionSaleCreate, "sale", "s1", "req-1", "10.0.0.1", map[string]string{"billNo": "S-1"})

	if len(store.events) != 1 {
		t.Fatalf("expected one event, got %d", len(store.events))
	}
	evt := store.events[0]
	if evt.ID == "" || evt.Action != ActionSaleCreate || evt.EntityID != "s1" || !evt.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected event %+v", evt)
	}
	var after map[string]string
	if err := json.Unmarshal(evt.After, &after); err != nil || after["billNo"] != "S-1" {
		t.Fatalf("expected payload to round trip, got %s (%v)", evt.After, err)
	}
}

func TestRecordSwallowsFailures(t *testing.T) {
	var nilSvc *Service
	nilSvc.Record(context.Background(), ActionSaleCreate, "sale", "s1", "", "", nil)

	svc := New(&memStore{insertErr: errors.New("db down")})
	svc.Record(context.Background(), ActionExpenseCreate, "expense", "e1", "", "", nil)
}

func TestEventsFiltersAndCounts(t *testing.T) {
	store := &memStore{}
	svc := New(store)
	ctx := context.Background()
	svc.Record(ctx, ActionSaleCreate, "sale", "s1", "", "", nil)
	svc.Record(ctx, ActionSaleCreate, "sale", "s2", "", "", nil)
	svc.Record(ctx, ActionEmployeeCreate, "employee", "e1", "", "", nil)

	events, total, err := svc.Events(ctx, Filter{EntityType: " sale "}, false, 1, 0)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if total != 2 || len(events) != 1 {
		t.Fatalf("expected 2 total and a page of 1, got %d and %d", total, len(events))
	}
}
