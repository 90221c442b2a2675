package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/locvowork/hr_dashboard/internal/logger"
)

// BookmarkStore keeps the durable set of bookmarked employee snapshots.
// Every effective mutation rewrites the whole slot in one Slot.Update and then publishes on the notifier.
type BookmarkStore struct {
	slot     domain.Slot
	notifier *Notifier
}

var errUnchanged = errors.New("bookmarks unchanged")

// NewBookmarkStore creates a store over slot. notifier may be nil.
func NewBookmarkStore(slot domain.Slot, notifier *Notifier) *BookmarkStore {
	return &BookmarkStore{slot: slot, notifier: notifier}
}

// GetAll returns the bookmarked snapshots in insertion order.
// An absent, unreadable or corrupt slot reads as an empty set.
func (s *BookmarkStore) GetAll(ctx context.Context) []domain.Employee {
	data, err := s.slot.Read(ctx)
	if err != nil {
		s.readFailed(ctx, err)
		return []domain.Employee{}
	}
	return s.decode(ctx, data)
}

// Contains reports whether id is bookmarked.
func (s *BookmarkStore) Contains(ctx context.Context, id int) bool {
	return indexOf(s.GetAll(ctx), id) >= 0
}

// IDs returns the set of bookmarked ids.
func (s *BookmarkStore) IDs(ctx context.Context) map[int]bool {
	all := s.GetAll(ctx)
	ids := make(map[int]bool, len(all))
	for _, e := range all {
		ids[e.ID] = true
	}
	return ids
}

// Add stores a snapshot of e. It reports false without writing when e.ID is already present.
func (s *BookmarkStore) Add(ctx context.Context, e domain.Employee) (bool, error) {
	changed, err := s.mutate(ctx, func(current []domain.Employee) ([]domain.Employee, bool) {
		if indexOf(current, e.ID) >= 0 {
			return nil, false
		}
		return append(current, e), true
	})
	if changed {
		bookmarkMutations.WithLabelValues("add").Inc()
		logger.InfoLog(ctx, "bookmark added: employee %d", e.ID)
		s.publish(ctx)
	}
	return changed, err
}

// Remove deletes the snapshot with id. It reports false without writing when id is absent.
func (s *BookmarkStore) Remove(ctx context.Context, id int) (bool, error) {
	changed, err := s.mutate(ctx, func(current []domain.Employee) ([]domain.Employee, bool) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, false
		}
		return append(current[:i:i], current[i+1:]...), true
	})
	if changed {
		bookmarkMutations.WithLabelValues("remove").Inc()
		logger.InfoLog(ctx, "bookmark removed: employee %d", id)
		s.publish(ctx)
	}
	return changed, err
}

// Toggle adds e when absent and removes it otherwise, in a single slot update.
// It reports whether e is bookmarked afterwards and whether the slot was written.
func (s *BookmarkStore) Toggle(ctx context.Context, e domain.Employee) (bookmarked, changed bool, err error) {
	changed, err = s.mutate(ctx, func(current []domain.Employee) ([]domain.Employee, bool) {
		if i := indexOf(current, e.ID); i >= 0 {
			bookmarked = false
			return append(current[:i:i], current[i+1:]...), true
		}
		bookmarked = true
		return append(current, e), true
	})
	if err != nil || !changed {
		return false, false, err
	}

	action := "remove"
	if bookmarked {
		action = "add"
	}
	bookmarkMutations.WithLabelValues(action).Inc()
	logger.InfoLog(ctx, "bookmark toggled: employee %d bookmarked=%t", e.ID, bookmarked)
	s.publish(ctx)
	return bookmarked, true, nil
}

// mutate applies change to the stored set inside one slot update. change reports false to leave
// the slot untouched. It may run more than once when the backend retries the update.
func (s *BookmarkStore) mutate(ctx context.Context, change func([]domain.Employee) ([]domain.Employee, bool)) (bool, error) {
	err := s.slot.Update(ctx, func(current []byte) ([]byte, error) {
		next, ok := change(s.decode(ctx, current))
		if !ok {
			return nil, errUnchanged
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode bookmarks: %w", err)
		}
		return payload, nil
	})
	if errors.Is(err, errUnchanged) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("write bookmarks: %w", err)
	}
	return true, nil
}

// decode parses a slot payload. A corrupt payload is logged and reads as empty.
func (s *BookmarkStore) decode(ctx context.Context, data []byte) []domain.Employee {
	if len(data) == 0 {
		return []domain.Employee{}
	}

	var records []domain.Employee
	if err := json.Unmarshal(data, &records); err != nil {
		s.readFailed(ctx, fmt.Errorf("decode payload: %w", err))
		return []domain.Employee{}
	}

	// Keep the first snapshot when a hand-edited slot repeats an id.
	seen := make(map[int]struct{}, len(records))
	out := make([]domain.Employee, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func indexOf(records []domain.Employee, id int) int {
	for i, e := range records {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *BookmarkStore) readFailed(ctx context.Context, err error) {
	bookmarkReadFailures.Inc()
	logger.WarnLog(ctx, "%v", &domain.StorageReadError{Slot: s.slot.Name(), Err: err})
}

func (s *BookmarkStore) publish(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.Publish(ctx)
	}
}
