package repository

import (
	"context"
	"sync"
)

// MemorySlot keeps the slot in process memory. Used for tests and BOOKMARK_BACKEND=memory.
type MemorySlot struct {
	name    string
	mu      sync.RWMutex
	payload []byte
}

func NewMemorySlot(name string) *MemorySlot {
	return &MemorySlot{name: name}
}

func (s *MemorySlot) Name() string { return s.name }

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, nil
	}
	out := make([]byte, len(s.payload))
	copy(out, s.payload)
	return out, nil
}

func (s *MemorySlot) Update(_ context.Context, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if s.payload != nil {
		current = append([]byte(nil), s.payload...)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	s.payload = append([]byte{}, next...)
	return nil
}
