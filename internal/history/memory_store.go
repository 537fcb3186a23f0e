package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, mainly for tests.
type MemoryStore struct {
	slotStore
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreFrom(nil)
}

// NewMemoryStoreFrom seeds the slot with raw content, which need not be valid JSON.
func NewMemoryStoreFrom(raw []byte) *MemoryStore {
	return &MemoryStore{slotStore{slot: &memorySlot{raw: raw}}}
}

type memorySlot struct {
	mu  sync.Mutex
	raw []byte
}

func (m *memorySlot) load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.raw...), nil
}

func (m *memorySlot) modify(_ context.Context, fn func([]byte) ([]byte, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(m.raw)
	if err != nil {
		return err
	}
	m.raw = next
	return nil
}
