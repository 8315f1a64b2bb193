package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ukydev/fleet-manager/internal/models"
)

// MemoryStore keeps records in process memory. It is used for local
// development and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]models.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]models.Record)}
}

// Add stores a record and returns its id. A record without an "id" field gets a generated one.
func (m *MemoryStore) Add(collection string, record models.Record) (string, error) {
	if !ValidCollection(collection) {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	stored := make(models.Record, len(record)+1)
	for k, v := range record {
		stored[k] = v
	}
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored["id"] = id
	}

	m.mu.Lock()
	m.collections[collection] = append(m.collections[collection], stored)
	m.mu.Unlock()
	return id, nil
}

// ListAll returns every record in the collection.
func (m *MemoryStore) ListAll(ctx context.Context, collection string) ([]models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	records := m.collections[collection]
	out := make([]models.Record, len(records))
	copy(out, records)
	return out, nil
}

// Get returns a record by id.
func (m *MemoryStore) Get(ctx context.Context, collection, id string) (models.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidCollection(collection) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.collections[collection] {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}
