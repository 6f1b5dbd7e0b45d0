package db

import (
	"context"
	"sync"

	"go-landwatch/types"
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu        sync.RWMutex
	events    map[string]types.PolicyEvent
	locations map[string]types.Coordinate
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		events:    make(map[string]types.PolicyEvent),
		locations: make(map[string]types.Coordinate),
	}
}

func (m *MemoryStore) GetEvent(_ context.Context, documentNumber string) (types.PolicyEvent, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[HashString(documentNumber)]
	return e, ok, nil
}

func (m *MemoryStore) SaveEvent(_ context.Context, event types.PolicyEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[HashString(event.DocumentNumber)] = event
	return nil
}

func (m *MemoryStore) GetLocation(_ context.Context, name string) (types.Coordinate, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.locations[locationKey(name)]
	if ok {
		c.Label = name
	}
	return c, ok, nil
}

func (m *MemoryStore) SaveLocation(_ context.Context, name string, coord types.Coordinate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	coord.Label = ""
	m.locations[locationKey(name)] = coord
	return nil
}
