package catalog

import (
	"context"
	"sync"

	"tourcost/core/types"
)

// MemoryStore is an in-memory Reader backed by a table slice. It is
// the snapshot form of the catalog: loaders fill it once, resolutions
// read it concurrently.
type MemoryStore struct {
	mu     sync.RWMutex
	tables []*types.RateTable
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Add appends rate tables to the store
func (s *MemoryStore) Add(tables ...*types.RateTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, tables...)
}

// Len returns the number of stored tables
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Lookup implements Reader
func (s *MemoryStore) Lookup(_ context.Context, q Query) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []Row
	for _, t := range s.tables {
		if !matches(t, q) {
			continue
		}
		for _, d := range t.Details {
			rows = append(rows, Row{Detail: d, Table: t})
		}
	}
	sortRows(rows)
	return rows, nil
}
