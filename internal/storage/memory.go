package storage

import (
	"context"
	"sort"
	"sync"
)

type InMemoryStorage struct {
	mu     sync.RWMutex
	tables map[string]map[string]Record
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		tables: make(map[string]map[string]Record),
	}
}

// Scan returns copies of every record in table ordered by id.
func (s *InMemoryStorage) Scan(ctx context.Context, table string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		records = append(records, r.Clone())
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID() < records[j].ID() })
	return records, nil
}

func (s *InMemoryStorage) Get(ctx context.Context, table, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.tables[table][id]
	if !exists {
		return nil, ErrNotFound
	}
	return r.Clone(), nil
}

func (s *InMemoryStorage) Put(ctx context.Context, table string, record Record) error {
	id := record.ID()
	if id == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[string]Record)
	}
	s.tables[table][id] = record.Clone()
	return nil
}

func (s *InMemoryStorage) Update(ctx context.Context, table string, u *UpdateInstruction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.tables[table][u.ID]
	if !exists {
		return ErrNotFound
	}
	for _, a := range u.Set {
		r[a.Field] = a.Value
	}
	return nil
}

func (s *InMemoryStorage) Delete(ctx context.Context, table, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, exists := s.tables[table][id]
	if !exists {
		return nil, ErrNotFound
	}
	delete(s.tables[table], id)
	return r, nil
}
