package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/pkg/metrics"
)

// SpeciesStore resolves species names against the generated species table.
// Loaded once, read-only thereafter.
type SpeciesStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	byName map[string]*model.SpeciesMeta
	names  []string
}

// NewSpeciesStore creates a store backed by the species table at path.
func NewSpeciesStore(path string) *SpeciesStore {
	return &SpeciesStore{path: path}
}

// Load reads the table. It is idempotent and safe to call concurrently; it
// is a no-op after the first successful call.
func (s *SpeciesStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadTable, err)
	}
	var table map[string]*model.SpeciesMeta
	if err := json.Unmarshal(raw, &table); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadTable, err)
	}

	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	s.byName = table
	s.names = names
	s.loaded = true
	metrics.UpdateSpeciesLoaded(len(table))
	return nil
}

// Get returns the metadata for a species name.
func (s *SpeciesStore) Get(name string) (*model.SpeciesMeta, bool) {
	meta, ok := s.byName[name]
	return meta, ok
}

// Names returns all known species names in sorted order.
func (s *SpeciesStore) Names() []string {
	return s.names
}

// Len returns the number of loaded species.
func (s *SpeciesStore) Len() int {
	return len(s.byName)
}
