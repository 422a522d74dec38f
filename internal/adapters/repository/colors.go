// Package repository provides the read-only lookup stores loaded from the
// generated tables at process start.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/pkg/metrics"
)

// ColorLookup resolves color IDs against the generated color table. The
// table is loaded once and is read-only for the rest of the process
// lifetime.
type ColorLookup struct {
	path     string
	fallback model.ColorDefinition

	mu     sync.Mutex
	loaded bool
	byID   map[int]model.ColorDefinition
}

// ColorOption applies a configuration option to the ColorLookup.
type ColorOption func(*ColorLookup)

// WithFallbackColor overrides the entry returned for unknown IDs.
func WithFallbackColor(c model.ColorDefinition) ColorOption {
	return func(l *ColorLookup) {
		l.fallback = c
	}
}

// NewColorLookup creates a lookup backed by the color table at path.
func NewColorLookup(path string, opts ...ColorOption) *ColorLookup {
	l := &ColorLookup{
		path: path,
		// Neutral white; resolving an unknown ID must still yield a
		// displayable color.
		fallback: model.ColorDefinition{Name: "unknown", RGBA: [4]float64{1, 1, 1, 1}},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the table. It is idempotent and safe to call concurrently; it
// is a no-op after the first successful call.
func (l *ColorLookup) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadTable, err)
	}
	var table []model.ColorDefinition
	if err := json.Unmarshal(raw, &table); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadTable, err)
	}

	byID := make(map[int]model.ColorDefinition, len(table))
	for _, c := range table {
		byID[c.ID] = c
	}
	l.byID = byID
	l.loaded = true
	metrics.UpdateColorsLoaded(len(byID))
	return nil
}

// Resolve returns the definition for id, or the fallback for unknown IDs.
func (l *ColorLookup) Resolve(id int) model.ColorDefinition {
	if c, ok := l.byID[id]; ok {
		return c
	}
	return l.fallback
}

// Len returns the number of loaded color entries.
func (l *ColorLookup) Len() int {
	return len(l.byID)
}
