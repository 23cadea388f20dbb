// Package memory provides an in-memory RecipeStore.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
)

// Store implements ports.RecipeStore in memory.
// Safe for concurrent use. Fitted recipes are stored serialized, so
// callers can never alias the stored snapshot.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save persists the fitted recipe under id.
func (s *Store) Save(ctx context.Context, id string, fitted *recipe.Fitted) error {
	payload, err := json.Marshal(fitted)
	if err != nil {
		return fmt.Errorf("marshal fitted recipe: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = payload
	return nil
}

// Load retrieves the fitted recipe stored under id.
func (s *Store) Load(ctx context.Context, id string) (*recipe.Fitted, error) {
	s.mu.RLock()
	payload, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	var fitted recipe.Fitted
	if err := json.Unmarshal(payload, &fitted); err != nil {
		return nil, fmt.Errorf("unmarshal fitted recipe: %w", err)
	}
	return &fitted, nil
}

// Delete removes the fitted recipe stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(s.data, id)
	return nil
}

// List returns the stored recipe IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
