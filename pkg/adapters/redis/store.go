// Package redis provides a Redis-backed RecipeStore, for sharing
// fitted recipes between the process that fits them and the processes
// that serve applies.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
)

// Store implements ports.RecipeStore on Redis. Fitted recipes are
// stored as JSON values; IDs are tracked in a companion set so List
// does not need KEYS.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the store.
type Option func(*Store)

// WithTTL sets an expiration on stored recipes. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix (default "espalier:recipe:").
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: "espalier:recipe:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(id string) string { return s.prefix + id }
func (s *Store) indexKey() string     { return s.prefix + "index" }

// Save persists the fitted recipe under id.
func (s *Store) Save(ctx context.Context, id string, fitted *recipe.Fitted) error {
	payload, err := json.Marshal(fitted)
	if err != nil {
		return fmt.Errorf("marshal fitted recipe: %w", err)
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(id), payload, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save to redis: %w", err)
	}
	return nil
}

// Load retrieves the fitted recipe stored under id.
func (s *Store) Load(ctx context.Context, id string) (*recipe.Fitted, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("load from redis: %w", err)
	}
	var fitted recipe.Fitted
	if err := json.Unmarshal([]byte(val), &fitted); err != nil {
		return nil, fmt.Errorf("unmarshal fitted recipe: %w", err)
	}
	return &fitted, nil
}

// Delete removes the fitted recipe stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete from redis: %w", err)
	}
	if n == 0 {
		return domain.ErrRecipeNotFound
	}
	if err := s.client.SRem(ctx, s.indexKey(), id).Err(); err != nil {
		return fmt.Errorf("update index: %w", err)
	}
	return nil
}

// List returns the stored recipe IDs. Expired entries are pruned from
// the index as they are discovered.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list from redis: %w", err)
	}
	live := ids[:0]
	for _, id := range ids {
		n, err := s.client.Exists(ctx, s.key(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("list from redis: %w", err)
		}
		if n == 0 {
			s.client.SRem(ctx, s.indexKey(), id)
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// Close releases the underlying client.
func (s *Store) Close() error { return s.client.Close() }
