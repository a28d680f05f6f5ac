// Package collection implements the whole-collection persistence contract:
// every entity type is one ordered JSON array stored under one key, and every
// mutation is a full read-modify-write cycle. That cycle is the layer's one
// real concurrency hazard (two in-flight mutations of the same collection can
// overwrite each other), so each Collection carries a write policy that
// decides whether mutations serialize.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/paperback/internal/kvstore"
)

// WritePolicy guards the read-modify-write cycle of a single collection.
type WritePolicy interface {
	Lock()
	Unlock()
}

// NoPolicy performs no locking, reproducing the original client's lost-update
// behavior: the last full snapshot written wins.
type NoPolicy struct{}

func (NoPolicy) Lock()   {}
func (NoPolicy) Unlock() {}

// MutexPolicy serializes mutations of one collection. This is the default
// wired by New.
type MutexPolicy struct {
	mu sync.Mutex
}

func (p *MutexPolicy) Lock()   { p.mu.Lock() }
func (p *MutexPolicy) Unlock() { p.mu.Unlock() }

// Collection binds an entity type to its store key.
type Collection[T any] struct {
	store  kvstore.Store
	name   string
	policy WritePolicy
}

// New returns a Collection with a per-collection mutex policy.
func New[T any](store kvstore.Store, name string) *Collection[T] {
	return NewWithPolicy[T](store, name, &MutexPolicy{})
}

func NewWithPolicy[T any](store kvstore.Store, name string, policy WritePolicy) *Collection[T] {
	return &Collection[T]{store: store, name: name, policy: policy}
}

func (c *Collection[T]) Name() string { return c.name }

// Load returns the full stored sequence. An absent key or an undecodable
// payload yields an empty slice, never an error; only a store failure
// propagates.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.Get(ctx, c.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, nil
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Save serializes the full sequence and replaces any prior value entirely.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.name, err)
	}
	return c.store.Set(ctx, c.name, string(raw))
}

// Update runs one read-modify-write cycle under the collection's write
// policy. The mutate callback receives the current sequence and returns the
// sequence to persist.
func (c *Collection[T]) Update(ctx context.Context, mutate func([]T) ([]T, error)) error {
	c.policy.Lock()
	defer c.policy.Unlock()

	items, err := c.Load(ctx)
	if err != nil {
		return err
	}
	next, err := mutate(items)
	if err != nil {
		return err
	}
	return c.Save(ctx, next)
}
