package kv

import (
	"context"
	"encoding/json"
	"errors"
)

// Slot provides type-safe access to a single key of a KV store.
type Slot[T any] struct {
	store KV
	key   string
}

// NewSlot binds a typed slot to key.
func NewSlot[T any](store KV, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Key returns the underlying key.
func (s *Slot[T]) Key() string { return s.key }

// Load reads the slot. found is false when the key is absent; any other
// failure (including undecodable content) is returned as err.
func (s *Slot[T]) Load(ctx context.Context) (v T, found bool, err error) {
	if err := s.store.Get(ctx, s.key, &v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return v, false, nil
		}
		return v, false, err
	}
	return v, true, nil
}

// Raw reads the slot's undecoded JSON. Callers that must tell missing data
// apart from malformed data decode it themselves.
func (s *Slot[T]) Raw(ctx context.Context) (json.RawMessage, bool, error) {
	entry, err := s.store.GetRaw(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value, true, nil
}

// Save overwrites the slot with value.
func (s *Slot[T]) Save(ctx context.Context, value T) error {
	return s.store.Set(ctx, s.key, value)
}

// Clear removes the slot.
func (s *Slot[T]) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}
