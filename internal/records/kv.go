package records

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// KV defines the key-value persistence contract the record store runs on.
type KV interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

// Store persists evaluation records through a KV backend.
type Store struct {
	kv KV
}

// NewStore constructs a Store on top of the given KV backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Save writes the record under its key, overwriting any previous value.
func (s *Store) Save(ctx context.Context, rec EvaluationRecord) error {
	raw, err := Encode(rec)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, Key(rec.ID), raw)
}

// Get returns the record stored for the given identifier.
func (s *Store) Get(ctx context.Context, id string) (EvaluationRecord, error) {
	raw, err := s.kv.Get(ctx, Key(id))
	if err != nil {
		return EvaluationRecord{}, err
	}
	return Decode(raw)
}
