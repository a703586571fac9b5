// Package dictionary implements the entry store, history log and favorites
// set, each owning one persisted slot.
package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/store"
)

// ErrNotFound is returned for lookups of an id that does not exist.
var ErrNotFound = errors.New("entry not found")

// slot is a typed view over one named document in a store.Slots.
type slot[T any] struct {
	slots store.Slots
	name  string
	log   zerolog.Logger
}

// load decodes the slot. found is false when the slot was never written.
// A document that does not decode is logged and reported as not found, so
// the owner falls back to its empty or seeded state.
func (s slot[T]) load(ctx context.Context) (v T, found bool, err error) {
	doc, err := s.slots.Load(ctx, s.name)
	if errors.Is(err, store.ErrNoSlot) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(doc, &v); err != nil {
		var zero T
		cerr := &store.CorruptionError{Slot: s.name, Err: err}
		s.log.Warn().Err(cerr).Str("slot", s.name).Msg("discarding unreadable slot")
		return zero, false, nil
	}
	return v, true, nil
}

func (s slot[T]) save(ctx context.Context, v T) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	return s.slots.Save(ctx, s.name, doc)
}
