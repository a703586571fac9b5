// Package store provides durable named slots, each holding one JSON document.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Slot names owned by the dictionary stores.
const (
	SlotEntries   = "entries"
	SlotHistory   = "history"
	SlotFavorites = "favorites"
)

// ErrNoSlot is returned by Load when the slot has never been written.
var ErrNoSlot = errors.New("slot not found")

// Slots defines the slot storage interface.
type Slots interface {
	// Load returns the current document of the named slot, or ErrNoSlot.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the whole document of the named slot.
	Save(ctx context.Context, name string, doc []byte) error

	// Close closes the store.
	Close() error
}

// CorruptionError reports a slot whose document could not be decoded.
// Owners recover from it locally by treating the slot as empty.
type CorruptionError struct {
	Slot string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("slot %s is corrupt: %v", e.Slot, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }
