package dictionary

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/store"
)

// FavoritesSet owns an ordered set of favorited keys, newest first.
type FavoritesSet struct {
	mu   sync.Mutex
	slot slot[[]string]
}

// NewFavoritesSet returns a FavoritesSet persisting to the favorites slot.
func NewFavoritesSet(slots store.Slots, log zerolog.Logger) *FavoritesSet {
	return &FavoritesSet{slot: slot[[]string]{slots: slots, name: store.SlotFavorites, log: log}}
}

func (f *FavoritesSet) load(ctx context.Context) ([]string, error) {
	keys, _, err := f.slot.load(ctx)
	if err != nil {
		return nil, err
	}
	// Older documents may hold repeated keys.
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *FavoritesSet) save(ctx context.Context, keys []string) error {
	if err := f.slot.save(ctx, keys); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}

// Toggle adds key at the front if absent, or removes it if present, and
// returns the new membership.
func (f *FavoritesSet) Toggle(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys, err := f.load(ctx)
	if err != nil {
		return false, err
	}
	member := false
	if i := slices.Index(keys, key); i >= 0 {
		keys = slices.Delete(keys, i, i+1)
	} else {
		keys = append([]string{key}, keys...)
		member = true
	}
	if err := f.save(ctx, keys); err != nil {
		return false, err
	}
	return member, nil
}

// IsFavorite reports whether key is in the set.
func (f *FavoritesSet) IsFavorite(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys, err := f.load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(keys, key), nil
}

// List returns the keys, most recently added first.
func (f *FavoritesSet) List(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// Rekey rewrites keys through fn, keeping the order. A key for which fn
// reports false is kept as is; keys that collapse onto one are deduplicated.
func (f *FavoritesSet) Rekey(ctx context.Context, fn func(string) (string, bool)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys, err := f.load(ctx)
	if err != nil {
		return err
	}
	changed := false
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if nk, ok := fn(k); ok && nk != k {
			k = nk
			changed = true
		}
		if slices.Contains(out, k) {
			changed = true
			continue
		}
		out = append(out, k)
	}
	if !changed {
		return nil
	}
	return f.save(ctx, out)
}
