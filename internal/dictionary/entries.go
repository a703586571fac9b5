package dictionary

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/store"
)

// EntryStore owns the canonical collection of dictionary entries.
type EntryStore struct {
	mu       sync.Mutex
	slot     slot[[]model.Entry]
	collator *collate.Collator
	entropy  *rand.Rand
}

// NewEntryStore returns an EntryStore persisting to the entries slot.
func NewEntryStore(slots store.Slots, log zerolog.Logger) *EntryStore {
	return &EntryStore{
		slot: slot[[]model.Entry]{slots: slots, name: store.SlotEntries, log: log},
		// One Bengali collation for both scripts; Latin headwords still sort
		// alphabetically among themselves.
		collator: collate.New(language.Bengali, collate.IgnoreCase, collate.IgnoreDiacritics),
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewID returns a fresh entry id.
func (s *EntryStore) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newID()
}

func (s *EntryStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// load returns the persisted entries, writing the seed set first if the slot
// is empty or unreadable. Callers hold s.mu.
func (s *EntryStore) load(ctx context.Context) ([]model.Entry, error) {
	entries, found, err := s.slot.load(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		entries = seedCopy()
		for i := range entries {
			entries[i] = model.Upgrade(entries[i])
		}
		if err := s.slot.save(ctx, entries); err != nil {
			return nil, fmt.Errorf("seed entries: %w", err)
		}
		return entries, nil
	}
	for i := range entries {
		entries[i] = model.Upgrade(entries[i])
	}
	return entries, nil
}

func (s *EntryStore) sorted(entries []model.Entry) []model.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.Entry) int {
		if c := s.collator.CompareString(a.Word, b.Word); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// List returns all entries sorted by headword.
func (s *EntryStore) List(ctx context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.sorted(entries), nil
}

// Get returns the entry with the given id.
func (s *EntryStore) Get(ctx context.Context, id string) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save replaces the entry with the same id, or appends it. An entry without
// an id is assigned one. The returned entry is what was persisted.
func (s *EntryStore) Save(ctx context.Context, e model.Entry) (model.Entry, error) {
	if err := model.Validate(e); err != nil {
		return model.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return model.Entry{}, err
	}

	e = s.prepare(e)
	entries = upsert(entries, e)

	if err := s.slot.save(ctx, entries); err != nil {
		return model.Entry{}, fmt.Errorf("save entry: %w", err)
	}
	return e, nil
}

// Delete removes the entry with the given id. Deleting an absent id is a no-op.
func (s *EntryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(entries), func(e model.Entry) bool { return e.ID == id })
	if len(kept) == len(entries) {
		return nil
	}
	if err := s.slot.save(ctx, kept); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// prepare normalizes an entry for persistence. Callers hold s.mu.
func (s *EntryStore) prepare(e model.Entry) model.Entry {
	e = e.Clone()
	e.Word = strings.TrimSpace(e.Word)
	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.Language == "" {
		e.Language = model.DetectLanguage(e.Word)
	}
	return model.Upgrade(e)
}

func upsert(entries []model.Entry, e model.Entry) []model.Entry {
	if i := slices.IndexFunc(entries, func(x model.Entry) bool { return x.ID == e.ID }); i >= 0 {
		entries[i] = e
		return entries
	}
	return append(entries, e)
}

// Import stores entries from an export, replacing any with matching ids.
// Every entry is validated first and all of them are written in one save,
// so a rejected import persists nothing.
func (s *EntryStore) Import(ctx context.Context, in []model.Entry) (int, error) {
	for i, e := range in {
		if err := model.Validate(e); err != nil {
			return 0, fmt.Errorf("import entry %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range in {
		entries = upsert(entries, s.prepare(e))
	}
	if err := s.slot.save(ctx, entries); err != nil {
		return 0, fmt.Errorf("import entries: %w", err)
	}
	return len(in), nil
}

func fold(s string) string {
	return cases.Fold().String(s)
}
