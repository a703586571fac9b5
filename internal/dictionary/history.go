package dictionary

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/store"
)

// DefaultHistoryMax is the number of records kept when no limit is configured.
const DefaultHistoryMax = 10

// Record is one history item. Records written by this package always carry
// ID; records carried over from older documents may only have Word.
type Record struct {
	ID        string    `json:"id,omitempty"`
	Word      string    `json:"word"`
	Timestamp time.Time `json:"timestamp"`
}

// legacyRecord decodes every history shape seen on disk: the current
// {id, word, timestamp} form, {word, timestamp} with epoch milliseconds, and
// full entry snapshots (id and word, no timestamp).
type legacyRecord struct {
	ID        string `json:"id"`
	Word      string `json:"word"`
	Timestamp any    `json:"timestamp"`
}

func (r legacyRecord) upgrade() Record {
	rec := Record{ID: r.ID, Word: r.Word}
	switch ts := r.Timestamp.(type) {
	case float64:
		rec.Timestamp = time.UnixMilli(int64(ts)).UTC()
	case string:
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = t
		}
	}
	return rec
}

func (r Record) sameEntry(o Record) bool {
	if r.ID != "" && o.ID != "" {
		return r.ID == o.ID
	}
	return r.Word == o.Word
}

// HistoryLog owns the bounded, most-recent-first list of viewed entries.
type HistoryLog struct {
	mu   sync.Mutex
	slot slot[[]legacyRecord]
	max  int
	now  func() time.Time
}

// NewHistoryLog returns a HistoryLog keeping at most max records.
func NewHistoryLog(slots store.Slots, max int, log zerolog.Logger) *HistoryLog {
	if max <= 0 {
		max = DefaultHistoryMax
	}
	return &HistoryLog{
		slot: slot[[]legacyRecord]{slots: slots, name: store.SlotHistory, log: log},
		max:  max,
		now:  time.Now,
	}
}

// Max returns the configured bound.
func (h *HistoryLog) Max() int { return h.max }

func (h *HistoryLog) load(ctx context.Context) ([]Record, error) {
	raw, _, err := h.slot.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" && r.Word == "" {
			continue
		}
		out = append(out, r.upgrade())
	}
	return out, nil
}

func (h *HistoryLog) save(ctx context.Context, records []Record) error {
	raw := make([]legacyRecord, len(records))
	for i, r := range records {
		raw[i] = legacyRecord{ID: r.ID, Word: r.Word, Timestamp: r.Timestamp.UTC().Format(time.RFC3339Nano)}
	}
	if err := h.slot.save(ctx, raw); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Record moves e to the front of the log, adding it if absent, and drops
// records beyond the bound.
func (h *HistoryLog) Record(ctx context.Context, e model.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load(ctx)
	if err != nil {
		return err
	}
	rec := Record{ID: e.ID, Word: e.Word, Timestamp: h.now().UTC()}
	records = slices.DeleteFunc(records, rec.sameEntry)
	records = append([]Record{rec}, records...)
	if len(records) > h.max {
		records = records[:h.max]
	}
	return h.save(ctx, records)
}

// List returns the records, most recent first.
func (h *HistoryLog) List(ctx context.Context) ([]Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	records, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > h.max {
		records = records[:h.max]
	}
	return records, nil
}

// Prune drops every record for which keep returns false.
func (h *HistoryLog) Prune(ctx context.Context, keep func(Record) bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	records, err := h.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(slices.Clone(records), func(r Record) bool { return !keep(r) })
	if len(kept) == len(records) {
		return nil
	}
	return h.save(ctx, kept)
}

// Clear empties the log.
func (h *HistoryLog) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.save(ctx, []Record{})
}
