// Package app coordinates the dictionary views and wires user actions to the
// entry, history and favorites stores.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/enrich"
	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/speech"
)

// View is one screen of the application.
type View string

const (
	ViewHome      View = "home"
	ViewSearch    View = "search"
	ViewDetails   View = "details"
	ViewAdminList View = "admin-list"
	ViewAdminEdit View = "admin-edit"
)

// ErrNoDraft is returned by draft operations when no edit session is open.
var ErrNoDraft = errors.New("no draft open")

// Deps are the collaborators of a Controller. Generator, Recognizer and
// Speaker may be nil; they then report themselves unavailable.
type Deps struct {
	Entries    *dictionary.EntryStore
	History    *dictionary.HistoryLog
	Favorites  *dictionary.FavoritesSet
	Generator  enrich.Generator
	Recognizer speech.Recognizer
	Speaker    speech.Speaker
	// InputLang is the recognition language tag, e.g. bn-BD.
	InputLang string
	Log       zerolog.Logger
}

// State is a snapshot of what the current view shows.
type State struct {
	View         View
	Query        string
	Results      []model.Entry
	Current      *model.Entry
	AdminFilter  string
	AdminEntries []model.Entry
	Draft        *model.Entry
	Enriching    bool
}

// Controller holds the view state. Every method runs under one mutex, so
// calls behave as if issued from a single event loop.
type Controller struct {
	mu sync.Mutex

	entries   *dictionary.EntryStore
	history   *dictionary.HistoryLog
	favorites *dictionary.FavoritesSet
	gen       enrich.Generator
	rec       speech.Recognizer
	spk       speech.Speaker
	inputLang string
	log       zerolog.Logger

	view        View
	query       string
	results     []model.Entry
	current     *model.Entry
	adminFilter string
	adminList   []model.Entry
	draft       *draft

	// seq advances whenever the draft is replaced or a new enrichment
	// starts; an enrichment result applies only if seq is unchanged.
	seq       uint64
	enriching uint64

	bg sync.WaitGroup
}

// New builds a Controller on the home view and migrates favorites saved by
// word to entry ids.
func New(ctx context.Context, d Deps) (*Controller, error) {
	if d.Entries == nil || d.History == nil || d.Favorites == nil {
		return nil, errors.New("app: entries, history and favorites are required")
	}
	c := &Controller{
		entries:   d.Entries,
		history:   d.History,
		favorites: d.Favorites,
		gen:       d.Generator,
		rec:       d.Recognizer,
		spk:       d.Speaker,
		inputLang: d.InputLang,
		log:       d.Log,
		view:      ViewHome,
	}
	if c.gen == nil {
		c.gen = enrich.Disabled{}
	}
	if c.rec == nil {
		c.rec = speech.Unavailable{}
	}
	if c.spk == nil {
		c.spk = speech.Unavailable{}
	}
	if c.inputLang == "" {
		c.inputLang = speech.SpeechLang(string(model.Bengali))
	}
	if err := c.rekeyFavorites(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) rekeyFavorites(ctx context.Context) error {
	all, err := c.entries.List(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	ids := make(map[string]bool, len(all))
	byWord := make(map[string]string, len(all))
	for _, e := range all {
		ids[e.ID] = true
		if _, ok := byWord[e.Word]; !ok {
			byWord[e.Word] = e.ID
		}
	}
	return c.favorites.Rekey(ctx, func(key string) (string, bool) {
		if ids[key] {
			return key, false
		}
		id, ok := byWord[key]
		return id, ok
	})
}

// Close waits for background speech and enrichment work to finish.
func (c *Controller) Close() {
	c.bg.Wait()
}

// State returns a snapshot of the current view.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		View:         c.view,
		Query:        c.query,
		Results:      cloneEntries(c.results),
		AdminFilter:  c.adminFilter,
		AdminEntries: cloneEntries(c.adminList),
		Enriching:    c.enriching != 0 && c.enriching == c.seq,
	}
	if c.current != nil {
		cur := c.current.Clone()
		s.Current = &cur
	}
	if c.draft != nil {
		d := c.draft.entry.Clone()
		s.Draft = &d
	}
	return s
}

// Entries returns every entry in display order without changing the view.
func (c *Controller) Entries(ctx context.Context) ([]model.Entry, error) {
	return c.entries.List(ctx)
}

// SetQuery updates the search text. A non-blank query shows matching entries
// on the search view; clearing it from the search view returns home.
func (c *Controller) SetQuery(ctx context.Context, q string) ([]model.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setQuery(ctx, q)
}

func (c *Controller) setQuery(ctx context.Context, q string) ([]model.Entry, error) {
	c.query = q
	if strings.TrimSpace(q) == "" {
		c.results = nil
		if c.view == ViewSearch {
			c.view = ViewHome
		}
		return nil, nil
	}
	results, err := c.entries.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	c.results = results
	c.current = nil
	c.view = ViewSearch
	c.log.Debug().Str("query", q).Int("results", len(results)).Msg("search")
	return cloneEntries(results), nil
}

// Select opens the details view for id. The history record is persisted
// before the view changes.
func (c *Controller) Select(ctx context.Context, id string) (model.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entries.Get(ctx, id)
	if err != nil {
		return model.Entry{}, err
	}
	if err := c.history.Record(ctx, e); err != nil {
		return model.Entry{}, fmt.Errorf("record history: %w", err)
	}
	c.current = &e
	c.view = ViewDetails
	return e.Clone(), nil
}

// Back leaves the details view for home and clears the query.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewDetails {
		return
	}
	c.view = ViewHome
	c.current = nil
	c.query = ""
	c.results = nil
}

// ApplyTopic runs the search preset of a study-corner topic.
func (c *Controller) ApplyTopic(ctx context.Context, id string) ([]model.Entry, error) {
	t, ok := TopicByID(id)
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", id)
	}
	return c.SetQuery(ctx, t.Query)
}

// Listen captures one utterance and uses it as the query. An
// *speech.UnavailableError is returned unchanged.
func (c *Controller) Listen(ctx context.Context) (string, []model.Entry, error) {
	text, err := c.rec.Listen(ctx, c.inputLang)
	if err != nil {
		return "", nil, err
	}
	results, err := c.SetQuery(ctx, text)
	return text, results, err
}

// Speak reads text aloud in the background. Failures are only logged.
func (c *Controller) Speak(text string, lang model.Language) {
	if strings.TrimSpace(text) == "" {
		return
	}
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		if err := c.spk.Speak(context.Background(), text, speech.SpeechLang(string(lang))); err != nil {
			var ue *speech.UnavailableError
			if errors.As(err, &ue) {
				c.log.Info().Err(err).Msg("speech output unavailable")
				return
			}
			c.log.Warn().Err(err).Msg("speak failed")
		}
	}()
}

// ToggleFavorite flips the favorite state of entry id and returns the new
// state. Only existing entries can be added.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fav, err := c.favorites.IsFavorite(ctx, id)
	if err != nil {
		return false, err
	}
	if !fav {
		if _, err := c.entries.Get(ctx, id); err != nil {
			return false, err
		}
	}
	return c.favorites.Toggle(ctx, id)
}

// IsFavorite reports whether entry id is a favorite.
func (c *Controller) IsFavorite(ctx context.Context, id string) (bool, error) {
	return c.favorites.IsFavorite(ctx, id)
}

// Favorites returns the favorited entries, newest first. Keys that no
// longer resolve are skipped.
func (c *Controller) Favorites(ctx context.Context) ([]model.Entry, error) {
	keys, err := c.favorites.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Entry, 0, len(keys))
	for _, k := range keys {
		e, err := c.entries.Get(ctx, k)
		if errors.Is(err, dictionary.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// HistoryItem is a history record resolved to its current entry.
type HistoryItem struct {
	Record dictionary.Record
	Entry  model.Entry
}

// History returns recently viewed entries as they are now. Records whose
// entry was deleted are dropped from the log.
func (c *Controller) History(ctx context.Context) ([]HistoryItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.history.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := c.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Entry, len(all))
	byWord := make(map[string]model.Entry, len(all))
	for _, e := range all {
		byID[e.ID] = e
		if _, ok := byWord[e.Word]; !ok {
			byWord[e.Word] = e
		}
	}
	resolve := func(r dictionary.Record) (model.Entry, bool) {
		if r.ID != "" {
			e, ok := byID[r.ID]
			return e, ok
		}
		e, ok := byWord[r.Word]
		return e, ok
	}

	items := make([]HistoryItem, 0, len(records))
	stale := false
	for _, r := range records {
		e, ok := resolve(r)
		if !ok {
			stale = true
			continue
		}
		items = append(items, HistoryItem{Record: r, Entry: e})
	}
	if stale {
		err := c.history.Prune(ctx, func(r dictionary.Record) bool {
			_, ok := resolve(r)
			return ok
		})
		if err != nil {
			c.log.Warn().Err(err).Msg("prune history")
		}
	}
	return items, nil
}

// ClearHistory empties the history log.
func (c *Controller) ClearHistory(ctx context.Context) error {
	return c.history.Clear(ctx)
}

func cloneEntries(in []model.Entry) []model.Entry {
	if in == nil {
		return nil
	}
	out := make([]model.Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
