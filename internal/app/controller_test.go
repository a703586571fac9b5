package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/enrich"
	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/speech"
	"github.com/rcliao/borno/internal/store"
)

type fakeGenerator struct {
	mu      sync.Mutex
	entry   model.Entry
	err     error
	release chan struct{}
	words   []string
}

func (g *fakeGenerator) Generate(ctx context.Context, word string, _ model.Language) (model.Entry, error) {
	g.mu.Lock()
	g.words = append(g.words, word)
	release := g.release
	g.mu.Unlock()
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return model.Entry{}, ctx.Err()
		}
	}
	e := g.entry.Clone()
	e.Word = word
	return e, g.err
}

type fakeRecognizer struct {
	text string
	lang string
}

func (r *fakeRecognizer) Listen(_ context.Context, lang string) (string, error) {
	r.lang = lang
	return r.text, nil
}

type fakeSpeaker struct {
	mu    sync.Mutex
	said  []string
	langs []string
}

func (s *fakeSpeaker) Speak(_ context.Context, text, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.said = append(s.said, text)
	s.langs = append(s.langs, lang)
	return nil
}

type testEnv struct {
	c     *Controller
	slots *store.MemoryStore
	deps  Deps
}

func newTestEnv(t *testing.T, gen enrich.Generator) testEnv {
	t.Helper()
	slots := store.NewMemoryStore()
	return newTestEnvWith(t, slots, gen)
}

func newTestEnvWith(t *testing.T, slots *store.MemoryStore, gen enrich.Generator) testEnv {
	t.Helper()
	log := zerolog.Nop()
	d := Deps{
		Entries:   dictionary.NewEntryStore(slots, log),
		History:   dictionary.NewHistoryLog(slots, 3, log),
		Favorites: dictionary.NewFavoritesSet(slots, log),
		Generator: gen,
		Log:       log,
	}
	c, err := New(context.Background(), d)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return testEnv{c: c, slots: slots, deps: d}
}

func wait(t *testing.T, ch <-chan EnrichOutcome) EnrichOutcome {
	t.Helper()
	select {
	case o, ok := <-ch:
		require.True(t, ok, "channel closed without an outcome")
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("enrichment did not finish")
		return EnrichOutcome{}
	}
}

func TestNewRequiresStores(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	assert.Error(t, err)
}

func TestSearchAndClear(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	results, err := env.c.SetQuery(ctx, "sun")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "সূর্যমুখী", results[0].Word)
	assert.Equal(t, ViewSearch, env.c.State().View)

	results, err = env.c.SetQuery(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, ViewHome, env.c.State().View)
}

func TestSelectRecordsHistoryFirst(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	e, err := env.c.Select(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Serendipity", e.Word)

	st := env.c.State()
	assert.Equal(t, ViewDetails, st.View)
	require.NotNil(t, st.Current)
	assert.Equal(t, "1", st.Current.ID)

	records, err := env.deps.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
}

func TestSelectUnknown(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.c.Select(context.Background(), "nope")
	assert.ErrorIs(t, err, dictionary.ErrNotFound)
	assert.Equal(t, ViewHome, env.c.State().View)
}

func TestBackClearsQuery(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := env.c.SetQuery(ctx, "ser")
	require.NoError(t, err)
	_, err = env.c.Select(ctx, "1")
	require.NoError(t, err)

	env.c.Back()
	st := env.c.State()
	assert.Equal(t, ViewHome, st.View)
	assert.Empty(t, st.Query)
	assert.Nil(t, st.Current)
}

func TestHistoryResolvesAndPrunes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := env.c.Select(ctx, "1")
	require.NoError(t, err)
	_, err = env.c.Select(ctx, "2")
	require.NoError(t, err)

	// An edit is visible through history.
	_, err = env.c.EditDraft(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, env.c.SetField("meaning", "edited"))
	_, err = env.c.SaveDraft(ctx)
	require.NoError(t, err)

	items, err := env.c.History(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].Entry.ID)
	assert.Equal(t, "edited", items[1].Entry.Meaning)

	require.NoError(t, env.c.DeleteEntry(ctx, "2"))
	items, err = env.c.History(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].Entry.ID)

	records, err := env.deps.History.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1, "deleted entry pruned from the log")

	require.NoError(t, env.c.ClearHistory(ctx))
	items, err = env.c.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleFavorite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	on, err := env.c.ToggleFavorite(ctx, "2")
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := env.c.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "সূর্যমুখী", favs[0].Word)

	on, err = env.c.ToggleFavorite(ctx, "2")
	require.NoError(t, err)
	assert.False(t, on)
	is, err := env.c.IsFavorite(ctx, "2")
	require.NoError(t, err)
	assert.False(t, is)

	_, err = env.c.ToggleFavorite(ctx, "missing")
	assert.ErrorIs(t, err, dictionary.ErrNotFound)
}

func TestFavoritesRekeyedFromWords(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemoryStore()
	require.NoError(t, slots.Save(ctx, store.SlotFavorites, []byte(`["সূর্যমুখী","gone","1"]`)))

	env := newTestEnvWith(t, slots, nil)
	keys, err := env.deps.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "gone", "1"}, keys)

	favs, err := env.c.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, "2", favs[0].ID)
}

func TestApplyTopic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	_, err := env.c.ApplyTopic(ctx, "grammar")
	require.NoError(t, err)
	st := env.c.State()
	assert.Equal(t, "সমাস", st.Query)
	assert.Equal(t, ViewSearch, st.View)

	_, err = env.c.ApplyTopic(ctx, "cooking")
	assert.Error(t, err)
	assert.Len(t, Topics(), 4)
}

func TestListenSetsQuery(t *testing.T) {
	ctx := context.Background()
	slots := store.NewMemoryStore()
	log := zerolog.Nop()
	rec := &fakeRecognizer{text: "sunflower"}
	c, err := New(ctx, Deps{
		Entries:    dictionary.NewEntryStore(slots, log),
		History:    dictionary.NewHistoryLog(slots, 0, log),
		Favorites:  dictionary.NewFavoritesSet(slots, log),
		Recognizer: rec,
		Log:        log,
	})
	require.NoError(t, err)

	text, results, err := c.Listen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sunflower", text)
	require.Len(t, results, 1)
	assert.Equal(t, "bn-BD", rec.lang)
	assert.Equal(t, "sunflower", c.State().Query)
}

func TestListenUnavailable(t *testing.T) {
	env := newTestEnv(t, nil)
	_, _, err := env.c.Listen(context.Background())
	var ue *speech.UnavailableError
	assert.ErrorAs(t, err, &ue)
	assert.ErrorIs(t, err, speech.ErrUnavailable)
	assert.Equal(t, ViewHome, env.c.State().View)
}

func TestSpeak(t *testing.T) {
	slots := store.NewMemoryStore()
	log := zerolog.Nop()
	spk := &fakeSpeaker{}
	c, err := New(context.Background(), Deps{
		Entries:   dictionary.NewEntryStore(slots, log),
		History:   dictionary.NewHistoryLog(slots, 0, log),
		Favorites: dictionary.NewFavoritesSet(slots, log),
		Speaker:   spk,
		Log:       log,
	})
	require.NoError(t, err)

	c.Speak("Serendipity", model.English)
	c.Speak("   ", model.English)
	c.Close()

	assert.Equal(t, []string{"Serendipity"}, spk.said)
	assert.Equal(t, []string{"en-US"}, spk.langs)
}

func TestSpeakUnavailableDoesNotFail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.c.Speak("hello", model.English)
	env.c.Close()
}

func TestStateIsACopy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	_, err := env.c.SetQuery(ctx, "ser")
	require.NoError(t, err)

	st := env.c.State()
	require.NotEmpty(t, st.Results)
	st.Results[0].Synonyms[0] = "mutated"

	again := env.c.State()
	assert.NotEqual(t, "mutated", again.Results[0].Synonyms[0])
}

func TestErrorsFromStoresAreReturned(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	_ = env.c.NewDraft("")
	_, err := env.c.SaveDraft(ctx)
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestReturnedEntriesRenderEmptyLists(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	e, err := env.c.Select(ctx, "2")
	require.NoError(t, err)
	results, err := env.c.SetQuery(ctx, "sun")
	require.NoError(t, err)
	require.Len(t, results, 1)

	for _, got := range []model.Entry{e, results[0], env.c.State().Results[0]} {
		b, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"antonyms":[]`)
		assert.NotContains(t, string(b), "null")
	}
}
