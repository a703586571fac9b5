package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/enrich"
	"github.com/rcliao/borno/internal/model"
	"github.com/rcliao/borno/internal/store"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, word string, _ model.Language) (model.Entry, error) {
	return model.Entry{
		Word:         word,
		Translation:  "বিস্ময়",
		PartOfSpeech: "noun",
		Meaning:      "generated meaning",
		Description:  "d",
		Synonyms:     []string{"awe"},
		Examples:     []string{"e"},
	}, nil
}

func newTestController(t *testing.T, gen enrich.Generator) *app.Controller {
	t.Helper()
	slots := store.NewMemoryStore()
	log := zerolog.Nop()
	c, err := app.New(context.Background(), app.Deps{
		Entries:   dictionary.NewEntryStore(slots, log),
		History:   dictionary.NewHistoryLog(slots, 10, log),
		Favorites: dictionary.NewFavoritesSet(slots, log),
		Generator: gen,
		Log:       log,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func runScript(t *testing.T, c *app.Controller, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, NewShell(c, in, &out).Run(context.Background()))
	return out.String()
}

func TestShellBrowse(t *testing.T) {
	c := newTestController(t, nil)

	out := runScript(t, c,
		"sun",
		":open 1",
		":fav",
		":favs",
		":history",
	)

	assert.Contains(t, out, " 1. সূর্যমুখী  Sunflower")
	assert.Contains(t, out, "সূর্যমুখী [bn]")
	assert.Contains(t, out, "★ সূর্যমুখী")
	assert.Equal(t, app.ViewDetails, c.State().View)

	favs, err := c.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "2", favs[0].ID)
}

func TestShellEditAndEnrich(t *testing.T) {
	c := newTestController(t, stubGenerator{})

	out := runScript(t, c,
		":new Wonder",
		":set meaning typed by hand",
		":list examples one | two",
		":enrich",
	)
	assert.Contains(t, out, `enriching "Wonder"...`)
	assert.Contains(t, out, `enriched "Wonder": applied`)
	assert.Contains(t, out, "kept meaning, examples")

	d, ok := c.Draft()
	require.True(t, ok)
	assert.Equal(t, "typed by hand", d.Meaning)
	assert.Equal(t, "বিস্ময়", d.Translation)
	assert.Equal(t, []string{"one", "two"}, d.Examples)

	out = runScript(t, c, ":save")
	assert.Contains(t, out, "saved Wonder")
	_, ok = c.Draft()
	assert.False(t, ok)
}

func TestShellErrors(t *testing.T) {
	c := newTestController(t, nil)

	out := runScript(t, c,
		":bogus",
		":listen",
		":save",
		":new x",
		":set word  ",
		":save",
		":enrich",
		":quit",
		":favs",
	)
	assert.Contains(t, out, "error: unknown command :bogus")
	assert.Contains(t, out, "info: speech input is not available")
	assert.Contains(t, out, "error: no draft open")
	assert.Contains(t, out, "error: validation: word must be non-empty")
	assert.Contains(t, out, "enrichment failed")
	assert.NotContains(t, out, "(no entries)", ":quit stops reading")

	_, ok := c.Draft()
	assert.True(t, ok, "failed save keeps the draft")
}

func TestResolveEntry(t *testing.T) {
	all := []model.Entry{{ID: "1", Word: "Serendipity"}, {ID: "2", Word: "সূর্যমুখী"}}

	e, err := resolveEntry(all, "2")
	require.NoError(t, err)
	assert.Equal(t, "সূর্যমুখী", e.Word)

	e, err = resolveEntry(all, "serendipity")
	require.NoError(t, err)
	assert.Equal(t, "1", e.ID)

	_, err = resolveEntry(all, "nothing")
	assert.ErrorIs(t, err, dictionary.ErrNotFound)
}

func TestParseAssignments(t *testing.T) {
	m, err := parseAssignments([]string{"meaning=a=b", " origin =x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"meaning": "a=b", "origin": "x"}, m)

	_, err = parseAssignments([]string{"novalue"})
	assert.Error(t, err)
}
