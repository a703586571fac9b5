package app

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/borno/internal/model"
)

// EnrichOptions tune a draft enrichment.
type EnrichOptions struct {
	// Hint overrides the language detected from the draft word.
	Hint model.Language
	// Overwrite replaces every non-word field the response provides,
	// including fields the user already edited.
	Overwrite bool
}

// EnrichOutcome reports what an enrichment did to the draft.
type EnrichOutcome struct {
	Word    string
	Applied []string
	// Skipped lists fields the response provided but the draft kept,
	// because they were already set or edited.
	Skipped []string
	// Stale is set when the draft changed before the response arrived and
	// the result was discarded.
	Stale bool
	Err   error
}

// Enrich asks the generator to fill the draft from its word. It returns at
// once; the channel receives exactly one outcome and is then closed. A
// result is applied only if the same draft is still open with the same word
// and no later enrichment was started.
func (c *Controller) Enrich(ctx context.Context, opts EnrichOptions) <-chan EnrichOutcome {
	out := make(chan EnrichOutcome, 1)

	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		out <- EnrichOutcome{Err: ErrNoDraft}
		close(out)
		return out
	}
	word := strings.TrimSpace(c.draft.entry.Word)
	hint := opts.Hint
	if !model.ValidLanguages[hint] {
		hint = c.draft.entry.Language
	}
	if !model.ValidLanguages[hint] {
		hint = model.DetectLanguage(word)
	}
	c.seq++
	seq := c.seq
	c.enriching = seq
	c.mu.Unlock()

	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		defer close(out)

		result, err := c.gen.Generate(ctx, word, hint)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.enriching == seq {
			c.enriching = 0
		}

		o := EnrichOutcome{Word: word}
		switch {
		case c.seq != seq || c.draft == nil || strings.TrimSpace(c.draft.entry.Word) != word:
			o.Stale = true
			c.log.Debug().Str("word", word).Msg("discarding stale enrichment")
		case err != nil:
			o.Err = err
		default:
			o.Applied, o.Skipped = c.draft.merge(result, opts.Overwrite)
		}
		out <- o
	}()
	return out
}

// merge copies generated fields into the draft. The word is never replaced.
// Without overwrite, only fields that are empty and untouched are filled.
func (d *draft) merge(src model.Entry, overwrite bool) (applied, skipped []string) {
	for _, name := range model.StringFields {
		if name == "word" {
			continue
		}
		v := strings.TrimSpace(*src.StringField(name))
		if v == "" {
			continue
		}
		dst := d.entry.StringField(name)
		if *dst == v {
			continue
		}
		if overwrite || (!d.touched[name] && *dst == "") {
			*dst = v
			applied = append(applied, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	for _, name := range model.ListFields {
		v := *src.ListField(name)
		if len(v) == 0 {
			continue
		}
		dst := d.entry.ListField(name)
		if slices.Equal(*dst, v) {
			continue
		}
		if overwrite || (!d.touched[name] && len(*dst) == 0) {
			*dst = slices.Clone(v)
			applied = append(applied, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	return applied, skipped
}
