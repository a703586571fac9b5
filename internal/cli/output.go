package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/borno/internal/app"
	"github.com/rcliao/borno/internal/dictionary"
	"github.com/rcliao/borno/internal/model"
)

// render prints v as indented JSON, or through text when --format=text.
func render(w io.Writer, v any, text func(io.Writer)) {
	if formatFlag == "text" && text != nil {
		text(w)
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func writeEntryLines(w io.Writer, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no entries)")
		return
	}
	for _, e := range entries {
		writeEntryLine(w, e)
	}
}

func writeEntryLine(w io.Writer, e model.Entry) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Word, e.Translation)
}

func writeEntry(w io.Writer, e model.Entry) {
	fmt.Fprintf(w, "%s [%s]\n", e.Word, e.Language)
	field := func(label, v string) {
		if v != "" {
			fmt.Fprintf(w, "  %-14s %s\n", label+":", v)
		}
	}
	list := func(label string, v []string) {
		if len(v) > 0 {
			fmt.Fprintf(w, "  %-14s %s\n", label+":", strings.Join(v, ", "))
		}
	}
	field("id", e.ID)
	field("translation", e.Translation)
	field("phonetic", e.Phonetic)
	field("pronunciation", e.PronunciationBn)
	field("part of speech", e.PartOfSpeech)
	field("meaning", e.Meaning)
	field("description", e.Description)
	field("etymology", e.Etymology)
	field("sandhi", e.Sandhi)
	field("samas", e.Samas)
	field("source", e.Source)
	field("source word", e.SourceWord)
	list("synonyms", e.Synonyms)
	list("antonyms", e.Antonyms)
	for i, ex := range e.Examples {
		if i == 0 {
			fmt.Fprintf(w, "  %-14s %s\n", "examples:", ex)
			continue
		}
		fmt.Fprintf(w, "  %-14s %s\n", "", ex)
	}
	field("origin", e.Origin)
}

type historyView struct {
	ID        string `json:"id"`
	Word      string `json:"word"`
	Timestamp string `json:"timestamp,omitempty"`
}

func historyViews(items []app.HistoryItem) []historyView {
	out := make([]historyView, 0, len(items))
	for _, it := range items {
		v := historyView{ID: it.Entry.ID, Word: it.Entry.Word}
		if !it.Record.Timestamp.IsZero() {
			v.Timestamp = it.Record.Timestamp.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, v)
	}
	return out
}

func writeOutcome(w io.Writer, o app.EnrichOutcome) {
	switch {
	case o.Err != nil:
		fmt.Fprintf(w, "enrichment failed: %v (draft kept)\n", o.Err)
	case o.Stale:
		fmt.Fprintf(w, "enrichment for %q discarded: draft changed\n", o.Word)
	default:
		fmt.Fprintf(w, "enriched %q: applied %s", o.Word, joinOrNone(o.Applied))
		if len(o.Skipped) > 0 {
			fmt.Fprintf(w, "; kept %s", strings.Join(o.Skipped, ", "))
		}
		fmt.Fprintln(w)
	}
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "nothing"
	}
	return strings.Join(s, ", ")
}

// resolveEntry finds an entry by id, then by exact word, then by
// case-insensitive word.
func resolveEntry(all []model.Entry, key string) (model.Entry, error) {
	for _, e := range all {
		if e.ID == key {
			return e, nil
		}
	}
	for _, e := range all {
		if e.Word == key {
			return e, nil
		}
	}
	for _, e := range all {
		if strings.EqualFold(e.Word, key) {
			return e, nil
		}
	}
	return model.Entry{}, fmt.Errorf("%w: %s", dictionary.ErrNotFound, key)
}

// parseAssignments turns field=value pairs into a map; list values are
// split on "|".
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.New("expected field=value, got " + p)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

func splitList(v string) []string {
	return strings.Split(v, "|")
}
