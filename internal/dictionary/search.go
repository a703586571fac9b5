package dictionary

import (
	"context"
	"strings"

	"github.com/rcliao/borno/internal/model"
)

// Search returns entries whose word, translation, meaning or source contain
// the query, compared case-insensitively. An empty or blank query returns
// every entry. Results keep the List order.
func (s *EntryStore) Search(ctx context.Context, query string) ([]model.Entry, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := fold(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	results := []model.Entry{}
	for _, e := range all {
		if matches(e, q) {
			results = append(results, e)
		}
	}
	return results, nil
}

func matches(e model.Entry, folded string) bool {
	for _, field := range []string{e.Word, e.Translation, e.Meaning, e.Source} {
		if field != "" && strings.Contains(fold(field), folded) {
			return true
		}
	}
	return false
}

// FilterByWord returns the entries whose headword contains term.
func FilterByWord(entries []model.Entry, term string) []model.Entry {
	t := fold(strings.TrimSpace(term))
	if t == "" {
		return entries
	}
	out := []model.Entry{}
	for _, e := range entries {
		if strings.Contains(fold(e.Word), t) {
			out = append(out, e)
		}
	}
	return out
}
