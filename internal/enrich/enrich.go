// Package enrich generates dictionary entries from a headword with an
// external text-generation service.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcliao/borno/internal/model"
)

// DefaultTimeout bounds a single generation call.
const DefaultTimeout = 15 * time.Second

// Generator produces a partial entry (no id, no language) for a word.
type Generator interface {
	Generate(ctx context.Context, word string, hint model.Language) (model.Entry, error)
}

// Request is what a Backend sends to its service.
type Request struct {
	Word        string
	Hint        model.Language
	Instruction string
}

// Backend performs one completion and returns the raw response text.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// Client implements Generator over a Backend. It makes a single attempt per
// call and validates the response against Schema.
type Client struct {
	backend Backend
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient returns a Client. A non-positive timeout means DefaultTimeout.
func NewClient(b Backend, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{backend: b, timeout: timeout, log: log}
}

// Generate requests an entry for word. Every failure is an *Error.
func (c *Client) Generate(ctx context.Context, word string, hint model.Language) (model.Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return model.Entry{}, &Error{Kind: KindValidation, Fields: []string{"word"}, Err: errors.New("empty word")}
	}
	if !model.ValidLanguages[hint] {
		hint = model.DetectLanguage(word)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.backend.Complete(ctx, Request{Word: word, Hint: hint, Instruction: Instruction(word, hint)})
	if err != nil {
		e := classify(ctx, word, err)
		c.log.Warn().Err(e).Str("backend", c.backend.Name()).Dur("took", time.Since(start)).Msg("enrichment failed")
		return model.Entry{}, e
	}

	entry, err := Parse(word, text)
	if err != nil {
		c.log.Warn().Err(err).Str("backend", c.backend.Name()).Msg("enrichment response rejected")
		return model.Entry{}, err
	}
	c.log.Info().Str("word", word).Str("backend", c.backend.Name()).Dur("took", time.Since(start)).Msg("entry generated")
	return entry, nil
}

func classify(ctx context.Context, word string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Word == "" {
			e.Word = word
		}
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Word: word, Err: err}
	}
	return &Error{Kind: KindNetwork, Word: word, Err: err}
}

// Parse validates a raw response and maps it onto an entry. Unknown fields
// are dropped; missing required fields or values of the wrong type fail. A
// required string that is blank counts as missing; a required list may be
// empty.
func Parse(word, text string) (model.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return model.Entry{}, &Error{Kind: KindEmpty, Word: word, Err: errors.New("no content in response")}
	}
	jsonStr, err := extractJSON(text)
	if err != nil {
		return model.Entry{}, &Error{Kind: KindParse, Word: word, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		return model.Entry{}, &Error{Kind: KindParse, Word: word, Err: err}
	}

	var missing, mistyped []string
	var e model.Entry
	for _, f := range Schema {
		raw, ok := doc[f.Name]
		if !ok || string(raw) == "null" {
			if f.Required {
				missing = append(missing, f.Name)
			}
			continue
		}
		switch f.Type {
		case String:
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				mistyped = append(mistyped, f.Name)
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" && f.Required {
				missing = append(missing, f.Name)
				continue
			}
			if p := e.StringField(f.Name); p != nil {
				*p = s
			}
		case StringList:
			var l []string
			if err := json.Unmarshal(raw, &l); err != nil {
				mistyped = append(mistyped, f.Name)
				continue
			}
			if p := e.ListField(f.Name); p != nil {
				*p = cleanList(l)
			}
		}
	}
	if len(mistyped) > 0 {
		return model.Entry{}, &Error{Kind: KindParse, Word: word, Fields: mistyped, Err: errors.New("unexpected field types")}
	}
	if len(missing) > 0 {
		return model.Entry{}, &Error{Kind: KindValidation, Word: word, Fields: missing, Err: errors.New("missing required fields")}
	}

	if e.Synonyms == nil {
		e.Synonyms = []string{}
	}
	if e.Antonyms == nil {
		e.Antonyms = []string{}
	}
	if e.Examples == nil {
		e.Examples = []string{}
	}
	return e, nil
}

// extractJSON finds the outermost JSON object in a string, skipping any
// surrounding prose or code fences.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Disabled is the Generator used when no provider is configured.
type Disabled struct{}

func (Disabled) Generate(_ context.Context, word string, _ model.Language) (model.Entry, error) {
	return model.Entry{}, &Error{Kind: KindUnavailable, Word: word, Err: errors.New("no enrichment provider configured")}
}
