package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/borno/internal/model"
)

const fullResponse = `{
  "word": "Serendipity",
  "translation": "আকস্মিক সৌভাগ্য",
  "phonetic": "/ˌser.ənˈdɪp.ə.ti/",
  "partOfSpeech": "noun (বিশেষ্য)",
  "meaning": "Luck in finding good things by chance.",
  "description": "হঠাৎ কোনো ভালো কিছু খুঁজে পাওয়া।",
  "synonyms": [" fluke ", "", "chance"],
  "examples": ["It was pure serendipity. (এটা নিছক সৌভাগ্য ছিল।)"],
  "confidence": 0.9
}`

type fakeBackend struct {
	text  string
	err   error
	delay time.Duration
	got   Request
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(ctx context.Context, req Request) (string, error) {
	f.got = req
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *enrich.Error, got %T: %v", err, err)
	return e.Kind
}

func TestParse(t *testing.T) {
	e, err := Parse("Serendipity", fullResponse)
	require.NoError(t, err)

	assert.Equal(t, "Serendipity", e.Word)
	assert.Equal(t, "আকস্মিক সৌভাগ্য", e.Translation)
	assert.Equal(t, []string{"fluke", "chance"}, e.Synonyms)
	assert.NotNil(t, e.Antonyms)
	assert.Empty(t, e.Antonyms)
	assert.Empty(t, e.ID)
	assert.Empty(t, e.Language)
}

func TestParseSkipsProseAndFences(t *testing.T) {
	text := "Here you go:\n```json\n" + fullResponse + "\n```\n"
	e, err := Parse("Serendipity", text)
	require.NoError(t, err)
	assert.Equal(t, "noun (বিশেষ্য)", e.PartOfSpeech)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		kind   Kind
		fields []string
	}{
		{"empty", "   ", KindEmpty, nil},
		{"no object", "sorry, I cannot help", KindParse, nil},
		{"bad json", "{word: }", KindParse, nil},
		{"missing required", `{"word":"x","translation":"y","partOfSpeech":"n","meaning":"m","description":"d","synonyms":[]}`, KindValidation, []string{"examples"}},
		{"blank required string", `{"word":"x","translation":"y","partOfSpeech":"n","meaning":"  ","description":"d","synonyms":[],"examples":[]}`, KindValidation, []string{"meaning"}},
		{"wrong type", `{"word":"x","translation":"y","partOfSpeech":"n","meaning":"m","description":"d","synonyms":"a, b","examples":[]}`, KindParse, []string{"synonyms"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x", tt.text)
			require.Error(t, err)
			assert.Equal(t, tt.kind, kindOf(t, err))
			if tt.fields != nil {
				var e *Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, tt.fields, e.Fields)
			}
		})
	}
}

func TestParseAcceptsEmptyRequiredList(t *testing.T) {
	e, err := Parse("x", `{"word":"x","translation":"y","partOfSpeech":"n","meaning":"m","description":"d","synonyms":[],"examples":[]}`)
	require.NoError(t, err)
	assert.NotNil(t, e.Synonyms)
	assert.Empty(t, e.Synonyms)
}

func TestClientGenerate(t *testing.T) {
	b := &fakeBackend{text: fullResponse}
	c := NewClient(b, time.Second, zerolog.Nop())

	e, err := c.Generate(context.Background(), "  Serendipity ", "")
	require.NoError(t, err)
	assert.Equal(t, "Serendipity", e.Word)
	assert.Equal(t, "Serendipity", b.got.Word)
	assert.Equal(t, model.English, b.got.Hint)
	assert.Contains(t, b.got.Instruction, `"Serendipity"`)
}

func TestClientHintFromScript(t *testing.T) {
	b := &fakeBackend{text: fullResponse}
	c := NewClient(b, time.Second, zerolog.Nop())

	_, err := c.Generate(context.Background(), "সূর্যমুখী", "xx")
	require.NoError(t, err)
	assert.Equal(t, model.Bengali, b.got.Hint)
}

func TestClientEmptyWord(t *testing.T) {
	b := &fakeBackend{text: fullResponse}
	c := NewClient(b, time.Second, zerolog.Nop())

	_, err := c.Generate(context.Background(), "  ", model.English)
	assert.Equal(t, KindValidation, kindOf(t, err))
	assert.Empty(t, b.got.Word, "backend must not be called")
}

func TestClientTimeout(t *testing.T) {
	b := &fakeBackend{text: fullResponse, delay: time.Second}
	c := NewClient(b, 20*time.Millisecond, zerolog.Nop())

	_, err := c.Generate(context.Background(), "slow", model.English)
	assert.Equal(t, KindTimeout, kindOf(t, err))
}

func TestClientNetworkError(t *testing.T) {
	b := &fakeBackend{err: errors.New("connection refused")}
	c := NewClient(b, time.Second, zerolog.Nop())

	_, err := c.Generate(context.Background(), "word", model.English)
	assert.Equal(t, KindNetwork, kindOf(t, err))
	assert.ErrorContains(t, err, "connection refused")
}

func TestClientPassesBackendKind(t *testing.T) {
	b := &fakeBackend{err: &Error{Kind: KindEmpty, Err: errors.New("blocked")}}
	c := NewClient(b, time.Second, zerolog.Nop())

	_, err := c.Generate(context.Background(), "word", model.English)
	assert.Equal(t, KindEmpty, kindOf(t, err))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "word", e.Word)
}

func TestClientEmptyResponse(t *testing.T) {
	c := NewClient(&fakeBackend{text: ""}, time.Second, zerolog.Nop())
	_, err := c.Generate(context.Background(), "word", model.English)
	assert.Equal(t, KindEmpty, kindOf(t, err))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "word", model.English)
	assert.Equal(t, KindUnavailable, kindOf(t, err))
}

func TestRequiredFields(t *testing.T) {
	assert.Equal(t,
		[]string{"word", "translation", "partOfSpeech", "meaning", "description", "synonyms", "examples"},
		RequiredFields())
}

func TestSchemaFieldsExistOnEntry(t *testing.T) {
	var e model.Entry
	for _, f := range Schema {
		switch f.Type {
		case String:
			assert.NotNil(t, e.StringField(f.Name), f.Name)
		case StringList:
			assert.NotNil(t, e.ListField(f.Name), f.Name)
		}
	}
}
