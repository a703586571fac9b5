package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUpgradeLegacyDocument(t *testing.T) {
	// Shape written by the first schema: no language, no antonyms, no linguistics.
	raw := `{"id":"1","word":"Serendipity","meaning":"chance","synonyms":["Fluke"],"examples":null,"origin":"Walpole"}`
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e = Upgrade(e)

	if e.Language != Bengali {
		t.Errorf("expected default language bn, got %q", e.Language)
	}
	if e.Antonyms == nil || e.Examples == nil {
		t.Error("expected non-nil array fields after upgrade")
	}
	if len(e.Synonyms) != 1 || e.Synonyms[0] != "Fluke" {
		t.Errorf("synonyms changed: %v", e.Synonyms)
	}
	if e.Origin != "Walpole" {
		t.Errorf("legacy origin lost: %q", e.Origin)
	}
}

func TestUpgradeUnknownLanguage(t *testing.T) {
	e := Upgrade(Entry{ID: "1", Word: "x", Language: "fr"})
	if e.Language != DefaultLanguage {
		t.Errorf("expected %q, got %q", DefaultLanguage, e.Language)
	}
	e = Upgrade(Entry{ID: "1", Word: "x", Language: English})
	if e.Language != English {
		t.Errorf("expected en preserved, got %q", e.Language)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Entry{Word: "Apple"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, w := range []string{"", "   ", "\t\n"} {
		err := Validate(Entry{Word: w})
		if err == nil {
			t.Errorf("Validate(%q) expected error", w)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Errors[0].Field != "word" {
			t.Errorf("expected field error on word, got %v", err)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		word string
		want Language
	}{
		{"Apple", English},
		{"আপেল", Bengali},
		{"সূর্যমুখী", Bengali},
		{"e-mail", English},
		{"", English},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.word); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	e := Entry{Word: "a", Synonyms: []string{"b"}}
	c := e.Clone()
	c.Synonyms[0] = "z"
	if e.Synonyms[0] != "b" {
		t.Error("clone shares synonyms backing array")
	}
}

func TestCloneKeepsEmptyListsNonNil(t *testing.T) {
	for _, e := range []Entry{
		{Word: "a", Antonyms: []string{}},
		{Word: "b"},
	} {
		c := e.Clone()
		if c.Synonyms == nil || c.Antonyms == nil || c.Examples == nil {
			t.Fatalf("clone of %q has nil list fields: %+v", e.Word, c)
		}
		b, err := json.Marshal(c)
		if err != nil {
			t.Fatal(err)
		}
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(b, &doc); err != nil {
			t.Fatal(err)
		}
		for _, k := range []string{"synonyms", "antonyms", "examples"} {
			if string(doc[k]) != "[]" {
				t.Errorf("%s of %q marshals to %s, want []", k, e.Word, doc[k])
			}
		}
	}
}

func TestFieldAccessors(t *testing.T) {
	var e Entry
	for _, name := range StringFields {
		p := e.StringField(name)
		if p == nil {
			t.Fatalf("no accessor for %s", name)
		}
		*p = name
	}
	if e.Word != "word" || e.SourceWord != "sourceWord" || e.Origin != "origin" {
		t.Errorf("accessors wired to wrong fields: %+v", e)
	}
	for _, name := range ListFields {
		p := e.ListField(name)
		if p == nil {
			t.Fatalf("no accessor for %s", name)
		}
		*p = []string{name}
	}
	if e.Antonyms[0] != "antonyms" {
		t.Errorf("antonyms accessor wrong: %v", e.Antonyms)
	}
	if e.StringField("id") != nil || e.ListField("word") != nil {
		t.Error("expected nil for non-editable names")
	}
}
