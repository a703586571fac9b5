// Package model defines the dictionary data types.
package model

import (
	"slices"
	"strings"
	"unicode"
)

// Language tags an entry's primary language.
type Language string

const (
	Bengali Language = "bn"
	English Language = "en"
)

// DefaultLanguage applies to entries persisted before the language tag existed.
const DefaultLanguage = Bengali

// ValidLanguages are the allowed language tags.
var ValidLanguages = map[Language]bool{
	Bengali: true,
	English: true,
}

// Entry is one dictionary headword with its linguistic metadata.
type Entry struct {
	ID              string   `json:"id"`
	Word            string   `json:"word"`
	Translation     string   `json:"translation,omitempty"`
	Phonetic        string   `json:"phonetic,omitempty"`
	PronunciationBn string   `json:"pronunciationBn,omitempty"`
	PartOfSpeech    string   `json:"partOfSpeech,omitempty"`
	Meaning         string   `json:"meaning"`
	Description     string   `json:"description,omitempty"`
	Etymology       string   `json:"etymology,omitempty"`
	Sandhi          string   `json:"sandhi,omitempty"`
	Samas           string   `json:"samas,omitempty"`
	Source          string   `json:"source,omitempty"`
	SourceWord      string   `json:"sourceWord,omitempty"`
	Synonyms        []string `json:"synonyms"`
	Antonyms        []string `json:"antonyms"`
	Examples        []string `json:"examples"`
	Origin          string   `json:"origin,omitempty"`
	Language        Language `json:"language,omitempty"`
}

// Upgrade applies read-time defaults to an entry decoded from any earlier
// document shape. Array fields become non-nil and an absent or unknown
// language becomes DefaultLanguage.
func Upgrade(e Entry) Entry {
	if e.Synonyms == nil {
		e.Synonyms = []string{}
	}
	if e.Antonyms == nil {
		e.Antonyms = []string{}
	}
	if e.Examples == nil {
		e.Examples = []string{}
	}
	if !ValidLanguages[e.Language] {
		e.Language = DefaultLanguage
	}
	return e
}

// Validate reports whether e may be persisted.
func Validate(e Entry) error {
	if strings.TrimSpace(e.Word) == "" {
		return NewValidationError("word", "must be non-empty")
	}
	return nil
}

// DetectLanguage guesses the language of a headword from its script.
func DetectLanguage(word string) Language {
	for _, r := range word {
		if unicode.Is(unicode.Bengali, r) {
			return Bengali
		}
	}
	return English
}

// Clone returns a copy of e that shares no slices with it. Sequence fields
// of the copy are never nil.
func (e Entry) Clone() Entry {
	e.Synonyms = cloneList(e.Synonyms)
	e.Antonyms = cloneList(e.Antonyms)
	e.Examples = cloneList(e.Examples)
	return e
}

func cloneList(l []string) []string {
	if len(l) == 0 {
		return []string{}
	}
	return slices.Clone(l)
}
