package model

// StringFields names the editable string fields by their JSON names.
var StringFields = []string{
	"word", "translation", "phonetic", "pronunciationBn", "partOfSpeech",
	"meaning", "description", "etymology", "sandhi", "samas", "source",
	"sourceWord", "origin",
}

// ListFields names the sequence fields by their JSON names.
var ListFields = []string{"synonyms", "antonyms", "examples"}

// StringField returns a pointer to the named string field, or nil.
func (e *Entry) StringField(name string) *string {
	switch name {
	case "word":
		return &e.Word
	case "translation":
		return &e.Translation
	case "phonetic":
		return &e.Phonetic
	case "pronunciationBn":
		return &e.PronunciationBn
	case "partOfSpeech":
		return &e.PartOfSpeech
	case "meaning":
		return &e.Meaning
	case "description":
		return &e.Description
	case "etymology":
		return &e.Etymology
	case "sandhi":
		return &e.Sandhi
	case "samas":
		return &e.Samas
	case "source":
		return &e.Source
	case "sourceWord":
		return &e.SourceWord
	case "origin":
		return &e.Origin
	}
	return nil
}

// ListField returns a pointer to the named sequence field, or nil.
func (e *Entry) ListField(name string) *[]string {
	switch name {
	case "synonyms":
		return &e.Synonyms
	case "antonyms":
		return &e.Antonyms
	case "examples":
		return &e.Examples
	}
	return nil
}
