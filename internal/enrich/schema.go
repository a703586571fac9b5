package enrich

import (
	"fmt"
	"strings"

	"github.com/rcliao/borno/internal/model"
)

// FieldType is the JSON type of a generated field.
type FieldType int

const (
	String FieldType = iota
	StringList
)

// Field describes one property of the output schema.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
}

// Schema is the fixed output shape requested from every backend. It is the
// entry shape without identity fields.
var Schema = []Field{
	{"word", String, "The word, capitalized if English.", true},
	{"translation", String, "Direct equivalent in the other language (পরিভাষা).", true},
	{"phonetic", String, "IPA pronunciation.", false},
	{"pronunciationBn", String, "Pronunciation written in Bengali script (উচ্চারণ).", false},
	{"partOfSpeech", String, "e.g. noun (বিশেষ্য).", true},
	{"meaning", String, "Primary meaning, concise.", true},
	{"description", String, "Detailed description.", true},
	{"etymology", String, "Etymology (ব্যুৎপত্তি).", false},
	{"sandhi", String, "Sandhi decomposition, if any (সন্ধি).", false},
	{"samas", String, "Samas analysis, if any (সমাস).", false},
	{"source", String, "Word origin class, e.g. তৎসম, তদ্ভব, বিদেশি.", false},
	{"sourceWord", String, "The source word it derives from (উৎস শব্দ).", false},
	{"synonyms", StringList, "List of synonyms.", true},
	{"antonyms", StringList, "List of antonyms.", false},
	{"examples", StringList, "Bilingual example sentences.", true},
	{"origin", String, "Short historical note.", false},
}

// RequiredFields returns the names of required schema fields.
func RequiredFields() []string {
	var out []string
	for _, f := range Schema {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Instruction builds the natural-language request for word.
func Instruction(word string, hint model.Language) string {
	var b strings.Builder
	b.WriteString("You are a Bengali-English dictionary content generator.\n")
	fmt.Fprintf(&b, "Create a detailed dictionary entry for the word: %q.\n\n", word)
	switch hint {
	case model.English:
		b.WriteString("The input is English: provide Bengali translations, and write the description in Bengali.\n")
	default:
		b.WriteString("The input is Bengali: provide English translations where appropriate, and fill the Bengali linguistic fields (sandhi, samas, source) when they apply.\n")
	}
	b.WriteString("Ensure the 'meaning' is concise. 'description' should be detailed.\n")
	b.WriteString("Example sentences carry their translation in parentheses.\n")
	return b.String()
}

// JSONSchemaText renders Schema as a JSON example for backends that take the
// schema inside the prompt.
func JSONSchemaText() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range Schema {
		val := `"<string>"`
		if f.Type == StringList {
			val = `["<string>", ...]`
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		fmt.Fprintf(&b, "  %q: %s", f.Name, val)
		if i < len(Schema)-1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "  // %s; %s\n", req, f.Description)
	}
	b.WriteString("}")
	return b.String()
}
