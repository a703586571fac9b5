package enrich

import (
	"fmt"
	"strings"
)

// Kind classifies an enrichment failure.
type Kind string

const (
	KindNetwork     Kind = "network"
	KindTimeout     Kind = "timeout"
	KindEmpty       Kind = "empty"
	KindParse       Kind = "parse"
	KindValidation  Kind = "validation"
	KindUnavailable Kind = "unavailable"
)

// Error is an enrichment failure. Every failure of Client.Generate is an
// *Error; callers surface it and may let the user retry.
type Error struct {
	Kind   Kind
	Word   string
	Fields []string // missing or mistyped fields, for KindValidation and KindParse
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "enrich %q: %s", e.Word, e.Kind)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }
