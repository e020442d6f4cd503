// Package search decides which operations match a free-text filter term.
//
// Matching is a Unicode case-folded substring test against the operation
// description. The derived status label is deliberately not part of the
// searchable text.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/opsview/internal/operations"
)

// Term is a prepared search term. The zero value matches everything.
type Term struct {
	raw    string
	folded string
}

// Compile trims and case-folds term once so it can be applied to many records.
func Compile(term string) Term {
	trimmed := strings.TrimSpace(term)
	return Term{raw: trimmed, folded: fold(trimmed)}
}

// String returns the trimmed term.
func (t Term) String() string {
	return t.raw
}

// IsEmpty reports whether the term matches every record.
func (t Term) IsEmpty() bool {
	return t.folded == ""
}

// Match reports whether op matches the term.
func (t Term) Match(op operations.Operation) bool {
	if t.IsEmpty() {
		return true
	}
	return strings.Contains(fold(SearchableText(op)), t.folded)
}

// Matches reports whether op matches term. Empty or whitespace-only terms match.
func Matches(op operations.Operation, term string) bool {
	return Compile(term).Match(op)
}

// Filter returns the operations matching term in their original order.
// The input slice is never modified.
func Filter(ops []operations.Operation, term string) []operations.Operation {
	t := Compile(term)
	out := make([]operations.Operation, 0, len(ops))
	for _, op := range ops {
		if t.Match(op) {
			out = append(out, op)
		}
	}
	return out
}

// SearchableText returns the text a term is matched against.
func SearchableText(op operations.Operation) string {
	return op.Description
}

// cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
