package validation

import (
	"errors"
	"strings"
)

// ReadOnlyViolation is the result text substituted for a rejected query
const ReadOnlyViolation = "Error: Security violation - Read-only allowed."

// ErrReadOnlyViolation matches every error returned by CheckReadOnly
var ErrReadOnlyViolation = errors.New(ReadOnlyViolation)

// ReadOnlyError names the keyword that got a query rejected.
// Its text is always ReadOnlyViolation.
type ReadOnlyError struct {
	Keyword string
}

func (e *ReadOnlyError) Error() string { return ReadOnlyViolation }

// Is makes errors.Is(err, ErrReadOnlyViolation) hold
func (e *ReadOnlyError) Is(target error) bool { return target == ErrReadOnlyViolation }

// forbiddenKeywords are matched as plain substrings of the upper-cased query.
// This is a surface scan, not a parser: keywords hidden in comments or
// alternate syntax get through, and a column named "updated_at" is rejected.
var forbiddenKeywords = []string{"INSERT", "UPDATE", "DELETE", "DROP", "TRUNCATE", "ALTER"}

// ForbiddenKeyword returns the first denylisted keyword found in query
func ForbiddenKeyword(query string) (string, bool) {
	upper := strings.ToUpper(query)
	for _, kw := range forbiddenKeywords {
		if strings.Contains(upper, kw) {
			return kw, true
		}
	}
	return "", false
}

// CheckReadOnly rejects queries containing any mutating keyword with a
// *ReadOnlyError
func CheckReadOnly(query string) error {
	if kw, found := ForbiddenKeyword(query); found {
		return &ReadOnlyError{Keyword: kw}
	}
	return nil
}

// StripCodeFences removes markdown fence markers the model wraps SQL in
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
