package search

import "strings"

// Tokenize splits a raw query into whitespace-delimited segments, keeping
// quoted substrings together as single segments. A backslash escapes the
// next rune inside a quoted substring, so `"poke \"ball\""` is one segment.
//
// The scan is linear with a single piece of state, the in-quote flag; an
// unterminated quote runs to the end of the input.
func Tokenize(raw string) []string {
	var segments []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
	}

	inQuote := false
	escaped := false
	for _, r := range raw {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && inQuote:
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return segments
}
