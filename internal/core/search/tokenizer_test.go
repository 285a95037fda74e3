package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phamduy/lodex/internal/core/search"
)

/*
TestTokenize covers whitespace splitting, quoted substrings, escapes, and
the unterminated-quote fallback.
*/
func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace_only", "  \t \n ", nil},
		{"plain_split", "fire water grass", []string{"fire", "water", "grass"}},
		{"collapses_runs", "fire   water", []string{"fire", "water"}},
		{"quoted_space", `type:"great ball"`, []string{"type:great ball"}},
		{"quoted_standalone", `"poke ball" shiny`, []string{"poke ball", "shiny"}},
		{"escaped_quote", `"say \"hi\""`, []string{`say "hi"`}},
		{"unterminated_quote", `"runs to end`, []string{"runs to end"}},
		{"adjacent_quotes", `fo"o b"ar`, []string{"foo bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.Tokenize(tt.raw))
		})
	}
}
