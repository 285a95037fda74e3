// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phamduy/lodex/pkg/normalize"
)

/*
TestFold verifies lowercase + diacritic stripping, the invariant both the
index builder and the query path depend on.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Glumanda", "glumanda"},
		{"accents", "Flabébé", "flabebe"},
		{"mixed_accents", "Évoli", "evoli"},
		{"whitespace_trim", "  Mew  ", "mew"},
		{"already_normal", "pikachu", "pikachu"},
		{"empty", "", ""},
		{"punctuation_kept", "farfetch'd", "farfetch'd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Fold(tt.input))
		})
	}
}

/*
TestFold_Idempotent: folding an already-folded string is a no-op. The index
stores folded forms and the query path folds raw input, so both sides must
converge on the same representation.
*/
func TestFold_Idempotent(t *testing.T) {
	inputs := []string{"Flabébé", "Mr. Mime", "NIDORAN♀", "Évoli"}

	for _, input := range inputs {
		once := normalize.Fold(input)
		assert.Equal(t, once, normalize.Fold(once), "fold must be idempotent for %q", input)
	}
}

/*
TestSlug covers the URL slug pipeline layered on top of Fold.
*/
func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces", "Mr. Mime", "mr-mime"},
		{"accents", "Flabébé", "flabebe"},
		{"apostrophe", "Farfetch'd", "farfetch-d"},
		{"collapse_hyphens", "a -- b", "a-b"},
		{"trim_hyphens", "-edge-", "edge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Slug(tt.input))
		})
	}
}
