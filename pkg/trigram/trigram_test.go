// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

package trigram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phamduy/lodex/pkg/trigram"
)

/*
TestSet verifies shingle generation including framing pads.
*/
func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // expected shingle count (runes + 1, minus duplicates)
	}{
		{"empty", "", 0},
		{"single_rune", "a", 2},
		{"word", "fire", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, trigram.Set(tt.input), tt.want)
		})
	}
}

/*
TestSimilarity checks the Dice coefficient bounds and ordering.
*/
func TestSimilarity(t *testing.T) {
	// Identical strings are fully similar.
	assert.Equal(t, 1.0, trigram.Similarity("fire", "fire"))

	// Empty input never matches anything.
	assert.Equal(t, 0.0, trigram.Similarity("", "fire"))
	assert.Equal(t, 0.0, trigram.Similarity("fire", ""))

	// Disjoint strings score zero.
	assert.Equal(t, 0.0, trigram.Similarity("fire", "zzzz"))

	// A one-letter typo scores higher than an unrelated word.
	typo := trigram.Similarity("fier", "fire")
	unrelated := trigram.Similarity("grass", "fire")
	assert.Greater(t, typo, unrelated)

	// The default matching threshold of 0.3 admits close typos.
	assert.GreaterOrEqual(t, trigram.Similarity("pikchu", "pikachu"), 0.3)
}

/*
TestSimilarity_Symmetric: Dice is symmetric regardless of argument order.
*/
func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"fire", "fier"},
		{"glumanda", "glumanada"},
		{"a", "abcdef"},
	}

	for _, pair := range pairs {
		assert.Equal(t,
			trigram.Similarity(pair[0], pair[1]),
			trigram.Similarity(pair[1], pair[0]),
		)
	}
}
