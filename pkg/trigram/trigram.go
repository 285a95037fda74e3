// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

// Package trigram implements character-shingle similarity for fuzzy token
// matching.
//
// # Overview
//
// Strings are decomposed into 3-character shingles over a padded form, in
// the manner of Postgres' pg_trgm extension, and compared with the Dice
// coefficient. Inputs are expected to be pre-normalized (see pkg/normalize);
// this package performs no case folding of its own.
package trigram

// padRune frames the string so that prefixes and suffixes produce
// distinguishable shingles ("fir" vs "ire").
const padRune = ' '

// Set returns the set of 3-rune shingles of s.
//
// The input is framed with two leading pads and one trailing pad, so a
// string of n distinct-windowed runes yields n+1 shingles. An empty string
// yields nil.
func Set(s string) map[string]struct{} {
	if s == "" {
		return nil
	}

	runes := make([]rune, 0, len(s)+3)
	runes = append(runes, padRune, padRune)
	runes = append(runes, []rune(s)...)
	runes = append(runes, padRune)

	set := make(map[string]struct{}, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

// Similarity returns the Dice coefficient between the shingle sets of a and b.
//
// The result is in [0, 1]: 1 for identical non-empty strings, 0 when either
// side is empty or the sets are disjoint.
func Similarity(a, b string) float64 {
	setA := Set(a)
	setB := Set(b)
	return SetSimilarity(setA, setB)
}

// SetSimilarity returns the Dice coefficient between two precomputed shingle
// sets. The index keeps token sets precomputed, so the per-query cost is one
// Set call for the query term plus a map intersection per candidate.
func SetSimilarity(setA, setB map[string]struct{}) float64 {
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	// Iterate over the smaller set.
	if len(setB) < len(setA) {
		setA, setB = setB, setA
	}

	shared := 0
	for shingle := range setA {
		if _, ok := setB[shingle]; ok {
			shared++
		}
	}

	return 2 * float64(shared) / float64(len(setA)+len(setB))
}
