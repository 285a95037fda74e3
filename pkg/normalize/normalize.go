// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

// Package normalize provides the canonical text normalization for search
// tokens, operator surfaces, and URL slugs.
//
// # Usage
//
// Fold is THE normalization routine: it is applied when search tokens are
// indexed and again when query terms are looked up. Matching correctness
// depends on both call sites using this exact function, so no caller may
// re-implement it locally.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// Fold converts a string into its normalized search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Trims surrounding whitespace.
//
// "Flabébé" and "flabebe" fold to the same form.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	return strings.TrimSpace(strings.ToLower(result))
}

// Slug converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// It applies [Fold] and then replaces every remaining non-alphanumeric run
// with a single hyphen, trimming leading/trailing hyphens.
func Slug(s string) string {
	result := Fold(s)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
