/*
Package search implements the multilingual query engine: a normalized token
index with exact and trigram-fuzzy lookup, a registry of localized typed
operators, and a resolver that parses raw queries into free-text terms plus
operator filters and ranks the merged result.

# Concurrency

All query-time state lives in an immutable [Snapshot] published through an
atomic pointer swap. Queries never block on I/O; only [Engine.Reload]
touches the store.
*/
package search

import "github.com/phamduy/lodex/internal/core/catalog"

// MatchKind classifies how a result was found.
type MatchKind string

const (
	MatchOfficial MatchKind = "official"
	MatchAlias    MatchKind = "alias"
	MatchFuzzy    MatchKind = "fuzzy"
)

// SearchToken is one normalized index entry. The normalized form is unique
// within (language, domain); it maps to one or more entities through
// [TokenEntity] rows.
type SearchToken struct {
	ID           int64          `json:"id"`
	LanguageCode string         `json:"language_code"`
	Domain       catalog.Domain `json:"domain"`
	Raw          string         `json:"raw"`
	Normalized   string         `json:"normalized"`
	Priority     int            `json:"priority"`
	IsOfficial   bool           `json:"is_official"`
}

// TokenEntity links a search token to one entity it denotes.
type TokenEntity struct {
	TokenID  int64 `json:"token_id"`
	EntityID int64 `json:"entity_id"`
}

// ParamKind is the typed argument an operator accepts.
type ParamKind string

const (
	ParamNone      ParamKind = "none"
	ParamText      ParamKind = "text"
	ParamNumber    ParamKind = "number"
	ParamBoolean   ParamKind = "boolean"
	ParamEntityRef ParamKind = "entityref"
)

// Valid reports whether k is a known parameter kind.
func (k ParamKind) Valid() bool {
	switch k {
	case ParamNone, ParamText, ParamNumber, ParamBoolean, ParamEntityRef:
		return true
	}
	return false
}

// Operator is a typed filter predicate descriptor. RefDomain is set only
// when Kind is [ParamEntityRef].
type Operator struct {
	Key       string         `json:"key"`
	Kind      ParamKind      `json:"kind"`
	RefDomain catalog.Domain `json:"ref_domain,omitempty"`
}

// OperatorToken is one localized surface form of an operator, e.g. the
// German "typ" for the "type" operator.
type OperatorToken struct {
	OperatorKey  string `json:"operator_key"`
	LanguageCode string `json:"language_code"`
	Surface      string `json:"surface"`
	Normalized   string `json:"normalized"`
}

// EntityFact is a generic per-entity attribute row evaluated by operator
// predicates: boolean flags, numeric attributes, and entity references are
// all stored as (key, value) text pairs.
type EntityFact struct {
	EntityID int64          `json:"entity_id"`
	Domain   catalog.Domain `json:"domain"`
	Key      string         `json:"key"`
	Value    string         `json:"value"`
}

// Result is one ranked entity in a query response.
type Result struct {
	EntityID int64          `json:"entity_id"`
	Domain   catalog.Domain `json:"domain"`
	Kind     MatchKind      `json:"match_kind"`
	// Score is the match similarity: 1.0 for exact matches, the trigram
	// similarity for fuzzy ones, and 0 when only operators selected the
	// entity.
	Score float64 `json:"score"`
	// Token is the index entry that matched, empty for operator-only hits.
	Token string `json:"token,omitempty"`
}
