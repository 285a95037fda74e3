package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/pkg/normalize"
	"github.com/phamduy/lodex/pkg/trigram"
)

// scanKey addresses the per-language, per-domain fuzzy scan lists.
type scanKey struct {
	language string
	domain   catalog.Domain
}

// exactKey addresses the exact-lookup map.
type exactKey struct {
	language   string
	domain     catalog.Domain
	normalized string
}

// operatorKey addresses the localized operator surface map.
type operatorKey struct {
	language   string
	normalized string
}

// tokenEntry is one resolved (token, entity) pair in the index.
type tokenEntry struct {
	entityID   int64
	token      string
	priority   int
	isOfficial bool
}

// fuzzyToken carries a precomputed trigram set so the fuzzy scan never
// re-shingles index entries per query.
type fuzzyToken struct {
	normalized string
	trigrams   map[string]struct{}
	entries    []tokenEntry
}

// SnapshotData is everything a snapshot build reads from the store.
type SnapshotData struct {
	Tokens         []SearchToken
	TokenEntities  []TokenEntity
	Operators      []Operator
	OperatorTokens []OperatorToken
	Facts          []EntityFact
}

// Snapshot is the immutable query-time index. Once built it is never
// mutated; readers share it freely.
type Snapshot struct {
	builtAt time.Time

	exact     map[exactKey][]tokenEntry
	fuzzy     map[scanKey][]fuzzyToken
	operators map[operatorKey]Operator

	// facts is keyed by entity ID, then fact key, holding all values.
	// factDomains remembers each entity's domain for operator-only queries.
	facts       map[int64]map[string][]string
	factDomains map[int64]catalog.Domain

	// domains carries every domain that has at least one token, so a
	// query without a domain filter knows what to scan.
	domains []catalog.Domain

	tokenCount    int
	operatorCount int
}

// NewSnapshot builds an immutable index from source rows. Any inconsistency
// in the source data fails the whole build with a DATA_INTEGRITY error; a
// partially valid snapshot is never returned.
func NewSnapshot(data SnapshotData) (*Snapshot, error) {
	snapshot := &Snapshot{
		builtAt:     time.Now().UTC(),
		exact:       make(map[exactKey][]tokenEntry),
		fuzzy:       make(map[scanKey][]fuzzyToken),
		operators:   make(map[operatorKey]Operator),
		facts:       make(map[int64]map[string][]string),
		factDomains: make(map[int64]catalog.Domain),
	}

	tokensByID := make(map[int64]SearchToken, len(data.Tokens))
	seenNormalized := make(map[exactKey]int64)
	for _, token := range data.Tokens {
		if !token.Domain.Valid() {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("search token %d has unknown domain %q", token.ID, token.Domain), nil)
		}
		key := exactKey{language: token.LanguageCode, domain: token.Domain, normalized: token.Normalized}
		if otherID, dup := seenNormalized[key]; dup {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("search tokens %d and %d share normalized form %q in (%s, %s)",
					otherID, token.ID, token.Normalized, token.LanguageCode, token.Domain), nil)
		}
		seenNormalized[key] = token.ID
		tokensByID[token.ID] = token
	}

	entities := make(map[int64][]int64)
	for _, link := range data.TokenEntities {
		if _, ok := tokensByID[link.TokenID]; !ok {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("token link references unknown token %d", link.TokenID), nil)
		}
		entities[link.TokenID] = append(entities[link.TokenID], link.EntityID)
	}

	seenDomains := make(map[catalog.Domain]bool)
	for id, token := range tokensByID {
		linked := entities[id]
		if len(linked) == 0 {
			continue // orphan alias, harmless
		}
		var entries []tokenEntry
		for _, entityID := range linked {
			entries = append(entries, tokenEntry{
				entityID:   entityID,
				token:      token.Normalized,
				priority:   token.Priority,
				isOfficial: token.IsOfficial,
			})
		}
		key := exactKey{language: token.LanguageCode, domain: token.Domain, normalized: token.Normalized}
		snapshot.exact[key] = entries

		scan := scanKey{language: token.LanguageCode, domain: token.Domain}
		snapshot.fuzzy[scan] = append(snapshot.fuzzy[scan], fuzzyToken{
			normalized: token.Normalized,
			trigrams:   trigram.Set(token.Normalized),
			entries:    entries,
		})

		if !seenDomains[token.Domain] {
			seenDomains[token.Domain] = true
			snapshot.domains = append(snapshot.domains, token.Domain)
		}
		snapshot.tokenCount++
	}
	sort.Slice(snapshot.domains, func(i, j int) bool {
		return snapshot.domains[i] < snapshot.domains[j]
	})

	// Deterministic fuzzy scan order regardless of map iteration.
	for _, list := range snapshot.fuzzy {
		sort.Slice(list, func(i, j int) bool {
			return list[i].normalized < list[j].normalized
		})
	}

	operatorsByKey := make(map[string]Operator, len(data.Operators))
	for _, operator := range data.Operators {
		if !operator.Kind.Valid() {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("operator %q has unknown parameter kind %q", operator.Key, operator.Kind), nil)
		}
		if operator.Kind == ParamEntityRef && !operator.RefDomain.Valid() {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("operator %q references unknown domain %q", operator.Key, operator.RefDomain), nil)
		}
		if _, dup := operatorsByKey[operator.Key]; dup {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("duplicate operator key %q", operator.Key), nil)
		}
		operatorsByKey[operator.Key] = operator
	}

	for _, surface := range data.OperatorTokens {
		operator, ok := operatorsByKey[surface.OperatorKey]
		if !ok {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("operator surface %q references unknown operator %q",
					surface.Surface, surface.OperatorKey), nil)
		}
		normalized := surface.Normalized
		if normalized == "" {
			normalized = normalize.Fold(surface.Surface)
		}
		key := operatorKey{language: surface.LanguageCode, normalized: normalized}
		if existing, dup := snapshot.operators[key]; dup && existing.Key != operator.Key {
			// Resolution would be ambiguous at query time; refuse the
			// whole build instead of silently picking one candidate.
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("operator surface %q in language %s is registered for both %q and %q",
					normalized, surface.LanguageCode, existing.Key, operator.Key), nil)
		}
		snapshot.operators[key] = operator
		snapshot.operatorCount++
	}

	for _, fact := range data.Facts {
		if !fact.Domain.Valid() {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("fact %q for entity %d has unknown domain %q",
					fact.Key, fact.EntityID, fact.Domain), nil)
		}
		if domain, seen := snapshot.factDomains[fact.EntityID]; seen && domain != fact.Domain {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("entity %d has facts in both %q and %q", fact.EntityID, domain, fact.Domain), nil)
		}
		snapshot.factDomains[fact.EntityID] = fact.Domain
		byKey := snapshot.facts[fact.EntityID]
		if byKey == nil {
			byKey = make(map[string][]string)
			snapshot.facts[fact.EntityID] = byKey
		}
		byKey[fact.Key] = append(byKey[fact.Key], fact.Value)
	}

	return snapshot, nil
}

// Operator resolves a normalized surface form in one language.
func (s *Snapshot) Operator(language, normalized string) (Operator, bool) {
	operator, ok := s.operators[operatorKey{language: language, normalized: normalized}]
	return operator, ok
}

// Stats describes a snapshot for the admin endpoint.
type Stats struct {
	BuiltAt       time.Time `json:"built_at"`
	Tokens        int       `json:"tokens"`
	Operators     int       `json:"operator_surfaces"`
	FactsEntities int       `json:"fact_entities"`
}

func (s *Snapshot) Stats() Stats {
	return Stats{
		BuiltAt:       s.builtAt,
		Tokens:        s.tokenCount,
		Operators:     s.operatorCount,
		FactsEntities: len(s.facts),
	}
}

// Options tunes the query engine. Zero values fall back to the defaults
// used by trigram-backed stores.
type Options struct {
	FuzzyThreshold     float64
	FuzzyMaxCandidates int
	BuildTimeout       time.Duration
}

func (o Options) withDefaults() Options {
	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = 0.3
	}
	if o.FuzzyMaxCandidates < 1 {
		o.FuzzyMaxCandidates = 50
	}
	if o.BuildTimeout <= 0 {
		o.BuildTimeout = 60 * time.Second
	}
	return o
}

// Engine serves queries against the current snapshot and rebuilds it on
// demand. The snapshot pointer is swapped atomically, so readers see either
// the previous complete index or the new one, never a partial rebuild.
type Engine struct {
	repo    Repository
	logger  *slog.Logger
	options Options

	snapshot atomic.Pointer[Snapshot]
}

func NewEngine(repo Repository, logger *slog.Logger, options Options) *Engine {
	return &Engine{
		repo:    repo,
		logger:  logger,
		options: options.withDefaults(),
	}
}

// Reload fetches source rows, builds a fresh snapshot off to the side, and
// publishes it. The fetch phase is bounded by the configured build timeout;
// on any failure the previous snapshot stays in place.
func (engine *Engine) Reload(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, engine.options.BuildTimeout)
	defer cancel()

	started := time.Now()

	var data SnapshotData
	var err error
	if data.Tokens, err = engine.repo.ListSearchTokens(ctx); err != nil {
		return err
	}
	if data.TokenEntities, err = engine.repo.ListTokenEntities(ctx); err != nil {
		return err
	}
	if data.Operators, err = engine.repo.ListOperators(ctx); err != nil {
		return err
	}
	if data.OperatorTokens, err = engine.repo.ListOperatorTokens(ctx); err != nil {
		return err
	}
	if data.Facts, err = engine.repo.ListEntityFacts(ctx); err != nil {
		return err
	}

	snapshot, err := NewSnapshot(data)
	if err != nil {
		engine.logger.ErrorContext(ctx, "snapshot_rejected", slog.Any("error", err))
		return err
	}

	engine.snapshot.Store(snapshot)
	engine.logger.InfoContext(ctx, "snapshot_published",
		slog.Int("tokens", snapshot.tokenCount),
		slog.Int("operator_surfaces", snapshot.operatorCount),
		slog.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// Snapshot returns the current index, or an error when none has been
// published yet.
func (engine *Engine) Snapshot() (*Snapshot, error) {
	snapshot := engine.snapshot.Load()
	if snapshot == nil {
		return nil, apperr.ServiceUnavailable("Search index not loaded")
	}
	return snapshot, nil
}
