package search

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/validate"
	"github.com/phamduy/lodex/pkg/normalize"
	"github.com/phamduy/lodex/pkg/trigram"
)

// filter is one resolved operator application from the query.
type filter struct {
	operator Operator
	segment  string

	// text carries the folded text argument, or "true"/"false" for
	// booleans; number the parsed numeric argument.
	text   string
	number float64
	// refIDs holds the candidate entity IDs an entityref argument resolved
	// to; empty means the argument named nothing and the filter can never
	// match.
	refIDs map[int64]struct{}
}

// parsedQuery is the outcome of tokenizing and classifying a raw query.
type parsedQuery struct {
	terms   []string
	filters []filter
}

// parse classifies each segment as an operator application or a free-text
// term. Operators are tried first; a segment that resolves to an operator
// consumes its argument either from the remainder after ":" or from the
// following segment.
func (engine *Engine) parse(snapshot *Snapshot, segments []string, language string) (*parsedQuery, error) {
	parsed := &parsedQuery{}

	for i := 0; i < len(segments); i++ {
		segment := segments[i]
		surface := segment
		inlineArg := ""
		hasInline := false
		if cut := strings.Index(segment, ":"); cut >= 0 {
			surface = segment[:cut]
			inlineArg = segment[cut+1:]
			hasInline = true
		}

		operator, ok := snapshot.Operator(language, normalize.Fold(surface))
		if !ok {
			// Not an operator; the whole segment is a free-text term.
			parsed.terms = append(parsed.terms, segment)
			continue
		}

		if operator.Kind == ParamNone {
			if hasInline && inlineArg != "" {
				return nil, apperr.ParseError(segment, "operator takes no argument")
			}
			parsed.filters = append(parsed.filters, filter{operator: operator, segment: segment})
			continue
		}

		// A bare boolean operator means true; it never consumes the next
		// segment, so "fire @shiny" keeps "fire" and "@shiny" independent.
		if operator.Kind == ParamBoolean && inlineArg == "" {
			parsed.filters = append(parsed.filters, filter{operator: operator, segment: segment, text: "true"})
			continue
		}

		argument := inlineArg
		if argument == "" {
			// Longest match: the operator phrase spans this segment and
			// the next one, which becomes its argument.
			if i+1 >= len(segments) {
				return nil, apperr.ParseError(segment, "operator requires an argument")
			}
			i++
			argument = segments[i]
		}

		resolved, err := engine.parseArgument(snapshot, operator, segment, argument, language)
		if err != nil {
			return nil, err
		}
		parsed.filters = append(parsed.filters, resolved)
	}

	return parsed, nil
}

// parseArgument validates and types an operator argument. A wrong-kind
// argument is a parse error naming the offending segment, never a silent
// drop.
func (engine *Engine) parseArgument(snapshot *Snapshot, operator Operator, segment, argument, language string) (filter, error) {
	resolved := filter{operator: operator, segment: segment}

	switch operator.Kind {
	case ParamText:
		resolved.text = normalize.Fold(argument)
	case ParamNumber:
		number, err := strconv.ParseFloat(argument, 64)
		if err != nil {
			return filter{}, apperr.ParseError(segment, "argument must be a number, got "+strconv.Quote(argument))
		}
		resolved.number = number
	case ParamBoolean:
		value, err := strconv.ParseBool(argument)
		if err != nil {
			return filter{}, apperr.ParseError(segment, "argument must be a boolean, got "+strconv.Quote(argument))
		}
		resolved.text = strconv.FormatBool(value)
	case ParamEntityRef:
		resolved.refIDs = engine.resolveReference(snapshot, operator.RefDomain, argument, language)
	}

	return resolved, nil
}

// resolveReference maps an entityref argument to candidate entity IDs via
// the token index of the operator's referenced domain, exact first with a
// fuzzy fallback.
func (engine *Engine) resolveReference(snapshot *Snapshot, domain catalog.Domain, argument, language string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	normalized := normalize.Fold(argument)

	if entries, ok := snapshot.exact[exactKey{language: language, domain: domain, normalized: normalized}]; ok {
		for _, entry := range entries {
			ids[entry.entityID] = struct{}{}
		}
		return ids
	}

	for _, match := range engine.fuzzyScan(snapshot, scanKey{language: language, domain: domain}, normalized) {
		for _, entry := range match.entries {
			ids[entry.entityID] = struct{}{}
		}
	}
	return ids
}

// fuzzyMatch pairs an index token with its similarity to the query term.
type fuzzyMatch struct {
	entries    []tokenEntry
	normalized string
	similarity float64
}

// fuzzyScan returns index tokens within the similarity threshold of term,
// best first, capped at the configured candidate count.
func (engine *Engine) fuzzyScan(snapshot *Snapshot, key scanKey, term string) []fuzzyMatch {
	termSet := trigram.Set(term)
	if termSet == nil {
		return nil
	}

	var matches []fuzzyMatch
	for _, token := range snapshot.fuzzy[key] {
		similarity := trigram.SetSimilarity(termSet, token.trigrams)
		if similarity < engine.options.FuzzyThreshold {
			continue
		}
		matches = append(matches, fuzzyMatch{
			entries:    token.entries,
			normalized: token.normalized,
			similarity: similarity,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].similarity != matches[j].similarity {
			return matches[i].similarity > matches[j].similarity
		}
		return matches[i].normalized < matches[j].normalized
	})
	if len(matches) > engine.options.FuzzyMaxCandidates {
		matches = matches[:engine.options.FuzzyMaxCandidates]
	}
	return matches
}

type candidateKey struct {
	entityID int64
	domain   catalog.Domain
}

// termMatch is the best-ranked hit of one entity for a single term.
type termMatch struct {
	entry      tokenEntry
	kind       MatchKind
	similarity float64
}

// candidate tracks an entity's best match across all free-text terms and
// how many terms hit it; only entities hit by every term survive.
type candidate struct {
	termMatch
	matched int
}

// Search resolves a raw query in one language, optionally restricted to a
// single domain. An empty query yields an empty result set.
func (engine *Engine) Search(_ context.Context, rawQuery, language string, domain catalog.Domain) ([]Result, error) {
	v := &validate.Validator{}
	if err := v.LanguageCode("lang", language).Err(); err != nil {
		return nil, err
	}

	snapshot, err := engine.Snapshot()
	if err != nil {
		return nil, err
	}

	segments := Tokenize(rawQuery)
	if len(segments) == 0 {
		return []Result{}, nil
	}

	parsed, err := engine.parse(snapshot, segments, language)
	if err != nil {
		return nil, err
	}

	domains := snapshot.domains
	if domain != "" {
		domains = []catalog.Domain{domain}
	}

	if len(parsed.terms) == 0 {
		return filterOnly(snapshot, parsed.filters, domains), nil
	}

	candidates := make(map[candidateKey]*candidate)
	for _, term := range parsed.terms {
		for key, match := range engine.matchTerm(snapshot, term, language, domains) {
			existing, ok := candidates[key]
			if !ok {
				candidates[key] = &candidate{termMatch: match, matched: 1}
				continue
			}
			existing.matched++
			if rankBefore(match.entry, match.kind, match.similarity,
				existing.entry, existing.kind, existing.similarity) {
				existing.termMatch = match
			}
		}
	}

	return rankCandidates(candidates, len(parsed.terms), parsed.filters, snapshot), nil
}

// matchTerm resolves one term against the token index, exact lookup first
// and fuzzy only when no domain had an exact hit. Each entity appears at
// most once per term, keyed by its best-ranked matching token.
func (engine *Engine) matchTerm(snapshot *Snapshot, term, language string, domains []catalog.Domain) map[candidateKey]termMatch {
	matches := make(map[candidateKey]termMatch)
	normalized := normalize.Fold(term)
	if normalized == "" {
		return matches
	}

	record := func(key candidateKey, entry tokenEntry, kind MatchKind, similarity float64) {
		existing, ok := matches[key]
		if !ok || rankBefore(entry, kind, similarity, existing.entry, existing.kind, existing.similarity) {
			matches[key] = termMatch{entry: entry, kind: kind, similarity: similarity}
		}
	}

	exactHit := false
	for _, dom := range domains {
		entries, ok := snapshot.exact[exactKey{language: language, domain: dom, normalized: normalized}]
		if !ok {
			continue
		}
		exactHit = true
		for _, entry := range entries {
			kind := MatchAlias
			if entry.isOfficial {
				kind = MatchOfficial
			}
			record(candidateKey{entityID: entry.entityID, domain: dom}, entry, kind, 1.0)
		}
	}
	if exactHit {
		return matches
	}

	for _, dom := range domains {
		for _, match := range engine.fuzzyScan(snapshot, scanKey{language: language, domain: dom}, normalized) {
			for _, entry := range match.entries {
				record(candidateKey{entityID: entry.entityID, domain: dom}, entry, MatchFuzzy, match.similarity)
			}
		}
	}
	return matches
}

// rankBefore implements the token ranking order: official before alias,
// higher priority first, higher similarity first, then token text for a
// deterministic tie-break.
func rankBefore(a tokenEntry, aKind MatchKind, aSim float64, b tokenEntry, bKind MatchKind, bSim float64) bool {
	aOfficial := aKind == MatchOfficial
	bOfficial := bKind == MatchOfficial
	if aOfficial != bOfficial {
		return aOfficial
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if aSim != bSim {
		return aSim > bSim
	}
	return a.token < b.token
}

// rankCandidates drops entities that missed a term or fail a filter, then
// orders the survivors with entity ID as the final tie-break.
func rankCandidates(candidates map[candidateKey]*candidate, termCount int, filters []filter, snapshot *Snapshot) []Result {
	type ranked struct {
		key  candidateKey
		cand *candidate
	}
	var ordered []ranked

	for key, cand := range candidates {
		if cand.matched < termCount {
			continue
		}
		if !satisfiesAll(snapshot, key.entityID, filters) {
			continue
		}
		ordered = append(ordered, ranked{key: key, cand: cand})
	}

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if rankBefore(a.cand.entry, a.cand.kind, a.cand.similarity,
			b.cand.entry, b.cand.kind, b.cand.similarity) {
			return true
		}
		if rankBefore(b.cand.entry, b.cand.kind, b.cand.similarity,
			a.cand.entry, a.cand.kind, a.cand.similarity) {
			return false
		}
		return a.key.entityID < b.key.entityID
	})

	results := make([]Result, 0, len(ordered))
	for _, item := range ordered {
		results = append(results, Result{
			EntityID: item.key.entityID,
			Domain:   item.key.domain,
			Kind:     item.cand.kind,
			Score:    item.cand.similarity,
			Token:    item.cand.entry.token,
		})
	}
	return results
}

// filterOnly builds the result set from operator predicates alone, ordered
// by entity ID for determinism.
func filterOnly(snapshot *Snapshot, filters []filter, domains []catalog.Domain) []Result {
	if len(filters) == 0 {
		return []Result{}
	}

	allowed := make(map[catalog.Domain]bool, len(domains))
	for _, domain := range domains {
		allowed[domain] = true
	}

	var results []Result
	for entityID, domain := range snapshot.factDomains {
		if !allowed[domain] {
			continue
		}
		if !satisfiesAll(snapshot, entityID, filters) {
			continue
		}
		results = append(results, Result{EntityID: entityID, Domain: domain})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].EntityID < results[j].EntityID })
	return results
}

// satisfiesAll applies every filter as an intersection.
func satisfiesAll(snapshot *Snapshot, entityID int64, filters []filter) bool {
	for _, f := range filters {
		if !satisfies(snapshot, entityID, f) {
			return false
		}
	}
	return true
}

// satisfies evaluates one predicate against the entity's fact rows.
func satisfies(snapshot *Snapshot, entityID int64, f filter) bool {
	values := snapshot.facts[entityID][f.operator.Key]

	switch f.operator.Kind {
	case ParamNone:
		return len(values) > 0
	case ParamBoolean:
		for _, value := range values {
			if value == f.text {
				return true
			}
		}
		// An absent boolean fact counts as false.
		return f.text == "false" && len(values) == 0
	case ParamText:
		for _, value := range values {
			if normalize.Fold(value) == f.text {
				return true
			}
		}
	case ParamNumber:
		for _, value := range values {
			if number, err := strconv.ParseFloat(value, 64); err == nil && number == f.number {
				return true
			}
		}
	case ParamEntityRef:
		for _, value := range values {
			if id, err := strconv.ParseInt(value, 10, 64); err == nil {
				if _, ok := f.refIDs[id]; ok {
					return true
				}
			}
		}
	}
	return false
}
