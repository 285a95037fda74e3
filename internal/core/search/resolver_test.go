package search_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/core/search"
	"github.com/phamduy/lodex/internal/platform/apperr"
)

// fixtureData is a small English catalog: two fire creatures (4 and 9), a
// water creature (7), and the "fire" category entity (20).
func fixtureData() search.SnapshotData {
	return search.SnapshotData{
		Tokens: []search.SearchToken{
			{ID: 1, LanguageCode: "en", Domain: catalog.DomainCreature, Raw: "Charmander", Normalized: "charmander", Priority: 100, IsOfficial: true},
			{ID: 2, LanguageCode: "en", Domain: catalog.DomainCreature, Raw: "Char", Normalized: "char", Priority: 50},
			{ID: 3, LanguageCode: "en", Domain: catalog.DomainCreature, Raw: "Fire", Normalized: "fire", Priority: 10},
			{ID: 4, LanguageCode: "en", Domain: catalog.DomainCreature, Raw: "Squirtle", Normalized: "squirtle", Priority: 100, IsOfficial: true},
			{ID: 5, LanguageCode: "en", Domain: catalog.DomainCategory, Raw: "Fire", Normalized: "fire", Priority: 100, IsOfficial: true},
		},
		TokenEntities: []search.TokenEntity{
			{TokenID: 1, EntityID: 4},
			{TokenID: 2, EntityID: 4},
			{TokenID: 3, EntityID: 4},
			{TokenID: 3, EntityID: 9},
			{TokenID: 4, EntityID: 7},
			{TokenID: 5, EntityID: 20},
		},
		Operators: []search.Operator{
			{Key: "shiny", Kind: search.ParamBoolean},
			{Key: "type", Kind: search.ParamEntityRef, RefDomain: catalog.DomainCategory},
			{Key: "attack", Kind: search.ParamNumber},
			{Key: "legendary", Kind: search.ParamNone},
		},
		OperatorTokens: []search.OperatorToken{
			{OperatorKey: "shiny", LanguageCode: "en", Surface: "@shiny", Normalized: "@shiny"},
			{OperatorKey: "type", LanguageCode: "en", Surface: "type", Normalized: "type"},
			{OperatorKey: "attack", LanguageCode: "en", Surface: "attack", Normalized: "attack"},
			{OperatorKey: "legendary", LanguageCode: "en", Surface: "legendary", Normalized: "legendary"},
		},
		Facts: []search.EntityFact{
			{EntityID: 4, Domain: catalog.DomainCreature, Key: "shiny", Value: "true"},
			{EntityID: 4, Domain: catalog.DomainCreature, Key: "type", Value: "20"},
			{EntityID: 4, Domain: catalog.DomainCreature, Key: "attack", Value: "52"},
			{EntityID: 9, Domain: catalog.DomainCreature, Key: "type", Value: "20"},
			{EntityID: 9, Domain: catalog.DomainCreature, Key: "attack", Value: "60"},
			{EntityID: 9, Domain: catalog.DomainCreature, Key: "legendary", Value: "1"},
			{EntityID: 7, Domain: catalog.DomainCreature, Key: "shiny", Value: "true"},
			{EntityID: 7, Domain: catalog.DomainCreature, Key: "type", Value: "21"},
		},
	}
}

// fixtureRepository serves fixtureData through the store contract.
type fixtureRepository struct {
	data search.SnapshotData
}

func (r *fixtureRepository) ListSearchTokens(context.Context) ([]search.SearchToken, error) {
	return r.data.Tokens, nil
}

func (r *fixtureRepository) ListTokenEntities(context.Context) ([]search.TokenEntity, error) {
	return r.data.TokenEntities, nil
}

func (r *fixtureRepository) ListOperators(context.Context) ([]search.Operator, error) {
	return r.data.Operators, nil
}

func (r *fixtureRepository) ListOperatorTokens(context.Context) ([]search.OperatorToken, error) {
	return r.data.OperatorTokens, nil
}

func (r *fixtureRepository) ListEntityFacts(context.Context) ([]search.EntityFact, error) {
	return r.data.Facts, nil
}

func newFixtureEngine(t *testing.T) *search.Engine {
	t.Helper()
	engine := search.NewEngine(&fixtureRepository{data: fixtureData()}, slog.Default(), search.Options{})
	require.NoError(t, engine.Reload(context.Background()))
	return engine
}

func entityIDs(results []search.Result) []int64 {
	ids := make([]int64, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.EntityID)
	}
	return ids
}

/*
TestSearch_NotLoaded: queries before the first snapshot build are refused,
not served empty.
*/
func TestSearch_NotLoaded(t *testing.T) {
	engine := search.NewEngine(&fixtureRepository{data: fixtureData()}, slog.Default(), search.Options{})

	_, err := engine.Search(context.Background(), "charmander", "en", "")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "SERVICE_UNAVAILABLE"))
}

/*
TestSearch_EmptyQuery: an empty query returns an empty result set, never
the whole catalog.
*/
func TestSearch_EmptyQuery(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "   ", "en", "")

	require.NoError(t, err)
	assert.Empty(t, results)
}

/*
TestSearch_ExactOfficial: an official name resolves to its entity with a
full score.
*/
func TestSearch_ExactOfficial(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "Charmander", "en", "")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(4), results[0].EntityID)
	assert.Equal(t, search.MatchOfficial, results[0].Kind)
	assert.Equal(t, 1.0, results[0].Score)
}

/*
TestSearch_DiacriticsFolded: query normalization matches the token
normalization, so accented input finds the plain token.
*/
func TestSearch_DiacriticsFolded(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "Chärmander", "en", "")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(4), results[0].EntityID)
	assert.Equal(t, search.MatchOfficial, results[0].Kind)
}

/*
TestSearch_Ranking: official names outrank aliases, ties within a token
break by entity ID ascending.
*/
func TestSearch_Ranking(t *testing.T) {
	engine := newFixtureEngine(t)

	// "fire" is the category 20's official name and an alias of creatures
	// 4 and 9.
	results, err := engine.Search(context.Background(), "fire", "en", "")

	require.NoError(t, err)
	assert.Equal(t, []int64{20, 4, 9}, entityIDs(results))
	assert.Equal(t, search.MatchOfficial, results[0].Kind)
	assert.Equal(t, search.MatchAlias, results[1].Kind)
}

/*
TestSearch_DomainFilter restricts matching to one domain.
*/
func TestSearch_DomainFilter(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "fire", "en", catalog.DomainCategory)

	require.NoError(t, err)
	assert.Equal(t, []int64{20}, entityIDs(results))
}

/*
TestSearch_FuzzyFallback: a typo with no exact hit falls back to trigram
matching above the threshold.
*/
func TestSearch_FuzzyFallback(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "charmandr", "en", "")

	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, int64(4), results[0].EntityID)
	assert.Equal(t, search.MatchFuzzy, results[0].Kind)
	assert.Greater(t, results[0].Score, 0.3)
	assert.Less(t, results[0].Score, 1.0)
}

/*
TestSearch_FuzzyMiss: nothing within the threshold yields an empty result,
not an error.
*/
func TestSearch_FuzzyMiss(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "zzzzzz", "en", "")

	require.NoError(t, err)
	assert.Empty(t, results)
}

/*
TestSearch_BooleanOperatorScenario: "fire @shiny" intersects the token
matches of "fire" with the shiny predicate. Creature 9 is fire but not
shiny; category 20 has no facts at all.
*/
func TestSearch_BooleanOperatorScenario(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "fire @shiny", "en", "")

	require.NoError(t, err)
	assert.Equal(t, []int64{4}, entityIDs(results))
}

/*
TestSearch_OperatorOnly: with no free-text term the operators alone select
the result set, ordered by entity ID.
*/
func TestSearch_OperatorOnly(t *testing.T) {
	engine := newFixtureEngine(t)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"boolean_flag", "@shiny", []int64{4, 7}},
		{"boolean_explicit_false", "@shiny:false", []int64{9}},
		{"number_equality", "attack:60", []int64{9}},
		{"presence_kind", "legendary", []int64{9}},
		{"entityref_by_name", "type:fire", []int64{4, 9}},
		{"entityref_quoted", `type:"fire"`, []int64{4, 9}},
		{"entityref_spanning_segments", "type fire", []int64{4, 9}},
		{"intersection", "@shiny attack:52", []int64{4}},
		{"contradiction", "@shiny legendary", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := engine.Search(context.Background(), tt.query, "en", "")

			require.NoError(t, err)
			assert.Equal(t, tt.want, entityIDs(results), "query %q", tt.query)
		})
	}
}

/*
TestSearch_ParseErrors: malformed operator arguments surface the offending
segment instead of being dropped.
*/
func TestSearch_ParseErrors(t *testing.T) {
	engine := newFixtureEngine(t)

	tests := []struct {
		name    string
		query   string
		segment string
	}{
		{"wrong_kind_number", "attack:high", "attack:high"},
		{"wrong_kind_boolean", "@shiny:maybe", "@shiny:maybe"},
		{"missing_argument", "charmander type", "type"},
		{"argument_on_flag", "legendary:yes", "legendary:yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Search(context.Background(), tt.query, "en", "")

			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "PARSE_ERROR"))

			var appError *apperr.AppError
			require.ErrorAs(t, err, &appError)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, tt.segment, appError.Details[0].Field)
		})
	}
}

/*
TestSearch_UnknownLanguageIndex: a language with no tokens simply matches
nothing.
*/
func TestSearch_UnknownLanguageIndex(t *testing.T) {
	engine := newFixtureEngine(t)

	results, err := engine.Search(context.Background(), "charmander", "de", "")

	require.NoError(t, err)
	assert.Empty(t, results)
}

/*
TestSearch_RebuildIdempotence: reloading from unchanged source data yields
identical ranked results.
*/
func TestSearch_RebuildIdempotence(t *testing.T) {
	engine := newFixtureEngine(t)

	queries := []string{"fire", "charmandr", "fire @shiny", "type:fire"}
	before := make(map[string][]search.Result)
	for _, query := range queries {
		results, err := engine.Search(context.Background(), query, "en", "")
		require.NoError(t, err)
		before[query] = results
	}

	require.NoError(t, engine.Reload(context.Background()))

	for _, query := range queries {
		results, err := engine.Search(context.Background(), query, "en", "")
		require.NoError(t, err)
		assert.Equal(t, before[query], results, "query %q", query)
	}
}

/*
TestSearch_RoundTrip: every officially-named entity is discoverable by
searching its own raw name.
*/
func TestSearch_RoundTrip(t *testing.T) {
	engine := newFixtureEngine(t)
	data := fixtureData()

	linked := make(map[int64][]int64)
	for _, link := range data.TokenEntities {
		linked[link.TokenID] = append(linked[link.TokenID], link.EntityID)
	}

	for _, token := range data.Tokens {
		if !token.IsOfficial {
			continue
		}
		results, err := engine.Search(context.Background(), token.Raw, "en", token.Domain)
		require.NoError(t, err)

		found := entityIDs(results)
		for _, entityID := range linked[token.ID] {
			assert.Contains(t, found, entityID, "token %q", token.Raw)
		}
	}
}
