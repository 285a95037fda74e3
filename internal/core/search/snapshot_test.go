package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/core/search"
	"github.com/phamduy/lodex/internal/platform/apperr"
)

/*
TestNewSnapshot_Valid builds the full fixture and checks the stats.
*/
func TestNewSnapshot_Valid(t *testing.T) {
	snapshot, err := search.NewSnapshot(fixtureData())

	require.NoError(t, err)
	stats := snapshot.Stats()
	assert.Equal(t, 5, stats.Tokens)
	assert.Equal(t, 4, stats.Operators)
	assert.Equal(t, 3, stats.FactsEntities)
}

/*
TestNewSnapshot_Integrity: every authoring error fails the whole build with
DATA_INTEGRITY; a partially valid snapshot is never produced.
*/
func TestNewSnapshot_Integrity(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(data *search.SnapshotData)
	}{
		{"duplicate_normalized_token", func(data *search.SnapshotData) {
			data.Tokens = append(data.Tokens, search.SearchToken{
				ID: 99, LanguageCode: "en", Domain: catalog.DomainCreature,
				Raw: "Charmander", Normalized: "charmander",
			})
		}},
		{"duplicate_operator_surface", func(data *search.SnapshotData) {
			// "type" already belongs to the type operator in English.
			data.OperatorTokens = append(data.OperatorTokens, search.OperatorToken{
				OperatorKey: "shiny", LanguageCode: "en", Surface: "type", Normalized: "type",
			})
		}},
		{"link_to_unknown_token", func(data *search.SnapshotData) {
			data.TokenEntities = append(data.TokenEntities, search.TokenEntity{TokenID: 999, EntityID: 1})
		}},
		{"surface_for_unknown_operator", func(data *search.SnapshotData) {
			data.OperatorTokens = append(data.OperatorTokens, search.OperatorToken{
				OperatorKey: "ghost", LanguageCode: "en", Surface: "ghost", Normalized: "ghost",
			})
		}},
		{"token_with_unknown_domain", func(data *search.SnapshotData) {
			data.Tokens = append(data.Tokens, search.SearchToken{
				ID: 98, LanguageCode: "en", Domain: "planet", Normalized: "mars",
			})
		}},
		{"operator_with_unknown_kind", func(data *search.SnapshotData) {
			data.Operators = append(data.Operators, search.Operator{Key: "broken", Kind: "maybe"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := fixtureData()
			tt.mutate(&data)

			_, err := search.NewSnapshot(data)

			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, "DATA_INTEGRITY"))
		})
	}
}

/*
TestSnapshot_OperatorLookup resolves localized operator surfaces per
language.
*/
func TestSnapshot_OperatorLookup(t *testing.T) {
	snapshot, err := search.NewSnapshot(fixtureData())
	require.NoError(t, err)

	operator, ok := snapshot.Operator("en", "@shiny")
	require.True(t, ok)
	assert.Equal(t, "shiny", operator.Key)
	assert.Equal(t, search.ParamBoolean, operator.Kind)

	_, ok = snapshot.Operator("de", "@shiny")
	assert.False(t, ok, "surface is registered for English only")
}
