package search

import "context"

// Repository defines the data access contract for snapshot builds. All
// reads; the engine never writes reference data.
type Repository interface {
	ListSearchTokens(context context.Context) ([]SearchToken, error)
	ListTokenEntities(context context.Context) ([]TokenEntity, error)
	ListOperators(context context.Context) ([]Operator, error)
	ListOperatorTokens(context context.Context) ([]OperatorToken, error)
	ListEntityFacts(context context.Context) ([]EntityFact, error)
}
