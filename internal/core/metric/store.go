package metric

import "context"

// Repository defines the data access contract for the coefficient table.
type Repository interface {
	// ListLevelCoefficients returns every row ordered by level ascending.
	ListLevelCoefficients(context context.Context) ([]LevelCoefficient, error)
}
