package metric

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
)

// AttributeSource supplies base attributes for an entity. Satisfied by the
// catalog service.
type AttributeSource interface {
	GetBaseAttributes(context context.Context, entityID int64) (*catalog.BaseAttributes, error)
}

// Service exposes rating computation over an atomically-swapped coefficient
// table snapshot.
//
// # Concurrency
//
// The table pointer is published with a single atomic swap; queries either
// see the previous complete table or the new one, never a partial load.
type Service struct {
	repo       Repository
	attributes AttributeSource
	logger     *slog.Logger

	table atomic.Pointer[Table]
}

func NewService(repo Repository, attributes AttributeSource, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		attributes: attributes,
		logger:     logger,
	}
}

// Reload fetches and validates the coefficient table, then publishes it.
//
// On a DATA_INTEGRITY failure the previous table stays in place.
func (service *Service) Reload(context context.Context) error {
	rows, err := service.repo.ListLevelCoefficients(context)
	if err != nil {
		return err
	}

	table, err := NewTable(rows)
	if err != nil {
		service.logger.ErrorContext(context, "coefficient_table_rejected", slog.Any("error", err))
		return err
	}

	service.table.Store(table)
	service.logger.InfoContext(context, "coefficient_table_loaded", slog.Int("levels", len(rows)))
	return nil
}

// Table returns the current coefficient table, or an error when none has
// been loaded yet.
func (service *Service) Table() (*Table, error) {
	table := service.table.Load()
	if table == nil {
		return nil, apperr.ServiceUnavailable("Coefficient table not loaded")
	}
	return table, nil
}

// ComputeForEntity resolves the entity's base attributes and computes its
// rating at the given level and offsets.
func (service *Service) ComputeForEntity(context context.Context, entityID int64, level float64, iv IndividualValues) (int, error) {
	table, err := service.Table()
	if err != nil {
		return 0, err
	}

	base, err := service.attributes.GetBaseAttributes(context, entityID)
	if err != nil {
		return 0, err
	}

	return Compute(*base, level, iv, table)
}
