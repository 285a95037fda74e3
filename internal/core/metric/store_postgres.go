package metric

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamduy/lodex/internal/platform/database/schema"
	"github.com/phamduy/lodex/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListLevelCoefficients(context context.Context) ([]LevelCoefficient, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefLevelCoefficient.Level,
		schema.RefLevelCoefficient.Coefficient,
		schema.RefLevelCoefficient.Table,
		schema.RefLevelCoefficient.Level,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_level_coefficients")
	}
	defer rows.Close()

	var coefficients []LevelCoefficient
	for rows.Next() {
		var c LevelCoefficient
		if err := rows.Scan(&c.Level, &c.Coefficient); err != nil {
			return nil, dberr.Wrap(err, "scan_level_coefficient")
		}
		coefficients = append(coefficients, c)
	}

	return coefficients, nil
}
