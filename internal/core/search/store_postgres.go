package search

import (
	"context"
	"fmt"
	"strings"

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

func (repository *PostgresRepository) ListSearchTokens(context context.Context) ([]SearchToken, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC;
	`,
		strings.Join(schema.RefSearchToken.Columns(), ", "),
		schema.RefSearchToken.Table,
		schema.RefSearchToken.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_search_tokens")
	}
	defer rows.Close()

	var tokens []SearchToken
	for rows.Next() {
		var token SearchToken
		if err := rows.Scan(
			&token.ID, &token.LanguageCode, &token.Domain, &token.Raw,
			&token.Normalized, &token.Priority, &token.IsOfficial,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_search_token")
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func (repository *PostgresRepository) ListTokenEntities(context context.Context) ([]TokenEntity, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC;
	`,
		schema.RefSearchTokenEntity.TokenID,
		schema.RefSearchTokenEntity.EntityID,
		schema.RefSearchTokenEntity.Table,
		schema.RefSearchTokenEntity.TokenID,
		schema.RefSearchTokenEntity.EntityID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_token_entities")
	}
	defer rows.Close()

	var links []TokenEntity
	for rows.Next() {
		var link TokenEntity
		if err := rows.Scan(&link.TokenID, &link.EntityID); err != nil {
			return nil, dberr.Wrap(err, "scan_token_entity")
		}
		links = append(links, link)
	}

	return links, nil
}

func (repository *PostgresRepository) ListOperators(context context.Context) ([]Operator, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, '')
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefOperator.Key,
		schema.RefOperator.Kind,
		schema.RefOperator.RefDomain,
		schema.RefOperator.Table,
		schema.RefOperator.Key,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_operators")
	}
	defer rows.Close()

	var operators []Operator
	for rows.Next() {
		var operator Operator
		if err := rows.Scan(&operator.Key, &operator.Kind, &operator.RefDomain); err != nil {
			return nil, dberr.Wrap(err, "scan_operator")
		}
		operators = append(operators, operator)
	}

	return operators, nil
}

func (repository *PostgresRepository) ListOperatorTokens(context context.Context) ([]OperatorToken, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC;
	`,
		schema.RefOperatorToken.OperatorKey,
		schema.RefOperatorToken.LanguageCode,
		schema.RefOperatorToken.Surface,
		schema.RefOperatorToken.Normalized,
		schema.RefOperatorToken.Table,
		schema.RefOperatorToken.OperatorKey,
		schema.RefOperatorToken.Normalized,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_operator_tokens")
	}
	defer rows.Close()

	var surfaces []OperatorToken
	for rows.Next() {
		var surface OperatorToken
		if err := rows.Scan(
			&surface.OperatorKey, &surface.LanguageCode,
			&surface.Surface, &surface.Normalized,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_operator_token")
		}
		surfaces = append(surfaces, surface)
	}

	return surfaces, nil
}

func (repository *PostgresRepository) ListEntityFacts(context context.Context) ([]EntityFact, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC, %s ASC;
	`,
		schema.RefEntityFact.EntityID,
		schema.RefEntityFact.Domain,
		schema.RefEntityFact.Key,
		schema.RefEntityFact.Value,
		schema.RefEntityFact.Table,
		schema.RefEntityFact.EntityID,
		schema.RefEntityFact.Key,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_entity_facts")
	}
	defer rows.Close()

	var facts []EntityFact
	for rows.Next() {
		var fact EntityFact
		if err := rows.Scan(&fact.EntityID, &fact.Domain, &fact.Key, &fact.Value); err != nil {
			return nil, dberr.Wrap(err, "scan_entity_fact")
		}
		facts = append(facts, fact)
	}

	return facts, nil
}
