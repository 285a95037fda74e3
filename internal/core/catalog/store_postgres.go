package catalog

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

func (repository *PostgresRepository) GetEntity(context context.Context, id int64) (*Entity, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.RefEntity.ID,
		schema.RefEntity.Domain,
		schema.RefEntity.Slug,
		schema.RefEntity.Table,
		schema.RefEntity.ID,
	)

	e := &Entity{}
	err := repository.db.QueryRow(context, query, id).Scan(&e.ID, &e.Domain, &e.Slug)
	return e, dberr.Wrap(err, "get_entity")
}

func (repository *PostgresRepository) GetEntitiesByIDs(context context.Context, ids []int64) ([]*Entity, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC;
	`,
		schema.RefEntity.ID,
		schema.RefEntity.Domain,
		schema.RefEntity.Slug,
		schema.RefEntity.Table,
		schema.RefEntity.ID,
		schema.RefEntity.ID,
	)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "get_entities_by_ids")
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		e := &Entity{}
		if err := rows.Scan(&e.ID, &e.Domain, &e.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_entity")
		}
		entities = append(entities, e)
	}

	return entities, nil
}

func (repository *PostgresRepository) ListEntities(context context.Context, domain Domain, limit, offset int) ([]*Entity, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.RefEntity.Table, schema.RefEntity.Domain)

	var total int
	if err := repository.db.QueryRow(context, countQuery, string(domain)).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_entities")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3;
	`,
		schema.RefEntity.ID,
		schema.RefEntity.Domain,
		schema.RefEntity.Slug,
		schema.RefEntity.Table,
		schema.RefEntity.Domain,
		schema.RefEntity.ID,
	)

	rows, err := repository.db.Query(context, query, string(domain), limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_entities")
	}
	defer rows.Close()

	var entities []*Entity
	for rows.Next() {
		e := &Entity{}
		if err := rows.Scan(&e.ID, &e.Domain, &e.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_entity")
		}
		entities = append(entities, e)
	}

	return entities, total, nil
}

func (repository *PostgresRepository) GetTranslation(context context.Context, entityID int64, languageCode string) (*Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2;
	`,
		schema.RefTranslation.EntityID,
		schema.RefTranslation.LanguageCode,
		schema.RefTranslation.Text,
		schema.RefTranslation.SortKey,
		schema.RefTranslation.Description,
		schema.RefTranslation.Table,
		schema.RefTranslation.EntityID,
		schema.RefTranslation.LanguageCode,
	)

	t := &Translation{}
	err := repository.db.QueryRow(context, query, entityID, languageCode).Scan(
		&t.EntityID, &t.LanguageCode, &t.Text, &t.SortKey, &t.Description,
	)
	return t, dberr.Wrap(err, "get_translation")
}

func (repository *PostgresRepository) GetDefaultTranslation(context context.Context, entityID int64) (*Translation, error) {
	// Join against the default-flagged language rather than hard-coding a code.
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s
		FROM %s t
		JOIN %s l ON l.%s = t.%s
		WHERE t.%s = $1 AND l.%s = TRUE;
	`,
		schema.RefTranslation.EntityID,
		schema.RefTranslation.LanguageCode,
		schema.RefTranslation.Text,
		schema.RefTranslation.SortKey,
		schema.RefTranslation.Description,
		schema.RefTranslation.Table,
		schema.RefLanguage.Table,
		schema.RefLanguage.Code,
		schema.RefTranslation.LanguageCode,
		schema.RefTranslation.EntityID,
		schema.RefLanguage.IsDefault,
	)

	t := &Translation{}
	err := repository.db.QueryRow(context, query, entityID).Scan(
		&t.EntityID, &t.LanguageCode, &t.Text, &t.SortKey, &t.Description,
	)
	return t, dberr.Wrap(err, "get_default_translation")
}

func (repository *PostgresRepository) ListTranslations(context context.Context, entityID int64) ([]*Translation, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC;
	`,
		schema.RefTranslation.EntityID,
		schema.RefTranslation.LanguageCode,
		schema.RefTranslation.Text,
		schema.RefTranslation.SortKey,
		schema.RefTranslation.Description,
		schema.RefTranslation.Table,
		schema.RefTranslation.EntityID,
		schema.RefTranslation.LanguageCode,
	)

	rows, err := repository.db.Query(context, query, entityID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_translations")
	}
	defer rows.Close()

	var translations []*Translation
	for rows.Next() {
		t := &Translation{}
		if err := rows.Scan(&t.EntityID, &t.LanguageCode, &t.Text, &t.SortKey, &t.Description); err != nil {
			return nil, dberr.Wrap(err, "scan_translation")
		}
		translations = append(translations, t)
	}

	return translations, nil
}

func (repository *PostgresRepository) GetBaseAttributes(context context.Context, entityID int64) (*BaseAttributes, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1;
	`,
		schema.RefBaseStats.EntityID,
		schema.RefBaseStats.Attack,
		schema.RefBaseStats.Defense,
		schema.RefBaseStats.Stamina,
		schema.RefBaseStats.Table,
		schema.RefBaseStats.EntityID,
	)

	b := &BaseAttributes{}
	err := repository.db.QueryRow(context, query, entityID).Scan(
		&b.EntityID, &b.Attack, &b.Defense, &b.Stamina,
	)
	return b, dberr.Wrap(err, "get_base_attributes")
}
