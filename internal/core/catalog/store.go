package catalog

import "context"

// Repository defines the data access contract for entities and translations.
//
// All methods are reads; the engine never mutates reference data.
type Repository interface {
	GetEntity(context context.Context, id int64) (*Entity, error)
	GetEntitiesByIDs(context context.Context, ids []int64) ([]*Entity, error)
	ListEntities(context context.Context, domain Domain, limit, offset int) ([]*Entity, int, error)

	// GetTranslation returns the translation for (entity, language), or
	// dberr.ErrNotFound when none exists.
	GetTranslation(context context.Context, entityID int64, languageCode string) (*Translation, error)

	// GetDefaultTranslation returns the entity's translation in the
	// default-flagged language.
	GetDefaultTranslation(context context.Context, entityID int64) (*Translation, error)

	ListTranslations(context context.Context, entityID int64) ([]*Translation, error)

	GetBaseAttributes(context context.Context, entityID int64) (*BaseAttributes, error)
}

// NameCache is the volatile cache for resolved display names.
//
// Implementations must treat failures as misses: the cache is an
// optimization, never a correctness dependency.
type NameCache interface {
	Get(context context.Context, entityID int64, languageCode string) (string, bool)
	Set(context context.Context, entityID int64, languageCode string, text string)
}
