package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/dberr"
	"github.com/phamduy/lodex/internal/platform/validate"
	"github.com/phamduy/lodex/pkg/pagination"
)

type Service struct {
	repo   Repository
	cache  NameCache
	logger *slog.Logger
}

// NewService constructs the catalog service. The cache may be nil, in which
// case every resolution hits the repository.
func NewService(repo Repository, cache NameCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (service *Service) GetEntity(context context.Context, id int64, languageCode string) (*Entity, error) {
	entity, err := service.repo.GetEntity(context, id)
	if err != nil {
		return nil, err
	}

	// Resolve the display name for the requested language; a missing name
	// surfaces as-is rather than producing a half-populated entity.
	name, err := service.DisplayName(context, id, languageCode)
	if err != nil {
		return nil, err
	}
	entity.Name = name

	return entity, nil
}

// GetEntitiesByIDs is the batch form of [Service.GetEntity]. Unknown IDs
// are silently absent from the result; display names resolve with the same
// language fallback, served from the cache where possible.
func (service *Service) GetEntitiesByIDs(context context.Context, ids []int64, languageCode string) ([]*Entity, error) {
	v := &validate.Validator{}
	v.Custom("ids", len(ids) == 0, "At least one entity ID is required")
	v.Custom("ids", len(ids) > pagination.MaxLimit, "Too many entity IDs in one request")
	if err := v.Err(); err != nil {
		return nil, err
	}

	entities, err := service.repo.GetEntitiesByIDs(context, ids)
	if err != nil {
		return nil, err
	}

	for _, entity := range entities {
		name, err := service.DisplayName(context, entity.ID, languageCode)
		if err != nil {
			return nil, err
		}
		entity.Name = name
	}

	return entities, nil
}

func (service *Service) ListEntities(context context.Context, domain Domain, limit, offset int) ([]*Entity, int, error) {
	v := &validate.Validator{}
	if err := v.Custom("domain", !domain.Valid(), "Unknown entity domain").Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.ListEntities(context, domain, limit, offset)
}

// DisplayName resolves the localized display text for an entity.
//
// # Fallback Contract
//
// If a translation exists for (entity, language), it is returned. Otherwise
// the default-language translation is returned. If neither exists the call
// fails with NOT_FOUND — that is a data-integrity condition, logged loudly,
// and never recovered silently.
func (service *Service) DisplayName(context context.Context, entityID int64, languageCode string) (string, error) {
	v := &validate.Validator{}
	if err := v.LanguageCode("lang", languageCode).Err(); err != nil {
		return "", err
	}

	if service.cache != nil {
		if text, ok := service.cache.Get(context, entityID, languageCode); ok {
			return text, nil
		}
	}

	translation, err := service.repo.GetTranslation(context, entityID, languageCode)
	if err != nil {
		if !errors.Is(err, dberr.ErrNotFound) {
			return "", err
		}

		// Fall back to the default language.
		translation, err = service.repo.GetDefaultTranslation(context, entityID)
		if err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				// Every entity SHOULD have a default-language translation.
				// Reaching this branch means the load process broke that
				// invariant; alert rather than guess.
				service.logger.ErrorContext(context, "missing_default_translation",
					slog.Int64("entity_id", entityID),
					slog.String("requested_lang", languageCode),
				)
				return "", apperr.NotFound("Translation")
			}
			return "", err
		}
	}

	if service.cache != nil {
		service.cache.Set(context, entityID, languageCode, translation.Text)
	}

	return translation.Text, nil
}

func (service *Service) ListTranslations(context context.Context, entityID int64) ([]*Translation, error) {
	return service.repo.ListTranslations(context, entityID)
}

func (service *Service) GetBaseAttributes(context context.Context, entityID int64) (*BaseAttributes, error) {
	return service.repo.GetBaseAttributes(context, entityID)
}
