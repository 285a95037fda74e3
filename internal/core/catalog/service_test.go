package catalog_test

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/dberr"
	"github.com/phamduy/lodex/pkg/pointer"
)

// fakeRepository serves translations from in-memory maps.
type fakeRepository struct {
	entities     map[int64]*catalog.Entity
	translations map[int64]map[string]*catalog.Translation // entity -> lang -> row
	defaultLang  string
	attributes   map[int64]*catalog.BaseAttributes
}

func (f *fakeRepository) GetEntity(_ context.Context, id int64) (*catalog.Entity, error) {
	if e, ok := f.entities[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetEntitiesByIDs(_ context.Context, ids []int64) ([]*catalog.Entity, error) {
	var matched []*catalog.Entity
	for _, id := range ids {
		if e, ok := f.entities[id]; ok {
			copied := *e
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (f *fakeRepository) ListEntities(_ context.Context, domain catalog.Domain, limit, offset int) ([]*catalog.Entity, int, error) {
	var matched []*catalog.Entity
	for _, e := range f.entities {
		if e.Domain == domain {
			matched = append(matched, e)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepository) GetTranslation(_ context.Context, entityID int64, lang string) (*catalog.Translation, error) {
	if t, ok := f.translations[entityID][lang]; ok {
		return t, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetDefaultTranslation(ctx context.Context, entityID int64) (*catalog.Translation, error) {
	return f.GetTranslation(ctx, entityID, f.defaultLang)
}

func (f *fakeRepository) ListTranslations(_ context.Context, entityID int64) ([]*catalog.Translation, error) {
	var rows []*catalog.Translation
	for _, t := range f.translations[entityID] {
		rows = append(rows, t)
	}
	return rows, nil
}

func (f *fakeRepository) GetBaseAttributes(_ context.Context, entityID int64) (*catalog.BaseAttributes, error) {
	if b, ok := f.attributes[entityID]; ok {
		return b, nil
	}
	return nil, dberr.ErrNotFound
}

// memoryCache records Get/Set traffic for cache behavior assertions.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, entityID int64, lang string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	text, ok := c.items[cacheKey(entityID, lang)]
	if ok {
		c.hits++
	}
	return text, ok
}

func (c *memoryCache) Set(_ context.Context, entityID int64, lang string, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[cacheKey(entityID, lang)] = text
}

func cacheKey(entityID int64, lang string) string {
	return strconv.FormatInt(entityID, 10) + ":" + lang
}

func newFixtureRepository() *fakeRepository {
	return &fakeRepository{
		defaultLang: "en",
		entities: map[int64]*catalog.Entity{
			4: {ID: 4, Domain: catalog.DomainCreature, Slug: "charmander"},
			7: {ID: 7, Domain: catalog.DomainCreature, Slug: "squirtle"},
		},
		translations: map[int64]map[string]*catalog.Translation{
			4: {
				"en": {EntityID: 4, LanguageCode: "en", Text: "Charmander"},
				"de": {EntityID: 4, LanguageCode: "de", Text: "Glumanda", SortKey: pointer.To("glumanda")},
			},
			// Entity 7 has only the default-language translation.
			7: {
				"en": {EntityID: 7, LanguageCode: "en", Text: "Squirtle"},
			},
		},
		attributes: map[int64]*catalog.BaseAttributes{
			4: {EntityID: 4, Attack: 116, Defense: 93, Stamina: 118},
		},
	}
}

func newTestService(repo catalog.Repository, cache catalog.NameCache) *catalog.Service {
	return catalog.NewService(repo, cache, slog.Default())
}

/*
TestDisplayName_ExactLanguage returns the requested language when present.
*/
func TestDisplayName_ExactLanguage(t *testing.T) {
	service := newTestService(newFixtureRepository(), nil)

	name, err := service.DisplayName(context.Background(), 4, "de")

	require.NoError(t, err)
	assert.Equal(t, "Glumanda", name)
}

/*
TestDisplayName_FallbackToDefault falls back to the default language when the
requested one is missing, and never fails while a default translation exists.
*/
func TestDisplayName_FallbackToDefault(t *testing.T) {
	service := newTestService(newFixtureRepository(), nil)

	tests := []struct {
		name string
		lang string
	}{
		{"missing_german", "de"},
		{"missing_japanese", "ja"},
		{"missing_regional", "pt-br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := service.DisplayName(context.Background(), 7, tt.lang)

			require.NoError(t, err)
			assert.Equal(t, "Squirtle", name)
		})
	}
}

/*
TestDisplayName_NoTranslationAtAll surfaces NOT_FOUND when neither the
requested nor the default translation exists (a data-integrity condition).
*/
func TestDisplayName_NoTranslationAtAll(t *testing.T) {
	repo := newFixtureRepository()
	repo.translations[7] = map[string]*catalog.Translation{} // strip everything
	service := newTestService(repo, nil)

	_, err := service.DisplayName(context.Background(), 7, "en")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"))
}

/*
TestDisplayName_InvalidLanguage rejects malformed language codes before any
repository access.
*/
func TestDisplayName_InvalidLanguage(t *testing.T) {
	service := newTestService(newFixtureRepository(), nil)

	_, err := service.DisplayName(context.Background(), 4, "NOT A LANG")

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestDisplayName_CacheReadThrough: the second resolution is served from cache.
*/
func TestDisplayName_CacheReadThrough(t *testing.T) {
	cache := newMemoryCache()
	service := newTestService(newFixtureRepository(), cache)

	first, err := service.DisplayName(context.Background(), 4, "de")
	require.NoError(t, err)

	second, err := service.DisplayName(context.Background(), 4, "de")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

/*
TestGetEntitiesByIDs resolves a batch with names; unknown IDs are simply
absent and an empty batch is rejected.
*/
func TestGetEntitiesByIDs(t *testing.T) {
	service := newTestService(newFixtureRepository(), nil)

	entities, err := service.GetEntitiesByIDs(context.Background(), []int64{7, 4, 999}, "de")
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, int64(4), entities[0].ID)
	assert.Equal(t, "Glumanda", entities[0].Name)
	assert.Equal(t, int64(7), entities[1].ID)
	assert.Equal(t, "Squirtle", entities[1].Name, "falls back to the default language")

	_, err = service.GetEntitiesByIDs(context.Background(), nil, "en")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
}

/*
TestGetEntity_ResolvesName populates the entity's display name on read.
*/
func TestGetEntity_ResolvesName(t *testing.T) {
	service := newTestService(newFixtureRepository(), nil)

	entity, err := service.GetEntity(context.Background(), 4, "de")

	require.NoError(t, err)
	assert.Equal(t, "Glumanda", entity.Name)
	assert.Equal(t, catalog.DomainCreature, entity.Domain)
}
