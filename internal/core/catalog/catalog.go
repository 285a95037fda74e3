/*
Package catalog manages the language-neutral reference entities and their
localized translations.

# Core Responsibility

  - Entities: creatures, abilities, and categories identified by stable IDs.
  - Localization: per-language display text with default-language fallback.
  - Attributes: base combat attributes consumed by the metric calculator.

The catalog is read-mostly: reference data is written by an out-of-band load
process, never by this service.
*/
package catalog

// Domain enumerates the entity categories a search token set can belong to.
type Domain string

const (
	DomainCreature Domain = "creature"
	DomainAbility  Domain = "ability"
	DomainCategory Domain = "category"
)

// Valid reports whether d is a known entity domain.
func (d Domain) Valid() bool {
	switch d {
	case DomainCreature, DomainAbility, DomainCategory:
		return true
	}
	return false
}

// Domains lists every known entity domain.
func Domains() []Domain {
	return []Domain{DomainCreature, DomainAbility, DomainCategory}
}

// Entity is a language-neutral catalog record. All display text lives in
// [Translation] rows; the entity itself carries only identity.
type Entity struct {
	ID     int64  `json:"id"`
	Domain Domain `json:"domain"`
	Slug   string `json:"slug"`

	// Name is the resolved display name for the requested language.
	// Populated by the service, not stored.
	Name string `json:"name,omitempty"`
}

// Translation is the localized display text for an entity in one language.
// At most one row exists per (entity, language).
type Translation struct {
	EntityID     int64   `json:"entity_id"`
	LanguageCode string  `json:"language_code"`
	Text         string  `json:"text"`
	SortKey      *string `json:"sort_key,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// BaseAttributes are the per-creature combat attributes the metric formula
// combines with individual values and the level coefficient.
type BaseAttributes struct {
	EntityID int64 `json:"entity_id"`
	Attack   int   `json:"attack"`
	Defense  int   `json:"defense"`
	Stamina  int   `json:"stamina"`
}
