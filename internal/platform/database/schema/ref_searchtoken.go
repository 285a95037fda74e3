package schema

// RefSearchTokenTable represents the 'ref.searchtoken' table.
// The normalized form is unique within (languagecode, domain).
type RefSearchTokenTable struct {
	Table        string
	ID           string
	LanguageCode string
	Domain       string
	Raw          string
	Normalized   string
	Priority     string
	IsOfficial   string
}

// RefSearchToken is the schema definition for ref.searchtoken
var RefSearchToken = RefSearchTokenTable{
	Table:        "ref.searchtoken",
	ID:           "id",
	LanguageCode: "languagecode",
	Domain:       "domain",
	Raw:          "raw",
	Normalized:   "normalized",
	Priority:     "priority",
	IsOfficial:   "isofficial",
}

func (t RefSearchTokenTable) Columns() []string {
	return []string{t.ID, t.LanguageCode, t.Domain, t.Raw, t.Normalized, t.Priority, t.IsOfficial}
}

// RefSearchTokenEntityTable represents the 'ref.searchtokenentity' join table.
// An alias may denote several entities; an entity may have several aliases.
type RefSearchTokenEntityTable struct {
	Table    string
	TokenID  string
	EntityID string
}

// RefSearchTokenEntity is the schema definition for ref.searchtokenentity
var RefSearchTokenEntity = RefSearchTokenEntityTable{
	Table:    "ref.searchtokenentity",
	TokenID:  "tokenid",
	EntityID: "entityid",
}
