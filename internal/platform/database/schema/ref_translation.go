package schema

// RefTranslationTable represents the 'ref.translation' table.
// At most one row exists per (entityid, languagecode).
type RefTranslationTable struct {
	Table        string
	EntityID     string
	LanguageCode string
	Text         string
	SortKey      string
	Description  string
}

// RefTranslation is the schema definition for ref.translation
var RefTranslation = RefTranslationTable{
	Table:        "ref.translation",
	EntityID:     "entityid",
	LanguageCode: "languagecode",
	Text:         "text",
	SortKey:      "sortkey",
	Description:  "description",
}

func (t RefTranslationTable) Columns() []string {
	return []string{t.EntityID, t.LanguageCode, t.Text, t.SortKey, t.Description}
}
