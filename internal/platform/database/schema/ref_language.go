package schema

// RefLanguageTable represents the 'ref.language' table
type RefLanguageTable struct {
	Table      string
	ID         string
	Code       string
	Name       string
	NativeName string
	IsDefault  string
	IsRTL      string
}

// RefLanguage is the schema definition for ref.language
var RefLanguage = RefLanguageTable{
	Table:      "ref.language",
	ID:         "id",
	Code:       "code",
	Name:       "name",
	NativeName: "nativename",
	IsDefault:  "isdefault",
	IsRTL:      "isrtl",
}

func (t RefLanguageTable) Columns() []string {
	return []string{t.ID, t.Code, t.Name, t.NativeName, t.IsDefault, t.IsRTL}
}
