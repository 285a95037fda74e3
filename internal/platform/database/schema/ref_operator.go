package schema

// RefOperatorTable represents the 'ref.operator' table
type RefOperatorTable struct {
	Table     string
	Key       string
	Kind      string
	RefDomain string
}

// RefOperator is the schema definition for ref.operator
var RefOperator = RefOperatorTable{
	Table:     "ref.operator",
	Key:       "key",
	Kind:      "kind",
	RefDomain: "refdomain",
}

func (t RefOperatorTable) Columns() []string { return []string{t.Key, t.Kind, t.RefDomain} }

// RefOperatorTokenTable represents the 'ref.operatortoken' table.
// Rows are unique per (operatorkey, languagecode, normalized); the same
// normalized surface MAY appear under two different operators, which the
// snapshot builder rejects as a data-integrity failure.
type RefOperatorTokenTable struct {
	Table        string
	OperatorKey  string
	LanguageCode string
	Surface      string
	Normalized   string
}

// RefOperatorToken is the schema definition for ref.operatortoken
var RefOperatorToken = RefOperatorTokenTable{
	Table:        "ref.operatortoken",
	OperatorKey:  "operatorkey",
	LanguageCode: "languagecode",
	Surface:      "surface",
	Normalized:   "normalized",
}
