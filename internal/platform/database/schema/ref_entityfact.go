package schema

// RefEntityFactTable represents the 'ref.entityfact' table.
// Generic per-entity attribute rows evaluated by operator predicates.
type RefEntityFactTable struct {
	Table    string
	EntityID string
	Domain   string
	Key      string
	Value    string
}

// RefEntityFact is the schema definition for ref.entityfact
var RefEntityFact = RefEntityFactTable{
	Table:    "ref.entityfact",
	EntityID: "entityid",
	Domain:   "domain",
	Key:      "key",
	Value:    "value",
}
