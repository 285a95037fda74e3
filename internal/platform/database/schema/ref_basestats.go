package schema

// RefBaseStatsTable represents the 'ref.basestats' table.
// One row per creature entity; feeds the metric calculator.
type RefBaseStatsTable struct {
	Table    string
	EntityID string
	Attack   string
	Defense  string
	Stamina  string
}

// RefBaseStats is the schema definition for ref.basestats
var RefBaseStats = RefBaseStatsTable{
	Table:    "ref.basestats",
	EntityID: "entityid",
	Attack:   "attack",
	Defense:  "defense",
	Stamina:  "stamina",
}

func (t RefBaseStatsTable) Columns() []string {
	return []string{t.EntityID, t.Attack, t.Defense, t.Stamina}
}
