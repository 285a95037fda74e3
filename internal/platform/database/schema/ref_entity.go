package schema

// RefEntityTable represents the 'ref.entity' table
type RefEntityTable struct {
	Table  string
	ID     string
	Domain string
	Slug   string
}

// RefEntity is the schema definition for ref.entity
var RefEntity = RefEntityTable{
	Table:  "ref.entity",
	ID:     "id",
	Domain: "domain",
	Slug:   "slug",
}

func (t RefEntityTable) Columns() []string { return []string{t.ID, t.Domain, t.Slug} }
