package schema

// RefLevelCoefficientTable represents the 'ref.levelcoefficient' table
type RefLevelCoefficientTable struct {
	Table       string
	Level       string
	Coefficient string
}

// RefLevelCoefficient is the schema definition for ref.levelcoefficient
var RefLevelCoefficient = RefLevelCoefficientTable{
	Table:       "ref.levelcoefficient",
	Level:       "level",
	Coefficient: "coefficient",
}

func (t RefLevelCoefficientTable) Columns() []string { return []string{t.Level, t.Coefficient} }
