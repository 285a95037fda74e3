/*
Package metric computes the derived power rating for a creature entity.

# Formula

The rating combines base attributes with individual-value offsets, scaled by
the squared per-level coefficient:

	floor((Attack+ivA) * sqrt(Defense+ivD) * sqrt(Stamina+ivS) * c² / 10)

The result is clamped to a documented minimum so that even degenerate inputs
yield a usable rating, never zero or negative. Coefficients come from a
precomputed per-level table; a level outside the table is an OUT_OF_RANGE
failure, never an extrapolated guess.
*/
package metric

import (
	"fmt"
	"math"
	"sort"

	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/platform/apperr"
	"github.com/phamduy/lodex/internal/platform/constants"
	"github.com/phamduy/lodex/internal/platform/validate"
)

// normalizationDivisor is the fixed divisor in the rating formula.
const normalizationDivisor = 10.0

// LevelCoefficient is one row of the per-level scaling table.
type LevelCoefficient struct {
	Level       float64 `json:"level"`
	Coefficient float64 `json:"coefficient"`
}

// IndividualValues are the per-specimen offsets added to base attributes.
// Each value is bounded to [constants.IVMin, constants.IVMax].
type IndividualValues struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Stamina int `json:"stamina"`
}

// Table is an immutable level → coefficient lookup.
//
// Levels are keyed in half-steps (level*2) to avoid float map keys.
type Table struct {
	coefficients map[int]float64
}

// levelKey converts a level to its half-step key, or false if the level is
// not on the half-step grid.
func levelKey(level float64) (int, bool) {
	doubled := level * 2
	if doubled != math.Trunc(doubled) {
		return 0, false
	}
	return int(doubled), true
}

// NewTable validates and indexes the coefficient rows.
//
// # Integrity
//
// Every level from MetricMinLevel to MetricMaxLevel in half-steps must be
// present exactly once. Gaps, duplicates, off-grid levels, and non-positive
// coefficients are DATA_INTEGRITY failures: the caller must abort its build
// rather than serve a partial table.
func NewTable(rows []LevelCoefficient) (*Table, error) {
	coefficients := make(map[int]float64, len(rows))

	for _, row := range rows {
		key, onGrid := levelKey(row.Level)
		if !onGrid {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("coefficient level %g is not on the half-step grid", row.Level), nil)
		}
		if _, exists := coefficients[key]; exists {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("duplicate coefficient for level %g", row.Level), nil)
		}
		if row.Coefficient <= 0 {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("non-positive coefficient %g for level %g", row.Coefficient, row.Level), nil)
		}
		coefficients[key] = row.Coefficient
	}

	minKey, _ := levelKey(constants.MetricMinLevel)
	maxKey, _ := levelKey(constants.MetricMaxLevel)
	for key := minKey; key <= maxKey; key++ {
		if _, ok := coefficients[key]; !ok {
			return nil, apperr.DataIntegrity(
				fmt.Sprintf("missing coefficient for level %g", float64(key)/2), nil)
		}
	}

	return &Table{coefficients: coefficients}, nil
}

// Coefficient returns the scaling factor for a level, or OUT_OF_RANGE if the
// level has no table entry.
func (t *Table) Coefficient(level float64) (float64, error) {
	key, onGrid := levelKey(level)
	if !onGrid {
		return 0, apperr.OutOfRange(fmt.Sprintf("Level %g is not a supported half-step", level))
	}

	c, ok := t.coefficients[key]
	if !ok {
		return 0, apperr.OutOfRange(fmt.Sprintf("Level %g is outside the supported range %g-%g",
			level, constants.MetricMinLevel, constants.MetricMaxLevel))
	}
	return c, nil
}

// Levels returns the supported levels in ascending order.
func (t *Table) Levels() []float64 {
	levels := make([]float64, 0, len(t.coefficients))
	for key := range t.coefficients {
		levels = append(levels, float64(key)/2)
	}
	sort.Float64s(levels)
	return levels
}

// Compute is the pure rating function.
//
// It never touches storage: base attributes, level, offsets, and the
// coefficient table are all supplied by the caller.
func Compute(base catalog.BaseAttributes, level float64, iv IndividualValues, table *Table) (int, error) {
	v := &validate.Validator{}
	err := v.
		Range("iv_attack", iv.Attack, constants.IVMin, constants.IVMax).
		Range("iv_defense", iv.Defense, constants.IVMin, constants.IVMax).
		Range("iv_stamina", iv.Stamina, constants.IVMin, constants.IVMax).
		Err()
	if err != nil {
		return 0, err
	}

	coefficient, err := table.Coefficient(level)
	if err != nil {
		return 0, err
	}

	attack := float64(base.Attack + iv.Attack)
	defense := float64(base.Defense + iv.Defense)
	stamina := float64(base.Stamina + iv.Stamina)

	raw := attack * math.Sqrt(defense) * math.Sqrt(stamina) * coefficient * coefficient / normalizationDivisor
	rating := int(math.Floor(raw))

	// The floor is deliberate: degenerate inputs still yield a usable
	// minimum rather than zero.
	if rating < constants.MetricMinValue {
		rating = constants.MetricMinValue
	}

	return rating, nil
}
