package tectonics

import (
	"math"

	"github.com/talgya/plategraph/internal/world"
)

// Base traversal cost per crust type. Continental interiors resist being split,
// which pushes plate boundaries offshore.
const (
	oceanicResistance     = 1.0
	continentalResistance = 3.0
)

// Resistance returns the cost of crossing a cell with the given crust type and
// normalized age. ageScale is the extra relative cost of the oldest crust.
func Resistance(t world.CrustType, age01, ageScale float64) float64 {
	base := oceanicResistance
	if t == world.CrustContinental {
		base = continentalResistance
	}
	age01 = math.Min(1, math.Max(0, age01))
	if math.IsNaN(age01) {
		age01 = 0
	}
	return base * (1 + ageScale*age01)
}

// resistanceField evaluates Resistance for every cell.
func resistanceField(crust *world.Crust, age01 []float64, ageScale float64) []float64 {
	res := make([]float64, len(crust.Type))
	for c, t := range crust.Type {
		res[c] = Resistance(t, age01[c], ageScale)
	}
	return res
}
