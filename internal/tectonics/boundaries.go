package tectonics

import (
	"math"
	"slices"

	"github.com/talgya/plategraph/internal/world"
)

// BoundaryType describes relative motion across a plate boundary.
type BoundaryType uint8

const (
	Convergent BoundaryType = iota // Plates approach: uplift, subduction
	Divergent                      // Plates separate: rifts, ridges
	Transform                      // Plates slide past each other
)

func (b BoundaryType) String() string {
	switch b {
	case Convergent:
		return "convergent"
	case Divergent:
		return "divergent"
	default:
		return "transform"
	}
}

// transformCosine is the |cos| between relative velocity and the seed-to-seed
// axis below which motion counts as sliding.
const transformCosine = 0.3

// Boundary is the shared edge between two plates, PlateA < PlateB.
type Boundary struct {
	PlateA int
	PlateB int
	Type   BoundaryType
	Cells  []int // Cells on either side that touch the other plate, ascending
}

// Boundaries lists every pair of adjacent plates, ordered by (PlateA, PlateB).
func Boundaries(g *PlateGraph, m *world.Mesh) []Boundary {
	type key struct{ a, b int }
	cells := make(map[key]map[int]bool)

	for c := 0; c < m.CellCount; c++ {
		pc := g.CellToPlate[c]
		for _, nb := range m.NeighborsOf(c) {
			pn := g.CellToPlate[nb]
			if pn == pc {
				continue
			}
			k := key{min(pc, pn), max(pc, pn)}
			set, ok := cells[k]
			if !ok {
				set = make(map[int]bool)
				cells[k] = set
			}
			set[c] = true
			set[nb] = true
		}
	}

	out := make([]Boundary, 0, len(cells))
	for k, set := range cells {
		b := Boundary{PlateA: k.a, PlateB: k.b, Cells: make([]int, 0, len(set))}
		for c := range set {
			b.Cells = append(b.Cells, c)
		}
		slices.Sort(b.Cells)
		b.Type = classifyBoundary(g.Plates[k.a], g.Plates[k.b], m.WrapWidth)
		out = append(out, b)
	}
	slices.SortFunc(out, func(x, y Boundary) int {
		if x.PlateA != y.PlateA {
			return x.PlateA - y.PlateA
		}
		return x.PlateB - y.PlateB
	})
	return out
}

// classifyBoundary projects relative velocity onto the axis from a's seed to b's seed.
func classifyBoundary(a, b Plate, wrapWidth float64) BoundaryType {
	rx := a.VelocityX - b.VelocityX
	ry := a.VelocityY - b.VelocityY
	dx := world.WrappedDelta(b.SeedX-a.SeedX, wrapWidth)
	dy := b.SeedY - a.SeedY

	rel := math.Hypot(rx, ry)
	axis := math.Hypot(dx, dy)
	if rel == 0 || axis == 0 {
		return Transform
	}
	cos := (rx*dx + ry*dy) / (rel * axis)
	switch {
	case cos > transformCosine:
		return Convergent
	case cos < -transformCosine:
		return Divergent
	default:
		return Transform
	}
}

// SeedSeparation returns the smallest wrapped distance between seeds of non-cap
// plates, or +Inf when fewer than two exist.
func SeedSeparation(g *PlateGraph, m *world.Mesh) float64 {
	best := math.Inf(1)
	for i, a := range g.Plates {
		if a.Role == RolePolarCap {
			continue
		}
		for _, b := range g.Plates[i+1:] {
			if b.Role == RolePolarCap {
				continue
			}
			best = math.Min(best, m.WrappedDistanceSq(a.SeedCell, b.SeedCell))
		}
	}
	return math.Sqrt(best)
}
