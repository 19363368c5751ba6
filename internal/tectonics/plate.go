// Package tectonics partitions a wrapped terrain mesh into tectonic plates.
//
// Synthesize is a pure function of (mesh, crust, seed, config): it classifies polar
// bands, places one seed per plate, pre-locks microplate territory, then runs a
// multi-source weighted shortest-path sweep so every cell joins the plate that
// reaches it most cheaply. Plate kinematics decorate the finished partition.
package tectonics

import "math"

// Role is the part a plate plays in the map.
type Role uint8

const (
	RoleTectonic        Role = iota // Ordinary plate placed by sampling
	RolePolarCap                    // One per pole, owns its cap band
	RolePolarMicroplate             // Small plate carved next to a cap
)

func (r Role) String() string {
	switch r {
	case RoleTectonic:
		return "tectonic"
	case RolePolarCap:
		return "polar-cap"
	case RolePolarMicroplate:
		return "polar-microplate"
	default:
		return "unknown"
	}
}

// Kind sizes a plate: major plates grow more readily during the sweep.
type Kind uint8

const (
	KindMajor Kind = iota
	KindMinor
)

func (k Kind) String() string {
	if k == KindMajor {
		return "major"
	}
	return "minor"
}

// Pole names the hemisphere of a polar plate. North is the minimum-Y edge.
type Pole uint8

const (
	PoleNone Pole = iota
	PoleNorth
	PoleSouth
)

func (p Pole) String() string {
	switch p {
	case PoleNorth:
		return "north"
	case PoleSouth:
		return "south"
	default:
		return "none"
	}
}

// Plate is the immutable descriptor of one plate.
type Plate struct {
	ID       int  `json:"id"`
	Role     Role `json:"role"`
	Kind     Kind `json:"kind"`
	Pole     Pole `json:"pole"`
	SeedCell int  `json:"seed_cell"`

	SeedX float64 `json:"seed_x"`
	SeedY float64 `json:"seed_y"`

	Weight    float64 `json:"weight"` // Divides edge cost during the sweep
	VelocityX float64 `json:"velocity_x"`
	VelocityY float64 `json:"velocity_y"`
	Rotation  float64 `json:"rotation"`
}

// Speed returns the magnitude of the drift vector.
func (p Plate) Speed() float64 {
	return math.Hypot(p.VelocityX, p.VelocityY)
}

// PlateGraph is the result of synthesis: every cell's plate plus the plate list.
type PlateGraph struct {
	CellToPlate   []int   `json:"cell_to_plate"`
	Plates        []Plate `json:"plates"`
	MinSeparation float64 `json:"min_separation"` // Seed spacing target used for non-cap seeds
}

// Sizes returns the number of cells owned by each plate.
func (g *PlateGraph) Sizes() []int {
	sizes := make([]int, len(g.Plates))
	for _, p := range g.CellToPlate {
		if p >= 0 && p < len(sizes) {
			sizes[p]++
		}
	}
	return sizes
}

// CountRole returns how many plates have the given role.
func (g *PlateGraph) CountRole(r Role) int {
	n := 0
	for _, p := range g.Plates {
		if p.Role == r {
			n++
		}
	}
	return n
}
