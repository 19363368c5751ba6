// Crust generation using layered simplex noise.
// Noise is sampled on a cylinder so the continental pattern wraps with the mesh.
package world

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// CrustType classifies a cell's crust.
type CrustType uint8

const (
	CrustOceanic     CrustType = 0 // Thin, dense, young
	CrustContinental CrustType = 1 // Thick, buoyant, old
)

// String returns a human-readable name for a crust type.
func (t CrustType) String() string {
	switch t {
	case CrustOceanic:
		return "oceanic"
	case CrustContinental:
		return "continental"
	default:
		return "unknown"
	}
}

// Crust holds per-cell crust classification, parallel to a Mesh.
type Crust struct {
	Type []CrustType
	Age  []float64 // Arbitrary non-negative units; see NormalizedAge.
}

// Validate checks that the crust matches a mesh of cellCount cells.
func (c *Crust) Validate(cellCount int) error {
	if len(c.Type) != cellCount || len(c.Age) != cellCount {
		return fmt.Errorf("crust has %d types and %d ages, want %d", len(c.Type), len(c.Age), cellCount)
	}
	for i, t := range c.Type {
		if t != CrustOceanic && t != CrustContinental {
			return fmt.Errorf("cell %d has unknown crust type %d", i, t)
		}
		if math.IsNaN(c.Age[i]) || math.IsInf(c.Age[i], 0) {
			return fmt.Errorf("cell %d has non-finite crust age", i)
		}
	}
	return nil
}

// NormalizedAge rescales ages to [0, 1] by the oldest cell. Negative ages clamp to 0.
func (c *Crust) NormalizedAge() []float64 {
	maxAge := 0.0
	for _, a := range c.Age {
		maxAge = math.Max(maxAge, a)
	}
	out := make([]float64, len(c.Age))
	if maxAge <= 0 {
		return out
	}
	for i, a := range c.Age {
		out[i] = math.Max(0, a) / maxAge
	}
	return out
}

// CrustConfig holds crust generation parameters.
type CrustConfig struct {
	Seed             int64   `yaml:"seed"`
	ContinentalLevel float64 `yaml:"continental_level"` // Noise threshold above which crust is continental (0.0–1.0)
	MaxAge           float64 `yaml:"max_age"`           // Age of the oldest possible crust
	Frequency        float64 `yaml:"frequency"`         // Base noise frequency per cell
}

// DefaultCrustConfig returns a reasonable starting configuration (~35% continental).
func DefaultCrustConfig() CrustConfig {
	return CrustConfig{
		Seed:             1,
		ContinentalLevel: 0.55,
		MaxAge:           200,
		Frequency:        0.08,
	}
}

// GenerateCrust classifies every cell of the mesh as oceanic or continental and assigns an age.
func GenerateCrust(m *Mesh, cfg CrustConfig) *Crust {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	ageNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	// Cylinder radius chosen so one unit of siteX spans one unit of arc.
	radius := m.WrapWidth / (2 * math.Pi)

	crust := &Crust{
		Type: make([]CrustType, m.CellCount),
		Age:  make([]float64, m.CellCount),
	}
	for c := 0; c < m.CellCount; c++ {
		theta := 2 * math.Pi * m.SiteX[c] / m.WrapWidth
		x := math.Cos(theta) * radius
		z := math.Sin(theta) * radius
		y := m.SiteY[c]

		elev := octaveNoise(elevNoise, x, y, z, 4, cfg.Frequency, 0.5)
		age := octaveNoise(ageNoise, x, y, z, 2, cfg.Frequency*1.5, 0.5)

		if elev > cfg.ContinentalLevel {
			crust.Type[c] = CrustContinental
			// Continental cores are old; margins are younger.
			crust.Age[c] = cfg.MaxAge * (0.4 + 0.6*age)
		} else {
			crust.Type[c] = CrustOceanic
			crust.Age[c] = cfg.MaxAge * 0.6 * age
		}
	}
	return crust
}

// UniformCrust returns crust of a single type and age for every cell.
func UniformCrust(cellCount int, t CrustType, age float64) *Crust {
	crust := &Crust{
		Type: make([]CrustType, cellCount),
		Age:  make([]float64, cellCount),
	}
	for i := range crust.Type {
		crust.Type[i] = t
		crust.Age[i] = age
	}
	return crust
}

// ContinentalShare returns the fraction of cells with continental crust.
func ContinentalShare(c *Crust) float64 {
	if len(c.Type) == 0 {
		return 0
	}
	n := 0
	for _, t := range c.Type {
		if t == CrustContinental {
			n++
		}
	}
	return float64(n) / float64(len(c.Type))
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y, z float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
