package tectonics

import (
	"fmt"
	"math"
)

// Config holds plate synthesis parameters.
type Config struct {
	// Plate count scaling: round(PlateCount * (cells/ReferenceArea)^PlateScalePower), at least 2.
	PlateCount      int     `yaml:"plate_count"`
	PlateScalePower float64 `yaml:"plate_scale_power"`
	ReferenceArea   float64 `yaml:"reference_area"` // In cells

	CapFraction            float64 `yaml:"cap_fraction"`             // Share of the Y span claimed by each polar cap
	MicroplateBandFraction float64 `yaml:"microplate_band_fraction"` // Share of the Y span open to polar microplates
	MicroplatesPerPole     int     `yaml:"microplates_per_pole"`
	MicroplateMinArea      int     `yaml:"microplate_min_area"` // Cells locked to each microplate before the sweep

	MajorShare      float64 `yaml:"major_share"`      // Fraction of tectonic plates that are major
	SeparationScale float64 `yaml:"separation_scale"` // Multiplier on sqrt(area/plates)
	SeedAttempts    int     `yaml:"seed_attempts"`
	SeedMinAttempts int     `yaml:"seed_min_attempts"` // Draws scored before an early stop is allowed

	WeightBase    float64 `yaml:"weight_base"`
	AgeResistance float64 `yaml:"age_resistance"` // Extra resistance of the oldest crust, relative

	CapSpeed              float64 `yaml:"cap_speed"`
	CapSpeedJitter        float64 `yaml:"cap_speed_jitter"` // Relative
	CapRotation           float64 `yaml:"cap_rotation"`
	MicroSpeed            float64 `yaml:"micro_speed"`
	MicroHeadingJitterDeg float64 `yaml:"micro_heading_jitter_deg"`
	MicroRotation         float64 `yaml:"micro_rotation"`
	TectonicSpeedBase     float64 `yaml:"tectonic_speed_base"`
	TectonicSpeedRange    float64 `yaml:"tectonic_speed_range"`
	TectonicRotation      float64 `yaml:"tectonic_rotation"`
}

// DefaultConfig returns parameters tuned for an 80x50 strategy map.
func DefaultConfig() Config {
	return Config{
		PlateCount:      12,
		PlateScalePower: 0.5,
		ReferenceArea:   4000,

		CapFraction:            0.08,
		MicroplateBandFraction: 0.2,
		MicroplatesPerPole:     1,
		MicroplateMinArea:      12,

		MajorShare:      0.4,
		SeparationScale: 0.5,
		SeedAttempts:    64,
		SeedMinAttempts: 8,

		WeightBase:    1.0,
		AgeResistance: 0.5,

		CapSpeed:              0.6,
		CapSpeedJitter:        0.15,
		CapRotation:           0.02,
		MicroSpeed:            0.4,
		MicroHeadingJitterDeg: 25,
		MicroRotation:         0.05,
		TectonicSpeedBase:     0.5,
		TectonicSpeedRange:    1.0,
		TectonicRotation:      0.15,
	}
}

// SmallTestConfig returns a configuration for tiny meshes: no scaling, no microplates.
func SmallTestConfig(plates int) Config {
	cfg := DefaultConfig()
	cfg.PlateCount = plates
	cfg.PlateScalePower = 0
	cfg.MicroplatesPerPole = 0
	cfg.CapFraction = 0.1
	return cfg
}

// ScaledPlateCount applies area scaling to the baseline plate count.
func (c Config) ScaledPlateCount(cellCount int) int {
	n := float64(c.PlateCount)
	if c.PlateScalePower != 0 && c.ReferenceArea > 0 {
		n *= math.Pow(float64(cellCount)/c.ReferenceArea, c.PlateScalePower)
	}
	return max(2, int(math.Round(n)))
}

// Normalize validates the configuration against a mesh of cellCount cells and
// returns a copy whose PlateCount is the scaled count.
func (c Config) Normalize(cellCount int) (Config, error) {
	switch {
	case c.PlateCount < 1:
		return c, fmt.Errorf("%w: plate count %d", ErrConfig, c.PlateCount)
	case !(c.CapFraction > 0 && c.CapFraction <= 0.5):
		return c, fmt.Errorf("%w: cap fraction %v outside (0, 0.5]", ErrConfig, c.CapFraction)
	case c.MicroplatesPerPole < 0:
		return c, fmt.Errorf("%w: negative microplate count %d", ErrConfig, c.MicroplatesPerPole)
	case c.MicroplatesPerPole > 0 && !(c.MicroplateBandFraction > c.CapFraction && c.MicroplateBandFraction <= 0.5):
		return c, fmt.Errorf("%w: microplate band fraction %v must lie in (cap fraction %v, 0.5]",
			ErrConfig, c.MicroplateBandFraction, c.CapFraction)
	case c.MicroplatesPerPole > 0 && c.MicroplateMinArea < 1:
		return c, fmt.Errorf("%w: microplate min area %d", ErrConfig, c.MicroplateMinArea)
	case c.MajorShare < 0 || c.MajorShare > 1:
		return c, fmt.Errorf("%w: major share %v outside [0, 1]", ErrConfig, c.MajorShare)
	case c.SeedAttempts < 1:
		return c, fmt.Errorf("%w: seed attempts %d", ErrConfig, c.SeedAttempts)
	case !(c.WeightBase > 0):
		return c, fmt.Errorf("%w: weight base %v", ErrConfig, c.WeightBase)
	case c.AgeResistance < 0 || math.IsNaN(c.AgeResistance):
		return c, fmt.Errorf("%w: age resistance %v", ErrConfig, c.AgeResistance)
	}

	out := c
	out.PlateCount = c.ScaledPlateCount(cellCount)
	if out.PlateCount > cellCount {
		return c, fmt.Errorf("%w: %d plates requested for %d cells", ErrConfig, out.PlateCount, cellCount)
	}
	return out, nil
}
