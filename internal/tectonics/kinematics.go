package tectonics

import (
	"math"

	"github.com/talgya/plategraph/internal/entropy"
)

// drift is a plate's kinematic state.
type drift struct {
	vx, vy, rotation float64
}

// plateDrift derives a drift vector and rotation from the plate's role.
// It reads only the role and pole, never the partition.
func plateDrift(spec plateSpec, cfg Config, rng *entropy.Source) drift {
	switch spec.role {
	case RolePolarCap:
		// Caps slide along their pole: north eastward, south westward.
		dir := 1.0
		if spec.pole == PoleSouth {
			dir = -1.0
		}
		speed := cfg.CapSpeed * (1 + cfg.CapSpeedJitter*rng.Signed("kinematics.cap.speed"))
		return drift{
			vx:       dir * speed,
			rotation: cfg.CapRotation * rng.Signed("kinematics.cap.rotation"),
		}

	case RolePolarMicroplate:
		heading := 0.0
		if spec.pole == PoleSouth {
			heading = 180.0
		}
		heading += cfg.MicroHeadingJitterDeg * rng.Signed("kinematics.micro.heading")
		speed := cfg.MicroSpeed * rng.Range(0.75, 1.25, "kinematics.micro.speed")
		return headingDrift(heading, speed, cfg.MicroRotation*rng.Signed("kinematics.micro.rotation"))

	case RoleTectonic:
		heading := rng.Range(0, 360, "kinematics.tectonic.heading")
		speed := cfg.TectonicSpeedBase + cfg.TectonicSpeedRange*rng.Float("kinematics.tectonic.speed")
		return headingDrift(heading, speed, cfg.TectonicRotation*rng.Signed("kinematics.tectonic.rotation"))

	default:
		panic("tectonics: unhandled plate role " + spec.role.String())
	}
}

func headingDrift(headingDeg, speed, rotation float64) drift {
	rad := headingDeg * math.Pi / 180
	return drift{
		vx:       speed * math.Cos(rad),
		vy:       speed * math.Sin(rad),
		rotation: rotation,
	}
}

// plateWeight draws the sweep weight for a plate kind.
func plateWeight(kind Kind, base float64, rng *entropy.Source) float64 {
	switch kind {
	case KindMajor:
		return base * rng.Range(1.7, 2.3, "weight.major")
	default:
		return base * rng.Range(0.45, 0.75, "weight.minor")
	}
}
