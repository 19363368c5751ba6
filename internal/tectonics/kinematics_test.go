package tectonics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/plategraph/internal/entropy"
)

func TestPlateDriftByRole(t *testing.T) {
	cfg := DefaultConfig()
	rng := entropy.NewSource(12)

	for i := 0; i < 50; i++ {
		north := plateDrift(plateSpec{role: RolePolarCap, pole: PoleNorth}, cfg, rng)
		assert.Positive(t, north.vx)
		assert.Zero(t, north.vy)
		assert.InDelta(t, cfg.CapSpeed, north.vx, cfg.CapSpeed*cfg.CapSpeedJitter+1e-12)
		assert.LessOrEqual(t, math.Abs(north.rotation), cfg.CapRotation)

		south := plateDrift(plateSpec{role: RolePolarCap, pole: PoleSouth}, cfg, rng)
		assert.Negative(t, south.vx)
		assert.Zero(t, south.vy)
	}
}

func TestPlateDriftMicroplateHeading(t *testing.T) {
	cfg := DefaultConfig()
	rng := entropy.NewSource(4)

	for i := 0; i < 50; i++ {
		n := plateDrift(plateSpec{role: RolePolarMicroplate, pole: PoleNorth}, cfg, rng)
		heading := math.Atan2(n.vy, n.vx) * 180 / math.Pi
		assert.LessOrEqual(t, math.Abs(heading), cfg.MicroHeadingJitterDeg+1e-9)

		s := plateDrift(plateSpec{role: RolePolarMicroplate, pole: PoleSouth}, cfg, rng)
		heading = math.Atan2(s.vy, s.vx) * 180 / math.Pi
		assert.GreaterOrEqual(t, math.Abs(heading), 180-cfg.MicroHeadingJitterDeg-1e-9)

		speed := math.Hypot(s.vx, s.vy)
		assert.GreaterOrEqual(t, speed, cfg.MicroSpeed*0.75-1e-12)
		assert.Less(t, speed, cfg.MicroSpeed*1.25+1e-12)
		assert.LessOrEqual(t, math.Abs(s.rotation), cfg.MicroRotation)
	}
}

func TestPlateDriftTectonicSpeed(t *testing.T) {
	cfg := DefaultConfig()
	rng := entropy.NewSource(8)

	for i := 0; i < 100; i++ {
		d := plateDrift(plateSpec{role: RoleTectonic}, cfg, rng)
		speed := math.Hypot(d.vx, d.vy)
		require.GreaterOrEqual(t, speed, cfg.TectonicSpeedBase-1e-12)
		require.Less(t, speed, cfg.TectonicSpeedBase+cfg.TectonicSpeedRange+1e-12)
		require.LessOrEqual(t, math.Abs(d.rotation), cfg.TectonicRotation)
	}
}

func TestPlateWeightRanges(t *testing.T) {
	rng := entropy.NewSource(2)
	for i := 0; i < 100; i++ {
		major := plateWeight(KindMajor, 1, rng)
		require.GreaterOrEqual(t, major, 1.7)
		require.Less(t, major, 2.3)

		minor := plateWeight(KindMinor, 2, rng)
		require.GreaterOrEqual(t, minor, 0.9)
		require.Less(t, minor, 1.5)
	}
}

func TestKinematicsDoNotChangePartition(t *testing.T) {
	m := hexMesh(t, 20, 12)
	crust := noiseCrust(m, 3)

	slow := SmallTestConfig(7)
	fast := slow
	fast.TectonicSpeedBase *= 10
	fast.TectonicRotation *= 3
	fast.CapSpeed *= 5

	a, err := Synthesize(m, crust, 42, slow)
	require.NoError(t, err)
	b, err := Synthesize(m, crust, 42, fast)
	require.NoError(t, err)
	assert.Equal(t, a.CellToPlate, b.CellToPlate)
	for i := range a.Plates {
		assert.Equal(t, a.Plates[i].SeedCell, b.Plates[i].SeedCell)
	}
	assert.NotEqual(t, a.Plates[2].Speed(), b.Plates[2].Speed())
}
