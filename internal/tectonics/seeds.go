package tectonics

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/plategraph/internal/entropy"
	"github.com/talgya/plategraph/internal/world"
)

// extremalSeed returns the mask cell with the smallest (north) or largest (south)
// siteY. Ties go to the lowest cell id.
func extremalSeed(m *world.Mesh, mask []bool, pole Pole) (int, bool) {
	best := -1
	for c := 0; c < m.CellCount; c++ {
		if !mask[c] {
			continue
		}
		switch {
		case best < 0:
			best = c
		case pole == PoleNorth && m.SiteY[c] < m.SiteY[best]:
			best = c
		case pole == PoleSouth && m.SiteY[c] > m.SiteY[best]:
			best = c
		}
	}
	return best, best >= 0
}

// MinSeparation returns the spacing target for sampled seeds: the characteristic
// length of the mesh divided by sqrt(plateCount), scaled.
func MinSeparation(m *world.Mesh, plateCount int, scale float64) float64 {
	minY, maxY := m.YRange()
	area := m.WrapWidth * (maxY - minY)
	if area <= 0 {
		area = float64(m.CellCount)
	}
	return scale * math.Sqrt(area) / math.Sqrt(float64(max(1, plateCount)))
}

// seedQuality scores how well a cell suits a plate kind, in [0, 1]. Major plates
// favor old continental crust, minor plates young oceanic crust.
func seedQuality(kind Kind, t world.CrustType, age01 float64) float64 {
	switch kind {
	case KindMajor:
		q := 0.3 * age01
		if t == world.CrustContinental {
			q += 0.7
		}
		return q
	default:
		q := 0.3 * (1 - age01)
		if t == world.CrustOceanic {
			q += 0.7
		}
		return q
	}
}

// seedPlacer chooses seed cells one plate at a time, remembering earlier picks.
type seedPlacer struct {
	mesh  *world.Mesh
	crust *world.Crust
	age01 []float64
	lock  []int
	rng   *entropy.Source

	minSep2     float64
	attempts    int
	minAttempts int

	used   []bool
	chosen []int
}

func newSeedPlacer(m *world.Mesh, crust *world.Crust, age01 []float64, lock []int, rng *entropy.Source, cfg Config, minSep float64) *seedPlacer {
	return &seedPlacer{
		mesh:        m,
		crust:       crust,
		age01:       age01,
		lock:        lock,
		rng:         rng,
		minSep2:     minSep * minSep,
		attempts:    cfg.SeedAttempts,
		minAttempts: cfg.SeedMinAttempts,
		used:        make([]bool, m.CellCount),
	}
}

func (p *seedPlacer) free(c, plate int) bool {
	return !p.used[c] && (p.lock[c] == unlocked || p.lock[c] == plate)
}

func (p *seedPlacer) take(c int) {
	p.used[c] = true
	p.chosen = append(p.chosen, c)
}

// nearestSq returns the squared wrapped distance from c to the closest chosen seed.
func (p *seedPlacer) nearestSq(c int) float64 {
	best := math.Inf(1)
	for _, s := range p.chosen {
		best = math.Min(best, p.mesh.WrappedDistanceSq(c, s))
	}
	return best
}

// placeCap picks the extremal cell of a cap band.
func (p *seedPlacer) placeCap(band []bool, pole Pole) (int, error) {
	c, ok := extremalSeed(p.mesh, band, pole)
	if !ok {
		return 0, fmt.Errorf("%w: %s cap band has no cells", ErrSeedStarvation, pole)
	}
	p.take(c)
	return c, nil
}

// place samples a seed for plate from mask, preferring candidates that clear the
// separation target and, among those, the best distance-times-quality score.
func (p *seedPlacer) place(plate int, kind Kind, mask []bool, label string) (int, error) {
	var candidates []int
	for c, ok := range mask {
		if ok {
			candidates = append(candidates, c)
		}
	}

	best, bestClear := -1, -1
	var bestScore, bestClearScore float64
	for a := 0; a < p.attempts && len(candidates) > 0; a++ {
		if a >= p.minAttempts && bestClear >= 0 {
			break
		}
		c := candidates[p.rng.Int(len(candidates), label)]
		if !p.free(c, plate) {
			continue
		}

		d2 := p.nearestSq(c)
		if math.IsInf(d2, 1) {
			// First seed anywhere: quality alone decides.
			d2 = p.minSep2 + 1
		}
		score := d2 * (0.5 + seedQuality(kind, p.crust.Type[c], p.age01[c]))
		if best < 0 || score > bestScore {
			best, bestScore = c, score
		}
		if d2 >= p.minSep2 && (bestClear < 0 || score > bestClearScore) {
			bestClear, bestClearScore = c, score
		}
	}

	pick := bestClear
	if pick < 0 {
		pick = best
	}
	if pick < 0 {
		pick = p.scan(plate, mask, label)
	}
	if pick < 0 {
		return 0, fmt.Errorf("%w: no free cell for plate %d (%s)", ErrSeedStarvation, plate, label)
	}
	p.take(pick)
	return pick, nil
}

// scan walks the cell index space from a random offset and returns the first free
// mask cell, or -1.
func (p *seedPlacer) scan(plate int, mask []bool, label string) int {
	n := p.mesh.CellCount
	offset := p.rng.Int(n, label+".fallback")
	for i := 0; i < n; i++ {
		c := (offset + i) % n
		if mask[c] && p.free(c, plate) {
			slog.Debug("seed sampling fell back to scan", "plate", plate, "cell", c)
			return c
		}
	}
	return -1
}
