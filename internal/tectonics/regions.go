package tectonics

import "github.com/talgya/plategraph/internal/world"

// maskID indexes the eligibility masks shared by plates of the same role and pole.
type maskID uint8

const (
	maskNorthCap maskID = iota
	maskSouthCap
	maskNorthMicro
	maskSouthMicro
	maskTectonic
	maskCount
)

const unlocked = -1

// regions is the band classification of a mesh.
type regions struct {
	masks [maskCount][]bool
	// Cap bands as classified, before any widening; cap seeds come from these.
	northBand, southBand []bool
	// lock[c] is the plate a cell is pre-assigned to, or unlocked.
	lock []int
}

// classifyRegions splits the mesh into cap bands, microplate bands and the
// tectonic pool by siteY, and pre-locks cap bands to plates 0 and 1. A cell
// inside both cap bands belongs to the north cap.
func classifyRegions(m *world.Mesh, capFraction, microFraction float64, plateCount int) *regions {
	n := m.CellCount
	r := &regions{lock: make([]int, n)}
	for i := range r.masks {
		r.masks[i] = make([]bool, n)
	}
	r.northBand = make([]bool, n)
	r.southBand = make([]bool, n)

	minY, maxY := m.YRange()
	span := maxY - minY
	northCap := minY + span*capFraction
	southCap := maxY - span*capFraction
	northMicro := minY + span*microFraction
	southMicro := maxY - span*microFraction

	for c := 0; c < n; c++ {
		y := m.SiteY[c]
		r.lock[c] = unlocked
		switch {
		case y <= northCap:
			r.northBand[c] = true
			r.lock[c] = northCapID
		case y >= southCap:
			r.southBand[c] = true
			r.lock[c] = southCapID
		default:
			r.masks[maskTectonic][c] = true
			if y <= northMicro {
				r.masks[maskNorthMicro][c] = true
			} else if y >= southMicro {
				r.masks[maskSouthMicro][c] = true
			}
		}
	}

	copy(r.masks[maskNorthCap], r.northBand)
	copy(r.masks[maskSouthCap], r.southBand)
	if plateCount == 2 {
		// Two caps must cover everything between them.
		for c := 0; c < n; c++ {
			r.masks[maskNorthCap][c] = true
			r.masks[maskSouthCap][c] = true
		}
	}
	return r
}

// countFree returns the number of mask cells not locked to any plate.
func countFree(mask []bool, lock []int) int {
	n := 0
	for c, ok := range mask {
		if ok && lock[c] == unlocked {
			n++
		}
	}
	return n
}
