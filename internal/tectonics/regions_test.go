package tectonics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRegionsBands(t *testing.T) {
	m := hexMesh(t, 10, 10)
	r := classifyRegions(m, 0.1, 0.3, 8)

	for c := 0; c < m.CellCount; c++ {
		row := c / 10
		inNorthCap := row == 0
		inSouthCap := row == 9
		assert.Equal(t, inNorthCap, r.northBand[c], "north band cell %d", c)
		assert.Equal(t, inSouthCap, r.southBand[c], "south band cell %d", c)
		assert.Equal(t, inNorthCap, r.masks[maskNorthCap][c], "north cap mask cell %d", c)
		assert.Equal(t, inSouthCap, r.masks[maskSouthCap][c], "south cap mask cell %d", c)
		assert.Equal(t, row == 1 || row == 2, r.masks[maskNorthMicro][c], "north micro cell %d", c)
		assert.Equal(t, row == 7 || row == 8, r.masks[maskSouthMicro][c], "south micro cell %d", c)
		assert.Equal(t, !inNorthCap && !inSouthCap, r.masks[maskTectonic][c], "tectonic cell %d", c)

		switch {
		case inNorthCap:
			assert.Equal(t, northCapID, r.lock[c])
		case inSouthCap:
			assert.Equal(t, southCapID, r.lock[c])
		default:
			assert.Equal(t, unlocked, r.lock[c])
		}
	}
}

func TestClassifyRegionsTwoPlatesWidenCaps(t *testing.T) {
	m := hexMesh(t, 10, 10)
	r := classifyRegions(m, 0.1, 0.3, 2)

	for c := 0; c < m.CellCount; c++ {
		assert.True(t, r.masks[maskNorthCap][c])
		assert.True(t, r.masks[maskSouthCap][c])
	}
	// Seeding still uses the unwidened bands.
	assert.False(t, r.northBand[55])
	assert.True(t, r.northBand[5])
	assert.True(t, r.southBand[95])
}

func TestClassifyRegionsOverlappingCapsPreferNorth(t *testing.T) {
	m := ringMesh(6, 3)
	r := classifyRegions(m, 0.5, 0.5, 2)
	for c := 0; c < m.CellCount; c++ {
		assert.True(t, r.northBand[c])
		assert.False(t, r.southBand[c])
		assert.Equal(t, northCapID, r.lock[c])
	}
	assert.Equal(t, 0, countFree(r.masks[maskTectonic], r.lock))
}

func TestCountFree(t *testing.T) {
	mask := []bool{true, true, false, true}
	lock := []int{unlocked, 3, unlocked, unlocked}
	assert.Equal(t, 2, countFree(mask, lock))
}
