package tectonics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowMask(n, row, width int) []bool {
	mask := make([]bool, n)
	for x := 0; x < width; x++ {
		mask[row*width+x] = true
	}
	return mask
}

func freshLock(n int) []int {
	lock := make([]int, n)
	for i := range lock {
		lock[i] = unlocked
	}
	return lock
}

func TestLockRegionTarget(t *testing.T) {
	m := hexMesh(t, 10, 10)
	mask := rowMask(m.CellCount, 6, 10)
	lock := freshLock(m.CellCount)

	got := lockRegion(m, mask, lock, 60, 4, 4)
	assert.Equal(t, 4, got)

	var claimed []int
	for c, p := range lock {
		if p == 4 {
			claimed = append(claimed, c)
		}
	}
	// Breadth-first from 60 along the wrapped row: 60, then 69 and 61, then 68.
	assert.ElementsMatch(t, []int{60, 61, 68, 69}, claimed)
}

func TestLockRegionExhaustsMask(t *testing.T) {
	m := hexMesh(t, 10, 10)
	mask := rowMask(m.CellCount, 6, 10)
	lock := freshLock(m.CellCount)

	assert.Equal(t, 10, lockRegion(m, mask, lock, 63, 2, 50))
	for c := 0; c < m.CellCount; c++ {
		if mask[c] {
			assert.Equal(t, 2, lock[c])
		} else {
			assert.Equal(t, unlocked, lock[c])
		}
	}
}

func TestLockRegionSkipsOtherPlates(t *testing.T) {
	m := hexMesh(t, 10, 10)
	mask := rowMask(m.CellCount, 6, 10)
	lock := freshLock(m.CellCount)
	lock[63] = 5

	assert.Equal(t, 9, lockRegion(m, mask, lock, 60, 2, 50))
	assert.Equal(t, 5, lock[63], "foreign lock overwritten")
}

func TestLockRegionIdempotent(t *testing.T) {
	m := hexMesh(t, 10, 10)
	mask := rowMask(m.CellCount, 6, 10)
	lock := freshLock(m.CellCount)

	assert.Equal(t, 3, lockRegion(m, mask, lock, 60, 2, 3))
	assert.Equal(t, 3, lockRegion(m, mask, lock, 60, 2, 3))
	assert.Equal(t, 5, lockRegion(m, mask, lock, 60, 2, 5))
}

func TestLockRegionRejectsBadSeed(t *testing.T) {
	m := hexMesh(t, 10, 10)
	mask := rowMask(m.CellCount, 6, 10)
	lock := freshLock(m.CellCount)
	lock[60] = 1

	assert.Equal(t, 0, lockRegion(m, mask, lock, 60, 2, 5), "seed locked elsewhere")
	assert.Equal(t, 0, lockRegion(m, mask, lock, 10, 2, 5), "seed outside mask")
	assert.Equal(t, 0, lockRegion(m, mask, lock, 61, 2, 0), "zero target")
}
