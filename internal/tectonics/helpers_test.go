package tectonics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/plategraph/internal/world"
)

func hexMesh(t *testing.T, w, h int) *world.Mesh {
	t.Helper()
	m, err := world.NewHexMesh(w, h)
	require.NoError(t, err)
	return m
}

// ringMesh builds n cells on a horizontal ring at the given heights.
func ringMesh(n int, y float64) *world.Mesh {
	m := &world.Mesh{
		CellCount:        n,
		SiteX:            make([]float64, n),
		SiteY:            make([]float64, n),
		NeighborsOffsets: make([]int, n+1),
		WrapWidth:        float64(n),
	}
	for i := 0; i < n; i++ {
		m.SiteX[i] = float64(i)
		m.SiteY[i] = y
		m.Neighbors = append(m.Neighbors, (i+n-1)%n, (i+1)%n)
		m.NeighborsOffsets[i+1] = len(m.Neighbors)
	}
	return m
}

// ringLayout prepares a sweep over a ring where every plate may claim every cell.
func ringLayout(n int, plates ...plateSpec) *layout {
	m := ringMesh(n, 0)
	l := &layout{
		mesh:   m,
		res:    make([]float64, n),
		lock:   make([]int, n),
		plates: plates,
	}
	for i := range l.masks {
		l.masks[i] = make([]bool, n)
	}
	for c := 0; c < n; c++ {
		l.res[c] = 1
		l.lock[c] = unlocked
		l.masks[maskTectonic][c] = true
	}
	return l
}

func tectonicSpec(seed int, weight float64) plateSpec {
	return plateSpec{role: RoleTectonic, kind: KindMajor, mask: maskTectonic, seed: seed, weight: weight}
}
