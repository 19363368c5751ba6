// Package world provides the terrain mesh and crust records that plate synthesis reads.
// Meshes wrap horizontally: siteX is periodic in WrapWidth, siteY is bounded.
package world

import (
	"errors"
	"fmt"
	"math"
)

// Mesh is a planar cell graph in CSR form. Neighbors of cell c are
// Neighbors[NeighborsOffsets[c]:NeighborsOffsets[c+1]].
type Mesh struct {
	CellCount        int
	SiteX            []float64
	SiteY            []float64
	NeighborsOffsets []int
	Neighbors        []int
	WrapWidth        float64
}

// NeighborsOf returns the neighbor ids of cell c. The slice aliases mesh storage.
func (m *Mesh) NeighborsOf(c int) []int {
	return m.Neighbors[m.NeighborsOffsets[c]:m.NeighborsOffsets[c+1]]
}

// YRange returns the minimum and maximum siteY over all cells.
func (m *Mesh) YRange() (minY, maxY float64) {
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, y := range m.SiteY {
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minY, maxY
}

// WrappedDistanceSq returns the squared distance between cells a and b,
// taking the shorter way around the horizontal wrap.
func (m *Mesh) WrappedDistanceSq(a, b int) float64 {
	dx := WrappedDelta(m.SiteX[b]-m.SiteX[a], m.WrapWidth)
	dy := m.SiteY[b] - m.SiteY[a]
	return dx*dx + dy*dy
}

// WrappedDelta folds a horizontal offset into [-width/2, width/2].
func WrappedDelta(dx, width float64) float64 {
	if width <= 0 {
		return dx
	}
	dx = math.Mod(dx, width)
	if dx > width/2 {
		dx -= width
	} else if dx < -width/2 {
		dx += width
	}
	return dx
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	if m.CellCount <= 0 {
		return errors.New("mesh has no cells")
	}
	if len(m.SiteX) != m.CellCount || len(m.SiteY) != m.CellCount {
		return fmt.Errorf("site arrays have %d/%d entries, want %d", len(m.SiteX), len(m.SiteY), m.CellCount)
	}
	if len(m.NeighborsOffsets) != m.CellCount+1 {
		return fmt.Errorf("neighbor offsets have %d entries, want %d", len(m.NeighborsOffsets), m.CellCount+1)
	}
	if m.NeighborsOffsets[0] != 0 || m.NeighborsOffsets[m.CellCount] != len(m.Neighbors) {
		return fmt.Errorf("neighbor offsets span [%d, %d], want [0, %d]",
			m.NeighborsOffsets[0], m.NeighborsOffsets[m.CellCount], len(m.Neighbors))
	}
	for c := 0; c < m.CellCount; c++ {
		if m.NeighborsOffsets[c+1] < m.NeighborsOffsets[c] {
			return fmt.Errorf("neighbor offsets decrease at cell %d", c)
		}
	}
	for i, n := range m.Neighbors {
		if n < 0 || n >= m.CellCount {
			return fmt.Errorf("neighbor entry %d references cell %d", i, n)
		}
	}
	if math.IsNaN(m.WrapWidth) || math.IsInf(m.WrapWidth, 0) || m.WrapWidth <= 0 {
		return fmt.Errorf("wrap width %v is not a positive finite number", m.WrapWidth)
	}
	for c := 0; c < m.CellCount; c++ {
		if !finite(m.SiteX[c]) || !finite(m.SiteY[c]) {
			return fmt.Errorf("cell %d has non-finite site (%v, %v)", c, m.SiteX[c], m.SiteY[c])
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NewHexMesh builds a width×height offset-hex grid that wraps horizontally.
// Odd rows are shifted half a cell east; row spacing is sqrt(3)/2.
func NewHexMesh(width, height int) (*Mesh, error) {
	if width < 3 || height < 1 {
		return nil, fmt.Errorf("hex mesh needs width >= 3 and height >= 1, got %dx%d", width, height)
	}

	n := width * height
	m := &Mesh{
		CellCount:        n,
		SiteX:            make([]float64, n),
		SiteY:            make([]float64, n),
		NeighborsOffsets: make([]int, n+1),
		Neighbors:        make([]int, 0, n*6),
		WrapWidth:        float64(width),
	}

	rowStep := math.Sqrt(3.0) / 2.0
	for y := 0; y < height; y++ {
		// Diagonal neighbors sit at x-1,x on even rows and x,x+1 on odd rows.
		shift := y & 1
		for x := 0; x < width; x++ {
			c := y*width + x
			m.SiteX[c] = float64(x) + 0.5*float64(shift)
			m.SiteY[c] = float64(y) * rowStep

			add := func(nx, ny int) {
				if ny < 0 || ny >= height {
					return
				}
				nx = (nx%width + width) % width
				m.Neighbors = append(m.Neighbors, ny*width+nx)
			}
			add(x-1, y)
			add(x+1, y)
			add(x-1+shift, y-1)
			add(x+shift, y-1)
			add(x-1+shift, y+1)
			add(x+shift, y+1)
			m.NeighborsOffsets[c+1] = len(m.Neighbors)
		}
	}
	return m, nil
}
