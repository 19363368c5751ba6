package tectonics

import "github.com/talgya/plategraph/internal/world"

// component is one connected patch of an eligibility mask.
type component struct {
	cells []int
}

// components flood-fills the mask and returns its connected patches in order of
// their lowest cell id.
func components(m *world.Mesh, mask []bool) []component {
	visited := make([]bool, m.CellCount)
	var out []component
	var queue []int

	for start := 0; start < m.CellCount; start++ {
		if !mask[start] || visited[start] {
			continue
		}
		visited[start] = true
		queue = append(queue[:0], start)
		var cells []int
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			cells = append(cells, c)
			for _, nb := range m.NeighborsOf(c) {
				if mask[nb] && !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		out = append(out, component{cells: cells})
	}
	return out
}

// filterComponents returns a mask holding only components of at least minSize
// cells, plus how many disjoint minSize regions those components can host.
func filterComponents(m *world.Mesh, mask []bool, minSize int) ([]bool, int) {
	out := make([]bool, m.CellCount)
	capacity := 0
	if minSize < 1 {
		minSize = 1
	}
	for _, comp := range components(m, mask) {
		if len(comp.cells) < minSize {
			continue
		}
		capacity += len(comp.cells) / minSize
		for _, c := range comp.cells {
			out[c] = true
		}
	}
	return out, capacity
}
