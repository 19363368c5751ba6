package tectonics

import "github.com/talgya/plategraph/internal/world"

// lockRegion claims up to target contiguous mask cells for plate, flooding
// breadth-first from seed. Cells locked to another plate are neither claimed
// nor crossed; cells already locked to this plate count toward the target.
// Returns the number of cells held by the plate in the flooded region.
func lockRegion(m *world.Mesh, mask []bool, lock []int, seed, plate, target int) int {
	if target <= 0 || !mask[seed] || (lock[seed] != unlocked && lock[seed] != plate) {
		return 0
	}

	visited := make([]bool, m.CellCount)
	visited[seed] = true
	queue := []int{seed}
	locked := 0

	for len(queue) > 0 && locked < target {
		c := queue[0]
		queue = queue[1:]
		lock[c] = plate
		locked++

		for _, nb := range m.NeighborsOf(c) {
			if visited[nb] || !mask[nb] {
				continue
			}
			if lock[nb] != unlocked && lock[nb] != plate {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return locked
}
