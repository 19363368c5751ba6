package tectonics

import "container/heap"

// frontierEntry is one tentative claim of a cell by a plate.
type frontierEntry struct {
	cost  float64
	plate int
	cell  int
	seq   uint64
}

func (a frontierEntry) less(b frontierEntry) bool {
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.plate != b.plate {
		return a.plate < b.plate
	}
	if a.cell != b.cell {
		return a.cell < b.cell
	}
	return a.seq < b.seq
}

// entryHeap implements heap.Interface.
type entryHeap []frontierEntry

func (h entryHeap) Len() int           { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(frontierEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// frontier is a min-heap ordered by (cost, plate, cell, insertion order).
// The insertion sequence makes the order total, so pops never depend on heap layout.
type frontier struct {
	h   entryHeap
	seq uint64
}

func newFrontier(capacity int) *frontier {
	return &frontier{h: make(entryHeap, 0, capacity)}
}

func (f *frontier) push(cost float64, plate, cell int) {
	heap.Push(&f.h, frontierEntry{cost: cost, plate: plate, cell: cell, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() (frontierEntry, bool) {
	if len(f.h) == 0 {
		return frontierEntry{}, false
	}
	return heap.Pop(&f.h).(frontierEntry), true
}

func (f *frontier) len() int { return len(f.h) }
