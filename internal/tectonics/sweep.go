package tectonics

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/plategraph/internal/world"
)

// costEpsilon absorbs floating-point noise when comparing accumulated costs.
const costEpsilon = 1e-9

// plateSpec is the working description of a plate during synthesis.
type plateSpec struct {
	role   Role
	kind   Kind
	pole   Pole
	mask   maskID
	seed   int
	weight float64
}

// layout is everything the sweep consumes: the graph, per-cell resistance,
// eligibility masks, pre-locked cells and the seeded plates.
type layout struct {
	mesh   *world.Mesh
	res    []float64
	masks  [maskCount][]bool
	lock   []int
	plates []plateSpec
}

// allows reports whether plate may claim cell c.
func (l *layout) allows(plate, c int) bool {
	if !l.masks[l.plates[plate].mask][c] {
		return false
	}
	return l.lock[c] == unlocked || l.lock[c] == plate
}

// sweep assigns every cell to the plate reaching it at the lowest accumulated
// cost. Locked cells and unlocked seeds start at cost zero. Edge cost is the
// mean resistance of its endpoints divided by the claiming plate's weight.
// Ties within costEpsilon go to the lower plate id.
func (l *layout) sweep() ([]int, error) {
	n := l.mesh.CellCount
	best := make([]float64, n)
	owner := make([]int, n)
	for c := range best {
		best[c] = math.Inf(1)
		owner[c] = unlocked
	}

	q := newFrontier(n)
	for c, p := range l.lock {
		if p != unlocked {
			best[c], owner[c] = 0, p
			q.push(0, p, c)
		}
	}
	for p, spec := range l.plates {
		s := spec.seed
		if l.lock[s] != unlocked {
			continue
		}
		if owner[s] == unlocked || p < owner[s] {
			best[s], owner[s] = 0, p
		}
		q.push(0, p, s)
	}

	pops := 0
	for {
		e, ok := q.pop()
		if !ok {
			break
		}
		pops++
		if e.cost > best[e.cell]+costEpsilon || owner[e.cell] != e.plate {
			continue
		}

		weight := l.plates[e.plate].weight
		for _, nb := range l.mesh.NeighborsOf(e.cell) {
			if !l.allows(e.plate, nb) {
				continue
			}
			cand := e.cost + (l.res[e.cell]+l.res[nb])/2/weight
			better := cand < best[nb]-costEpsilon
			tie := math.Abs(cand-best[nb]) <= costEpsilon && e.plate < owner[nb]
			if better || tie {
				best[nb], owner[nb] = cand, e.plate
				q.push(cand, e.plate, nb)
			}
		}
	}

	for c, p := range owner {
		if p == unlocked {
			return nil, fmt.Errorf("%w: cell %d is unreachable by any eligible plate", ErrUnassigned, c)
		}
	}
	slog.Debug("partition sweep finished", "cells", n, "plates", len(l.plates), "pops", pops)
	return owner, nil
}
