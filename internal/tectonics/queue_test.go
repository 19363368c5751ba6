package tectonics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierOrdering(t *testing.T) {
	f := newFrontier(0)
	f.push(2, 0, 5)
	f.push(1, 3, 1)
	f.push(1, 2, 9)
	f.push(1, 2, 4)
	f.push(1, 2, 4)
	require.Equal(t, 5, f.len())

	want := []frontierEntry{
		{cost: 1, plate: 2, cell: 4, seq: 3},
		{cost: 1, plate: 2, cell: 4, seq: 4},
		{cost: 1, plate: 2, cell: 9, seq: 2},
		{cost: 1, plate: 3, cell: 1, seq: 1},
		{cost: 2, plate: 0, cell: 5, seq: 0},
	}
	for i, w := range want {
		got, ok := f.pop()
		require.True(t, ok, "pop %d", i)
		assert.Equal(t, w, got, "pop %d", i)
	}

	_, ok := f.pop()
	assert.False(t, ok)
	assert.Equal(t, 0, f.len())
}

func TestFrontierKeepsEveryPush(t *testing.T) {
	f := newFrontier(4)
	const n = 500
	for i := 0; i < n; i++ {
		f.push(float64((i*7919)%97), i%5, i)
	}

	prev, ok := f.pop()
	require.True(t, ok)
	count := 1
	for {
		e, ok := f.pop()
		if !ok {
			break
		}
		require.False(t, e.less(prev), "heap order violated at pop %d", count)
		prev = e
		count++
	}
	assert.Equal(t, n, count)
}
