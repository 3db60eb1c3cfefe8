package astar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	h := newFourAryHeap()
	ranks := []float64{5, 1, 9, 3, 7, 0, 4}
	for i, r := range ranks {
		h.insert(newPriorityQueueNode(r, i))
	}

	var got []float64
	for !h.isEmpty() {
		n, err := h.extractMin()
		require.NoError(t, err)
		got = append(got, n.rank)
	}
	assert.Equal(t, []float64{0, 1, 3, 4, 5, 7, 9}, got)
}

func TestMinHeapExtractMinEmptyErrors(t *testing.T) {
	h := newFourAryHeap()
	_, err := h.extractMin()
	assert.Error(t, err)
}

func TestMinHeapMinRankEmptyIsInf(t *testing.T) {
	h := newFourAryHeap()
	assert.True(t, math.IsInf(h.minRank(), 1))
}

func TestMinHeapDecreaseKeyReordersHeap(t *testing.T) {
	h := newFourAryHeap()
	a := newPriorityQueueNode(10, 1)
	b := newPriorityQueueNode(20, 2)
	h.insert(a)
	h.insert(b)

	h.decreaseKey(b, 1)

	n, err := h.extractMin()
	require.NoError(t, err)
	assert.Equal(t, 2, n.item)
}

func TestMinHeapDecreaseKeyIgnoresLargerRank(t *testing.T) {
	h := newFourAryHeap()
	a := newPriorityQueueNode(10, 1)
	h.insert(a)

	h.decreaseKey(a, 50)
	assert.Equal(t, 10.0, a.rank)
}

func TestMinHeapSizeTracksInsertsAndExtracts(t *testing.T) {
	h := newFourAryHeap()
	assert.Equal(t, 0, h.size())
	h.insert(newPriorityQueueNode(1, 0))
	h.insert(newPriorityQueueNode(2, 1))
	assert.Equal(t, 2, h.size())
	_, _ = h.extractMin()
	assert.Equal(t, 1, h.size())
}
