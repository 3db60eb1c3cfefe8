package astar

import (
	"errors"
	"math"
)

// priorityQueueNode is one slot of the min-heap: a rank (tentative
// distance + heuristic) paired with an opaque item, adapted from the
// teacher's pkg/datastructure/d_ary_heap.go PriorityQueueNode, stripped
// of its CRP-specific key type down to a plain int vertex id.
type priorityQueueNode struct {
	rank    float64
	item    int
	itemPos int
}

func newPriorityQueueNode(rank float64, item int) *priorityQueueNode {
	return &priorityQueueNode{rank: rank, item: item, itemPos: -1}
}

// minHeap is a d-ary min-heap keyed by rank, adapted from the teacher's
// MinHeap[T comparable]. The search uses a 4-ary heap, same as the
// teacher's bidirectional searches (fewer levels to percolate through
// per decrease-key).
type minHeap struct {
	heap []*priorityQueueNode
	d    int
}

func newFourAryHeap() *minHeap {
	return &minHeap{heap: make([]*priorityQueueNode, 0), d: 4}
}

func (h *minHeap) parent(i int) int { return (i - 1) / h.d }

func (h *minHeap) heapifyUp(i int) {
	for i != 0 && h.heap[i].rank < h.heap[h.parent(i)].rank {
		h.swap(i, h.parent(i))
		i = h.parent(i)
	}
}

func (h *minHeap) heapifyDown(i int) {
	leftMost := i*h.d + 1
	if leftMost >= len(h.heap) {
		return
	}
	sentinel := leftMost + h.d
	if sentinel > len(h.heap) {
		sentinel = len(h.heap)
	}
	smallest := leftMost
	for j := leftMost + 1; j < sentinel; j++ {
		if h.heap[j].rank < h.heap[smallest].rank {
			smallest = j
		}
	}
	if h.heap[smallest].rank < h.heap[i].rank {
		h.swap(i, smallest)
		h.heapifyDown(smallest)
	}
}

func (h *minHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.heap[i].itemPos = i
	h.heap[j].itemPos = j
}

func (h *minHeap) isEmpty() bool { return len(h.heap) == 0 }
func (h *minHeap) size() int     { return len(h.heap) }

func (h *minHeap) minRank() float64 {
	if h.isEmpty() {
		return math.Inf(1)
	}
	return h.heap[0].rank
}

func (h *minHeap) insert(n *priorityQueueNode) {
	h.heap = append(h.heap, n)
	n.itemPos = len(h.heap) - 1
	h.heapifyUp(n.itemPos)
}

func (h *minHeap) extractMin() (*priorityQueueNode, error) {
	if h.isEmpty() {
		return nil, errors.New("astar: heap is empty")
	}
	root := h.heap[0]
	h.swap(0, len(h.heap)-1)
	h.heap = h.heap[:len(h.heap)-1]
	root.itemPos = -1
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

func (h *minHeap) decreaseKey(n *priorityQueueNode, rank float64) {
	if n.itemPos < 0 || rank >= n.rank {
		return
	}
	n.rank = rank
	h.heapifyUp(n.itemPos)
}
