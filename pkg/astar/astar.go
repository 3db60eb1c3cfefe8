// Package astar runs the bidirectional A* search over an assembled
// graph.Graph (spec §4.5), grounded on the teacher's
// pkg/engine/routing/crp_bidir_astar_landmark.go for the overall
// "two 4-ary heaps, alternate one extract-min from each side, stop when
// the summed minimum keys can no longer beat the best meeting candidate"
// shape — with the CRP overlay-graph traversal and turn tables stripped
// out, since this engine has no turn restrictions or cell hierarchy.
package astar

import (
	"math"

	"github.com/tileroute/tileroute/pkg/geo"
	"github.com/tileroute/tileroute/pkg/graph"
)

// SearchArc is one traversed arc on the reconstructed path, oriented in
// the direction of travel.
type SearchArc = graph.Arc

type vertexInfo struct {
	dist     float64
	parent   int // -1 if this vertex has no predecessor in its tree
	arc      SearchArc
	hasArc   bool
	heapNode *priorityQueueNode
	scanned  bool
}

// Result is the outcome of a successful bidirectional search (spec §4.5,
// §4.6): the meeting vertex, the total duration, and the per-side info
// tables path reconstruction walks via ForwardStep/BackwardStep.
type Result struct {
	DurationS    float64
	Meeting      int
	ForwardInfo  map[int]*vertexInfo
	BackwardInfo map[int]*vertexInfo
}

// ForwardStep returns the predecessor of v in the forward search tree
// (the vertex closer to the route's source) and the real arc that was
// traversed to reach v, oriented source-ward to target-ward.
func (r Result) ForwardStep(v int) (parent int, arc SearchArc, hasArc bool, ok bool) {
	info, ok := r.ForwardInfo[v]
	if !ok {
		return 0, SearchArc{}, false, false
	}
	return info.parent, info.arc, info.hasArc, true
}

// BackwardStep returns the successor of v toward the route's target in
// the backward search tree, and the real arc traversed from v to it.
func (r Result) BackwardStep(v int) (next int, arc SearchArc, hasArc bool, ok bool) {
	info, ok := r.BackwardInfo[v]
	if !ok {
		return 0, SearchArc{}, false, false
	}
	return info.parent, info.arc, info.hasArc, true
}

// Search runs bidirectional A* from source to target over g, using
// vRefMps as the heuristic's reference speed (spec §4.5). ok is false if
// no path exists.
func Search(g *graph.Graph, source, target int, vRefMps float64) (Result, bool) {
	if source == target {
		return Result{
			DurationS:    0,
			Meeting:      source,
			ForwardInfo:  map[int]*vertexInfo{source: {dist: 0, parent: -1}},
			BackwardInfo: map[int]*vertexInfo{source: {dist: 0, parent: -1}},
		}, true
	}

	forwardPq := newFourAryHeap()
	backwardPq := newFourAryHeap()
	forwardInfo := map[int]*vertexInfo{}
	backwardInfo := map[int]*vertexInfo{}
	fScanned := map[int]bool{}
	bScanned := map[int]bool{}

	hForward := func(v int) float64 {
		return geo.HaversineDistanceM(g.Vertices[v].Coord, g.Vertices[target].Coord) / vRefMps
	}
	hBackward := func(v int) float64 {
		return geo.HaversineDistanceM(g.Vertices[v].Coord, g.Vertices[source].Coord) / vRefMps
	}

	sNode := newPriorityQueueNode(hForward(source), source)
	tNode := newPriorityQueueNode(hBackward(target), target)
	forwardPq.insert(sNode)
	backwardPq.insert(tNode)
	forwardInfo[source] = &vertexInfo{dist: 0, parent: -1, heapNode: sNode}
	backwardInfo[target] = &vertexInfo{dist: 0, parent: -1, heapNode: tNode}

	mu := math.Inf(1)
	meeting := -1

	tryImprove := func(v int, forwardDist, backwardDist float64, viaVertex int) {
		if candidate := forwardDist + backwardDist; candidate < mu {
			mu = candidate
			meeting = viaVertex
			_ = v
		}
	}

	for forwardPq.size() > 0 && backwardPq.size() > 0 {
		if forwardPq.minRank()+backwardPq.minRank() >= mu {
			break
		}

		fn, _ := forwardPq.extractMin()
		u := fn.item
		fScanned[u] = true
		forwardInfo[u].scanned = true

		for _, arc := range g.Out[u] {
			v := arc.To
			newDist := forwardInfo[u].dist + arc.Weight
			info, seen := forwardInfo[v]
			if !seen {
				node := newPriorityQueueNode(newDist+hForward(v), v)
				forwardInfo[v] = &vertexInfo{dist: newDist, parent: u, arc: arc, hasArc: true, heapNode: node}
				forwardPq.insert(node)
			} else if newDist < info.dist {
				info.dist = newDist
				info.parent = u
				info.arc = arc
				info.hasArc = true
				forwardPq.decreaseKey(info.heapNode, newDist+hForward(v))
			}
			if bScanned[v] {
				tryImprove(u, newDist, backwardInfo[v].dist, v)
			}
		}

		if backwardPq.size() == 0 {
			continue
		}
		bn, _ := backwardPq.extractMin()
		w := bn.item
		bScanned[w] = true
		backwardInfo[w].scanned = true

		for _, rev := range g.Rev[w] {
			arc := g.Out[rev.From][rev.Index]
			from := rev.From
			newDist := backwardInfo[w].dist + arc.Weight
			info, seen := backwardInfo[from]
			if !seen {
				node := newPriorityQueueNode(newDist+hBackward(from), from)
				backwardInfo[from] = &vertexInfo{dist: newDist, parent: w, arc: arc, hasArc: true, heapNode: node}
				backwardPq.insert(node)
			} else if newDist < info.dist {
				info.dist = newDist
				info.parent = w
				info.arc = arc
				info.hasArc = true
				backwardPq.decreaseKey(info.heapNode, newDist+hBackward(from))
			}
			if fScanned[from] {
				tryImprove(w, forwardInfo[from].dist, newDist, from)
			}
		}
	}

	if meeting < 0 {
		return Result{}, false
	}

	return Result{
		DurationS:    mu,
		Meeting:      meeting,
		ForwardInfo:  forwardInfo,
		BackwardInfo: backwardInfo,
	}, true
}
