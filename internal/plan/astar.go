package plan

import (
	"container/heap"
	"errors"
	"time"
)

// ErrTimeout is returned when the search exceeds its wall-clock budget.
var ErrTimeout = errors.New("search for goal timed out")

// ErrNoPath is returned when the frontier drains without reaching a goal:
// the formula is satisfiable on paper but unreachable by legal actions.
var ErrNoPath = errors.New("no action sequence reaches the goal")

// SearchResult is a path from start to a goal node, inclusive, and its
// total edge cost.
type SearchResult struct {
	Path []Node
	Cost int
	// Expanded counts nodes taken off the frontier, for logging.
	Expanded int
}

type frontierItem struct {
	node   Node
	key    string
	g      int
	f      int
	order  int // insertion tie-break
	parent *frontierItem
}

type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].order < f[j].order
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

// AStar runs A* from start until isGoal holds or the timeout elapses.
// Edge costs are uniform 1; heuristic must be admissible for the result
// to be optimal. Ties on f break by insertion order, which keeps the
// search deterministic for a fixed successor order.
func AStar(
	start Node,
	successors func(Node) []Node,
	isGoal func(Node) bool,
	heuristic func(Node) int,
	timeout time.Duration,
) (SearchResult, error) {
	deadline := time.Now().Add(timeout)

	open := &frontier{}
	heap.Init(open)
	order := 0
	push := func(it *frontierItem) {
		it.order = order
		order++
		heap.Push(open, it)
	}

	push(&frontierItem{node: start, key: start.Key(), g: 0, f: heuristic(start)})
	bestG := map[string]int{start.Key(): 0}
	closed := make(map[string]bool)
	expanded := 0

	for open.Len() > 0 {
		if time.Now().After(deadline) {
			return SearchResult{Expanded: expanded}, ErrTimeout
		}

		current := heap.Pop(open).(*frontierItem)
		if closed[current.key] {
			continue
		}
		closed[current.key] = true
		expanded++

		if isGoal(current.node) {
			return SearchResult{Path: reconstruct(current), Cost: current.g, Expanded: expanded}, nil
		}

		for _, next := range successors(current.node) {
			key := next.Key()
			if closed[key] {
				continue
			}
			g := current.g + 1
			if prev, ok := bestG[key]; ok && prev <= g {
				continue
			}
			bestG[key] = g
			push(&frontierItem{node: next, key: key, g: g, f: g + heuristic(next), parent: current})
		}
	}
	return SearchResult{Expanded: expanded}, ErrNoPath
}

func reconstruct(item *frontierItem) []Node {
	var path []Node
	for it := item; it != nil; it = it.parent {
		path = append(path, it.node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
