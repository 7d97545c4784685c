package plan

import (
	"github.com/haricheung/blockshell/internal/interpret"
	"github.com/haricheung/blockshell/internal/world"
)

// Heuristic is an admissible lower bound on the actions remaining before
// the goal formula holds. Every literal of a conjunction must be
// achieved, so a conjunction costs at least its hardest literal; the
// formula may pick its cheapest disjunct, so the bound is the minimum
// over conjunctions. Arm motion is free and never counted.
func Heuristic(n Node, goal interpret.DNF, objs map[string]world.ObjectDefinition) int {
	best := -1
	s := n.state(objs)
	for _, conj := range goal {
		cost := 0
		for _, l := range conj {
			if c := literalBound(n, l, s); c > cost {
				cost = c
			}
		}
		if best < 0 || cost < best {
			best = cost
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func literalBound(n Node, l interpret.Literal, s *world.State) int {
	if l.Satisfied(s) {
		return 0
	}

	a := l.Args[0]
	var b, c string
	if len(l.Args) > 1 {
		b = l.Args[1]
	}
	if len(l.Args) > 2 {
		c = l.Args[2]
	}
	_, _, aHeld := n.locate(a)

	switch l.Relation {
	case world.RelHolding:
		if aHeld {
			return 0
		}
		return 2*n.above(a) + 1

	case world.RelLeftOf, world.RelRightOf, world.RelBeside:
		_, _, bHeld := n.locate(b)
		cost := 0
		if !aHeld {
			cost++
		}
		if !bHeld {
			cost++
		}
		aboveA, aboveB := n.above(a), n.above(b)
		if aboveB < aboveA {
			aboveA = aboveB
		}
		return cost + 2*aboveA

	case world.RelInside, world.RelOnTop:
		cost := 2*n.above(a) + 2
		if aHeld {
			cost = 1
		}
		cost += clearTargetBound(n, b)
		return cost

	case world.RelUnder:
		// b must come to rest above a.
		_, _, bHeld := n.locate(b)
		cost := 2*n.above(b) + 2
		if bHeld {
			cost = 1
		}
		if aHeld {
			cost++
		}
		return cost

	case world.RelAbove:
		cost := 2*n.above(a) + 2
		if aHeld {
			cost = 1
		}
		return cost

	case world.RelBetween:
		bStack, _, _ := n.locate(b)
		cStack, _, _ := n.locate(c)
		gap := bStack - cStack
		if gap < 0 {
			gap = -gap
		}
		if aHeld {
			if gap >= 2 {
				return 1
			}
			minAbove := n.above(b)
			if ac := n.above(c); ac < minAbove {
				minAbove = ac
			}
			return 1 + 2*minAbove
		}
		return 2*n.above(a) + 2
	}
	return 0
}

// clearTargetBound is the cost floor for making the top of the target
// available: clearing what is stacked above it, or — for a floor goal —
// emptying the shortest column.
func clearTargetBound(n Node, target string) int {
	if target == world.FloorID {
		shortest := -1
		for _, stack := range n.Stacks {
			if shortest < 0 || len(stack) < shortest {
				shortest = len(stack)
			}
		}
		if shortest < 0 {
			return 0
		}
		return 2 * shortest
	}
	if _, _, held := n.locate(target); held {
		return 1
	}
	return 2 * n.above(target)
}
