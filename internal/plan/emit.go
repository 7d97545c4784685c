package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/haricheung/blockshell/internal/interpret"
	"github.com/haricheung/blockshell/internal/world"
)

// Atomic action characters the executor consumes. Everything else in an
// emitted plan is narration.
const (
	ActionLeft  = "l"
	ActionRight = "r"
	ActionPick  = "p"
	ActionDrop  = "d"
)

// AlreadyTrue is the zero-step plan narration.
const AlreadyTrue = "That is already true!"

// Plan searches for a goal state and emits the action sequence reaching
// it. The returned strings interleave single-character atomic actions
// with narration lines; executors consume only the single characters.
func Plan(s *world.State, goal interpret.DNF, timeout time.Duration) ([]string, *SearchResult, error) {
	if goal.Satisfied(s) {
		return []string{AlreadyTrue}, nil, nil
	}

	objs := s.Objects
	start := NewNode(s)
	result, err := AStar(
		start,
		func(n Node) []Node { return Successors(n, objs) },
		func(n Node) bool { return goal.Satisfied(n.state(objs)) },
		func(n Node) int { return Heuristic(n, goal, objs) },
		timeout,
	)
	if err != nil {
		return nil, nil, err
	}
	actions, err := Emit(result.Path, s)
	if err != nil {
		return nil, nil, err
	}
	return actions, &result, nil
}

// Emit walks consecutive path states and renders the arm motions, picks
// and drops that transform each state into the next. The count of
// p/d/l/r characters equals the true robot-action count; narration lines
// are interleaved purely for display.
func Emit(path []Node, s *world.State) ([]string, error) {
	if len(path) < 2 {
		return []string{AlreadyTrue}, nil
	}
	var out []string
	arm := s.Arm
	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		pick := prev.Holding == "" && next.Holding != ""
		drop := prev.Holding != "" && next.Holding == ""
		if pick == drop {
			return nil, fmt.Errorf("path step %d is neither a pick nor a drop", i)
		}

		column := changedStack(prev, next)
		if column < 0 {
			return nil, fmt.Errorf("path step %d changes no stack", i)
		}

		if arm > column {
			out = append(out, "Moving left")
			out = append(out, repeat(ActionLeft, arm-column)...)
		} else if arm < column {
			out = append(out, "Moving right")
			out = append(out, repeat(ActionRight, column-arm)...)
		}
		arm = column

		if pick {
			desc, err := world.MinimalDescription(next.Holding, s)
			if err != nil {
				return nil, err
			}
			out = append(out, "Picking up the "+desc, ActionPick)
		} else {
			desc, err := world.MinimalDescription(prev.Holding, s)
			if err != nil {
				return nil, err
			}
			out = append(out, "Dropping the "+desc, ActionDrop)
		}
	}
	return out, nil
}

// changedStack finds the column whose contents differ between two
// consecutive states.
func changedStack(prev, next Node) int {
	for i := range prev.Stacks {
		if strings.Join(prev.Stacks[i], ",") != strings.Join(next.Stacks[i], ",") {
			return i
		}
	}
	return -1
}

func repeat(action string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = action
	}
	return out
}
