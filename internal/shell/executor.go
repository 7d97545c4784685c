// Package shell is the interactive surface: it reads utterances, runs
// the engine, applies emitted plans to the live world, and renders the
// result.
package shell

import (
	"fmt"

	"github.com/haricheung/blockshell/internal/world"
)

// Apply executes one atomic action against the world, enforcing the same
// physical laws the planner searched under. Narration strings are
// ignored.
func Apply(s *world.State, action string) error {
	switch action {
	case "l":
		if s.Arm <= 0 {
			return fmt.Errorf("arm already at leftmost column")
		}
		s.Arm--
	case "r":
		if s.Arm >= len(s.Stacks)-1 {
			return fmt.Errorf("arm already at rightmost column")
		}
		s.Arm++
	case "p":
		if s.Holding != "" {
			return fmt.Errorf("gripper already holds %q", s.Holding)
		}
		stack := s.Stacks[s.Arm]
		if len(stack) == 0 {
			return fmt.Errorf("nothing to pick at column %d", s.Arm)
		}
		s.Holding = stack[len(stack)-1]
		s.Stacks[s.Arm] = stack[:len(stack)-1]
	case "d":
		if s.Holding == "" {
			return fmt.Errorf("nothing to drop")
		}
		stack := s.Stacks[s.Arm]
		bottom := world.FloorDefinition
		if len(stack) > 0 {
			bottom, _ = s.Definition(stack[len(stack)-1])
		}
		held, _ := s.Definition(s.Holding)
		if !world.IsStackingAllowed(held, bottom) {
			return fmt.Errorf("cannot drop %q onto column %d", s.Holding, s.Arm)
		}
		s.Stacks[s.Arm] = append(stack, s.Holding)
		s.Holding = ""
	default:
		// Narration line; executors consume only the atomic characters.
	}
	return nil
}

// ApplyAll runs a whole emitted plan. The world is left at the state of
// the first failing action, which should not happen for planner output.
func ApplyAll(s *world.State, actions []string) error {
	for _, a := range actions {
		if err := Apply(s, a); err != nil {
			return fmt.Errorf("action %q: %w", a, err)
		}
	}
	return nil
}
