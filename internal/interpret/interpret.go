// Package interpret maps parsed commands onto goal formulas over the
// current world: reference resolution, DNF construction under the
// the/any/all quantifiers, and "the" disambiguation.
package interpret

import (
	"errors"

	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

// Interpretation pairs a parse with the goal formula it denotes in the
// current world.
type Interpretation struct {
	Command *grammar.Command
	Goal    DNF
}

// Interpret resolves one parse against the world and builds its goal
// formula. Errors follow the package taxonomy: ErrNoInterpretation when
// the formula is empty, ClarificationError for underdetermined "the",
// ErrHoldOne for plural "all" takes, and description collisions from the
// world package.
func Interpret(cmd *grammar.Command, s *world.State) (*Interpretation, error) {
	gs, err := resolveCommand(cmd, s)
	if err != nil {
		return nil, err
	}

	var dnf DNF
	if hasAllQuantifier(cmd) {
		dnf, err = generateAllDNF(cmd, gs, s)
		if errors.Is(err, ErrTooManyAssignments) {
			// Bounded enumeration, not a user mistake; surfaces as
			// uninterpretable rather than leaking internals.
			return nil, ErrNoInterpretation
		}
		if err != nil {
			return nil, err
		}
	} else {
		dnf = generateAnyDNF(cmd, gs, s)
	}

	if len(dnf) == 0 {
		return nil, ErrNoInterpretation
	}
	if err := checkClarifications(cmd, dnf, s); err != nil {
		return nil, err
	}
	return &Interpretation{Command: cmd, Goal: dnf}, nil
}

// hasAllQuantifier reports whether any top-level entity of the command is
// "all"-quantified. Quantifiers inside relative clauses only constrain
// resolution and do not change the formula shape.
func hasAllQuantifier(cmd *grammar.Command) bool {
	if cmd.Entity != nil && cmd.Entity.Quantifier == grammar.QuantAll {
		return true
	}
	if cmd.Location != nil {
		if cmd.Location.Entity.Quantifier == grammar.QuantAll {
			return true
		}
		if cmd.Location.Entity2 != nil && cmd.Location.Entity2.Quantifier == grammar.QuantAll {
			return true
		}
	}
	return false
}
