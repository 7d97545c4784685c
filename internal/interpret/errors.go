package interpret

import (
	"errors"
	"strings"
)

// Pipeline error taxonomy. Clarifications travel as typed values; the
// bracket-tagged Encode form is the wire string the REPL surface prints
// and the history store records.

// ErrNoInterpretation means the goal formula came out empty: nothing in
// the current world can satisfy the utterance.
var ErrNoInterpretation = errors.New("no valid interpretation in world")

// ErrHoldOne is raised for an "all"-quantified take with more than one
// candidate — the gripper holds a single object.
var ErrHoldOne = errors.New("only one object can be held at a time")

// ErrTooManyAssignments bounds the "all" assignment enumeration. It is
// treated as infeasible rather than surfaced verbatim.
var ErrTooManyAssignments = errors.New("assignment enumeration too large")

// ClarificationKind tags what the user is being asked to choose between.
type ClarificationKind string

const (
	// ClarifyAmbiguity lists candidate referents for a "the" phrase.
	ClarifyAmbiguity ClarificationKind = "ambiguity"
	// ClarifyParsing lists whole-utterance readings.
	ClarifyParsing ClarificationKind = "parsing"
)

// ClarificationError asks the user to pick between alternatives. It
// aborts the pipeline but is a question, not a failure.
type ClarificationError struct {
	Kind         ClarificationKind
	Descriptions []string
}

func (e *ClarificationError) Error() string {
	return e.Encode()
}

// Encode renders the bracket-tagged wire form, e.g.
// "[ambiguity]the small black ball|the large white ball".
func (e *ClarificationError) Encode() string {
	return "[" + string(e.Kind) + "]" + strings.Join(e.Descriptions, "|")
}

// DecodeClarification parses a wire-form clarification back into its
// typed value. Returns nil when s is not in wire form.
func DecodeClarification(s string) *ClarificationError {
	for _, kind := range []ClarificationKind{ClarifyAmbiguity, ClarifyParsing} {
		prefix := "[" + string(kind) + "]"
		if strings.HasPrefix(s, prefix) {
			return &ClarificationError{
				Kind:         kind,
				Descriptions: strings.Split(strings.TrimPrefix(s, prefix), "|"),
			}
		}
	}
	return nil
}
