package interpret

import (
	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

// "all" semantics. An "all" side of a relation spans a conjunction; each
// remaining side is enumerated as a disjunction over assignments. An
// assignment maps every element of the "all" side to one choice on the
// other side, repetition allowed, so "put all balls in a box" covers
// per-ball box choices while "put all balls in all boxes" collapses to a
// single full-cross-product conjunction.

// maxConjunctions bounds the assignment enumeration. (choices)^(n) grows
// fast; past this the utterance is treated as infeasible rather than
// searched semantically.
const maxConjunctions = 1 << 16

// assignments produces every length-n sequence of values in [0..choices).
// Returns ErrTooManyAssignments when the result would exceed the cap.
func assignments(n, choices int) ([][]int, error) {
	total := 1
	for i := 0; i < n; i++ {
		total *= choices
		if total > maxConjunctions || total <= 0 {
			return nil, ErrTooManyAssignments
		}
	}
	out := [][]int{{}}
	for i := 0; i < n; i++ {
		var next [][]int
		for _, prefix := range out {
			for v := 0; v < choices; v++ {
				seq := make([]int, len(prefix)+1)
				copy(seq, prefix)
				seq[len(prefix)] = v
				next = append(next, seq)
			}
		}
		out = next
	}
	return out, nil
}

// generateAllDNF builds the formula when at least one top-level entity is
// "all"-quantified.
func generateAllDNF(cmd *grammar.Command, gs goalSets, s *world.State) (DNF, error) {
	targets := withoutFloor(gs.targets)

	if cmd.Verb == grammar.VerbTake {
		// The gripper holds one object; "take all X" only makes sense
		// when exactly one X exists.
		if len(targets) == 0 {
			return nil, nil
		}
		if len(targets) > 1 {
			return nil, ErrHoldOne
		}
		return DNF{Conjunction{lit(world.RelHolding, targets[0])}}, nil
	}

	targetsAll := cmd.Entity != nil && cmd.Entity.Quantifier == grammar.QuantAll
	goalsAll := cmd.Location.Entity.Quantifier == grammar.QuantAll

	var dnf DNF
	var err error
	if gs.relation == world.RelBetween {
		goals2All := cmd.Location.Entity2.Quantifier == grammar.QuantAll
		dnf, err = allBetweenDNF(gs, targets, targetsAll, goalsAll, goals2All, s)
	} else {
		dnf, err = allBinaryDNF(gs, targets, targetsAll, goalsAll, s)
	}
	if err != nil {
		return nil, err
	}
	return filterExclusiveSupport(dnf), nil
}

func allBinaryDNF(gs goalSets, targets []string, targetsAll, goalsAll bool, s *world.State) (DNF, error) {
	rel := gs.relation
	goals := gs.goals

	switch {
	case targetsAll && goalsAll:
		// Every pair simultaneously, or nothing.
		var conj Conjunction
		for _, t := range targets {
			for _, g := range goals {
				if !world.IsValidGoalLocation(s, rel, t, g, "") {
					return nil, nil
				}
				conj = append(conj, lit(rel, t, g))
			}
		}
		if len(conj) == 0 {
			return nil, nil
		}
		return DNF{conj}, nil

	case targetsAll:
		// Each target paired with some goal, per assignment.
		asgs, err := assignments(len(targets), len(goals))
		if err != nil {
			return nil, err
		}
		var dnf DNF
		for _, asg := range asgs {
			conj := make(Conjunction, 0, len(targets))
			ok := true
			for i, t := range targets {
				g := goals[asg[i]]
				if !world.IsValidGoalLocation(s, rel, t, g, "") {
					ok = false
					break
				}
				conj = append(conj, lit(rel, t, g))
			}
			if ok && len(conj) > 0 {
				dnf = append(dnf, conj)
			}
		}
		return dnf, nil

	default: // goalsAll
		// Each goal covered by some target, per assignment.
		asgs, err := assignments(len(goals), len(targets))
		if err != nil {
			return nil, err
		}
		var dnf DNF
		for _, asg := range asgs {
			conj := make(Conjunction, 0, len(goals))
			ok := true
			for j, g := range goals {
				t := targets[asg[j]]
				if !world.IsValidGoalLocation(s, rel, t, g, "") {
					ok = false
					break
				}
				conj = append(conj, lit(rel, t, g))
			}
			if ok && len(conj) > 0 {
				dnf = append(dnf, conj)
			}
		}
		return dnf, nil
	}
}

// allBetweenDNF enumerates the seven all-placements of the ternary
// relation. The "all" slots span the conjunction; the free slots are
// assignment-enumerated, pair-indexed when two slots are free.
func allBetweenDNF(gs goalSets, targets []string, tAll, gAll, hAll bool, s *world.State) (DNF, error) {
	goals, goals2 := gs.goals, gs.goals2

	valid := func(t, g, h string) bool {
		return world.IsValidGoalLocation(s, world.RelBetween, t, g, h)
	}

	switch {
	case tAll && gAll && hAll:
		var conj Conjunction
		for _, t := range targets {
			for _, g := range goals {
				for _, h := range goals2 {
					if !valid(t, g, h) {
						return nil, nil
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
			}
		}
		if len(conj) == 0 {
			return nil, nil
		}
		return DNF{conj}, nil

	case tAll && gAll:
		// One free slot per (target, goal) pair.
		asgs, err := assignments(len(targets)*len(goals), len(goals2))
		if err != nil {
			return nil, err
		}
		return buildBetween(asgs, func(asg []int) (Conjunction, bool) {
			var conj Conjunction
			idx := 0
			for _, t := range targets {
				for _, g := range goals {
					h := goals2[asg[idx]]
					idx++
					if !valid(t, g, h) {
						return nil, false
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
			}
			return conj, true
		}), nil

	case tAll && hAll:
		asgs, err := assignments(len(targets)*len(goals2), len(goals))
		if err != nil {
			return nil, err
		}
		return buildBetween(asgs, func(asg []int) (Conjunction, bool) {
			var conj Conjunction
			idx := 0
			for _, t := range targets {
				for _, h := range goals2 {
					g := goals[asg[idx]]
					idx++
					if !valid(t, g, h) {
						return nil, false
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
			}
			return conj, true
		}), nil

	case gAll && hAll:
		asgs, err := assignments(len(goals)*len(goals2), len(targets))
		if err != nil {
			return nil, err
		}
		return buildBetween(asgs, func(asg []int) (Conjunction, bool) {
			var conj Conjunction
			idx := 0
			for _, g := range goals {
				for _, h := range goals2 {
					t := targets[asg[idx]]
					idx++
					if !valid(t, g, h) {
						return nil, false
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
			}
			return conj, true
		}), nil

	case tAll:
		// Two free slots: pair-index enumeration over (goal, goal2).
		if len(goals) == 0 || len(goals2) == 0 {
			return nil, nil
		}
		asgs, err := assignments(len(targets), len(goals)*len(goals2))
		if err != nil {
			return nil, err
		}
		return buildBetween(asgs, func(asg []int) (Conjunction, bool) {
			var conj Conjunction
			for i, t := range targets {
				pair := asg[i]
				g := goals[pair/len(goals2)]
				h := goals2[pair%len(goals2)]
				if !valid(t, g, h) {
					return nil, false
				}
				conj = append(conj, lit(world.RelBetween, t, g, h))
			}
			return conj, true
		}), nil

	case gAll:
		asgs, err := assignments(len(goals), len(goals2))
		if err != nil {
			return nil, err
		}
		var dnf DNF
		for _, t := range targets {
			for _, asg := range asgs {
				var conj Conjunction
				ok := true
				for j, g := range goals {
					h := goals2[asg[j]]
					if !valid(t, g, h) {
						ok = false
						break
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
				if ok && len(conj) > 0 {
					dnf = append(dnf, conj)
				}
			}
		}
		return dnf, nil

	default: // hAll
		asgs, err := assignments(len(goals2), len(goals))
		if err != nil {
			return nil, err
		}
		var dnf DNF
		for _, t := range targets {
			for _, asg := range asgs {
				var conj Conjunction
				ok := true
				for j, h := range goals2 {
					g := goals[asg[j]]
					if !valid(t, g, h) {
						ok = false
						break
					}
					conj = append(conj, lit(world.RelBetween, t, g, h))
				}
				if ok && len(conj) > 0 {
					dnf = append(dnf, conj)
				}
			}
		}
		return dnf, nil
	}
}

func buildBetween(asgs [][]int, build func([]int) (Conjunction, bool)) DNF {
	var dnf DNF
	for _, asg := range asgs {
		if conj, ok := build(asg); ok && len(conj) > 0 {
			dnf = append(dnf, conj)
		}
	}
	return dnf
}

// filterExclusiveSupport drops conjunctions that place two distinct
// movable objects directly on the same support — a stack position holds
// one direct child. The floor is exempt.
func filterExclusiveSupport(dnf DNF) DNF {
	out := make(DNF, 0, len(dnf))
	for _, conj := range dnf {
		if hasExclusiveSupportConflict(conj) {
			continue
		}
		out = append(out, conj)
	}
	return out
}

func hasExclusiveSupportConflict(conj Conjunction) bool {
	childOf := make(map[string]string)
	for _, l := range conj {
		if l.Relation != world.RelOnTop && l.Relation != world.RelInside {
			continue
		}
		support := l.Args[1]
		if support == world.FloorID {
			continue
		}
		if prev, ok := childOf[support]; ok && prev != l.Args[0] {
			return true
		}
		childOf[support] = l.Args[0]
	}
	return false
}
