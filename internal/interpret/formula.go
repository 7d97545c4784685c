package interpret

import (
	"strings"

	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

// Literal is one elementary spatial assertion over concrete identifiers.
// Polarity is carried for completeness; the builder only emits true
// literals.
type Literal struct {
	Polarity bool
	Relation world.Relation
	Args     []string
}

// Conjunction is an AND of literals.
type Conjunction []Literal

// DNF is an OR of conjunctions. An empty DNF is unsatisfiable; a DNF
// holding a single empty conjunction is trivially true.
type DNF []Conjunction

func lit(rel world.Relation, args ...string) Literal {
	return Literal{Polarity: true, Relation: rel, Args: args}
}

// String renders "rel(a,b)" for logs and tests.
func (l Literal) String() string {
	s := string(l.Relation) + "(" + strings.Join(l.Args, ",") + ")"
	if !l.Polarity {
		return "-" + s
	}
	return s
}

func (c Conjunction) String() string {
	parts := make([]string, len(c))
	for i, l := range c {
		parts[i] = l.String()
	}
	return strings.Join(parts, " & ")
}

func (d DNF) String() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// Satisfied reports whether some conjunction holds in its entirety in s.
// This is the planner's goal predicate, evaluated here so the goal test
// and the formula stay in one place.
func (d DNF) Satisfied(s *world.State) bool {
	for _, conj := range d {
		if conj.Satisfied(s) {
			return true
		}
	}
	return false
}

// Satisfied reports whether every literal of the conjunction holds in s.
func (c Conjunction) Satisfied(s *world.State) bool {
	for _, l := range c {
		if !l.Satisfied(s) {
			return false
		}
	}
	return true
}

// Satisfied evaluates one literal against the current arrangement.
func (l Literal) Satisfied(s *world.State) bool {
	a, err := s.Find(l.Args[0])
	if err != nil {
		return false
	}
	var b world.FoundObject
	if len(l.Args) > 1 {
		b, err = s.Find(l.Args[1])
		if err != nil {
			return false
		}
	}
	var c *world.FoundObject
	if len(l.Args) > 2 {
		found, err := s.Find(l.Args[2])
		if err != nil {
			return false
		}
		c = &found
	}
	ok := world.HasValidLocation(a, l.Relation, b, c)
	if !l.Polarity {
		return !ok
	}
	return ok
}

// goalSets holds the resolved candidate sets a command's formula is
// built from.
type goalSets struct {
	targets  []string
	relation world.Relation
	goals    []string
	goals2   []string // between only
}

// resolveCommand resolves every entity a command mentions.
func resolveCommand(cmd *grammar.Command, s *world.State) (goalSets, error) {
	var gs goalSets
	switch cmd.Verb {
	case grammar.VerbTake:
		cands, err := ResolveEntity(cmd.Entity, s)
		if err != nil {
			return gs, err
		}
		gs.targets = cands.Main
		return gs, nil
	case grammar.VerbPut:
		if s.Holding != "" {
			gs.targets = []string{s.Holding}
		}
	case grammar.VerbMove:
		cands, err := ResolveEntity(cmd.Entity, s)
		if err != nil {
			return gs, err
		}
		gs.targets = cands.Main
	}
	loc := cmd.Location
	gs.relation = loc.Relation
	goalCands, err := ResolveEntity(loc.Entity, s)
	if err != nil {
		return gs, err
	}
	gs.goals = goalCands.Main
	if loc.Relation == world.RelBetween {
		goal2Cands, err := ResolveEntity(loc.Entity2, s)
		if err != nil {
			return gs, err
		}
		gs.goals2 = goal2Cands.Main
	}
	return gs, nil
}

// withoutFloor filters the floor sentinel out of a candidate list; only
// goal positions may bind it.
func withoutFloor(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != world.FloorID {
			out = append(out, id)
		}
	}
	return out
}

// generateAnyDNF builds the formula when no "all" quantifier is present:
// one conjunction per admissible binding.
func generateAnyDNF(cmd *grammar.Command, gs goalSets, s *world.State) DNF {
	var dnf DNF
	targets := withoutFloor(gs.targets)

	if cmd.Verb == grammar.VerbTake {
		for _, t := range targets {
			dnf = append(dnf, Conjunction{lit(world.RelHolding, t)})
		}
		return dnf
	}

	for _, t := range targets {
		if gs.relation == world.RelBetween {
			for _, g := range gs.goals {
				for _, g2 := range gs.goals2 {
					if world.IsValidGoalLocation(s, world.RelBetween, t, g, g2) {
						dnf = append(dnf, Conjunction{lit(world.RelBetween, t, g, g2)})
					}
				}
			}
			continue
		}
		for _, g := range gs.goals {
			if world.IsValidGoalLocation(s, gs.relation, t, g, "") {
				dnf = append(dnf, Conjunction{lit(gs.relation, t, g)})
			}
		}
	}
	return dnf
}
