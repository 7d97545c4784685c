package interpret

import (
	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

// Candidates is the result of resolving one entity phrase: the
// identifiers its descriptor admits, narrowed by any relative clause.
// Nested mirrors the clause's own entity so the caller can inspect the
// full resolution tree; tie-breaks between nested bindings are deferred
// to formula construction.
type Candidates struct {
	Main     []string
	Relation world.Relation
	Nested   *Candidates
	Nested2  *Candidates
}

// ResolveEntity maps an entity phrase to its candidate identifiers in
// the current world.
func ResolveEntity(e *grammar.Entity, s *world.State) (*Candidates, error) {
	return resolveObject(e.Object, s)
}

func resolveObject(o *grammar.Object, s *world.State) (*Candidates, error) {
	if o.Child == nil {
		desc := o.Descriptor()
		var main []string
		for _, id := range s.Existing() {
			def, _ := s.Definition(id)
			if world.MatchesDescriptor(desc, def) {
				main = append(main, id)
			}
		}
		return &Candidates{Main: main}, nil
	}

	inner, err := resolveObject(o.Child, s)
	if err != nil {
		return nil, err
	}
	loc := o.Location
	nested, err := ResolveEntity(loc.Entity, s)
	if err != nil {
		return nil, err
	}
	var nested2 *Candidates
	if loc.Relation == world.RelBetween {
		nested2, err = ResolveEntity(loc.Entity2, s)
		if err != nil {
			return nil, err
		}
	}

	var main []string
	for _, id := range inner.Main {
		a, err := s.Find(id)
		if err != nil {
			return nil, err
		}
		if satisfiesSomeBinding(a, loc.Relation, nested, nested2, s) {
			main = append(main, id)
		}
	}
	return &Candidates{Main: main, Relation: loc.Relation, Nested: nested, Nested2: nested2}, nil
}

// satisfiesSomeBinding reports whether at least one binding of the
// nested candidates places a in the required relation right now.
func satisfiesSomeBinding(a world.FoundObject, rel world.Relation, nested, nested2 *Candidates, s *world.State) bool {
	for _, nid := range nested.Main {
		b, err := s.Find(nid)
		if err != nil {
			continue
		}
		if rel != world.RelBetween {
			if world.HasValidLocation(a, rel, b, nil) {
				return true
			}
			continue
		}
		for _, n2 := range nested2.Main {
			c, err := s.Find(n2)
			if err != nil {
				continue
			}
			if world.HasValidLocation(a, rel, b, &c) {
				return true
			}
		}
	}
	return false
}
