package grammar

import (
	"errors"
	"fmt"

	"github.com/haricheung/blockshell/internal/world"
)

// ErrUnparseable is wrapped into the error ParseAll returns when no
// complete parse exists.
var ErrUnparseable = errors.New("not a recognized command")

// ParseAll returns every distinct complete parse of the utterance. The
// result order is deterministic: parses are produced left-to-right by
// attachment point, shallowest attachment first.
func ParseAll(input string) ([]*Command, error) {
	ts := Tokenize(input)
	if len(ts) == 0 {
		return nil, fmt.Errorf("empty utterance: %w", ErrUnparseable)
	}
	var parses []*Command
	seen := make(map[string]bool)
	for _, r := range parseCommand(ts) {
		if r.pos != len(ts) {
			continue
		}
		key := Paraphrase(r.cmd)
		if seen[key] {
			continue
		}
		seen[key] = true
		parses = append(parses, r.cmd)
	}
	if len(parses) == 0 {
		return nil, fmt.Errorf("%q: %w", input, ErrUnparseable)
	}
	return parses, nil
}

type cmdResult struct {
	cmd *Command
	pos int
}

type entResult struct {
	ent *Entity
	pos int
}

type objResult struct {
	obj *Object
	pos int
}

type locResult struct {
	loc *Location
	pos int
}

func tok(ts []string, i int) string {
	if i < 0 || i >= len(ts) {
		return ""
	}
	return ts[i]
}

func parseCommand(ts []string) []cmdResult {
	var out []cmdResult

	// take / grasp / pick up <entity>
	start := -1
	switch tok(ts, 0) {
	case "take", "grasp":
		start = 1
	case "pick":
		if tok(ts, 1) == "up" {
			start = 2
		}
	}
	if start > 0 {
		for _, er := range parseEntity(ts, start) {
			out = append(out, cmdResult{&Command{Verb: VerbTake, Entity: er.ent}, er.pos})
		}
	}

	// put/drop it <location> — acts on the held object
	if (tok(ts, 0) == "put" || tok(ts, 0) == "drop") && tok(ts, 1) == "it" {
		p := 2
		if tok(ts, p) == "down" {
			p++
		}
		for _, lr := range parseLocation(ts, p) {
			out = append(out, cmdResult{&Command{Verb: VerbPut, Location: lr.loc}, lr.pos})
		}
	}

	// move/put/drop/place <entity> <location>
	switch tok(ts, 0) {
	case "move", "put", "drop", "place":
		for _, er := range parseEntity(ts, 1) {
			for _, lr := range parseLocation(ts, er.pos) {
				out = append(out, cmdResult{&Command{Verb: VerbMove, Entity: er.ent, Location: lr.loc}, lr.pos})
			}
		}
	}

	return out
}

func parseEntity(ts []string, pos int) []entResult {
	q, ok := quantifiers[tok(ts, pos)]
	if !ok {
		return nil
	}
	var out []entResult
	for _, or := range parseObject(ts, pos+1) {
		out = append(out, entResult{&Entity{Quantifier: q, Object: or.obj}, or.pos})
	}
	return out
}

// parseObject parses "size? color? form" followed by zero or more
// relative clauses, yielding one result per clause count so the caller
// sees every attachment split.
func parseObject(ts []string, pos int) []objResult {
	frontier := parseLeaf(ts, pos)
	var out []objResult
	for len(frontier) > 0 {
		out = append(out, frontier...)
		var next []objResult
		for _, r := range frontier {
			for _, lr := range parseRelClause(ts, r.pos) {
				next = append(next, objResult{&Object{Child: r.obj, Location: lr.loc}, lr.pos})
			}
		}
		frontier = next
	}
	return out
}

func parseLeaf(ts []string, pos int) []objResult {
	p := pos
	obj := &Object{}
	if sz, ok := sizes[tok(ts, p)]; ok {
		obj.Size = sz
		p++
	}
	if col, ok := colors[tok(ts, p)]; ok {
		obj.Color = col
		p++
	}
	form, ok := forms[tok(ts, p)]
	if !ok {
		return nil
	}
	obj.Form = form
	return []objResult{{obj, p + 1}}
}

func parseRelClause(ts []string, pos int) []locResult {
	p := pos
	if tok(ts, p) == "that" {
		p++
		if w := tok(ts, p); w == "is" || w == "are" {
			p++
		}
	}
	return parseLocation(ts, p)
}

func parseLocation(ts []string, pos int) []locResult {
	rel, p, ok := matchRelation(ts, pos)
	if !ok {
		return nil
	}
	var out []locResult
	if rel == world.RelBetween {
		for _, e1 := range parseEntity(ts, p) {
			if tok(ts, e1.pos) != "and" {
				continue
			}
			for _, e2 := range parseEntity(ts, e1.pos+1) {
				out = append(out, locResult{
					&Location{Relation: world.RelBetween, Entity: e1.ent, Entity2: e2.ent}, e2.pos,
				})
			}
		}
		return out
	}
	for _, er := range parseEntity(ts, p) {
		out = append(out, locResult{&Location{Relation: rel, Entity: er.ent}, er.pos})
	}
	return out
}

func matchRelation(ts []string, pos int) (world.Relation, int, bool) {
	for _, cand := range relationPhrases {
		end := pos + len(cand.tokens)
		if end > len(ts) {
			continue
		}
		match := true
		for i, w := range cand.tokens {
			if ts[pos+i] != w {
				match = false
				break
			}
		}
		if match {
			return cand.rel, end, true
		}
	}
	return "", pos, false
}
