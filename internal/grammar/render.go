package grammar

import (
	"strings"

	"github.com/haricheung/blockshell/internal/world"
)

// Paraphrase renders a command back to text with explicit parentheses
// around relative-clause groups, so two parses of the same utterance read
// differently in a clarification listing.
func Paraphrase(c *Command) string {
	switch c.Verb {
	case VerbTake:
		return "take " + RenderEntity(c.Entity)
	case VerbPut:
		return "put it " + renderLocation(c.Location)
	case VerbMove:
		return "move " + RenderEntity(c.Entity) + " " + renderLocation(c.Location)
	}
	return ""
}

// RenderEntity renders a quantified object phrase.
func RenderEntity(e *Entity) string {
	return string(e.Quantifier) + " " + renderObject(e.Object)
}

func renderObject(o *Object) string {
	if o.Child != nil {
		return "(" + renderObject(o.Child) + " that is " + renderLocation(o.Location) + ")"
	}
	var parts []string
	if o.Size != "" {
		parts = append(parts, string(o.Size))
	}
	if o.Color != "" {
		parts = append(parts, string(o.Color))
	}
	parts = append(parts, formWord(o.Form))
	return strings.Join(parts, " ")
}

func renderLocation(l *Location) string {
	if l.Relation == world.RelBetween {
		return "between " + RenderEntity(l.Entity) + " and " + RenderEntity(l.Entity2)
	}
	return relationWord[l.Relation] + " " + RenderEntity(l.Entity)
}

func formWord(f world.Form) string {
	switch f {
	case world.FormAny:
		return "object"
	case world.FormFloor:
		return "floor"
	}
	return string(f)
}
