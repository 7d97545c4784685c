// Package grammar turns a raw utterance into parsed command trees.
//
// The grammar is deliberately small: three verbs, three quantifiers, nine
// spatial relations, and noun phrases of the shape "size? color? form"
// with optional relative clauses. Prepositional-phrase attachment is
// genuinely ambiguous ("put a ball in a box on the floor"), so the parser
// returns every complete parse rather than committing to one; the
// interpreter decides which parses survive against the world.
package grammar

import "github.com/haricheung/blockshell/internal/world"

// Verb is the command head.
type Verb string

const (
	VerbTake Verb = "take" // take <entity>
	VerbPut  Verb = "put"  // put it <location>  (acts on the held object)
	VerbMove Verb = "move" // move <entity> <location>
)

// Quantifier of an entity.
type Quantifier string

const (
	QuantThe Quantifier = "the" // unique referent; ambiguity is an error
	QuantAny Quantifier = "any" // any one suffices
	QuantAll Quantifier = "all" // every matching object
)

// Command is one complete parsed utterance.
type Command struct {
	Verb     Verb
	Entity   *Entity   // present for take and move
	Location *Location // present for put and move
}

// Entity is a quantified object phrase.
type Entity struct {
	Quantifier Quantifier
	Object     *Object
}

// Object is either a leaf descriptor (Child == nil) or a descriptor
// narrowed by a relative clause (Child and Location set). Nesting is
// tree-shaped; a chain of relative clauses nests left.
type Object struct {
	// Leaf descriptor fields. Size and Color may be empty.
	Size  world.Size
	Color world.Color
	Form  world.Form

	// Relative clause. When Child is non-nil the leaf fields above are
	// unset and the descriptor lives in (possibly deeper) Child.
	Child    *Object
	Location *Location
}

// Leaf returns the descriptor at the bottom of a relative-clause chain.
func (o *Object) Leaf() *Object {
	for o.Child != nil {
		o = o.Child
	}
	return o
}

// Descriptor returns the leaf as an ObjectDefinition for matching.
func (o *Object) Descriptor() world.ObjectDefinition {
	leaf := o.Leaf()
	return world.ObjectDefinition{Form: leaf.Form, Size: leaf.Size, Color: leaf.Color}
}

// Location is a spatial relation anchored at one or two entities.
// Entity2 is set iff Relation == world.RelBetween.
type Location struct {
	Relation world.Relation
	Entity   *Entity
	Entity2  *Entity
}
