// Package plan searches the space of world configurations for a state
// satisfying a goal formula and renders the winning path as an action
// sequence.
package plan

import (
	"strings"

	"github.com/haricheung/blockshell/internal/world"
)

// Node is one search state: what is held plus the full stack contents.
// The arm column is deliberately absent — arm motion costs nothing in the
// search, so keying on it would only multiply the graph.
type Node struct {
	Holding string
	Stacks  [][]string
}

// NewNode snapshots a world state into a search node.
func NewNode(s *world.State) Node {
	return Node{Holding: s.Holding, Stacks: world.CloneStacks(s.Stacks)}
}

// Key is the canonical value identity of the node.
func (n Node) Key() string {
	var b strings.Builder
	b.WriteString(n.Holding)
	for _, stack := range n.Stacks {
		b.WriteByte('|')
		b.WriteString(strings.Join(stack, ","))
	}
	return b.String()
}

// state wraps the node as a read-only world.State sharing the given
// definitions, for evaluating physics predicates.
func (n Node) state(objs map[string]world.ObjectDefinition) *world.State {
	return &world.State{Stacks: n.Stacks, Holding: n.Holding, Objects: objs}
}

// locate returns the stack index and height of id within the node, or
// held/absent markers. above counts the objects stacked on top of id;
// held and floor locations count zero.
func (n Node) locate(id string) (stack, height int, held bool) {
	if id == n.Holding {
		return -1, -1, true
	}
	for si, st := range n.Stacks {
		for hi, member := range st {
			if member == id {
				return si, hi, false
			}
		}
	}
	return -1, -1, false
}

func (n Node) above(id string) int {
	stack, height, held := n.locate(id)
	if held || stack < 0 {
		return 0
	}
	return len(n.Stacks[stack]) - height - 1
}
