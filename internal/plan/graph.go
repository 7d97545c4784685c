package plan

import "github.com/haricheung/blockshell/internal/world"

// Successors enumerates the physically legal one-action transitions from
// n: pick the top of any non-empty stack when the gripper is free, or
// drop the held object wherever the stacking laws allow. Every
// transition costs one action.
func Successors(n Node, objs map[string]world.ObjectDefinition) []Node {
	var out []Node

	if n.Holding == "" {
		for i, stack := range n.Stacks {
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stacks := world.CloneStacks(n.Stacks)
			stacks[i] = stacks[i][:len(stacks[i])-1]
			out = append(out, Node{Holding: top, Stacks: stacks})
		}
		return out
	}

	held := objs[n.Holding]
	for i, stack := range n.Stacks {
		bottom := world.FloorDefinition
		if len(stack) > 0 {
			bottom = objs[stack[len(stack)-1]]
		}
		if !world.IsStackingAllowed(held, bottom) {
			continue
		}
		stacks := world.CloneStacks(n.Stacks)
		stacks[i] = append(stacks[i], n.Holding)
		out = append(out, Node{Stacks: stacks})
	}
	return out
}
