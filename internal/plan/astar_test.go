package plan

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/haricheung/blockshell/internal/interpret"
	"github.com/haricheung/blockshell/internal/world"
)

func holdingGoal(id string) interpret.DNF {
	return interpret.DNF{{interpret.Literal{Polarity: true, Relation: world.RelHolding, Args: []string{id}}}}
}

func runSearch(t *testing.T, n Node, objs map[string]world.ObjectDefinition, goal interpret.DNF) SearchResult {
	t.Helper()
	result, err := AStar(
		n,
		func(n Node) []Node { return Successors(n, objs) },
		func(n Node) bool { return goal.Satisfied(&world.State{Stacks: n.Stacks, Holding: n.Holding, Objects: objs}) },
		func(n Node) int { return Heuristic(n, goal, objs) },
		time.Second,
	)
	if err != nil {
		t.Fatalf("AStar: %v", err)
	}
	return result
}

func TestAStarGoalAtStart(t *testing.T) {
	objs := testObjects()
	n := Node{Holding: "ball", Stacks: [][]string{{"box"}}}
	result := runSearch(t, n, objs, holdingGoal("ball"))
	if result.Cost != 0 || len(result.Path) != 1 {
		t.Errorf("start state satisfies the goal: cost=%d len=%d", result.Cost, len(result.Path))
	}
}

func TestAStarSinglePick(t *testing.T) {
	objs := testObjects()
	n := Node{Stacks: [][]string{{"ball"}, {}}}
	result := runSearch(t, n, objs, holdingGoal("ball"))
	if result.Cost != 1 {
		t.Errorf("cost = %d, want 1", result.Cost)
	}
	if result.Path[1].Holding != "ball" {
		t.Errorf("final state should hold the ball")
	}
}

func TestAStarUnstacksOptimally(t *testing.T) {
	// brick buried under box: move box away (2), pick brick (1).
	objs := testObjects()
	n := Node{Stacks: [][]string{{"brick", "box"}, {}}}
	result := runSearch(t, n, objs, holdingGoal("brick"))
	if result.Cost != 3 {
		t.Errorf("cost = %d, want 3", result.Cost)
	}
}

func TestAStarTimeout(t *testing.T) {
	// An inexhaustible graph that never reaches a goal.
	counter := 0
	successors := func(n Node) []Node {
		counter++
		return []Node{{Stacks: [][]string{{fmt.Sprintf("s%d", counter)}}}}
	}
	_, err := AStar(
		Node{Stacks: [][]string{{}}},
		successors,
		func(Node) bool { return false },
		func(Node) int { return 0 },
		5*time.Millisecond,
	)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestAStarExhaustedFrontier(t *testing.T) {
	// No successors, unreachable goal: the frontier drains.
	_, err := AStar(
		Node{Stacks: [][]string{{"x"}}},
		func(Node) []Node { return nil },
		func(Node) bool { return false },
		func(Node) int { return 0 },
		time.Second,
	)
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("err = %v, want ErrNoPath", err)
	}
}

func TestAStarDeterministic(t *testing.T) {
	objs := testObjects()
	n := Node{Stacks: [][]string{{"brick", "box"}, {"ball"}, {}}}
	first := runSearch(t, n, objs, holdingGoal("brick"))
	for i := 0; i < 3; i++ {
		again := runSearch(t, n, objs, holdingGoal("brick"))
		if len(again.Path) != len(first.Path) {
			t.Fatalf("path length varies between runs")
		}
		for j := range again.Path {
			if again.Path[j].Key() != first.Path[j].Key() {
				t.Errorf("run %d diverges at step %d", i, j)
			}
		}
	}
}
