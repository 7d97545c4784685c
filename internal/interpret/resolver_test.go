package interpret

import (
	"testing"

	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

func parseOne(t *testing.T, input string) *grammar.Command {
	t.Helper()
	parses, err := grammar.ParseAll(input)
	if err != nil {
		t.Fatalf("ParseAll(%q): %v", input, err)
	}
	return parses[0]
}

func smallWorld(t *testing.T) *world.State {
	t.Helper()
	s, ok := world.Builtin("small")
	if !ok {
		t.Fatal("small world missing")
	}
	return s
}

func resolveMain(t *testing.T, input string, s *world.State) []string {
	t.Helper()
	cmd := parseOne(t, input)
	cands, err := ResolveEntity(cmd.Entity, s)
	if err != nil {
		t.Fatalf("ResolveEntity: %v", err)
	}
	return cands.Main
}

func TestResolveLeafDescriptor(t *testing.T) {
	s := smallWorld(t)
	got := resolveMain(t, "take the ball", s)
	if len(got) != 2 || got[0] != "e" || got[1] != "f" {
		t.Errorf("balls = %v, want [e f]", got)
	}
	got = resolveMain(t, "take the white ball", s)
	if len(got) != 1 || got[0] != "e" {
		t.Errorf("white balls = %v, want [e]", got)
	}
}

func TestResolveAnyformExcludesFloor(t *testing.T) {
	s := smallWorld(t)
	got := resolveMain(t, "take any object", s)
	if len(got) != 6 {
		t.Errorf("anyform should admit all six present objects, got %v", got)
	}
	for _, id := range got {
		if id == world.FloorID {
			t.Errorf("anyform must not admit the floor")
		}
	}
}

func TestResolveFloorDescriptor(t *testing.T) {
	s := smallWorld(t)
	cmd := parseOne(t, "move the floor left of a ball")
	cands, err := ResolveEntity(cmd.Entity, s)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands.Main) != 1 || cands.Main[0] != world.FloorID {
		t.Errorf("floor descriptor = %v, want [floor]", cands.Main)
	}
}

func TestResolveNestedRelation(t *testing.T) {
	// Only f sits inside a box in the small world.
	s := smallWorld(t)
	got := resolveMain(t, "take the ball that is inside a box", s)
	if len(got) != 1 || got[0] != "f" {
		t.Errorf("balls inside boxes = %v, want [f]", got)
	}
}

func TestResolveNestedBetween(t *testing.T) {
	// g (column 1) lies between e (column 0) and f (column 3).
	s := smallWorld(t)
	got := resolveMain(t, "take the table between a ball and a ball", s)
	if len(got) != 1 || got[0] != "g" {
		t.Errorf("tables between balls = %v, want [g]", got)
	}
}

func TestResolveHeldObject(t *testing.T) {
	s := smallWorld(t)
	s.Holding = "f"
	s.Stacks[3] = s.Stacks[3][:2]
	got := resolveMain(t, "take the black ball", s)
	if len(got) != 1 || got[0] != "f" {
		t.Errorf("held objects stay resolvable, got %v", got)
	}
}

func TestResolverSoundness(t *testing.T) {
	// Every resolved identifier satisfies the root descriptor.
	s := smallWorld(t)
	for _, input := range []string{"take the ball", "take any box", "take all large objects"} {
		cmd := parseOne(t, input)
		cands, err := ResolveEntity(cmd.Entity, s)
		if err != nil {
			t.Fatal(err)
		}
		desc := cmd.Entity.Object.Descriptor()
		for _, id := range cands.Main {
			def, _ := s.Definition(id)
			if !world.MatchesDescriptor(desc, def) {
				t.Errorf("%q resolved %q which fails its descriptor", input, id)
			}
		}
	}
}
