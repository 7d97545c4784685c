package interpret

import (
	"errors"
	"testing"

	"github.com/haricheung/blockshell/internal/world"
)

func interpretOne(t *testing.T, input string, s *world.State) *Interpretation {
	t.Helper()
	interp, err := Interpret(parseOne(t, input), s)
	if err != nil {
		t.Fatalf("Interpret(%q): %v", input, err)
	}
	return interp
}

func TestTakeBuildsHoldingGoal(t *testing.T) {
	s := smallWorld(t)
	interp := interpretOne(t, "take the white ball", s)
	if got := interp.Goal.String(); got != "holding(e)" {
		t.Errorf("goal = %q, want holding(e)", got)
	}
}

// betweenWorld: boxes at columns 2 and 4, the white ball held.
func betweenWorld() *world.State {
	return &world.State{
		Stacks:  [][]string{{}, {}, {"k"}, {}, {"l"}},
		Holding: "e",
		Arm:     0,
		Objects: map[string]world.ObjectDefinition{
			"e": {Form: world.FormBall, Size: world.SizeLarge, Color: world.ColorWhite},
			"k": {Form: world.FormBox, Size: world.SizeLarge, Color: world.ColorYellow},
			"l": {Form: world.FormBox, Size: world.SizeLarge, Color: world.ColorRed},
		},
	}
}

func TestBetweenEmitsBothOrders(t *testing.T) {
	s := betweenWorld()
	interp := interpretOne(t, "put the white ball between a box and a box", s)
	want := map[string]bool{"between(e,k,l)": false, "between(e,l,k)": false}
	if len(interp.Goal) != 2 {
		t.Fatalf("goal = %q, want two conjunctions", interp.Goal)
	}
	for _, conj := range interp.Goal {
		key := conj.String()
		if _, ok := want[key]; !ok {
			t.Errorf("unexpected conjunction %q", key)
			continue
		}
		want[key] = true
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("missing conjunction %q", key)
		}
	}
}

func TestPutUsesHeldObject(t *testing.T) {
	s := smallWorld(t)
	s.Holding = "f"
	s.Stacks[3] = s.Stacks[3][:2]
	interp := interpretOne(t, "put it on the floor", s)
	if got := interp.Goal.String(); got != "ontop(f,floor)" {
		t.Errorf("goal = %q, want ontop(f,floor)", got)
	}
}

func TestPutWithEmptyGripperFails(t *testing.T) {
	s := smallWorld(t)
	_, err := Interpret(parseOne(t, "put it on the floor"), s)
	if !errors.Is(err, ErrNoInterpretation) {
		t.Errorf("err = %v, want ErrNoInterpretation", err)
	}
}

func TestFloorCannotBeMoved(t *testing.T) {
	s := smallWorld(t)
	_, err := Interpret(parseOne(t, "move the floor left of the white ball"), s)
	if !errors.Is(err, ErrNoInterpretation) {
		t.Errorf("err = %v, want ErrNoInterpretation", err)
	}
}

func TestInfeasibleGoalLocationsAreDropped(t *testing.T) {
	// The large ball cannot go inside the small box.
	s := smallWorld(t)
	_, err := Interpret(parseOne(t, "move the white ball inside the blue box"), s)
	if !errors.Is(err, ErrNoInterpretation) {
		t.Errorf("err = %v, want ErrNoInterpretation", err)
	}
}

func TestLiteralSatisfied(t *testing.T) {
	s := smallWorld(t)
	cases := []struct {
		l    Literal
		want bool
	}{
		{lit(world.RelOnTop, "e", world.FloorID), true},
		{lit(world.RelInside, "f", "m"), true},
		{lit(world.RelLeftOf, "e", "f"), true},
		{lit(world.RelLeftOf, "f", "e"), false},
		{lit(world.RelHolding, "e"), false},
	}
	for _, c := range cases {
		if got := c.l.Satisfied(s); got != c.want {
			t.Errorf("%s.Satisfied = %v, want %v", c.l, got, c.want)
		}
	}
}

func TestDNFSatisfied(t *testing.T) {
	s := smallWorld(t)
	sat := DNF{
		{lit(world.RelHolding, "e")},
		{lit(world.RelInside, "f", "m")},
	}
	if !sat.Satisfied(s) {
		t.Errorf("one satisfied disjunct suffices")
	}
	unsat := DNF{{lit(world.RelInside, "f", "m"), lit(world.RelHolding, "e")}}
	if unsat.Satisfied(s) {
		t.Errorf("every literal of a conjunction must hold")
	}
}

func TestNegativeLiteralPolarity(t *testing.T) {
	s := smallWorld(t)
	l := Literal{Polarity: false, Relation: world.RelHolding, Args: []string{"e"}}
	if !l.Satisfied(s) {
		t.Errorf("negated unsatisfied literal should hold")
	}
}
