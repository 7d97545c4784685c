package interpret

import (
	"errors"
	"testing"

	"github.com/haricheung/blockshell/internal/world"
)

func clarificationFor(t *testing.T, input string, s *world.State) *ClarificationError {
	t.Helper()
	_, err := Interpret(parseOne(t, input), s)
	if err == nil {
		t.Fatalf("Interpret(%q) should need clarification", input)
	}
	var clarify *ClarificationError
	if !errors.As(err, &clarify) {
		t.Fatalf("err = %v (%T), want ClarificationError", err, err)
	}
	return clarify
}

func TestTheWithTwoReferentsAsksForClarification(t *testing.T) {
	s := smallWorld(t)
	clarify := clarificationFor(t, "take the ball", s)
	if clarify.Kind != ClarifyAmbiguity {
		t.Errorf("kind = %q, want ambiguity", clarify.Kind)
	}
	want := []string{"the large white ball", "the small black ball"}
	if len(clarify.Descriptions) != len(want) {
		t.Fatalf("descriptions = %v, want %v", clarify.Descriptions, want)
	}
	for i := range want {
		if clarify.Descriptions[i] != want[i] {
			t.Errorf("descriptions[%d] = %q, want %q", i, clarify.Descriptions[i], want[i])
		}
	}
}

func TestTheGoalEntityClarifies(t *testing.T) {
	s := smallWorld(t)
	s.Holding = "f"
	s.Stacks[3] = s.Stacks[3][:2]
	clarify := clarificationFor(t, "put it inside the box", s)
	want := []string{"the large red box", "the large yellow box", "the small blue box"}
	if len(clarify.Descriptions) != 3 {
		t.Fatalf("descriptions = %v", clarify.Descriptions)
	}
	got := map[string]bool{}
	for _, d := range clarify.Descriptions {
		got[d] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("missing description %q in %v", w, clarify.Descriptions)
		}
	}
}

func TestUniqueTheNeedsNoClarification(t *testing.T) {
	s := smallWorld(t)
	if _, err := Interpret(parseOne(t, "take the white ball"), s); err != nil {
		t.Errorf("unique referent should interpret cleanly: %v", err)
	}
}

func TestBetweenPairThresholdNeedsNoClarification(t *testing.T) {
	// Two conjunctions of one between binding (both orders) are not an
	// ambiguity.
	s := &world.State{
		Stacks:  [][]string{{}, {"k"}, {}, {"l"}},
		Holding: "e",
		Arm:     0,
		Objects: map[string]world.ObjectDefinition{
			"e": {Form: world.FormBall, Size: world.SizeLarge, Color: world.ColorWhite},
			"k": {Form: world.FormBox, Size: world.SizeLarge, Color: world.ColorYellow},
			"l": {Form: world.FormBox, Size: world.SizeLarge, Color: world.ColorRed},
		},
	}
	if _, err := Interpret(parseOne(t, "put the white ball between a box and a box"), s); err != nil {
		t.Errorf("single between binding should interpret cleanly: %v", err)
	}
}

func TestIndistinguishableReferentsRaiseDescriptionCollision(t *testing.T) {
	s := &world.State{
		Stacks: [][]string{{"x"}, {"y"}},
		Arm:    0,
		Objects: map[string]world.ObjectDefinition{
			"x": {Form: world.FormBall, Size: world.SizeLarge, Color: world.ColorWhite},
			"y": {Form: world.FormBall, Size: world.SizeLarge, Color: world.ColorWhite},
		},
	}
	_, err := Interpret(parseOne(t, "take the ball"), s)
	var ambiguous *world.AmbiguousDescriptionError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("err = %v, want AmbiguousDescriptionError", err)
	}
}

func TestClarificationWireEncoding(t *testing.T) {
	clarify := &ClarificationError{
		Kind:         ClarifyAmbiguity,
		Descriptions: []string{"the large white ball", "the small black ball"},
	}
	wire := clarify.Encode()
	if wire != "[ambiguity]the large white ball|the small black ball" {
		t.Errorf("Encode = %q", wire)
	}
	decoded := DecodeClarification(wire)
	if decoded == nil || decoded.Kind != ClarifyAmbiguity || len(decoded.Descriptions) != 2 {
		t.Errorf("Decode round-trip failed: %+v", decoded)
	}
	if DecodeClarification("plain error") != nil {
		t.Errorf("non-wire strings should not decode")
	}
}
