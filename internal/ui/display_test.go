package ui

import (
	"strings"
	"testing"

	"github.com/haricheung/blockshell/internal/world"
)

func renderWorld(t *testing.T) *world.State {
	t.Helper()
	s, ok := world.Builtin("small")
	if !ok {
		t.Fatal("small world missing")
	}
	return s
}

func TestRenderWorldShowsStacksAndArm(t *testing.T) {
	s := renderWorld(t)
	out := RenderWorld(s)
	for _, id := range []string{"e", "g", "l", "k", "m", "f"} {
		if !strings.Contains(out, id) {
			t.Errorf("render missing %q:\n%s", id, out)
		}
	}
	if !strings.Contains(out, "▼") {
		t.Errorf("render missing arm marker:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "▼") {
		t.Errorf("arm marker should be on the first line:\n%s", out)
	}
}

func TestRenderWorldShowsHeldObject(t *testing.T) {
	s := renderWorld(t)
	s.Holding = "f"
	s.Stacks[3] = s.Stacks[3][:2]
	out := RenderWorld(s)
	if !strings.Contains(out, "holding: f") {
		t.Errorf("held object missing:\n%s", out)
	}
}

func TestRenderLegendListsDefinitions(t *testing.T) {
	s := renderWorld(t)
	out := RenderLegend(s)
	if !strings.Contains(out, "e — large white ball") {
		t.Errorf("legend missing e:\n%s", out)
	}
	if strings.Contains(out, world.FloorID+" —") {
		t.Errorf("legend should not list the floor:\n%s", out)
	}
}

func TestRenderActionsSeparatesNarrationFromAtoms(t *testing.T) {
	out := RenderActions([]string{"Moving right", "r", "r", "Picking up the ball", "p"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], "Moving right") {
		t.Errorf("first line should narrate: %q", lines[0])
	}
	if !strings.Contains(lines[1], "r r") {
		t.Errorf("atoms should be grouped on one line: %q", lines[1])
	}
}
