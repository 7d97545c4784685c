package tasklog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("bad JSONL line %q: %v", scanner.Text(), err)
		}
		events = append(events, ev)
	}
	return events
}

func TestRegistryWritesFullLifecycle(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir, nil)

	tl := r.Open("u1", "take the ball")
	tl.Parses([]string{"take the ball"})
	tl.Interpretation("take the ball", "holding(e)", 1)
	tl.Search(1, 2, 3*time.Millisecond)
	tl.Plan([]string{"Picking up the ball", "p"}, 1)
	r.Close("u1")

	events := readEvents(t, filepath.Join(dir, "u1.jsonl"))
	wantKinds := []EventKind{KindUtteranceBegin, KindParses, KindInterpretation, KindSearch, KindPlan, KindUtteranceEnd}
	if len(events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(events), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if events[i].Kind != kind {
			t.Errorf("events[%d].Kind = %q, want %q", i, events[i].Kind, kind)
		}
	}
	if events[2].Goal != "holding(e)" {
		t.Errorf("interpretation event lost the goal: %+v", events[2])
	}
}

func TestErrorEvent(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(dir, nil)
	tl := r.Open("u2", "take the ball")
	tl.Error("interpret", "[ambiguity]the white ball|the black ball")
	r.Close("u2")

	events := readEvents(t, filepath.Join(dir, "u2.jsonl"))
	if len(events) != 3 || events[1].Kind != KindError {
		t.Fatalf("events = %+v", events)
	}
	if events[1].Stage != "interpret" {
		t.Errorf("stage = %q", events[1].Stage)
	}
}

func TestNilSafety(t *testing.T) {
	var r *Registry
	tl := r.Open("u3", "x") // nil registry → nil tasklog
	tl.Parses([]string{"x"})
	tl.Error("parse", "boom")
	r.Close("u3")
	// Reaching here without a panic is the assertion.
}

func TestCloseUnknownIDIsIgnored(t *testing.T) {
	r := NewRegistry(t.TempDir(), nil)
	r.Close("never-opened")
}
