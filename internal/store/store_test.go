package store

import (
	"fmt"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	st, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	base := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		st.Append(Record{
			ID:        fmt.Sprintf("id%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339Nano),
			World:     "small",
			Utterance: fmt.Sprintf("utterance %d", i),
			Outcome:   "planned",
			Steps:     i,
		})
	}

	got, err := st.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent(3) = %d records", len(got))
	}
	// Newest first.
	for i, want := range []string{"id4", "id3", "id2"} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestAppendFillsDefaults(t *testing.T) {
	st, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	st.Append(Record{Utterance: "take the ball", Outcome: "error"})
	got, err := st.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("record not stored")
	}
	if got[0].ID == "" || got[0].Timestamp == "" {
		t.Errorf("defaults not filled: %+v", got[0])
	}
}

func TestNilStoreIsInert(t *testing.T) {
	var st *Store
	st.Append(Record{Utterance: "x"})
	if got, err := st.Recent(5); err != nil || got != nil {
		t.Errorf("nil store: got %v, %v", got, err)
	}
	if err := st.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}
