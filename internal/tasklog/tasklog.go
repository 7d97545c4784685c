// Package tasklog provides per-utterance structured logging for the
// pipeline.
//
// Each utterance gets one JSONL file in a configurable directory. Events
// capture every stage: the parses found, the chosen interpretation and
// its goal formula, search statistics, the emitted plan, and errors.
//
// Design constraints:
//   - All TaskLog methods are nil-safe (no-op on nil receiver) so the
//     engine never needs nil checks before a log call.
//   - Registry is the sole owner of JSONL persistence; pipeline stages
//     never open files.
//   - The engine opens a log per utterance and closes it when the
//     invocation finishes, success or not.
package tasklog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventKind labels a single structured event in the utterance log.
type EventKind string

const (
	KindUtteranceBegin EventKind = "utterance_begin"
	KindParses         EventKind = "parses"
	KindInterpretation EventKind = "interpretation"
	KindSearch         EventKind = "search"
	KindPlan           EventKind = "plan"
	KindError          EventKind = "error"
	KindUtteranceEnd   EventKind = "utterance_end"
)

// Event is one JSONL line. Fields are omitempty so each event only
// serialises relevant data.
type Event struct {
	Kind      EventKind `json:"kind"`
	Timestamp string    `json:"ts"`

	UtteranceID string `json:"utterance_id,omitempty"`
	Text        string `json:"text,omitempty"`

	Paraphrases []string `json:"paraphrases,omitempty"`

	Interpretation string `json:"interpretation,omitempty"`
	Goal           string `json:"goal,omitempty"`
	Conjunctions   int    `json:"conjunctions,omitempty"`

	Cost       int     `json:"cost,omitempty"`
	Expanded   int     `json:"expanded,omitempty"`
	DurationMs float64 `json:"duration_ms,omitempty"`

	Actions []string `json:"actions,omitempty"`
	Steps   int      `json:"steps,omitempty"`

	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
}

// TaskLog records events for one utterance. A nil *TaskLog is valid and
// drops everything.
type TaskLog struct {
	mu  sync.Mutex
	id  string
	f   *os.File
	log *zap.Logger
}

// Registry owns the log directory and the open TaskLogs.
type Registry struct {
	mu   sync.Mutex
	dir  string
	log  *zap.Logger
	open map[string]*TaskLog
}

// NewRegistry creates a Registry writing under dir. logger may be nil.
func NewRegistry(dir string, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{dir: dir, log: logger, open: make(map[string]*TaskLog)}
}

// Open starts a log for one utterance and records utterance_begin.
// A nil Registry returns a nil TaskLog.
func (r *Registry) Open(utteranceID, text string) *TaskLog {
	if r == nil {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.log.Warn("tasklog dir", zap.Error(err))
		return nil
	}
	path := filepath.Join(r.dir, fmt.Sprintf("%s.jsonl", utteranceID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.log.Warn("tasklog open", zap.String("path", path), zap.Error(err))
		return nil
	}
	tl := &TaskLog{id: utteranceID, f: f, log: r.log}
	r.mu.Lock()
	r.open[utteranceID] = tl
	r.mu.Unlock()
	tl.write(Event{Kind: KindUtteranceBegin, UtteranceID: utteranceID, Text: text})
	return tl
}

// Close records utterance_end and closes the file. Unknown ids are
// ignored. A nil Registry is a no-op.
func (r *Registry) Close(utteranceID string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	tl := r.open[utteranceID]
	delete(r.open, utteranceID)
	r.mu.Unlock()
	if tl == nil {
		return
	}
	tl.write(Event{Kind: KindUtteranceEnd, UtteranceID: utteranceID})
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if err := tl.f.Close(); err != nil {
		tl.log.Warn("tasklog close", zap.Error(err))
	}
	tl.f = nil
}

// Parses records the paraphrases of every complete parse.
func (t *TaskLog) Parses(paraphrases []string) {
	if t == nil {
		return
	}
	t.write(Event{Kind: KindParses, Paraphrases: paraphrases})
}

// Interpretation records the chosen reading and its goal formula.
func (t *TaskLog) Interpretation(paraphrase, goal string, conjunctions int) {
	if t == nil {
		return
	}
	t.write(Event{Kind: KindInterpretation, Interpretation: paraphrase, Goal: goal, Conjunctions: conjunctions})
}

// Search records the A* outcome.
func (t *TaskLog) Search(cost, expanded int, d time.Duration) {
	if t == nil {
		return
	}
	t.write(Event{Kind: KindSearch, Cost: cost, Expanded: expanded, DurationMs: float64(d.Microseconds()) / 1000})
}

// Plan records the emitted action sequence.
func (t *TaskLog) Plan(actions []string, steps int) {
	if t == nil {
		return
	}
	t.write(Event{Kind: KindPlan, Actions: actions, Steps: steps})
}

// Error records a stage failure or clarification.
func (t *TaskLog) Error(stage, message string) {
	if t == nil {
		return
	}
	t.write(Event{Kind: KindError, Stage: stage, Message: message})
}

func (t *TaskLog) write(ev Event) {
	ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f == nil {
		return
	}
	line, err := json.Marshal(ev)
	if err != nil {
		t.log.Warn("tasklog marshal", zap.Error(err))
		return
	}
	if _, err := t.f.Write(append(line, '\n')); err != nil {
		t.log.Warn("tasklog write", zap.Error(err))
	}
}
