package types

import "time"

// Stage identifiers for pipeline observability messages.
type Stage string

const (
	StageShell     Stage = "shell"
	StageParse     Stage = "parse"
	StageInterpret Stage = "interpret"
	StagePlan      Stage = "plan"
	StageExecute   Stage = "execute"
)

// MessageType identifies the payload type of a bus message.
type MessageType string

const (
	MsgUtterance      MessageType = "Utterance"      // shell accepted raw input
	MsgParses         MessageType = "Parses"         // parser finished
	MsgInterpretation MessageType = "Interpretation" // goal formula built
	MsgSearch         MessageType = "Search"         // A* finished
	MsgPlan           MessageType = "Plan"           // actions emitted
	MsgClarification  MessageType = "Clarification"  // pipeline needs a user choice
	MsgPipelineError  MessageType = "PipelineError"  // utterance failed
	MsgWorldChanged   MessageType = "WorldChanged"   // executor applied the plan
)

// Message is the envelope for every observability event on the bus. The
// pipeline publishes; the UI status line and the auditor tap consume.
type Message struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	From      Stage       `json:"from"`
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
}

// UtteranceEvent starts one pipeline invocation.
type UtteranceEvent struct {
	UtteranceID string `json:"utterance_id"`
	Text        string `json:"text"`
	World       string `json:"world"`
}

// ParsesEvent reports the surviving parse trees.
type ParsesEvent struct {
	UtteranceID string   `json:"utterance_id"`
	Paraphrases []string `json:"paraphrases"`
}

// InterpretationEvent reports the chosen goal formula.
type InterpretationEvent struct {
	UtteranceID  string `json:"utterance_id"`
	Paraphrase   string `json:"paraphrase"`
	Goal         string `json:"goal"`
	Conjunctions int    `json:"conjunctions"`
}

// SearchEvent reports the A* outcome.
type SearchEvent struct {
	UtteranceID string        `json:"utterance_id"`
	Cost        int           `json:"cost"`
	Expanded    int           `json:"expanded"`
	Duration    time.Duration `json:"duration"`
}

// PlanEvent carries the emitted action sequence.
type PlanEvent struct {
	UtteranceID string   `json:"utterance_id"`
	Actions     []string `json:"actions"`
	Steps       int      `json:"steps"` // atomic p/d/l/r count
}

// ClarificationEvent asks the user to choose between readings or
// referents.
type ClarificationEvent struct {
	UtteranceID  string   `json:"utterance_id"`
	Kind         string   `json:"kind"` // "ambiguity" or "parsing"
	Descriptions []string `json:"descriptions"`
}

// ErrorEvent reports a failed utterance.
type ErrorEvent struct {
	UtteranceID string `json:"utterance_id"`
	Stage       Stage  `json:"stage"`
	Message     string `json:"message"`
}

// WorldChangedEvent reports the post-execution world.
type WorldChangedEvent struct {
	UtteranceID string     `json:"utterance_id"`
	Stacks      [][]string `json:"stacks"`
	Holding     string     `json:"holding,omitempty"`
	Arm         int        `json:"arm"`
}
