// Package engine runs one utterance through the full pipeline: parse,
// interpret, plan, emit. The pipeline is synchronous and single-threaded;
// the bus only carries observability events out of it.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haricheung/blockshell/internal/bus"
	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/interpret"
	"github.com/haricheung/blockshell/internal/plan"
	"github.com/haricheung/blockshell/internal/tasklog"
	"github.com/haricheung/blockshell/internal/types"
	"github.com/haricheung/blockshell/internal/world"
)

// DefaultTimeout bounds the A* search per utterance.
const DefaultTimeout = 10 * time.Second

// Engine holds the collaborators one pipeline invocation needs. All
// fields may be nil/zero; absent collaborators are skipped, and a zero
// Timeout means DefaultTimeout.
type Engine struct {
	Bus     *bus.Bus
	Log     *zap.Logger
	Tasklog *tasklog.Registry
	Timeout time.Duration
	World   string // world name, for events and logs
}

// Outcome is a successful pipeline run.
type Outcome struct {
	UtteranceID    string
	Actions        []string
	Interpretation *interpret.Interpretation
	Search         *plan.SearchResult
}

// choicePrefix recognizes the "(N) <text>" interpretation-selection
// shortcut.
var choicePrefix = regexp.MustCompile(`^\((\d+)\)\s*(.*)$`)

// Process interprets and plans one utterance against s. It never mutates
// s. Clarifications, interpretation failures and planner errors come
// back as the interpret/plan package error values.
func (e *Engine) Process(utterance string, s *world.State) (*Outcome, error) {
	id := uuid.New().String()
	text := strings.TrimSpace(utterance)

	choice := -1
	if m := choicePrefix.FindStringSubmatch(text); m != nil {
		choice, _ = strconv.Atoi(m[1])
		text = m[2]
	}

	tlog := e.Tasklog.Open(id, text)
	defer e.Tasklog.Close(id)

	e.publish(types.StageShell, types.MsgUtterance, types.UtteranceEvent{UtteranceID: id, Text: text, World: e.World})

	parses, err := grammar.ParseAll(text)
	if err != nil {
		return nil, e.fail(tlog, id, types.StageParse, err)
	}
	paraphrases := make([]string, len(parses))
	for i, p := range parses {
		paraphrases[i] = grammar.Paraphrase(p)
	}
	tlog.Parses(paraphrases)
	e.publish(types.StageParse, types.MsgParses, types.ParsesEvent{UtteranceID: id, Paraphrases: paraphrases})

	// Each parse is interpreted independently; failures are suppressed
	// as long as at least one parse yields an interpretation. Only when
	// every parse fails does the first error surface.
	var interps []*interpret.Interpretation
	var firstErr error
	for _, p := range parses {
		interp, err := interpret.Interpret(p, s)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		interps = append(interps, interp)
	}
	if len(interps) == 0 {
		return nil, e.fail(tlog, id, types.StageInterpret, firstErr)
	}

	chosen := interps[0]
	if len(interps) > 1 {
		if choice >= 0 && choice < len(interps) {
			chosen = interps[choice]
		} else {
			descs := make([]string, len(interps))
			for i, interp := range interps {
				descs[i] = grammar.Paraphrase(interp.Command)
			}
			clarify := &interpret.ClarificationError{Kind: interpret.ClarifyParsing, Descriptions: descs}
			return nil, e.fail(tlog, id, types.StageInterpret, clarify)
		}
	}

	paraphrase := grammar.Paraphrase(chosen.Command)
	tlog.Interpretation(paraphrase, chosen.Goal.String(), len(chosen.Goal))
	e.publish(types.StageInterpret, types.MsgInterpretation, types.InterpretationEvent{
		UtteranceID:  id,
		Paraphrase:   paraphrase,
		Goal:         chosen.Goal.String(),
		Conjunctions: len(chosen.Goal),
	})

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	searchStart := time.Now()
	actions, result, err := plan.Plan(s, chosen.Goal, timeout)
	if err != nil {
		return nil, e.fail(tlog, id, types.StagePlan, err)
	}
	if result != nil {
		tlog.Search(result.Cost, result.Expanded, time.Since(searchStart))
		e.publish(types.StagePlan, types.MsgSearch, types.SearchEvent{
			UtteranceID: id,
			Cost:        result.Cost,
			Expanded:    result.Expanded,
			Duration:    time.Since(searchStart),
		})
	}
	tlog.Plan(actions, countAtomic(actions))
	e.publish(types.StagePlan, types.MsgPlan, types.PlanEvent{UtteranceID: id, Actions: actions, Steps: countAtomic(actions)})

	if e.Log != nil {
		e.Log.Info("utterance planned",
			zap.String("utterance_id", id),
			zap.String("interpretation", paraphrase),
			zap.Int("steps", countAtomic(actions)))
	}
	return &Outcome{UtteranceID: id, Actions: actions, Interpretation: chosen, Search: result}, nil
}

func (e *Engine) fail(tlog *tasklog.TaskLog, id string, stage types.Stage, err error) error {
	tlog.Error(string(stage), err.Error())
	var clarify *interpret.ClarificationError
	if errors.As(err, &clarify) {
		e.publish(stage, types.MsgClarification, types.ClarificationEvent{
			UtteranceID:  id,
			Kind:         string(clarify.Kind),
			Descriptions: clarify.Descriptions,
		})
	} else {
		e.publish(stage, types.MsgPipelineError, types.ErrorEvent{UtteranceID: id, Stage: stage, Message: err.Error()})
	}
	if e.Log != nil {
		e.Log.Warn("utterance failed",
			zap.String("utterance_id", id),
			zap.String("stage", string(stage)),
			zap.Error(err))
	}
	return err
}

func (e *Engine) publish(from types.Stage, t types.MessageType, payload any) {
	if e.Bus == nil {
		return
	}
	e.Bus.Publish(types.Message{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		From:      from,
		Type:      t,
		Payload:   payload,
	})
}

// countAtomic counts the single-character robot actions in a plan.
func countAtomic(actions []string) int {
	n := 0
	for _, a := range actions {
		switch a {
		case plan.ActionPick, plan.ActionDrop, plan.ActionLeft, plan.ActionRight:
			n++
		}
	}
	return n
}

// UserMessage renders a pipeline error the way the shell reports it.
func UserMessage(err error) string {
	var clarify *interpret.ClarificationError
	if errors.As(err, &clarify) {
		switch clarify.Kind {
		case interpret.ClarifyParsing:
			var b strings.Builder
			b.WriteString("The utterance can be understood in different ways, do you want:")
			for i, d := range clarify.Descriptions {
				fmt.Fprintf(&b, " (%d) %s", i, d)
			}
			return b.String()
		case interpret.ClarifyAmbiguity:
			var b strings.Builder
			b.WriteString("An ambiguity exists, did you mean:")
			for _, d := range clarify.Descriptions {
				b.WriteString(" - " + d + "?")
			}
			return b.String()
		}
	}
	var ambiguous *world.AmbiguousDescriptionError
	switch {
	case errors.As(err, &ambiguous):
		return fmt.Sprintf("An ambiguity exists that words cannot resolve: %q names more than one object", ambiguous.Description)
	case errors.Is(err, grammar.ErrUnparseable):
		return "Parsing error: " + err.Error()
	case errors.Is(err, interpret.ErrNoInterpretation):
		return "Sentence has no valid interpretation in world"
	case errors.Is(err, interpret.ErrHoldOne):
		return "Only one object can be held at a time!"
	case errors.Is(err, plan.ErrTimeout):
		return "Planning error: Search for goal timed out!"
	case errors.Is(err, plan.ErrNoPath):
		return "Planning error: no sequence of actions reaches that goal"
	}
	return "Error: " + err.Error()
}
