package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haricheung/blockshell/internal/bus"
	"github.com/haricheung/blockshell/internal/config"
	"github.com/haricheung/blockshell/internal/engine"
	"github.com/haricheung/blockshell/internal/interpret"
	"github.com/haricheung/blockshell/internal/store"
	"github.com/haricheung/blockshell/internal/types"
	"github.com/haricheung/blockshell/internal/ui"
	"github.com/haricheung/blockshell/internal/world"
)

// Shell owns the live world and runs utterances against it.
type Shell struct {
	Cfg    config.Config
	Engine *engine.Engine
	Store  *store.Store
	Bus    *bus.Bus
	Log    *zap.Logger
	Out    io.Writer

	WorldName string
	World     *world.State
}

const helpText = `Commands:
  <utterance>     e.g. "put the white ball in a box", "take all balls"
  (N) <utterance> pick reading N when an utterance was ambiguous
  world           redraw the current world
  worlds          list available worlds
  world <name>    switch to another world
  reset           restore the current world to its initial state
  history [n]     show the last n utterances (default 10)
  help            this text
  exit            quit`

// RunREPL reads utterances until EOF or "exit".
func (sh *Shell) RunREPL(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blsh> ",
		HistoryFile:     sh.Cfg.ReplHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(sh.Out, "blsh — blocks-world shell (world %q, type 'help' for commands)\n\n", sh.WorldName)
	sh.printWorld()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		if sh.builtin(input) {
			continue
		}
		sh.Utter(input)
	}
}

// builtin handles the non-utterance commands; returns false when input
// should go to the engine.
func (sh *Shell) builtin(input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "help":
		fmt.Fprintln(sh.Out, helpText)
	case "world":
		if len(fields) > 1 {
			sh.switchWorld(fields[1])
			return true
		}
		sh.printWorld()
	case "worlds":
		for _, name := range world.BuiltinNames() {
			fmt.Fprintf(sh.Out, "  %s\n", name)
		}
	case "reset":
		sh.switchWorld(sh.WorldName)
	case "history":
		n := 10
		if len(fields) > 1 {
			if v, err := strconv.Atoi(fields[1]); err == nil && v > 0 {
				n = v
			}
		}
		sh.printHistory(n)
	default:
		return false
	}
	return true
}

// Utter runs one utterance through the engine, applies a successful plan
// to the live world, and records the outcome.
func (sh *Shell) Utter(input string) {
	rec := store.Record{
		ID:        uuid.New().String(),
		World:     sh.WorldName,
		Utterance: input,
	}

	outcome, err := sh.Engine.Process(input, sh.World)
	if err != nil {
		msg := engine.UserMessage(err)
		fmt.Fprintln(sh.Out, msg)
		rec.Outcome = "error"
		var clarify *interpret.ClarificationError
		if errors.As(err, &clarify) {
			rec.Outcome = "clarification"
		}
		rec.Message = err.Error()
		sh.Store.Append(rec)
		return
	}

	fmt.Fprint(sh.Out, ui.RenderActions(outcome.Actions))
	if err := ApplyAll(sh.World, outcome.Actions); err != nil {
		// Planner output violating physics is a bug, not user error.
		fmt.Fprintf(sh.Out, "internal error executing plan: %v\n", err)
		if sh.Log != nil {
			sh.Log.Error("plan execution failed", zap.Error(err))
		}
		return
	}
	sh.publishWorldChanged(outcome.UtteranceID)
	sh.printWorld()

	rec.Outcome = "planned"
	rec.Actions = outcome.Actions
	rec.Steps = countAtomic(outcome.Actions)
	sh.Store.Append(rec)
}

func (sh *Shell) switchWorld(name string) {
	s, err := sh.Cfg.LoadWorld(name)
	if err != nil {
		fmt.Fprintf(sh.Out, "error: %v\n", err)
		return
	}
	sh.WorldName = name
	sh.World = s
	sh.Engine.World = name
	sh.printWorld()
}

func (sh *Shell) printWorld() {
	fmt.Fprint(sh.Out, ui.RenderWorld(sh.World))
	fmt.Fprint(sh.Out, ui.RenderLegend(sh.World))
}

func (sh *Shell) printHistory(n int) {
	records, err := sh.Store.Recent(n)
	if err != nil {
		fmt.Fprintf(sh.Out, "error: %v\n", err)
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(sh.Out, "(no history)")
		return
	}
	for _, r := range records {
		fmt.Fprintf(sh.Out, "  [%s] %s — %s", r.World, r.Utterance, r.Outcome)
		if r.Outcome == "planned" {
			fmt.Fprintf(sh.Out, " (%d steps)", r.Steps)
		}
		fmt.Fprintln(sh.Out)
	}
}

func (sh *Shell) publishWorldChanged(utteranceID string) {
	if sh.Bus == nil {
		return
	}
	sh.Bus.Publish(types.Message{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		From:      types.StageExecute,
		Type:      types.MsgWorldChanged,
		Payload: types.WorldChangedEvent{
			UtteranceID: utteranceID,
			Stacks:      world.CloneStacks(sh.World.Stacks),
			Holding:     sh.World.Holding,
			Arm:         sh.World.Arm,
		},
	})
}

func countAtomic(actions []string) int {
	n := 0
	for _, a := range actions {
		switch a {
		case "p", "d", "l", "r":
			n++
		}
	}
	return n
}
