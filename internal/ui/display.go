// Package ui renders the world and the pipeline's progress for the
// terminal. Rendering is read-only; widths are measured with runewidth
// so custom identifiers keep columns aligned.
package ui

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/haricheung/blockshell/internal/types"
	"github.com/haricheung/blockshell/internal/world"
)

// ANSI codes
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiCyan   = "\033[36m"
	ansiYellow = "\033[33m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiBlue   = "\033[34m"
)

var msgColor = map[types.MessageType]string{
	types.MsgUtterance:      ansiCyan,
	types.MsgParses:         ansiBlue,
	types.MsgInterpretation: ansiBlue,
	types.MsgSearch:         ansiYellow,
	types.MsgPlan:           ansiGreen,
	types.MsgClarification:  ansiYellow,
	types.MsgPipelineError:  ansiRed,
	types.MsgWorldChanged:   ansiDim + ansiGreen,
}

// RenderWorld draws the stacks bottom-up with the arm marker above its
// column and the held object beside it.
func RenderWorld(s *world.State) string {
	if len(s.Stacks) == 0 {
		return "(empty world)\n"
	}

	widths := make([]int, len(s.Stacks))
	height := 0
	for i, stack := range s.Stacks {
		widths[i] = runewidth.StringWidth(fmt.Sprintf("%d", i))
		for _, id := range stack {
			if w := runewidth.StringWidth(id); w > widths[i] {
				widths[i] = w
			}
		}
		if len(stack) > height {
			height = len(stack)
		}
	}
	if held := s.Holding; held != "" {
		if w := runewidth.StringWidth(held); w > widths[s.Arm] {
			// keep the arm column wide enough for the held label
			widths[s.Arm] = w
		}
	}

	var b strings.Builder

	// Arm row.
	for i := range s.Stacks {
		cell := ""
		if i == s.Arm {
			cell = "▼"
		}
		b.WriteString(" " + pad(cell, widths[i]))
	}
	if s.Holding != "" {
		b.WriteString("  holding: " + s.Holding)
	}
	b.WriteByte('\n')

	// Stack rows, top down.
	for row := height - 1; row >= 0; row-- {
		for i, stack := range s.Stacks {
			cell := "."
			if row < len(stack) {
				cell = stack[row]
			}
			b.WriteString(" " + pad(cell, widths[i]))
		}
		b.WriteByte('\n')
	}

	// Floor and column indices.
	total := 0
	for _, w := range widths {
		total += w + 1
	}
	b.WriteString(strings.Repeat("─", total+1) + "\n")
	for i := range s.Stacks {
		b.WriteString(" " + pad(fmt.Sprintf("%d", i), widths[i]))
	}
	b.WriteByte('\n')
	return b.String()
}

func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// RenderLegend lists every present object with its description, sorted
// by identifier.
func RenderLegend(s *world.State) string {
	ids := s.Existing()
	sort.Strings(ids)
	var b strings.Builder
	for _, id := range ids {
		if id == world.FloorID {
			continue
		}
		def, _ := s.Definition(id)
		fmt.Fprintf(&b, "  %s — %s\n", id, def)
	}
	return b.String()
}

// RenderActions formats an emitted plan: narration dim, atomic actions
// bold on one line.
func RenderActions(actions []string) string {
	var b strings.Builder
	var atoms []string
	flush := func() {
		if len(atoms) > 0 {
			b.WriteString("  " + ansiBold + strings.Join(atoms, " ") + ansiReset + "\n")
			atoms = nil
		}
	}
	for _, a := range actions {
		switch a {
		case "p", "d", "l", "r":
			atoms = append(atoms, a)
		default:
			flush()
			b.WriteString("  " + ansiDim + a + ansiReset + "\n")
		}
	}
	flush()
	return b.String()
}

// Display consumes bus messages and prints one dim status line per
// stage when verbose.
type Display struct {
	Out     io.Writer
	Verbose bool
}

// Run drains messages until ctx is cancelled or the channel closes.
func (d *Display) Run(ctx context.Context, ch <-chan types.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !d.Verbose {
				continue
			}
			color := msgColor[msg.Type]
			fmt.Fprintf(d.Out, "%s%s[%s] %s%s\n", ansiDim, color, msg.From, statusLine(msg), ansiReset)
		}
	}
}

func statusLine(msg types.Message) string {
	switch p := msg.Payload.(type) {
	case types.UtteranceEvent:
		return fmt.Sprintf("%q", p.Text)
	case types.ParsesEvent:
		return fmt.Sprintf("%d parse(s)", len(p.Paraphrases))
	case types.InterpretationEvent:
		return fmt.Sprintf("goal: %s", p.Goal)
	case types.SearchEvent:
		return fmt.Sprintf("cost=%d expanded=%d in %s", p.Cost, p.Expanded, p.Duration)
	case types.PlanEvent:
		return fmt.Sprintf("%d action(s)", p.Steps)
	case types.ClarificationEvent:
		return fmt.Sprintf("needs choice between %d alternatives", len(p.Descriptions))
	case types.ErrorEvent:
		return p.Message
	case types.WorldChangedEvent:
		return "world updated"
	}
	return string(msg.Type)
}
