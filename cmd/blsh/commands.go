package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/haricheung/blockshell/internal/bus"
	"github.com/haricheung/blockshell/internal/config"
	"github.com/haricheung/blockshell/internal/engine"
	"github.com/haricheung/blockshell/internal/logging"
	"github.com/haricheung/blockshell/internal/shell"
	"github.com/haricheung/blockshell/internal/store"
	"github.com/haricheung/blockshell/internal/tasklog"
	"github.com/haricheung/blockshell/internal/ui"
	"github.com/haricheung/blockshell/internal/world"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "interactive shell (the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
}

func newPlanCmd() *cobra.Command {
	var worldName string
	cmd := &cobra.Command{
		Use:   "plan <utterance>",
		Short: "plan a single utterance and print the actions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, cleanup, err := buildShell(cmd.Context(), worldName)
			if err != nil {
				return err
			}
			defer cleanup()
			sh.Utter(strings.Join(args, " "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&worldName, "world", "w", "", "world to plan against (default from config)")
	return cmd
}

func newWorldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worlds",
		Short: "list the built-in worlds",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range world.BuiltinNames() {
				s, _ := world.Builtin(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d columns, %d objects)\n", name, len(s.Stacks), len(s.Objects))
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recent utterances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			st, err := store.Open(cfg.HistoryPath(), nil)
			if err != nil {
				return err
			}
			defer st.Close()
			records, err := st.Recent(n)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s] %s — %s\n", r.Timestamp, r.World, r.Utterance, r.Outcome)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 20, "number of records")
	return cmd
}

func runREPL(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh, cleanup, err := buildShell(ctx, "")
	if err != nil {
		return err
	}
	defer cleanup()
	return sh.RunREPL(ctx)
}

// buildShell wires the full stack: config, logger, bus with UI and audit
// taps, tasklog registry, history store, engine, world.
func buildShell(ctx context.Context, worldOverride string) (*shell.Shell, func(), error) {
	cfg := config.Load()
	if worldOverride != "" {
		cfg.World = worldOverride
	}

	logger, err := logging.New(cfg.Debug, cfg.LogPath())
	if err != nil {
		return nil, nil, err
	}

	ws, err := cfg.LoadWorld(cfg.World)
	if err != nil {
		return nil, nil, err
	}
	if err := ws.Validate(); err != nil {
		return nil, nil, fmt.Errorf("world %q: %w", cfg.World, err)
	}

	b := bus.New()
	display := &ui.Display{Out: os.Stdout, Verbose: cfg.Verbose}
	go display.Run(ctx, b.Subscribe())
	auditor := shell.NewAuditor(b.Subscribe(), cfg.AuditPath(), logger)
	go auditor.Run(ctx)

	st, err := store.Open(cfg.HistoryPath(), logger)
	if err != nil {
		// History is a convenience; run without it rather than refusing
		// to start (a second blsh process holds the LevelDB lock).
		logger.Warn("history unavailable", zap.Error(err))
		st = nil
	}

	eng := &engine.Engine{
		Bus:     b,
		Log:     logger,
		Tasklog: tasklog.NewRegistry(cfg.TasklogDir(), logger),
		Timeout: cfg.Timeout,
		World:   cfg.World,
	}

	sh := &shell.Shell{
		Cfg:       cfg,
		Engine:    eng,
		Store:     st,
		Bus:       b,
		Log:       logger,
		Out:       os.Stdout,
		WorldName: cfg.World,
		World:     ws,
	}
	cleanup := func() {
		if st != nil {
			_ = st.Close()
		}
		_ = logger.Sync()
	}
	return sh, cleanup, nil
}
