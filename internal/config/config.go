// Package config resolves the shell's settings from the environment.
// A .env in the working directory is loaded first, so a project-local
// world and timeout travel with the directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/haricheung/blockshell/internal/world"
)

// Config is everything the shell needs to start.
type Config struct {
	// World names a built-in world or a YAML file in WorldsDir.
	World string
	// WorldsDir holds custom world definition files (<name>.yaml).
	WorldsDir string
	// CacheDir receives history, tasklogs and debug logs.
	CacheDir string
	// Timeout bounds the A* search per utterance.
	Timeout time.Duration
	// Debug enables file logging.
	Debug bool
	// Verbose echoes pipeline stage events to the terminal.
	Verbose bool
}

// Load reads .env (if present) and the BLSH_* environment variables.
func Load() Config {
	_ = godotenv.Load(".env")

	homeDir, _ := os.UserHomeDir()
	cfg := Config{
		World:    "small",
		CacheDir: filepath.Join(homeDir, ".cache", "blsh"),
		Timeout:  10 * time.Second,
	}
	if v := os.Getenv("BLSH_WORLD"); v != "" {
		cfg.World = v
	}
	if v := os.Getenv("BLSH_WORLDS_DIR"); v != "" {
		cfg.WorldsDir = v
	}
	if v := os.Getenv("BLSH_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("BLSH_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	cfg.Debug = boolEnv("BLSH_DEBUG")
	cfg.Verbose = boolEnv("BLSH_VERBOSE")
	return cfg
}

func boolEnv(name string) bool {
	switch os.Getenv(name) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// LoadWorld resolves a world name: a YAML file in WorldsDir wins over a
// built-in of the same name.
func (c Config) LoadWorld(name string) (*world.State, error) {
	if c.WorldsDir != "" {
		path := filepath.Join(c.WorldsDir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			return world.LoadFile(path)
		}
	}
	if s, ok := world.Builtin(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown world %q", name)
}

// HistoryPath is the LevelDB directory for session history.
func (c Config) HistoryPath() string { return filepath.Join(c.CacheDir, "history") }

// TasklogDir is the per-utterance JSONL directory.
func (c Config) TasklogDir() string { return filepath.Join(c.CacheDir, "tasklogs") }

// AuditPath is the bus audit JSONL file.
func (c Config) AuditPath() string { return filepath.Join(c.CacheDir, "audit.jsonl") }

// LogPath is the debug log file.
func (c Config) LogPath() string { return filepath.Join(c.CacheDir, "blsh.log") }

// ReplHistoryPath is the readline history file.
func (c Config) ReplHistoryPath() string { return filepath.Join(c.CacheDir, "repl_history") }
