package shell

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/haricheung/blockshell/internal/types"
)

// Auditor taps the bus read-only and appends every message to a JSONL
// file, giving each session a replayable trace independent of the
// per-utterance tasklogs.
type Auditor struct {
	tap  <-chan types.Message
	path string
	log  *zap.Logger
}

// NewAuditor creates an Auditor over a bus subscription.
func NewAuditor(tap <-chan types.Message, path string, logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{tap: tap, path: path, log: logger}
}

// Run blocks until ctx is cancelled or the tap closes.
func (a *Auditor) Run(ctx context.Context) {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		a.log.Warn("audit dir", zap.Error(err))
		return
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		a.log.Warn("audit open", zap.Error(err))
		return
	}
	defer f.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-a.tap:
			if !ok {
				return
			}
			line, err := json.Marshal(msg)
			if err != nil {
				a.log.Warn("audit marshal", zap.Error(err))
				continue
			}
			if _, err := f.Write(append(line, '\n')); err != nil {
				a.log.Warn("audit write", zap.Error(err))
			}
		}
	}
}
