// Package store persists the shell's session history in LevelDB: one
// record per utterance with its outcome and the world it ran against.
// The REPL's history command and the blsh history subcommand read it
// back; nothing in the pipeline depends on it.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// LevelDB key scheme — "|" separated so timestamps stay order-preserving
// under the default byte comparator.
//
//	u|<rfc3339nano>|<id> → Record JSON
const prefixUtterance = "u|"

// Record is one remembered utterance.
type Record struct {
	ID        string   `json:"id"`
	Timestamp string   `json:"ts"`
	World     string   `json:"world"`
	Utterance string   `json:"utterance"`
	Outcome   string   `json:"outcome"` // planned | clarification | error
	Message   string   `json:"message,omitempty"`
	Actions   []string `json:"actions,omitempty"`
	Steps     int      `json:"steps,omitempty"`
}

// Store is the LevelDB-backed session history.
type Store struct {
	db  *leveldb.DB
	log *zap.Logger
}

// Open opens (or creates) the database directory at path. LevelDB is
// single-writer; a second blsh process on the same cache dir will fail
// here.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open history at %s: %w", path, err)
	}
	return &Store{db: db, log: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes one record. Missing ID and Timestamp are filled in. A
// nil Store drops the record.
func (s *Store) Append(r Record) {
	if s == nil {
		return
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Timestamp == "" {
		// Fixed-width fraction: RFC3339Nano trims trailing zeros, which
		// would break the byte order of keys within one second.
		r.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
	}
	val, err := json.Marshal(r)
	if err != nil {
		s.log.Warn("history marshal", zap.Error(err))
		return
	}
	key := fmt.Sprintf("%s%s|%s", prefixUtterance, r.Timestamp, r.ID)
	if err := s.db.Put([]byte(key), val, nil); err != nil {
		s.log.Warn("history write", zap.String("key", key), zap.Error(err))
	}
}

// Recent returns up to n records, newest first. A nil Store returns nil.
func (s *Store) Recent(n int) ([]Record, error) {
	if s == nil || n <= 0 {
		return nil, nil
	}
	iter := s.db.NewIterator(util.BytesPrefix([]byte(prefixUtterance)), nil)
	defer iter.Release()

	var out []Record
	for ok := iter.Last(); ok && len(out) < n; ok = iter.Prev() {
		var r Record
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			s.log.Warn("history decode", zap.String("key", string(iter.Key())), zap.Error(err))
			continue
		}
		out = append(out, r)
	}
	if err := iter.Error(); err != nil {
		return out, fmt.Errorf("history scan: %w", err)
	}
	return out, nil
}
