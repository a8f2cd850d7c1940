// Package store persists the tutor's three collections (vocabulary, memory
// checkpoints and chat sessions) as pretty-printed JSON documents under a
// single data directory. Every save rewrites the whole document through an
// atomic rename, so a concurrent reader never observes a partial file.
// There is no cross-process locking: concurrent writers race and the last
// save wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
)

const (
	vocabFile    = "vocab.json"
	memoryFile   = "memory.json"
	sessionsFile = "chat_sessions.json"
)

// TokenCounter reports the token cost of a string. Implementations are
// pluggable; tests substitute trivial counters.
type TokenCounter interface {
	Count(text string) int
}

// Store reads and writes the JSON-backed collections. It holds no cached
// state: every operation re-reads its inputs from disk.
type Store struct {
	dir              string
	counter          TokenCounter
	maxHistoryTokens int
}

// New returns a store rooted at dir. Appended chat history is trimmed to
// maxHistoryTokens using counter.
func New(dir string, counter TokenCounter, maxHistoryTokens int) *Store {
	return &Store{dir: dir, counter: counter, maxHistoryTokens: maxHistoryTokens}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// readDoc unmarshals the named document into v. A missing file is the
// first-run state, not an error: v is left at its empty default.
func (s *Store) readDoc(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := renameio.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// LoadVocab returns the vocabulary collection in teaching order, back-filling
// any fields missing from the on-disk records.
func (s *Store) LoadVocab() ([]VocabEntry, error) {
	var vocab []VocabEntry
	if err := s.readDoc(vocabFile, &vocab); err != nil {
		return nil, err
	}
	for i := range vocab {
		vocab[i].normalize()
	}
	return vocab, nil
}

// SaveVocab overwrites the vocabulary collection.
func (s *Store) SaveVocab(vocab []VocabEntry) error {
	if vocab == nil {
		vocab = []VocabEntry{}
	}
	for i := range vocab {
		vocab[i].normalize()
	}
	return s.writeDoc(vocabFile, vocab)
}

// LoadMemory returns all memory checkpoints keyed by ISO date.
func (s *Store) LoadMemory() (map[string]map[string]any, error) {
	mem := map[string]map[string]any{}
	if err := s.readDoc(memoryFile, &mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// AppendMemory stores a checkpoint under dateKey, replacing any checkpoint
// already recorded for that day.
func (s *Store) AppendMemory(dateKey string, note map[string]any) error {
	mem, err := s.LoadMemory()
	if err != nil {
		return err
	}
	mem[dateKey] = note
	return s.writeDoc(memoryFile, mem)
}

func (s *Store) loadSessions() (map[string][]ChatMessage, error) {
	sessions := map[string][]ChatMessage{}
	if err := s.readDoc(sessionsFile, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListSessions returns all session ids, sorted.
func (s *Store) ListSessions() ([]string, error) {
	sessions, err := s.loadSessions()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadSession returns the message history for a session, oldest first. An
// unknown id yields an empty history.
func (s *Store) LoadSession(id string) ([]ChatMessage, error) {
	sessions, err := s.loadSessions()
	if err != nil {
		return nil, err
	}
	return sessions[id], nil
}

// AppendMessage appends one message to a session, trims the stored history
// to the token budget and persists the result. It returns the session as
// stored.
func (s *Store) AppendMessage(id, role, text string) ([]ChatMessage, error) {
	sessions, err := s.loadSessions()
	if err != nil {
		return nil, err
	}
	session := append(sessions[id], ChatMessage{Role: role, Text: text})
	session = Trim(session, s.maxHistoryTokens, s.counter)
	sessions[id] = session
	if err := s.writeDoc(sessionsFile, sessions); err != nil {
		return nil, err
	}
	return session, nil
}

// BoundHistory applies the store's token budget to msgs without mutating
// them, yielding the context that may accompany a new turn.
func (s *Store) BoundHistory(msgs []ChatMessage) []ChatMessage {
	return Trim(msgs, s.maxHistoryTokens, s.counter)
}
