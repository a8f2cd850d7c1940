package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skaufmann/sprachtutor/internal/store"
)

// ErrBadGeneration is returned when the generation service's structured
// output fails schema validation or JSON decoding. There is no safe default
// for this, so it is always surfaced to the caller.
var ErrBadGeneration = errors.New("generation output did not match the vocabulary schema")

type CandidateStatus string

const (
	CandidateAccepted  CandidateStatus = "accepted"
	CandidateDuplicate CandidateStatus = "duplicate"
	CandidateMalformed CandidateStatus = "malformed"
)

// CandidateResult tags the outcome of one generated candidate. Rejections
// are not errors; callers decide whether to count or log them.
type CandidateResult struct {
	Root   string
	Status CandidateStatus
	Entry  *store.VocabEntry // set when accepted
}

// Added extracts the persisted entries from a batch result.
func Added(results []CandidateResult) []store.VocabEntry {
	var entries []store.VocabEntry
	for _, r := range results {
		if r.Status == CandidateAccepted {
			entries = append(entries, *r.Entry)
		}
	}
	return entries
}

type batchCandidate struct {
	Root     string              `json:"root"`
	English  string              `json:"english"`
	Examples map[string][]string `json:"examples"`
}

// ShouldGenerate reports whether enough whole days have elapsed since the
// most recent taught_on date to justify a new batch. A vocabulary with no
// parseable taught_on at all counts as infinitely overdue.
func (t *Tutor) ShouldGenerate() (bool, error) {
	vocab, err := t.store.LoadVocab()
	if err != nil {
		return false, err
	}
	return shouldGenerate(vocab, t.now(), t.interval), nil
}

// NextBatchID returns 1 + the largest existing batch id, or 1 for an empty
// vocabulary.
func (t *Tutor) NextBatchID() (int, error) {
	vocab, err := t.store.LoadVocab()
	if err != nil {
		return 0, err
	}
	return nextBatchID(vocab), nil
}

// GenerateBatch asks the generation service for count new words, routes each
// candidate through the dedup gate and persists the accepted entries under a
// fresh batch id. When the batch interval has not elapsed it returns no
// results and no error.
func (t *Tutor) GenerateBatch(ctx context.Context, count int) ([]CandidateResult, error) {
	vocab, err := t.store.LoadVocab()
	if err != nil {
		return nil, err
	}
	if !shouldGenerate(vocab, t.now(), t.interval) {
		t.log.Debug("batch interval has not elapsed, skipping generation")
		return nil, nil
	}
	batchID := nextBatchID(vocab)
	today := t.now().Format(store.DateLayout)

	raw, err := t.llm.CompleteStructured(ctx, batchPrompt(count), vocabBatchSchema())
	if err != nil {
		return nil, err
	}
	if err := t.validator.Validate(vocabBatchSchema().Definition, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeneration, err)
	}
	var candidates []batchCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeneration, err)
	}

	results := make([]CandidateResult, 0, len(candidates))
	added := 0
	for _, c := range candidates {
		if c.Root == "" {
			results = append(results, CandidateResult{Status: CandidateMalformed})
			continue
		}
		if !isNewRoot(vocab, c.Root) {
			t.log.Debug("duplicate candidate dropped", zap.String("root", c.Root))
			results = append(results, CandidateResult{Root: c.Root, Status: CandidateDuplicate})
			continue
		}
		entry := store.VocabEntry{
			Root:     c.Root,
			English:  c.English,
			TaughtOn: today,
			BatchID:  batchID,
			Examples: c.Examples,
		}
		vocab = append(vocab, entry)
		results = append(results, CandidateResult{Root: c.Root, Status: CandidateAccepted, Entry: &entry})
		added++
	}
	if added > 0 {
		if err := t.store.SaveVocab(vocab); err != nil {
			return nil, err
		}
	}
	t.log.Info("vocabulary batch generated",
		zap.Int("requested", count),
		zap.Int("added", added),
		zap.Int("rejected", len(results)-added),
		zap.Int("batch_id", batchID))
	return results, nil
}

func shouldGenerate(vocab []store.VocabEntry, now time.Time, interval int) bool {
	days, ok := daysSinceLastBatch(vocab, now)
	if !ok {
		return true
	}
	return days >= interval
}

// daysSinceLastBatch returns the whole days between the most recent parseable
// taught_on date and now. ok is false when no entry has a parseable date,
// which callers treat as infinitely overdue; malformed dates are skipped, not
// errors.
func daysSinceLastBatch(vocab []store.VocabEntry, now time.Time) (int, bool) {
	var last time.Time
	found := false
	for _, e := range vocab {
		d, ok := e.TaughtDate()
		if !ok {
			continue
		}
		if !found || d.After(last) {
			last = d
			found = true
		}
	}
	if !found {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(last).Hours() / 24), true
}

func nextBatchID(vocab []store.VocabEntry) int {
	if len(vocab) == 0 {
		return 1
	}
	maxID := 0
	for _, e := range vocab {
		if e.BatchID > maxID {
			maxID = e.BatchID
		}
	}
	return maxID + 1
}

// isNewRoot is the dedup gate: true iff no entry's root equals candidate
// ignoring case. No whitespace normalization happens here.
func isNewRoot(vocab []store.VocabEntry, candidate string) bool {
	for _, e := range vocab {
		if strings.EqualFold(e.Root, candidate) {
			return false
		}
	}
	return true
}
