// Package tutor implements the core of the language tutor: the batch policy
// for introducing new vocabulary, the dedup gate, the quiz composer and the
// chat session orchestrator. All state lives in the store; every operation
// re-reads its inputs, so nothing is cached between calls.
package tutor

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skaufmann/sprachtutor/internal/provider"
	"github.com/skaufmann/sprachtutor/internal/schema"
	"github.com/skaufmann/sprachtutor/internal/store"
)

// DefaultBatchInterval is the number of whole days that must elapse after
// the most recent batch before a new one is due.
const DefaultBatchInterval = 3

// Tutor drives the generation service against the persisted vocabulary,
// memory and session state.
type Tutor struct {
	store     *store.Store
	llm       provider.Client
	validator *schema.Validator
	log       *zap.Logger
	rng       *rand.Rand
	interval  int
	now       func() time.Time
}

type Option func(*Tutor)

// WithClock substitutes the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tutor) { t.now = now }
}

// WithRand substitutes the random source used for quiz sampling.
func WithRand(rng *rand.Rand) Option {
	return func(t *Tutor) { t.rng = rng }
}

// WithInterval overrides the batch interval in days.
func WithInterval(days int) Option {
	return func(t *Tutor) {
		if days > 0 {
			t.interval = days
		}
	}
}

func New(st *store.Store, llm provider.Client, log *zap.Logger, opts ...Option) *Tutor {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tutor{
		store:     st,
		llm:       llm,
		validator: schema.NewValidator(),
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		interval:  DefaultBatchInterval,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Vocabulary returns the current collection in teaching order.
func (t *Tutor) Vocabulary() ([]store.VocabEntry, error) {
	return t.store.LoadVocab()
}

// Review marks the entry with the given root (matched ignoring case) as
// known or unknown and stamps last_reviewed with today's date.
func (t *Tutor) Review(root string, known bool) error {
	vocab, err := t.store.LoadVocab()
	if err != nil {
		return err
	}
	for i := range vocab {
		if strings.EqualFold(vocab[i].Root, root) {
			vocab[i].Known = known
			vocab[i].LastReviewed = t.now().Format(store.DateLayout)
			return t.store.SaveVocab(vocab)
		}
	}
	return fmt.Errorf("no vocabulary entry with root %q", root)
}

// WriteMemory saves a checkpoint under today's date, replacing any earlier
// checkpoint recorded the same day.
func (t *Tutor) WriteMemory(note map[string]any) error {
	return t.store.AppendMemory(t.now().Format(store.DateLayout), note)
}
