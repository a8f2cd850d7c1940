package tutor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaufmann/sprachtutor/internal/provider"
	"github.com/skaufmann/sprachtutor/internal/store"
)

type charCounter struct{}

func (charCounter) Count(s string) int { return len(s) }

var testNow = time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)

func newTestTutor(t *testing.T, llm provider.Client) (*Tutor, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir(), charCounter{}, 1000)
	tut := New(st, llm, nil, WithClock(func() time.Time { return testNow }))
	return tut, st
}

func taughtOn(daysAgo int) string {
	return testNow.AddDate(0, 0, -daysAgo).Format(store.DateLayout)
}

func TestShouldGenerate_EmptyVocab(t *testing.T) {
	tut, _ := newTestTutor(t, &provider.Mock{})

	due, err := tut.ShouldGenerate()
	require.NoError(t, err)
	assert.True(t, due)
}

func TestShouldGenerate_RecencyThreshold(t *testing.T) {
	cases := []struct {
		daysAgo int
		want    bool
	}{
		{0, false},
		{1, false},
		{2, false},
		{3, true},
		{10, true},
	}
	for _, tc := range cases {
		vocab := []store.VocabEntry{{Root: "Haus", TaughtOn: taughtOn(tc.daysAgo)}}
		got := shouldGenerate(vocab, testNow, DefaultBatchInterval)
		assert.Equal(t, tc.want, got, "taught %d days ago", tc.daysAgo)
	}
}

func TestShouldGenerate_MostRecentDateWins(t *testing.T) {
	vocab := []store.VocabEntry{
		{Root: "alt", TaughtOn: taughtOn(30)},
		{Root: "neu", TaughtOn: taughtOn(1)},
	}
	assert.False(t, shouldGenerate(vocab, testNow, DefaultBatchInterval))
}

func TestShouldGenerate_MalformedDatesSkipped(t *testing.T) {
	vocab := []store.VocabEntry{
		{Root: "kaputt", TaughtOn: "not-a-date"},
		{Root: "alt", TaughtOn: taughtOn(5)},
	}
	assert.True(t, shouldGenerate(vocab, testNow, DefaultBatchInterval))
}

func TestShouldGenerate_AllDatesUnparseable(t *testing.T) {
	// No parseable date means infinitely overdue, same as an empty
	// vocabulary.
	vocab := []store.VocabEntry{
		{Root: "eins", TaughtOn: "garbage"},
		{Root: "zwei", TaughtOn: ""},
	}
	assert.True(t, shouldGenerate(vocab, testNow, DefaultBatchInterval))
}

func TestNextBatchID(t *testing.T) {
	assert.Equal(t, 1, nextBatchID(nil))
	assert.Equal(t, 3, nextBatchID([]store.VocabEntry{
		{Root: "a", BatchID: 1},
		{Root: "b", BatchID: 1},
		{Root: "c", BatchID: 2},
	}))
	// Absent batch ids count as zero.
	assert.Equal(t, 1, nextBatchID([]store.VocabEntry{{Root: "a"}}))
}

func TestIsNewRoot_CaseInsensitive(t *testing.T) {
	vocab := []store.VocabEntry{{Root: "Haus"}}

	assert.False(t, isNewRoot(vocab, "haus"))
	assert.False(t, isNewRoot(vocab, "HAUS"))
	assert.True(t, isNewRoot(vocab, "Baum"))
	// No whitespace normalization.
	assert.True(t, isNewRoot(vocab, " Haus"))
}

const batchReply = `[
  {"root": "sprechen", "english": "to speak",
   "examples": {"present": ["Ich spreche."], "past": ["Ich sprach."], "future": ["Ich werde sprechen."]}},
  {"root": "Haus", "english": "house",
   "examples": {"present": [], "past": [], "future": []}},
  {"root": "", "english": "broken",
   "examples": {"present": [], "past": [], "future": []}}
]`

func TestGenerateBatch_TagsCandidatesAndPersists(t *testing.T) {
	mock := &provider.Mock{StructuredReply: batchReply}
	tut, st := newTestTutor(t, mock)
	require.NoError(t, st.SaveVocab([]store.VocabEntry{
		{Root: "haus", English: "house", TaughtOn: taughtOn(7), BatchID: 2},
	}))

	results, err := tut.GenerateBatch(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, CandidateAccepted, results[0].Status)
	assert.Equal(t, "sprechen", results[0].Root)
	assert.Equal(t, CandidateDuplicate, results[1].Status)
	assert.Equal(t, CandidateMalformed, results[2].Status)

	added := Added(results)
	require.Len(t, added, 1)
	assert.Equal(t, "sprechen", added[0].Root)
	assert.Equal(t, 3, added[0].BatchID)
	assert.Equal(t, testNow.Format(store.DateLayout), added[0].TaughtOn)
	assert.False(t, added[0].Known)

	vocab, err := st.LoadVocab()
	require.NoError(t, err)
	require.Len(t, vocab, 2)
	assert.Equal(t, "sprechen", vocab[1].Root)
}

func TestGenerateBatch_NotDue(t *testing.T) {
	mock := &provider.Mock{StructuredReply: batchReply}
	tut, st := newTestTutor(t, mock)
	require.NoError(t, st.SaveVocab([]store.VocabEntry{
		{Root: "Haus", TaughtOn: taughtOn(1), BatchID: 1},
	}))

	results, err := tut.GenerateBatch(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Empty(t, mock.StructuredCalls, "generation service must not be called")
}

func TestGenerateBatch_MalformedOutputFailsLoudly(t *testing.T) {
	cases := map[string]string{
		"not json":        "sure, here are some words!",
		"wrong shape":     `{"root": "sprechen"}`,
		"missing fields":  `[{"root": "sprechen"}]`,
		"bad field types": `[{"root": 7, "english": "x", "examples": {"present": [], "past": [], "future": []}}]`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			tut, st := newTestTutor(t, &provider.Mock{StructuredReply: reply})

			_, err := tut.GenerateBatch(context.Background(), 1)
			require.ErrorIs(t, err, ErrBadGeneration)

			vocab, err := st.LoadVocab()
			require.NoError(t, err)
			assert.Empty(t, vocab, "nothing may be persisted on a bad batch")
		})
	}
}

func TestGenerateBatch_SendsSchemaContract(t *testing.T) {
	mock := &provider.Mock{StructuredReply: "[]"}
	tut, _ := newTestTutor(t, mock)

	results, err := tut.GenerateBatch(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.Len(t, mock.Schemas, 1)
	assert.Equal(t, "german_vocabulary", mock.Schemas[0].Name)
	require.Len(t, mock.StructuredCalls, 1)
	prompt := mock.StructuredCalls[0]
	require.Len(t, prompt, 3)
	assert.Contains(t, prompt[2].Content, "Generate 5 German vocabulary words")
}
