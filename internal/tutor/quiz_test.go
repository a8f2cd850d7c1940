package tutor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaufmann/sprachtutor/internal/store"
)

func quizVocab(n int) []store.VocabEntry {
	roots := []string{"Haus", "Baum", "gehen", "sprechen", "lernen", "Wasser"}
	glosses := []string{"house", "tree", "to go", "to speak", "to learn", "water"}
	vocab := make([]store.VocabEntry, n)
	for i := 0; i < n; i++ {
		vocab[i] = store.VocabEntry{Root: roots[i], English: glosses[i]}
	}
	return vocab
}

func TestComposeQuiz_EmptyAndZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Empty(t, composeQuiz(nil, 5, rng))
	assert.Empty(t, composeQuiz(quizVocab(3), 0, rng))
	assert.Empty(t, composeQuiz(quizVocab(3), -1, rng))
}

func TestComposeQuiz_QuestionCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Len(t, composeQuiz(quizVocab(3), 2, rng), 2)
	// n capped at the vocabulary size.
	assert.Len(t, composeQuiz(quizVocab(3), 10, rng), 3)
}

func TestComposeQuiz_NoRepeatedQuestions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	questions := composeQuiz(quizVocab(6), 6, rng)
	seen := map[string]bool{}
	for _, q := range questions {
		assert.False(t, seen[q.Root], "root %q selected twice", q.Root)
		seen[q.Root] = true
	}
}

func TestComposeQuiz_DistractorInvariants(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		vocab := quizVocab(6)

		for _, q := range composeQuiz(vocab, 6, rng) {
			assert.LessOrEqual(t, len(q.Distractors), 3)
			assert.NotContains(t, q.Distractors, q.Answer)
			seen := map[string]bool{}
			for _, d := range q.Distractors {
				assert.False(t, seen[d], "distractor %q repeated", d)
				seen[d] = true
			}
		}
	}
}

func TestComposeQuiz_FewerThanThreeOthers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	questions := composeQuiz(quizVocab(2), 2, rng)
	require.Len(t, questions, 2)
	for _, q := range questions {
		assert.Len(t, q.Distractors, 1)
	}
}

func TestComposeQuiz_ThroughStore(t *testing.T) {
	st := store.New(t.TempDir(), charCounter{}, 1000)
	require.NoError(t, st.SaveVocab(quizVocab(3)))
	tut := New(st, nil, nil, WithRand(rand.New(rand.NewSource(7))))

	questions, err := tut.ComposeQuiz(2)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}
