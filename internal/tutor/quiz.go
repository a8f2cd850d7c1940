package tutor

import (
	"math/rand"

	"github.com/skaufmann/sprachtutor/internal/store"
)

// Question is one multiple-choice quiz item: translate Root, expecting
// Answer, with up to three wrong choices drawn from other entries.
type Question struct {
	Root        string
	Answer      string
	Distractors []string
}

// ComposeQuiz samples up to n vocabulary entries uniformly at random without
// replacement and builds a question per entry. An empty vocabulary or n <= 0
// yields no questions.
func (t *Tutor) ComposeQuiz(n int) ([]Question, error) {
	vocab, err := t.store.LoadVocab()
	if err != nil {
		return nil, err
	}
	return composeQuiz(vocab, n, t.rng), nil
}

func composeQuiz(vocab []store.VocabEntry, n int, rng *rand.Rand) []Question {
	if len(vocab) == 0 || n <= 0 {
		return nil
	}
	if n > len(vocab) {
		n = len(vocab)
	}
	order := rng.Perm(len(vocab))

	questions := make([]Question, 0, n)
	for _, idx := range order[:n] {
		entry := vocab[idx]
		// Distractors come only from entries with a different root, so the
		// expected answer can never collide with them unless two roots share
		// a gloss. Glosses are not deduplicated.
		others := make([]string, 0, len(vocab)-1)
		for _, e := range vocab {
			if e.Root != entry.Root {
				others = append(others, e.English)
			}
		}
		rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
		k := min(3, len(others))
		questions = append(questions, Question{
			Root:        entry.Root,
			Answer:      entry.English,
			Distractors: append([]string(nil), others[:k]...),
		})
	}
	return questions
}
