// Package token provides token-cost counters for history trimming.
package token

import (
	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken counts tokens with the BPE encoding of a given model.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken returns a counter using the encoding for model (e.g. "gpt-4").
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, err
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// Estimator approximates cost at roughly four bytes per token. It is the
// fallback when the encoding files cannot be loaded, and a convenient test
// double.
type Estimator struct{}

func (Estimator) Count(text string) int { return len(text) / 4 }
