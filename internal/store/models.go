package store

import "time"

// DateLayout is the ISO-8601 date format used for taught_on, last_reviewed
// and memory checkpoint keys.
const DateLayout = "2006-01-02"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a chat session.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// VocabEntry is a single vocabulary record. After a load every field is
// populated: missing fields on disk come back as their documented defaults
// ("" for the dates and the gloss, 0 for the batch id, an empty map for
// examples, false for known), so callers never see a partial record.
type VocabEntry struct {
	Root         string              `json:"root"`
	English      string              `json:"english"`
	TaughtOn     string              `json:"taught_on"`
	BatchID      int                 `json:"batch_id"`
	Examples     map[string][]string `json:"examples"`
	LastReviewed string              `json:"last_reviewed"`
	Known        bool                `json:"known"`
}

// TaughtDate parses the taught_on field. ok is false when the field is empty
// or not a valid ISO-8601 date; callers skip such entries rather than fail.
func (e VocabEntry) TaughtDate() (time.Time, bool) {
	if e.TaughtOn == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, e.TaughtOn)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (e *VocabEntry) normalize() {
	if e.Examples == nil {
		e.Examples = map[string][]string{}
	}
}
