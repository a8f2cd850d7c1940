package tutor

import (
	"context"

	"go.uber.org/zap"

	"github.com/skaufmann/sprachtutor/internal/provider"
	"github.com/skaufmann/sprachtutor/internal/store"
)

// Interact runs one chat turn in the given session. The user's message is
// persisted to the full history before the generation call; the trimmed
// history only bounds what accompanies the new turn. The reply is persisted
// as an assistant message and returned verbatim, treated as opaque text.
func (t *Tutor) Interact(ctx context.Context, sessionID, userText string) (string, error) {
	history, err := t.store.LoadSession(sessionID)
	if err != nil {
		return "", err
	}
	bounded := t.store.BoundHistory(history)

	if _, err := t.store.AppendMessage(sessionID, store.RoleUser, userText); err != nil {
		return "", err
	}

	msgs := make([]provider.Message, 0, len(bounded)+2)
	msgs = append(msgs, provider.Message{Role: provider.RoleSystem, Content: chatSystemPrompt})
	for _, m := range bounded {
		msgs = append(msgs, provider.Message{Role: provider.Role(m.Role), Content: m.Text})
	}
	msgs = append(msgs, provider.Message{Role: provider.RoleUser, Content: userText})

	reply, err := t.llm.Complete(ctx, msgs)
	if err != nil {
		return "", err
	}
	if _, err := t.store.AppendMessage(sessionID, store.RoleAssistant, reply); err != nil {
		return "", err
	}
	t.log.Info("chat turn completed",
		zap.String("session", sessionID),
		zap.Int("context_messages", len(bounded)))
	return reply, nil
}

// Sessions lists the ids of all stored chat sessions.
func (t *Tutor) Sessions() ([]string, error) {
	return t.store.ListSessions()
}
