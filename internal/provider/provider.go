// Package provider talks to the generation service: an LLM endpoint that
// answers a role-tagged prompt with free text or, for structured calls, with
// text the service promises will parse as JSON matching a schema.
package provider

import "context"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged instruction or content entry in a prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Schema is the JSON-schema contract attached to a structured request.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Client is implemented by generation backends. Complete returns free-form
// text; CompleteStructured constrains the reply to the given schema. Neither
// call retries or times out on its own; callers needing resilience wrap it.
type Client interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
	CompleteStructured(ctx context.Context, msgs []Message, schema Schema) (string, error)
}
