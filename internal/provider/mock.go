package provider

import "context"

// Mock is a canned generation client for tests and offline runs. It records
// every prompt it receives.
type Mock struct {
	Reply           string
	StructuredReply string
	Err             error

	Calls           [][]Message
	StructuredCalls [][]Message
	Schemas         []Schema
}

func (m *Mock) Complete(_ context.Context, msgs []Message) (string, error) {
	m.Calls = append(m.Calls, msgs)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

func (m *Mock) CompleteStructured(_ context.Context, msgs []Message, schema Schema) (string, error) {
	m.StructuredCalls = append(m.StructuredCalls, msgs)
	m.Schemas = append(m.Schemas, schema)
	if m.Err != nil {
		return "", m.Err
	}
	return m.StructuredReply, nil
}
