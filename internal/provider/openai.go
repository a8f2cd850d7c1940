package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAI speaks the OpenAI-compatible chat completions API. Free-text calls
// use chatModel; structured calls use batchModel with a strict json_schema
// response format.
type OpenAI struct {
	baseURL    string
	apiKey     string
	chatModel  string
	batchModel string
	client     *http.Client
}

func NewOpenAI(baseURL, apiKey, chatModel, batchModel string) *OpenAI {
	return &OpenAI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		chatModel:  chatModel,
		batchModel: batchModel,
		client:     &http.Client{},
	}
}

type oaiRequest struct {
	Model          string             `json:"model"`
	Messages       []oaiMessage       `json:"messages"`
	ResponseFormat *oaiResponseFormat `json:"response_format,omitempty"`
}

type oaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type oaiResponseFormat struct {
	Type       string        `json:"type"`
	JSONSchema oaiJSONSchema `json:"json_schema"`
}

type oaiJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type oaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenAI) Complete(ctx context.Context, msgs []Message) (string, error) {
	return o.chat(ctx, o.chatModel, msgs, nil)
}

func (o *OpenAI) CompleteStructured(ctx context.Context, msgs []Message, schema Schema) (string, error) {
	rf := &oaiResponseFormat{
		Type: "json_schema",
		JSONSchema: oaiJSONSchema{
			Name:   schema.Name,
			Strict: true,
			Schema: schema.Definition,
		},
	}
	return o.chat(ctx, o.batchModel, msgs, rf)
}

func (o *OpenAI) chat(ctx context.Context, model string, msgs []Message, rf *oaiResponseFormat) (string, error) {
	oaiMsgs := make([]oaiMessage, len(msgs))
	for i, m := range msgs {
		oaiMsgs[i] = oaiMessage{Role: string(m.Role), Content: m.Content}
	}
	payload, err := json.Marshal(oaiRequest{Model: model, Messages: oaiMsgs, ResponseFormat: rf})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation service: %s", friendlyNetError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generation service: %s", apiError(resp.StatusCode, body))
	}

	var out oaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("generation service: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("generation service: response contained no choices")
	}
	return out.Choices[0].Message.Content, nil
}
