package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/validation"
	"notch-chatbot/internal/session"
	"notch-chatbot/pkg/registry"
)

// ==========================
// Fake Chat Client
// ==========================

// scriptedClient replays responses in order and records every request.
type scriptedClient struct {
	mu        sync.Mutex
	responses []openai.ChatCompletionMessage
	err       error
	requests  []openai.ChatCompletionRequest
}

func (c *scriptedClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	if len(c.responses) == 0 {
		return openai.ChatCompletionResponse{}, nil
	}
	msg := c.responses[0]
	c.responses = c.responses[1:]
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: msg}},
	}, nil
}

func toolCall(id, name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleAssistant,
		ToolCalls: []openai.ToolCall{{
			ID:   id,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      name,
				Arguments: args,
			},
		}},
	}
}

func text(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}
}

// ==========================
// Test Helpers
// ==========================

type echoInput struct {
	Industry string `json:"industry"`
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New("test", logger.NewTestLogger(t))
	reg.MustRegister(registry.Tool{
		Name:        "find_case_studies_by_industry",
		Description: "Find case studies for an industry.",
		Category:    "knowledge",
		InputSchema: validation.JSONSchema{
			Type:     "object",
			Required: []string{"industry"},
			Properties: map[string]validation.Property{
				"industry": {Type: "string"},
			},
		},
		Handler: registry.Typed(func(ctx context.Context, in echoInput) ([]string, error) {
			if in.Industry == "healthcare" {
				return []string{"clinic-assistant"}, nil
			}
			return []string{}, nil
		}),
	})
	return reg
}

func newTestAgent(t *testing.T, client ChatClient, rounds int) *Agent {
	t.Helper()
	cfg := DefaultConfig()
	cfg.MaxToolRounds = rounds
	a := New(client, newTestRegistry(t), cfg, logger.NewTestLogger(t))
	a.now = func() time.Time { return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC) }
	return a
}

// ==========================
// Tests
// ==========================

func TestOpenAITools(t *testing.T) {
	tools := OpenAITools(newTestRegistry(t).Definitions())

	require.Len(t, tools, 1)
	assert.Equal(t, openai.ToolTypeFunction, tools[0].Type)
	assert.Equal(t, "find_case_studies_by_industry", tools[0].Function.Name)

	params, err := json.Marshal(tools[0].Function.Parameters)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{"industry":{"type":"string"}},"required":["industry"]}`, string(params))
}

func TestReply_PlainAnswer(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionMessage{text("We build custom software and AI systems.")}}
	a := newTestAgent(t, client, 6)

	history := []session.Message{
		{Role: session.RoleUser, Content: "Hi"},
		{Role: session.RoleAssistant, Content: "Hello! How can I help?"},
	}
	turn, err := a.Reply(context.Background(), history, "What do you do?")
	require.NoError(t, err)

	assert.Equal(t, "We build custom software and AI systems.", turn.Reply)
	assert.Equal(t, 0, turn.ToolRounds)
	require.Len(t, turn.Messages, 2)
	assert.Equal(t, session.RoleUser, turn.Messages[0].Role)
	assert.Equal(t, "What do you do?", turn.Messages[0].Content)

	require.Len(t, client.requests, 1)
	sent := client.requests[0].Messages
	require.Len(t, sent, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, sent[0].Role)
	assert.Equal(t, SystemPrompt, sent[0].Content)
	assert.Equal(t, "Hello! How can I help?", sent[2].Content)
	assert.Equal(t, "What do you do?", sent[3].Content)
	assert.Len(t, client.requests[0].Tools, 1)
}

func TestReply_ToolRoundTrip(t *testing.T) {
	client := &scriptedClient{responses: []openai.ChatCompletionMessage{
		toolCall("call_1", "find_case_studies_by_industry", `{"industry":"healthcare"}`),
		text("We built a clinic assistant for a healthcare provider."),
	}}
	a := newTestAgent(t, client, 6)

	turn, err := a.Reply(context.Background(), nil, "Any healthcare work?")
	require.NoError(t, err)

	assert.Equal(t, 1, turn.ToolRounds)
	assert.Equal(t, []string{"find_case_studies_by_industry"}, turn.ToolCalls)
	require.Len(t, client.requests, 2)

	second := client.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
	assert.Equal(t, "call_1", last.ToolCallID)
	assert.JSONEq(t, `["clinic-assistant"]`, last.Content)
}

func TestReply_ToolErrorReturnedToModel(t *testing.T) {
	tests := []struct {
		name     string
		call     openai.ChatCompletionMessage
		wantCode errors.ErrorCode
	}{
		{
			name:     "unknown tool",
			call:     toolCall("call_1", "book_meeting", `{}`),
			wantCode: errors.ErrCodeToolNotFound,
		},
		{
			name:     "missing argument",
			call:     toolCall("call_1", "find_case_studies_by_industry", `{}`),
			wantCode: errors.ErrCodeToolArgumentsInvalid,
		},
		{
			name:     "malformed arguments",
			call:     toolCall("call_1", "find_case_studies_by_industry", `{"industry":`),
			wantCode: errors.ErrCodeToolArgumentsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{responses: []openai.ChatCompletionMessage{tt.call, text("Sorry about that.")}}
			a := newTestAgent(t, client, 6)

			turn, err := a.Reply(context.Background(), nil, "hi")
			require.NoError(t, err)
			assert.Equal(t, "Sorry about that.", turn.Reply)

			second := client.requests[1].Messages
			var res errors.ToolErrorResult
			require.NoError(t, json.Unmarshal([]byte(second[len(second)-1].Content), &res))
			assert.True(t, res.Error)
			assert.Equal(t, tt.wantCode, res.Code)
		})
	}
}

func TestReply_RoundLimit(t *testing.T) {
	call := toolCall("call_x", "find_case_studies_by_industry", `{"industry":"fintech"}`)
	client := &scriptedClient{responses: []openai.ChatCompletionMessage{call, call, text("Here is what I found.")}}
	a := newTestAgent(t, client, 2)

	turn, err := a.Reply(context.Background(), nil, "fintech?")
	require.NoError(t, err)

	assert.Equal(t, "Here is what I found.", turn.Reply)
	assert.Equal(t, 2, turn.ToolRounds)
	require.Len(t, client.requests, 3)
	assert.NotEmpty(t, client.requests[1].Tools)
	assert.Empty(t, client.requests[2].Tools)
}

func TestReply_LLMFailure(t *testing.T) {
	a := newTestAgent(t, &scriptedClient{err: fmt.Errorf("connection reset")}, 6)

	_, err := a.Reply(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeLLMRequestFailed))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestReply_NoChoices(t *testing.T) {
	a := newTestAgent(t, &scriptedClient{}, 6)

	_, err := a.Reply(context.Background(), nil, "hi")
	assert.True(t, errors.HasCode(err, errors.ErrCodeLLMRequestFailed))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxToolRounds = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Model = ""
	assert.Error(t, cfg.Validate())
}
