// Package agent drives the OpenAI tool-calling loop over the tool registry.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/internal/common/metrics"
	"notch-chatbot/internal/session"
	"notch-chatbot/pkg/registry"
)

// ChatClient is the part of *openai.Client the agent uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Tools is the part of *registry.Registry the agent uses.
type Tools interface {
	Definitions() []registry.Definition
	Invoke(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
}

type Agent struct {
	client   ChatClient
	tools    Tools
	config   *Config
	logger   logger.Logger
	errors   *errors.ErrorHandler
	toolDefs []openai.Tool
	now      func() time.Time
}

// NewClient builds an OpenAI client; an empty baseURL keeps the default endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func New(client ChatClient, tools Tools, cfg *Config, log logger.Logger) *Agent {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"component": "agent"})
	return &Agent{
		client:   client,
		tools:    tools,
		config:   cfg,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		toolDefs: OpenAITools(tools.Definitions()),
		now:      time.Now,
	}
}

// OpenAITools converts registry descriptors to function tools.
func OpenAITools(defs []registry.Definition) []openai.Tool {
	out := make([]openai.Tool, 0, len(defs))
	for _, d := range defs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.InputSchema,
			},
		})
	}
	return out
}

// Turn is the outcome of one user message.
type Turn struct {
	Reply      string
	ToolRounds int
	ToolCalls  []string
	// Messages are the user and assistant messages to append to history.
	Messages []session.Message
}

// Reply answers userText given the prior history. Tool calls run through
// the registry; a failing tool is answered with an error document so the
// model can recover. After MaxToolRounds rounds the model must answer
// without tools.
func (a *Agent) Reply(ctx context.Context, history []session.Message, userText string) (*Turn, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: a.config.SystemPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	turn := &Turn{}
	for round := 0; ; round++ {
		req := openai.ChatCompletionRequest{
			Model:       a.config.Model,
			Messages:    messages,
			Temperature: a.config.Temperature,
		}
		if round < a.config.MaxToolRounds && len(a.toolDefs) > 0 {
			req.Tools = a.toolDefs
		}

		resp, err := a.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, errors.NewLLMRequestFailedError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, errors.NewLLMRequestFailedError(fmt.Errorf("response has no choices"))
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 || req.Tools == nil {
			turn.Reply = msg.Content
			turn.ToolRounds = round
			break
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			turn.ToolCalls = append(turn.ToolCalls, call.Function.Name)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    string(a.runTool(ctx, call)),
				ToolCallID: call.ID,
			})
		}
	}

	metrics.AgentToolRounds.Observe(float64(turn.ToolRounds))
	now := a.now()
	turn.Messages = []session.Message{
		{Role: session.RoleUser, Content: userText, CreatedAt: now},
		{Role: session.RoleAssistant, Content: turn.Reply, CreatedAt: now},
	}
	a.logger.Debug("Turn answered", map[string]interface{}{
		"toolRounds": turn.ToolRounds,
		"toolCalls":  turn.ToolCalls,
	})
	return turn, nil
}

func (a *Agent) runTool(ctx context.Context, call openai.ToolCall) json.RawMessage {
	name := call.Function.Name
	result, err := a.tools.Invoke(ctx, name, json.RawMessage(call.Function.Arguments))
	if err != nil {
		return a.errors.HandleToolError(name, err)
	}
	return result
}
