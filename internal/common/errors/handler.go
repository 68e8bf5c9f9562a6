package errors

import (
	"encoding/json"
	stderrors "errors"
	"time"
)

// ErrorHandler turns errors raised while serving a tool call into payloads the
// agent can read. The agent is a conversational consumer, so errors are
// answered, not raised.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// ToolErrorResult is the JSON shape returned to the agent in place of a tool result.
type ToolErrorResult struct {
	Error     bool      `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
}

// HandleToolError logs err and renders it as a ToolErrorResult document.
func (h *ErrorHandler) HandleToolError(tool string, err error) json.RawMessage {
	stdErr := h.normalizeError(err)

	h.logger.Error("Tool call failed", map[string]interface{}{
		"tool":          tool,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})

	out, mErr := json.Marshal(ToolErrorResult{
		Error:     true,
		Code:      stdErr.Code,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
	})
	if mErr != nil {
		return json.RawMessage(`{"error":true,"code":"INTERNAL_ERROR"}`)
	}
	return out
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
