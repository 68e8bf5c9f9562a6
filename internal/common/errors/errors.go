// Package errors provides standardized error handling for the assistant's
// knowledge loading, tool invocation and proposal delivery paths.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeKnowledgeResourceNotFound ErrorCode = "KNOWLEDGE_RESOURCE_NOT_FOUND"
	ErrCodeKnowledgeParseFailed      ErrorCode = "KNOWLEDGE_PARSE_FAILED"
	ErrCodeKnowledgeValidationFailed ErrorCode = "KNOWLEDGE_VALIDATION_FAILED"
	ErrCodeKnowledgeSourceFailed     ErrorCode = "KNOWLEDGE_SOURCE_FAILED"

	ErrCodeToolNotFound           ErrorCode = "TOOL_NOT_FOUND"
	ErrCodeToolArgumentsInvalid   ErrorCode = "TOOL_ARGUMENTS_INVALID"
	ErrCodeToolExecutionFailed    ErrorCode = "TOOL_EXECUTION_FAILED"
	ErrCodeToolRegistrationFailed ErrorCode = "TOOL_REGISTRATION_FAILED"

	ErrCodeEmailNotConfigured ErrorCode = "EMAIL_NOT_CONFIGURED"
	ErrCodeEmailSendFailed    ErrorCode = "EMAIL_SEND_FAILED"

	ErrCodeLLMRequestFailed ErrorCode = "LLM_REQUEST_FAILED"
	ErrCodeSessionFailed    ErrorCode = "SESSION_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewKnowledgeResourceNotFoundError reports a missing data directory, file or row.
func NewKnowledgeResourceNotFoundError(resource string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeResourceNotFound,
		Message:   "Knowledge base resource not found",
		Details:   resource,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewKnowledgeParseFailedError reports malformed JSON in a knowledge document.
func NewKnowledgeParseFailedError(resource string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeParseFailed,
		Message:   "Knowledge base document is not valid JSON",
		Details:   fmt.Sprintf("%s: %v", resource, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewKnowledgeValidationFailedError reports a document that does not match the data model.
// Each entry of fields names the offending field.
func NewKnowledgeValidationFailedError(resource string, fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeValidationFailed,
		Message:   "Knowledge base document failed validation",
		Details:   fmt.Sprintf("%s: %s", resource, strings.Join(fields, "; ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"resource": resource, "fields": fields},
		Timestamp: time.Now().UTC(),
	}
}

// NewKnowledgeSourceFailedError reports a backing store failure (e.g. postgres).
func NewKnowledgeSourceFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeSourceFailed,
		Message:   fmt.Sprintf("Knowledge source '%s' failed", source),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewToolNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolNotFound,
		Message:   "Tool not found in registry",
		Details:   fmt.Sprintf("tool: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewToolArgumentsInvalidError(name string, problems []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolArgumentsInvalid,
		Message:   "Tool arguments do not match the input schema",
		Details:   fmt.Sprintf("tool: %s, errors: %s", name, strings.Join(problems, "; ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"tool": name, "errors": problems},
		Timestamp: time.Now().UTC(),
	}
}

func NewToolExecutionFailedError(name string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolExecutionFailed,
		Message:   "Tool execution failed",
		Details:   fmt.Sprintf("tool: %s, error: %v", name, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewToolRegistrationFailedError(name, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeToolRegistrationFailed,
		Message:   "Tool registration rejected",
		Details:   fmt.Sprintf("tool: %s, %s", name, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmailSendFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Email delivery failed",
		Details:   fmt.Sprintf("provider: %s, error: %v", provider, err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewEmailNotConfiguredError(provider, setting string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailNotConfigured,
		Message:   "Email provider is not configured",
		Details:   fmt.Sprintf("provider: %s, missing: %s", provider, setting),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailRejectedError records a provider response other than accepted.
// The status and body are kept in Metadata.
func NewEmailRejectedError(provider string, statusCode int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Email rejected by provider",
		Details:   fmt.Sprintf("provider: %s, status: %d", provider, statusCode),
		Retryable: statusCode >= 500 || statusCode == 429,
		Metadata: map[string]interface{}{
			"statusCode": statusCode,
			"body":       body,
		},
		Timestamp: time.Now().UTC(),
	}
}

func NewLLMRequestFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMRequestFailed,
		Message:   "LLM request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSessionFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionFailed,
		Message:   "Conversation history store failed",
		Details:   fmt.Sprintf("op: %s, error: %v", op, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// HasCode reports whether err is (or wraps) a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "KNOWLEDGE"):
		return "KNOWLEDGE"
	case strings.HasPrefix(codeStr, "TOOL"):
		return "TOOL"
	case strings.HasPrefix(codeStr, "EMAIL"):
		return "EMAIL"
	case strings.HasPrefix(codeStr, "LLM"), strings.HasPrefix(codeStr, "SESSION"):
		return "AGENT"
	default:
		return "OTHER"
	}
}
