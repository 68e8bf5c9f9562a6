package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.messages = append(r.messages, msg)
	r.fields = append(r.fields, fields)
}

func TestStandardError_Wrapping(t *testing.T) {
	cause := stderrors.New("open data/services.json: no such file or directory")
	err := fmt.Errorf("load knowledge base: %w", NewKnowledgeResourceNotFoundError("data/services.json", cause))

	assert.True(t, HasCode(err, ErrCodeKnowledgeResourceNotFound))
	assert.False(t, HasCode(err, ErrCodeKnowledgeParseFailed))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "KNOWLEDGE_RESOURCE_NOT_FOUND")
}

func TestNewKnowledgeValidationFailedError_NamesFields(t *testing.T) {
	err := NewKnowledgeValidationFailedError("services.json", []string{"0.category: must be one of plan, design, build, integrate"})
	assert.Contains(t, err.Error(), "services.json")
	assert.Contains(t, err.Error(), "0.category")
	assert.False(t, err.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeKnowledgeParseFailed, "KNOWLEDGE"},
		{ErrCodeToolNotFound, "TOOL"},
		{ErrCodeEmailSendFailed, "EMAIL"},
		{ErrCodeLLMRequestFailed, "AGENT"},
		{ErrCodeSessionFailed, "AGENT"},
		{"SOMETHING_ELSE", "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestErrorHandler_HandleToolError(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	t.Run("standard error keeps its code", func(t *testing.T) {
		raw := h.HandleToolError("find_services_by_keyword", NewToolArgumentsInvalidError("find_services_by_keyword", []string{"keywords: required"}))

		var res ToolErrorResult
		require.NoError(t, json.Unmarshal(raw, &res))
		assert.True(t, res.Error)
		assert.Equal(t, ErrCodeToolArgumentsInvalid, res.Code)
		assert.Contains(t, res.Details, "keywords: required")
	})

	t.Run("plain error is normalized", func(t *testing.T) {
		raw := h.HandleToolError("list_all_services", stderrors.New("boom"))

		var res ToolErrorResult
		require.NoError(t, json.Unmarshal(raw, &res))
		assert.Equal(t, ErrorCode("INTERNAL_ERROR"), res.Code)
		assert.Equal(t, "boom", res.Details)
	})

	require.Len(t, log.messages, 2)
	assert.Equal(t, "list_all_services", log.fields[1]["tool"])
}

func TestNewEmailRejectedError(t *testing.T) {
	err := NewEmailRejectedError("sendgrid", 401, `{"errors":[{"message":"bad key"}]}`)

	assert.True(t, HasCode(err, ErrCodeEmailSendFailed))
	assert.False(t, err.Retryable)
	assert.Equal(t, 401, err.Metadata["statusCode"])
	assert.Contains(t, err.Error(), "status: 401")

	assert.True(t, NewEmailRejectedError("sendgrid", 503, "").Retryable)
	assert.True(t, HasCode(NewEmailNotConfiguredError("sendgrid", "SENDGRID_API_KEY"), ErrCodeEmailNotConfigured))
}
