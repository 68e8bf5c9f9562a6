package blogposts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "notch-chatbot/internal/common/errors"
	"notch-chatbot/internal/common/logger"
	"notch-chatbot/pkg/registry"
)

func newTestService(t *testing.T, url string) *Service {
	t.Helper()
	return NewService(ServiceDependencies{Logger: logger.NewTestLogger(t)}, &Config{URL: url, Timeout: 2 * time.Second})
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantPrefix string
		wantPart   string
	}{
		{
			name:       "page reachable",
			status:     http.StatusOK,
			wantPrefix: "Blog posts are available at https://www.wearenotch.com/resources/blog.",
			wantPart:   "AI, software development, best practices, and case studies.",
		},
		{
			name:       "server error",
			status:     http.StatusServiceUnavailable,
			wantPrefix: "Unable to fetch blog posts at this time. Visit https://www.wearenotch.com/resources/blog for latest content. Error: ",
			wantPart:   "unexpected status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			got := newTestService(t, srv.URL).Fetch(context.Background(), &Input{})
			assert.True(t, strings.HasPrefix(got, tt.wantPrefix), got)
			assert.Contains(t, got, tt.wantPart)
		})
	}
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	got := newTestService(t, url).Fetch(context.Background(), &Input{})
	assert.True(t, strings.HasPrefix(got, "Unable to fetch blog posts at this time."))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{Timeout: time.Second}).Validate())
	assert.Error(t, (&Config{URL: "https://example.com"}).Validate())
}

func TestHandler_Tool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	reg := registry.New("test", logger.NewTestLogger(t))
	require.NoError(t, reg.Register(NewHandler(newTestService(t, srv.URL)).Tool()))

	raw, err := reg.Invoke(context.Background(), ToolName, nil)
	require.NoError(t, err)
	var sentence string
	require.NoError(t, json.Unmarshal(raw, &sentence))
	assert.True(t, strings.HasPrefix(sentence, "Blog posts are available"))

	_, err = reg.Invoke(context.Background(), ToolName, json.RawMessage(`{"max_results":0}`))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeToolArgumentsInvalid))
}
