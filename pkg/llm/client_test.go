package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/internal/config"
)

func newTestServer(t *testing.T, status int, body string, inspect func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if inspect != nil {
			var req openai.ChatCompletionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			inspect(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(baseURL string) *Client {
	return NewClient(config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL + "/",
		Model:       "moonshot-v1-8k",
		Temperature: 0.3,
	})
}

func TestComplete_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
		"id": "cmpl-1", "object": "chat.completion", "created": 1, "model": "moonshot-v1-8k",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "## OSPF\n配置步骤"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`, func(req openai.ChatCompletionRequest) {
		assert.Equal(t, "moonshot-v1-8k", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-6)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, "system prompt", req.Messages[0].Content)
		assert.Equal(t, "How to configure OSPF", req.Messages[1].Content)
	})

	out, err := newClient(srv.URL).Complete(context.Background(), "system prompt", "How to configure OSPF")
	require.NoError(t, err)
	assert.Equal(t, "## OSPF\n配置步骤", out)
}

func TestComplete_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized,
		`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`, nil)

	_, err := newClient(srv.URL).Complete(context.Background(), "s", "q")
	require.Error(t, err)

	var apiErr *openai.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`{"id": "cmpl-2", "object": "chat.completion", "created": 1, "model": "m", "choices": []}`, nil)

	_, err := newClient(srv.URL).Complete(context.Background(), "s", "q")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
