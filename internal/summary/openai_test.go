package summary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func newTestCompleter(t *testing.T, handler http.HandlerFunc) *OpenAICompleter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAI("sk-test", OpenAIConfig{
		BaseURL:     srv.URL + "/v1",
		Temperature: DefaultTemperature,
		HTTPClient:  srv.Client(),
	})
}

func TestOpenAICompleterSuccess(t *testing.T) {
	var got chatRequest
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4",`+
			`"choices":[{"index":0,"message":{"role":"assistant","content":"## Summary\n- point"},"finish_reason":"stop"}]}`)
	})

	out, err := c.Complete(context.Background(), "sys", "user text")
	require.NoError(t, err)
	assert.Equal(t, "## Summary\n- point", out)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 0.001)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user text", got.Messages[1].Content)
}

func TestOpenAICompleterErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad key", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, ErrAuthenticationFailed},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`, ErrRateLimited},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, ErrTransport},
		{"non-json error", http.StatusBadGateway, `<html>bad gateway</html>`, ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := c.Complete(context.Background(), "sys", "user")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAICompleterNoChoices(t *testing.T) {
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","choices":[]}`)
	})
	_, err := c.Complete(context.Background(), "sys", "user")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSummarizerOverOpenAI(t *testing.T) {
	calls := 0
	c := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 2 {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":{"message":"key revoked","type":"invalid_request_error"}}`)
			return
		}
		io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"part"}}]}`)
	})
	out, err := New(c, WithChunkSize(5)).Summarize(context.Background(), "0123456789abcde")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Empty(t, out)
	assert.Equal(t, 2, calls)
}
