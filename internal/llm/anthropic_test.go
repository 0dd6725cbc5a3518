package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(t *testing.T, status int, body any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := newTestAnthropic(t, http.StatusOK, anthropicMessage(`{"hint":"Think of the Eiffel Tower"}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Prompt("tutor", "Capital of France?", hintTestSchema, 128))
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"Think of the Eiffel Tower"}`, string(resp.Content))
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, http.StatusOK, anthropicMessage(`{"hint":"Think`, "max_tokens"))
	_, err := p.Generate(context.Background(), Prompt("", "q", hintTestSchema, 4))
	var trunc *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &trunc)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	errBody := map[string]any{"type": "error", "error": map[string]any{"type": "x", "message": "nope"}}

	p := newTestAnthropic(t, http.StatusTooManyRequests, errBody)
	_, err := p.Generate(context.Background(), Prompt("", "q", nil, 16))
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	p = newTestAnthropic(t, http.StatusInternalServerError, errBody)
	_, err = p.Generate(context.Background(), Prompt("", "q", nil, 16))
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}
