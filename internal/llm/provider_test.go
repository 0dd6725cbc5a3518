package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	m := NewMockProvider(MockJSON(`{"hint":"a"}`), MockJSON(`{"hint":"b"}`))
	ctx := context.Background()

	r1, err := m.Generate(ctx, Request{})
	require.NoError(t, err)
	r2, err := m.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"a"}`, string(r1.Content))
	assert.JSONEq(t, `{"hint":"b"}`, string(r2.Content))

	_, err = m.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 3, m.CallCount())
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(MockResponse{Err: boom})
	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockJSON(`{"nope":1}`))
	_, err := m.Generate(context.Background(), Request{Schema: hintTestSchema})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestResponse_Decode(t *testing.T) {
	var out struct{ Hint string }
	require.NoError(t, (&Response{Content: []byte(`{"hint":"starts with P"}`)}).Decode(&out))
	assert.Equal(t, "starts with P", out.Hint)

	err := (&Response{Content: []byte(`{`)}).Decode(&out)
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestPrompt(t *testing.T) {
	req := Prompt("sys", "user text", hintTestSchema, 64)
	assert.Equal(t, "sys", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, RoleUser, req.Messages[0].Role)
	assert.Equal(t, 64, req.MaxTokens)
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
	assert.Equal(t, PurposeHint, PurposeFrom(WithPurpose(context.Background(), PurposeHint)))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"disabled", Config{}, ""},
		{"mock", Config{Provider: ProviderMock}, ""},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, ""},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "FLASHIZ_ANTHROPIC_API_KEY"},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "FLASHIZ_OPENROUTER_API_KEY"},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FLASHIZ_LLM_PROVIDER", "FLASHIZ_ANTHROPIC_API_KEY", "FLASHIZ_OPENAI_API_KEY",
		"FLASHIZ_GEMINI_API_KEY", "FLASHIZ_OPENROUTER_API_KEY", "FLASHIZ_LLM_TIMEOUT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolve(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		clearLLMEnv(t)
		cfg := Resolve()
		assert.False(t, cfg.Enabled())
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("FLASHIZ_LLM_PROVIDER", "anthropic")
		t.Setenv("FLASHIZ_ANTHROPIC_API_KEY", "ak")
		t.Setenv("GEMINI_API_KEY", "gk")
		t.Setenv("FLASHIZ_LLM_TIMEOUT", "3s")
		cfg := Resolve()
		assert.Equal(t, ProviderAnthropic, cfg.Provider)
		assert.Equal(t, "ak", cfg.Anthropic.APIKey)
		assert.Equal(t, "3s", cfg.Timeout.String())
	})

	t.Run("discovers vendor keys in order", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENAI_API_KEY", "ok")
		t.Setenv("ANTHROPIC_API_KEY", "ak")
		cfg := Resolve()
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "ok", cfg.OpenAI.APIKey)
		assert.NoError(t, cfg.Validate())
	})
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{}, nil, nil)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil)
	assert.Error(t, err)

	p, err := NewProvider(context.Background(), configWith(ProviderMock), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func configWith(provider string) Config {
	cfg := DefaultConfig()
	cfg.Provider = provider
	return cfg
}
