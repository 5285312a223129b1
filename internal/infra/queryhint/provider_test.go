package queryhint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		env      map[string]string
		want     any
	}{
		{name: "unset", provider: "", want: &NoOp{}},
		{name: "none", provider: "none", want: &NoOp{}},
		{name: "claude without key", provider: "claude", want: &NoOp{}},
		{name: "openai without key", provider: "OpenAI", want: &NoOp{}},
		{name: "claude", provider: "claude", env: map[string]string{"ANTHROPIC_API_KEY": "k"}, want: &Claude{}},
		{name: "openai", provider: "openai", env: map[string]string{"OPENAI_API_KEY": "k"}, want: &OpenAI{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QUERY_HINT_PROVIDER", tt.provider)
			t.Setenv("ANTHROPIC_API_KEY", "")
			t.Setenv("OPENAI_API_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			parser, err := FromEnv()
			require.NoError(t, err)
			assert.IsType(t, tt.want, parser)
		})
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("QUERY_HINT_PROVIDER", "gemini")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid QUERY_HINT_PROVIDER")
}

func TestNoOp_ParseQuery(t *testing.T) {
	hint, err := NewNoOp().ParseQuery(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Nil(t, hint)
}
