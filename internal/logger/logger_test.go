package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"apiKey", "sk-or-123",
		"Authorization", "Bearer abc",
		"model", "openai/gpt-4.1-mini",
		"dangling",
	})
	assert.Equal(t, []interface{}{
		"apiKey", "[REDACTED]",
		"Authorization", "[REDACTED]",
		"model", "openai/gpt-4.1-mini",
		"dangling",
	}, out)
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		require.NoError(t, err)
		l.With("component", "test").Debug("hello", "k", 1)
	}
	Nop().Info("discarded")
}
