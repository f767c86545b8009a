package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	t.Run("pairs keys with values", func(t *testing.T) {
		// Execute
		got := fields([]any{"command", "insert", "durationMS", 12})

		// Check
		assert.Equal(t, map[string]any{"command": "insert", "durationMS": 12}, got)
	})

	t.Run("tolerates odd length and non-string keys", func(t *testing.T) {
		// Execute
		got := fields([]any{7, "seven", "dangling"})

		// Check
		assert.Equal(t, map[string]any{"7": "seven", "dangling": nil}, got)
	})
}
