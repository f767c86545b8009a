package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s Strategy, word string) []string {
	var out []string
	s.Candidates(word, func(c string) bool {
		out = append(out, c)
		return true
	})
	return out
}

// insertedAt reports whether candidate equals word with one character
// inserted somewhere, and returns that character.
func insertedAt(word, candidate string) (byte, bool) {
	if len(candidate) != len(word)+1 {
		return 0, false
	}
	for i := 0; i <= len(word); i++ {
		if candidate[:i] == word[:i] && candidate[i+1:] == word[i:] {
			return candidate[i], true
		}
	}
	return 0, false
}

func TestDigitInsertionStrategy_Candidates(t *testing.T) {
	s := NewStrategy(DigitInsertionStrategyType)

	for _, word := range []string{"password", "a", "abc", "hello2", strings.Repeat("z", 40)} {
		t.Run("generates 10*(L+1) single-insertion candidates for "+word[:min(len(word), 8)], func(t *testing.T) {
			// Execute
			got := collect(s, word)

			// Check
			require.Len(t, got, 10*(len(word)+1), "candidate count")
			assert.Equal(t, len(got), s.Count(word), "count agrees with generation")
			for _, c := range got {
				assert.Len(t, c, len(word)+1, "candidate length")
				ch, ok := insertedAt(word, c)
				assert.True(t, ok, "%q is %q with one inserted char", c, word)
				assert.True(t, ch >= '0' && ch <= '9', "inserted char is a digit")
			}
		})
	}

	t.Run("empty word yields the ten digits", func(t *testing.T) {
		// Execute
		got := collect(s, "")

		// Check
		assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, got)
	})

	t.Run("covers first and last positions in order", func(t *testing.T) {
		// Execute
		got := collect(s, "ab")

		// Check
		require.Len(t, got, 30)
		assert.Equal(t, "0ab", got[0])
		assert.Equal(t, "9ab", got[9])
		assert.Equal(t, "a0b", got[10])
		assert.Equal(t, "ab9", got[29])
	})

	t.Run("stops when yield returns false", func(t *testing.T) {
		// Prepare
		n := 0

		// Execute
		s.Candidates("word", func(string) bool {
			n++
			return n < 3
		})

		// Check
		assert.Equal(t, 3, n)
	})

	t.Run("does not modify the word", func(t *testing.T) {
		// Prepare
		word := "secret"

		// Execute
		_ = collect(s, word)

		// Check
		assert.Equal(t, "secret", word)
	})
}

func TestEmptyStrategy(t *testing.T) {
	t.Run("yields nothing", func(t *testing.T) {
		// Prepare
		s := NewStrategy(EmptyStrategyType)

		// Execute
		got := collect(s, "password")

		// Check
		assert.Empty(t, got)
		assert.Equal(t, 0, s.Count("password"))
	})
}

func TestParseStrategyName(t *testing.T) {
	t.Run("maps known names", func(t *testing.T) {
		typ, ok := ParseStrategyName("digit-insertion")
		assert.True(t, ok)
		assert.Equal(t, DigitInsertionStrategyType, typ)

		typ, ok = ParseStrategyName("empty")
		assert.True(t, ok)
		assert.Equal(t, EmptyStrategyType, typ)

		assert.Equal(t, "digit-insertion", DefaultStrategyStr())
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, ok := ParseStrategyName("leet-speak")
		assert.False(t, ok)
	})
}
