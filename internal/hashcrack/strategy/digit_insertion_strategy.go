package strategy

import (
	"github.com/rs/zerolog"
)

const digits = "0123456789"

// digitInsertionStrategy inserts a single digit at every position of the word,
// including before the first and after the last character.
type digitInsertionStrategy struct {
	l zerolog.Logger
}

func newDigitInsertionStrategy(logger zerolog.Logger) *digitInsertionStrategy {
	return &digitInsertionStrategy{
		l: logger.
			With().
			Str("domain", "hashcrack").
			Str("type", "strategy").
			Str("strategy", digitInsertionStrategyName).
			Logger(),
	}
}

func (s *digitInsertionStrategy) Name() string {
	return digitInsertionStrategyName
}

func (s *digitInsertionStrategy) Count(word string) int {
	return len(digits) * (len(word) + 1)
}

func (s *digitInsertionStrategy) Candidates(word string, yield func(candidate string) bool) {
	s.l.Trace().Str("word", word).Int("candidates", s.Count(word)).Msg("generating candidates")
	buf := make([]byte, len(word)+1)
	for pos := 0; pos <= len(word); pos++ {
		copy(buf, word[:pos])
		copy(buf[pos+1:], word[pos:])
		for i := 0; i < len(digits); i++ {
			buf[pos] = digits[i]
			if !yield(string(buf)) {
				return
			}
		}
	}
}
