package strategy

import (
	"sync"

	"github.com/rs/zerolog"
)

// emptyStrategy yields nothing. Useful for measuring pool overhead without
// paying for hashing.
type emptyStrategy struct {
	l zerolog.Logger
}

var once sync.Once
var emptyStrategyInstance *emptyStrategy

func newEmptyStrategy(l zerolog.Logger) *emptyStrategy {
	once.Do(func() {
		emptyStrategyInstance = &emptyStrategy{
			l: l.With().
				Str("domain", "hashcrack").
				Str("type", "strategy").
				Str("strategy", emptyStrategyName).
				Logger(),
		}
	})
	return emptyStrategyInstance
}

func (s *emptyStrategy) Name() string {
	return emptyStrategyName
}

func (s *emptyStrategy) Count(string) int {
	return 0
}

func (s *emptyStrategy) Candidates(word string, _ func(string) bool) {
	s.l.Trace().Str("word", word).Msg("skipping word")
}
