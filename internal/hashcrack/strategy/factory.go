package strategy

import log "github.com/rs/zerolog/log"

type Type int

const (
	EmptyStrategyType Type = iota
	DigitInsertionStrategyType
)

const (
	emptyStrategyName          = "empty"
	digitInsertionStrategyName = "digit-insertion"
)

func NewStrategy(strategyType Type) Strategy {
	switch strategyType {
	case DigitInsertionStrategyType:
		return newDigitInsertionStrategy(log.Logger)
	default:
		return newEmptyStrategy(log.Logger)
	}
}

// ParseStrategyName maps a config name to a strategy type. Unknown names
// yield ok == false.
func ParseStrategyName(name string) (Type, bool) {
	switch name {
	case digitInsertionStrategyName:
		return DigitInsertionStrategyType, true
	case emptyStrategyName:
		return EmptyStrategyType, true
	default:
		return EmptyStrategyType, false
	}
}

func DefaultStrategyStr() string {
	return digitInsertionStrategyName
}
