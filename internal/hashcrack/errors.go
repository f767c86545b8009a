package hashcrack

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	FieldLength = "length"
	FieldTag    = "tag"
)

var ErrUnexpectedHashLength = errors.New("hasher returned unexpected length")

// InputFormatError reports a hash line that does not match the expected format.
type InputFormatError struct {
	Line   int
	Field  string
	Reason string
}

func (e *InputFormatError) Error() string {
	return fmt.Sprintf("hash input line %d: invalid %s: %s", e.Line, e.Field, e.Reason)
}

// CandidateError reports a failure while testing one candidate; the word's
// remaining candidates are skipped.
type CandidateError struct {
	Word      string
	Candidate string
	Err       error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("word %q: candidate %q: %v", e.Word, e.Candidate, e.Err)
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}
