package hashcrack

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParseHashes reads hash lines until an empty line or end of input. Every
// line is validated before the set is returned; the first bad line aborts
// parsing with an *InputFormatError.
func ParseHashes(r io.Reader, f Format) (*HashSet, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	br := bufio.NewReader(r)
	var records []HashRecord
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "read hash line %d", lineNo)
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		rec, perr := ParseHash(line, f)
		if perr != nil {
			perr.Line = lineNo
			return nil, perr
		}
		records = append(records, rec)
		if err != nil {
			break
		}
	}
	return &HashSet{records: records}, nil
}

// ParseHash validates a single line without its newline. The returned
// error has Line unset.
func ParseHash(line string, f Format) (HashRecord, *InputFormatError) {
	if len(line) != f.HashLength {
		return HashRecord{}, &InputFormatError{
			Field:  FieldLength,
			Reason: fmt.Sprintf("expected %d characters, got %d", f.HashLength, len(line)),
		}
	}
	if !strings.HasPrefix(line, f.Tag) {
		return HashRecord{}, &InputFormatError{
			Field:  FieldTag,
			Reason: fmt.Sprintf("expected prefix %q", f.Tag),
		}
	}
	return HashRecord{
		Salt:   line[:f.SaltLength],
		Digest: line[f.SaltLength:],
	}, nil
}
