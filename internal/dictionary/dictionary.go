// Package dictionary loads the word list searched by the cracker.
package dictionary

import (
	"bufio"
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

//go:embed words.txt
var embedded []byte

// Load reads one word per line from path, or the embedded list when path is
// empty. Empty lines are skipped and order is preserved.
func Load(path string) ([]string, error) {
	if path == "" {
		words, err := Read(bytes.NewReader(embedded))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read embedded dictionary")
		}
		log.Debug().Int("words", len(words)).Msg("using embedded dictionary")
		return words, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dictionary")
	}
	defer func() { _ = f.Close() }()
	words, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dictionary %s", path)
	}
	log.Debug().Str("path", path).Int("words", len(words)).Msg("dictionary loaded")
	return words, nil
}

func Read(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		word := strings.TrimSuffix(sc.Text(), "\r")
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
