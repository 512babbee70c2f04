// Package shortwords reads lists of words which ISO 4 never abbreviates:
// articles, prepositions and conjunctions.
package shortwords

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/isoabbrev"
)

// Default is a built-in list of short words for the major LTWA languages,
// one word per line.
//
//go:embed shortwords.txt
var Default string

// Reader streams exempt words, one word per line.
type Reader struct {
	scanner *bufio.Scanner
	skipped int
}

// LoadWords parses an exempt-word list from reader and adds all words to
// index.
func LoadWords(index *isoabbrev.RuleIndex, reader io.Reader) error {
	return index.LoadExemptWords(NewReader(reader))
}

// NewReader creates a Reader for a word list.
func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
	}
}

// Skipped returns the number of lines dropped because they held more than
// one word.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Next returns the next word.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(r.scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.IndexFunc(line, unicode.IsSpace) >= 0 {
			r.skipped++
			continue
		}
		return line, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
