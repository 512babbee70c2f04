// Package bibstring writes BibTeX string definitions,
//
//	@STRING{key = "value"}
//
// one per line. Journal lists are commonly kept as two such files, one with
// full titles and one with abbreviated titles, so that a bibliography style
// can switch between them.
package bibstring

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned for keys which BibTeX cannot parse.
var ErrInvalidKey = errors.New("bibstring: invalid key")

// Writer writes @STRING entries to an underlying io.Writer.
// Clients must call Flush when done.
type Writer struct {
	w       *bufio.Writer
	entries int
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteString writes one entry. The key is checked, the value escaped.
func (w *Writer) WriteString(key, value string) error {
	key = strings.TrimSpace(key)
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if _, err := fmt.Fprintf(w.w, "@STRING{%s = \"%s\"}\n", key, Escape(value)); err != nil {
		return err
	}
	w.entries++
	return nil
}

// Entries returns the number of entries written so far.
func (w *Writer) Entries() int {
	return w.entries
}

// Flush writes buffered entries to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// ValidKey reports whether key may name a BibTeX string: non-empty, not
// starting with a digit, without blanks and without any of "#%'(),={}.
func ValidKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		if unicode.IsSpace(r) || strings.ContainsRune(`"#%'(),={}`, r) {
			return false
		}
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var escaper = strings.NewReplacer(`"`, `{"}`)

// Escape protects characters which would end or break a quoted BibTeX
// value. Braces are left alone, as they may be part of the title markup.
func Escape(value string) string {
	return escaper.Replace(value)
}
