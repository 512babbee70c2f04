package ltwa

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/isoabbrev"
)

// Reader streams rules from a delimited LTWA table.
//
// The delimiter is taken from the first data line: tab if present, else
// semicolon, else comma. Columns default to
//
//	pattern <delim> languages <delim> abbreviation
//
// A header line naming the columns remaps them; the table published by
// the ISSN centre starts with
//
//	WORDS;ABBREVIATIONS;LANGUAGES
//
// Blank lines and lines starting with '#' are ignored. Lines with the
// wrong number of fields are skipped and counted.
type Reader struct {
	scanner *bufio.Scanner
	delim   string
	cols    columns
	lines   int
	skipped int
}

type columns struct {
	pattern, languages, abbreviation int
	width                            int
}

var defaultColumns = columns{pattern: 0, languages: 1, abbreviation: 2, width: 3}

// NewReader creates a Reader for an LTWA table.
func NewReader(reader io.Reader) *Reader {
	return &Reader{
		scanner: bufio.NewScanner(reader),
		cols:    defaultColumns,
	}
}

// Skipped returns the number of malformed lines dropped so far.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Delimiter returns the detected field delimiter, or "" if no data line
// has been seen yet.
func (r *Reader) Delimiter() string {
	return r.delim
}

// Next returns the next raw rule.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (isoabbrev.RawRule, error) {
	for r.scanner.Scan() {
		line := strings.TrimRight(r.scanner.Text(), "\r")
		r.lines++
		if r.lines == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if r.delim == "" {
			if r.delim = detectDelimiter(line); r.delim == "" {
				tracer().Debugf("ltwa line %d: no delimiter", r.lines)
				r.skipped++
				continue
			}
			if cols, ok := headerColumns(splitFields(line, r.delim, 0)); ok {
				r.cols = cols
				continue
			}
		}
		fields := splitFields(line, r.delim, r.cols.width)
		if len(fields) != r.cols.width {
			tracer().Debugf("ltwa line %d: expected %d fields, have %d", r.lines, r.cols.width, len(fields))
			r.skipped++
			continue
		}
		return isoabbrev.RawRule{
			Pattern:      fields[r.cols.pattern],
			Languages:    fields[r.cols.languages],
			Abbreviation: fields[r.cols.abbreviation],
		}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return isoabbrev.RawRule{}, err
	}
	return isoabbrev.RawRule{}, io.EOF
}

func detectDelimiter(line string) string {
	for _, d := range []string{"\t", ";", ","} {
		if strings.Contains(line, d) {
			return d
		}
	}
	return ""
}

// splitFields parses one table line as a CSV record with delimiter delim.
// Quoted fields may contain the delimiter ("eng, fre" in a comma separated
// table). Fields are trimmed, and empty fields beyond width, left by
// trailing delimiters, are dropped. A line which is no valid record yields
// nil.
func splitFields(line, delim string, width int) []string {
	comma, _ := utf8.DecodeRuneInString(delim)
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = comma != '\t' // would swallow empty tab separated fields
	fields, err := cr.Read()
	if err != nil {
		return nil
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	for len(fields) > max(width, 1) && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// headerColumns recognizes a header line and derives the column layout.
func headerColumns(fields []string) (columns, bool) {
	cols := columns{pattern: -1, languages: -1, abbreviation: -1, width: len(fields)}
	for i, f := range fields {
		switch strings.ToLower(f) {
		case "words", "word", "pattern", "patterns":
			cols.pattern = i
		case "abbreviations", "abbreviation", "abbr":
			cols.abbreviation = i
		case "languages", "language", "lang":
			cols.languages = i
		}
	}
	if cols.pattern < 0 || cols.abbreviation < 0 || cols.languages < 0 {
		return columns{}, false
	}
	return cols, true
}
