/*
Package ltwa reads the List of Title Word Abbreviations from delimited text
and builds abbreviation engines from it.

Please refer to

	https://www.issn.org/services/online-services/access-to-the-ltwa/

for the current table. Example usage:

	ltwaText, _ := os.ReadFile("LTWA_20170914-modified.csv")
	shortText, _ := os.ReadFile("shortwords.txt")

	engine, err := ltwa.Build(string(ltwaText), string(shortText))
*/
package ltwa

import (
	"io"
	"strings"

	"github.com/npillmayer/isoabbrev"
	"github.com/npillmayer/isoabbrev/shortwords"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'isoabbrev'
func tracer() tracing.Trace {
	return tracing.Select("isoabbrev")
}

// LoadRules parses LTWA data from reader into a rule index without exempt
// words.
func LoadRules(name string, reader io.Reader) (*isoabbrev.RuleIndex, error) {
	return isoabbrev.LoadRules(name, NewReader(reader))
}

// Build creates an engine from the text of an LTWA table and the text of
// an exempt-word list (one word per line).
//
// Build fails with a *isoabbrev.ConfigError if either text is empty or
// yields no usable entries. Malformed lines are skipped.
func Build(rawLtwaText, rawShortWordsText string, opts ...isoabbrev.Option) (*isoabbrev.Engine, error) {
	if strings.TrimSpace(rawLtwaText) == "" {
		return nil, &isoabbrev.ConfigError{Source: "ltwa", Reason: "rule table is empty"}
	}
	if strings.TrimSpace(rawShortWordsText) == "" {
		return nil, &isoabbrev.ConfigError{Source: "shortwords", Reason: "exempt-word list is empty"}
	}
	index, err := LoadRules("ltwa", strings.NewReader(rawLtwaText))
	if err != nil {
		return nil, err
	}
	if err = shortwords.LoadWords(index, strings.NewReader(rawShortWordsText)); err != nil {
		return nil, err
	}
	return isoabbrev.New(index, opts...), nil
}
