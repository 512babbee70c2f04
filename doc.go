/*
Package isoabbrev abbreviates serial-publication titles according to ISO 4.

Abbreviations are driven by the List of Title Word Abbreviations (LTWA), a
table of word fragments, each with the languages it applies to and its
standard abbreviation. A fragment may be marked with '-' at either end:

	journal     exact word
	inform-     any word starting with "inform"
	-ology      any word ending in "ology"
	-graph-     any word containing "graph"

Fragments are normalized (lower case, diacritics removed) and compiled
into a frozen double-array trie (DAT). Rule ids are stored separately,
referenced by trie state. Looking up a title word walks the trie once from
every offset of the word, collecting every rule whose fixed part occurs at
a position compatible with its wildcards. The most specific rule wins.

Multi-word LTWA entries ("South Africa") are kept in a separate prefix
trie and tried before single words.

File format parsing is outside the base package. Package ltwa reads the
delimited LTWA table, package shortwords reads lists of words which must
never be abbreviated (articles, prepositions, conjunctions).

Typical usage:

	engine, err := ltwa.Build(ltwaText, shortWordsText)
	if err != nil {
		return err
	}
	engine.MakeAbbreviation("International Journal of Geographical Information Science")
	// => "Int. J. of Geogr. Inf. Sci."

An Engine is immutable and may be shared between goroutines.

Further Reading

	https://www.issn.org/services/online-services/access-to-the-ltwa/
	https://www.iso.org/standard/3569.html   (ISO 4:1997)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package isoabbrev

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'isoabbrev'
func tracer() tracing.Trace {
	return tracing.Select("isoabbrev")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
