package isoabbrev

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Letters without a canonical decomposition into a base letter.
var specialFolds = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ı': "i",
}

// Normalize case-folds s and strips diacritics, mapping letters to their
// base Latin form: "Études" => "etudes", "Straße" => "strasse".
// Rule patterns, exempt words and title words all go through Normalize,
// which makes matching accent and case insensitive.
func Normalize(s string) string {
	n, _ := normalizeMapped(strings.TrimSpace(s))
	return n
}

// normalizeMapped normalizes word rune by rune. For every rune of the
// result, offsets holds the byte offset of the input rune it stems from;
// offsets has one extra entry for len(word).
func normalizeMapped(word string) (string, []int) {
	var b strings.Builder
	b.Grow(len(word))
	offsets := make([]int, 0, utf8.RuneCountInString(word)+1)
	for i, r := range word {
		folded := foldRune(r)
		for k, nk := 0, utf8.RuneCountInString(folded); k < nk; k++ {
			offsets = append(offsets, i)
		}
		b.WriteString(folded)
	}
	offsets = append(offsets, len(word))
	return b.String(), offsets
}

func foldRune(r rune) string {
	r = unicode.ToLower(r)
	if r < utf8.RuneSelf {
		return string(r)
	}
	if s, ok := specialFolds[r]; ok {
		return s
	}
	s, _, err := transform.String(stripMarks, string(r))
	if err != nil {
		return string(r)
	}
	return s
}
