package isoabbrev

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// token is a whitespace-separated part of a title, split into leading
// punctuation, the word itself and trailing punctuation:
//
//	"(Basel)," => lead "(", core "Basel", trail "),"
//
// A token without any letter or digit keeps everything in lead.
type token struct {
	lead, core, trail string
}

func tokenize(title string) []token {
	fields := strings.Fields(title)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, splitToken(f))
	}
	return tokens
}

func splitToken(field string) token {
	start := strings.IndexFunc(field, isWordRune)
	if start < 0 {
		return token{lead: field}
	}
	end := strings.LastIndexFunc(field, isWordRune)
	_, size := utf8.DecodeRuneInString(field[end:])
	end += size
	return token{
		lead:  field[:start],
		core:  field[start:end],
		trail: field[end:],
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// isAcronym reports whether a word consists of at least two letters, all
// of them upper case ("IEEE", "U.S.A", "COVID-19").
func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// isShouted reports whether a title is written entirely in upper case.
// Acronym detection makes no sense for such titles.
func isShouted(title string) bool {
	letters := false
	for _, r := range title {
		if unicode.IsLower(r) {
			return false
		}
		letters = letters || unicode.IsLetter(r)
	}
	return letters
}

// splitElision splits an elided article or preposition off a word:
// "l'Enseignement" => "l'", "Enseignement".
func splitElision(word string) (head, rest string, ok bool) {
	runes := 0
	for i, r := range word {
		if isApostrophe(r) {
			if runes < 1 || runes > 2 {
				return "", "", false
			}
			j := i + utf8.RuneLen(r)
			if j >= len(word) {
				return "", "", false
			}
			return word[:j], word[j:], true
		}
		runes++
		if runes > 2 {
			return "", "", false
		}
	}
	return "", "", false
}

// cutPossessive removes an English possessive suffix: "Women's" => "Women".
func cutPossessive(word string) (string, bool) {
	r, size := utf8.DecodeLastRuneInString(word)
	if r != 's' && r != 'S' {
		return word, false
	}
	stem := word[:len(word)-size]
	a, asize := utf8.DecodeLastRuneInString(stem)
	if !isApostrophe(a) || len(stem) == asize {
		return word, false
	}
	return stem[:len(stem)-asize], true
}

// matchCase adapts the case of the first letter of abbrev to the first
// letter of word.
func matchCase(abbrev, word string) string {
	i := strings.IndexFunc(word, unicode.IsLetter)
	if i < 0 {
		return abbrev
	}
	w, _ := utf8.DecodeRuneInString(word[i:])
	if unicode.IsUpper(w) {
		return mapFirstLetter(abbrev, unicode.ToUpper)
	}
	return mapFirstLetter(abbrev, unicode.ToLower)
}

func mapFirstLetter(s string, mapping func(rune) rune) string {
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return s
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	return s[:i] + string(mapping(r)) + s[i+size:]
}

// capitalize upper-cases the first letter of a title word, unless the word
// does not start with a letter ("2nd") or carries upper case letters of its
// own further on ("eLife", "iScience").
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if !unicode.IsLetter(r) {
		return word
	}
	if strings.IndexFunc(word[size:], unicode.IsUpper) >= 0 {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// attachTrail appends trailing punctuation to a word, avoiding a doubled
// period after an abbreviation.
func attachTrail(word, trail string) string {
	if strings.HasSuffix(word, ".") && strings.HasPrefix(trail, ".") {
		trail = trail[1:]
	}
	return word + trail
}
