package isoabbrev

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchKind tells where the fixed part of a rule pattern has to occur in a
// word. Kinds are ordered by how constrained they are; a more constrained
// kind wins over a less constrained one when two rules match equally long.
type MatchKind uint8

const (
	SuffixWildcard MatchKind = iota // "-ology": fixed part ends the word
	PrefixWildcard                  // "inform-": fixed part starts the word
	BothWildcard                    // "-graph-": fixed part anywhere inside the word
	Exact                           // "journal": fixed part is the word
)

func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case PrefixWildcard:
		return "prefix"
	case SuffixWildcard:
		return "suffix"
	case BothWildcard:
		return "infix"
	}
	return fmt.Sprintf("MatchKind(%d)", k)
}

// matches reports whether a fixed part found at rune offsets [start,end) of
// a word of length n satisfies the wildcard constraints of k.
func (k MatchKind) matches(start, end, n int) bool {
	switch k {
	case Exact:
		return start == 0 && end == n
	case PrefixWildcard:
		return start == 0
	case SuffixWildcard:
		return end == n
	}
	return true
}

// wildcard marks used in LTWA patterns.
func isWildcardMark(r rune) bool {
	return r == '-' || r == '‐' || r == '–'
}

// ParsePattern splits a raw LTWA pattern into its normalized fixed part and
// its match kind. ok is false if nothing remains after removing the
// wildcard marks. Hyphens inside a pattern are kept ("co-operat-").
func ParsePattern(raw string) (fixed string, kind MatchKind, ok bool) {
	raw = strings.TrimSpace(raw)
	leading, trailing := false, false
	if r, size := utf8.DecodeRuneInString(raw); size > 0 && isWildcardMark(r) {
		leading = true
		raw = raw[size:]
	}
	if r, size := utf8.DecodeLastRuneInString(raw); size > 0 && isWildcardMark(r) {
		trailing = true
		raw = raw[:len(raw)-size]
	}
	fixed = strings.Join(strings.Fields(Normalize(raw)), " ")
	if fixed == "" {
		return "", Exact, false
	}
	switch {
	case leading && trailing:
		kind = BothWildcard
	case leading:
		kind = SuffixWildcard
	case trailing:
		kind = PrefixWildcard
	default:
		kind = Exact
	}
	return fixed, kind, true
}

// LanguageScope is a set of lower-case language tags, e.g. ["eng", "fre"].
// An empty scope stands for all languages.
type LanguageScope []string

// ParseLanguageScope parses a list of language tags separated by commas,
// semicolons, slashes or blanks. The LTWA markers "mul" (multiple
// languages) and "und" (undetermined) yield the all-languages scope.
func ParseLanguageScope(s string) LanguageScope {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || unicode.IsSpace(r)
	})
	var scope LanguageScope
	for _, f := range fields {
		switch f {
		case "mul", "und", "all", "*":
			return nil
		}
		if !slices.Contains(scope, f) {
			scope = append(scope, f)
		}
	}
	slices.Sort(scope)
	return scope
}

// All reports whether the scope covers every language.
func (ls LanguageScope) All() bool {
	return len(ls) == 0
}

// Admits reports whether a rule with scope ls may be applied to a title in
// one of the languages of title. A title of unknown language admits every
// rule.
func (ls LanguageScope) Admits(title LanguageScope) bool {
	if ls.All() || title.All() {
		return true
	}
	for _, lang := range title {
		if _, found := slices.BinarySearch(ls, lang); found {
			return true
		}
	}
	return false
}

func (ls LanguageScope) String() string {
	if ls.All() {
		return "mul"
	}
	return strings.Join(ls, ",")
}

// Rule is a single compiled LTWA entry.
type Rule struct {
	Pattern      string        // normalized fixed part; words of a phrase separated by one blank
	Kind         MatchKind     // where Pattern has to occur in a word
	Languages    LanguageScope // languages the rule applies to
	Abbreviation string        // replacement, or the "n.a." sentinel
	Order        int           // position in the rule table
	span         int           // rune length of Pattern
}

// KeepVerbatim reports whether the rule says "do not abbreviate" (LTWA
// abbreviation "n.a.").
func (r Rule) KeepVerbatim() bool {
	return isVerbatimSentinel(r.Abbreviation)
}

// IsPhrase reports whether the rule spans more than one word.
func (r Rule) IsPhrase() bool {
	return strings.Contains(r.Pattern, " ")
}

func (r Rule) String() string {
	pattern := r.Pattern
	switch r.Kind {
	case PrefixWildcard:
		pattern += "-"
	case SuffixWildcard:
		pattern = "-" + pattern
	case BothWildcard:
		pattern = "-" + pattern + "-"
	}
	return fmt.Sprintf("%s => %s [%s]", pattern, r.Abbreviation, r.Languages)
}

// moreSpecific reports whether r should be preferred over other when both
// match the same word: longer fixed part first, then the more constrained
// match kind, then table order.
func (r *Rule) moreSpecific(other *Rule) bool {
	if r.span != other.span {
		return r.span > other.span
	}
	if r.Kind != other.Kind {
		return r.Kind > other.Kind
	}
	return r.Order < other.Order
}

func isVerbatimSentinel(abbrev string) bool {
	s := strings.ToLower(strings.Join(strings.Fields(abbrev), ""))
	return s == "n.a." || s == "n.a"
}

// compileRule turns a raw table entry into a Rule. Entries without a usable
// pattern or abbreviation are rejected.
func compileRule(raw RawRule, order int) (Rule, bool) {
	fixed, kind, ok := ParsePattern(raw.Pattern)
	if !ok {
		return Rule{}, false
	}
	abbrev := strings.TrimSpace(raw.Abbreviation)
	if abbrev == "" {
		return Rule{}, false
	}
	return Rule{
		Pattern:      fixed,
		Kind:         kind,
		Languages:    ParseLanguageScope(raw.Languages),
		Abbreviation: abbrev,
		Order:        order,
		span:         utf8.RuneCountInString(fixed),
	}, true
}
