package isoabbrev

import (
	"strings"
)

// Engine abbreviates titles using a shared, frozen RuleIndex.
//
// An Engine holds no mutable state. Any number of goroutines may call
// MakeAbbreviation on the same Engine concurrently.
type Engine struct {
	index *RuleIndex
	langs LanguageScope
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages declares the language(s) of the titles to abbreviate, as
// LTWA language tags ("eng", "fre", "ger", …). Rules restricted to other
// languages are not applied. Without this option every rule is eligible.
func WithLanguages(tags ...string) Option {
	return func(e *Engine) {
		e.langs = ParseLanguageScope(strings.Join(tags, ","))
	}
}

// New creates an Engine on top of index.
func New(index *RuleIndex, opts ...Option) *Engine {
	assert(index != nil, "engine needs a rule index")
	e := &Engine{index: index}
	for _, opt := range opts {
		opt(e)
	}
	tracer().Debugf("new engine for %s, languages=%s", index.Identifier, e.langs)
	return e
}

// Index returns the rule index the engine works on.
func (e *Engine) Index() *RuleIndex {
	return e.index
}

// Languages returns the declared title languages. An empty scope stands
// for all languages.
func (e *Engine) Languages() LanguageScope {
	return e.langs
}

// MakeAbbreviation returns the ISO 4 abbreviation of a title.
//
// Words are looked up one by one (multi-word rules first). Exempt words are
// kept, lower-cased unless they start the title. Words without a matching
// rule, words marked "n.a." and acronyms are kept verbatim. Abbreviated
// words follow the case of the word they replace and end in a period.
// Punctuation around words is kept and the result is capitalized.
//
// Example:
//
//	"International Journal of Geographical Information Science"
//	=> "Int. J. of Geogr. Inf. Sci."
func (e *Engine) MakeAbbreviation(title string) string {
	tokens := tokenize(title)
	if len(tokens) == 0 {
		return ""
	}
	shouted := isShouted(title)
	out := make([]string, 0, len(tokens))
	first := true
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if tok.core == "" {
			out = append(out, tok.lead)
			i++
			continue
		}
		var word string
		if n, phrase, ok := e.abbreviatePhrase(tokens[i:], shouted); ok {
			word, tok.trail = phrase, tokens[i+n-1].trail
			i += n
		} else {
			word = e.abbreviateWord(tok.core, first, shouted)
			i++
		}
		if first {
			word = capitalize(word)
			first = false
		}
		out = append(out, tok.lead+attachTrail(word, tok.trail))
	}
	return strings.Join(out, " ")
}

// abbreviatePhrase tries the multi-word rules on the words starting at
// tokens[0]. A phrase may not cross punctuation.
func (e *Engine) abbreviatePhrase(tokens []token, shouted bool) (int, string, bool) {
	maxWords := e.index.phrases.maxWords
	if maxWords < 2 || len(tokens) < 2 {
		return 0, "", false
	}
	words := make([]string, 0, maxWords)
	for j, tok := range tokens {
		if j == maxWords || tok.core == "" || (j > 0 && tok.lead != "") ||
			(!shouted && isAcronym(tok.core)) {
			break
		}
		words = append(words, Normalize(tok.core))
		if tok.trail != "" {
			break
		}
	}
	m, ok := e.index.lookupPhrase(words, e.langs)
	if !ok {
		return 0, "", false
	}
	originals := make([]string, m.words)
	for j := 0; j < m.words; j++ {
		originals[j] = tokens[j].core
	}
	r := e.index.rule(m.id)
	if r.KeepVerbatim() {
		return m.words, strings.Join(originals, " "), true
	}
	parts := strings.Fields(r.Abbreviation)
	for j, part := range parts {
		if j >= len(originals) {
			break
		}
		parts[j] = withPeriod(matchCase(part, originals[j]), originals[j])
	}
	return m.words, strings.Join(parts, " "), true
}

// abbreviateWord abbreviates a single title word, which may be hyphenated
// or carry an elided article.
func (e *Engine) abbreviateWord(core string, first, shouted bool) string {
	if !shouted && isAcronym(core) {
		return core
	}
	if head, rest, ok := splitElision(core); ok {
		return head + e.abbreviateWord(rest, false, shouted)
	}
	if stem, ok := cutPossessive(core); ok {
		if s, changed := e.abbreviateSegment(stem, first); changed {
			return s
		}
		return core
	}
	if strings.Contains(core, "-") {
		// LTWA has fragments like "co-operat-", try the compound as a whole first
		if s, ok := e.abbreviateCompound(core); ok {
			return s
		}
		segments := strings.Split(core, "-")
		for i, seg := range segments {
			if seg != "" {
				segments[i], _ = e.abbreviateSegment(seg, first && i == 0)
			}
		}
		return strings.Join(segments, "-")
	}
	s, _ := e.abbreviateSegment(core, first)
	return s
}

func (e *Engine) abbreviateCompound(core string) (string, bool) {
	norm, offsets := normalizeMapped(core)
	m, ok := e.index.lookup(norm, e.langs)
	if !ok || !strings.Contains(e.index.rule(m.id).Pattern, "-") {
		return "", false
	}
	return e.apply(core, offsets, m)
}

// abbreviateSegment abbreviates a word without hyphens. It reports whether
// a rule changed the word.
func (e *Engine) abbreviateSegment(word string, first bool) (string, bool) {
	norm, offsets := normalizeMapped(word)
	if norm == "" {
		return word, false
	}
	if e.index.IsExempt(norm) {
		if first {
			return word, false
		}
		return strings.ToLower(word), false
	}
	m, ok := e.index.lookup(norm, e.langs)
	if !ok {
		return word, false
	}
	return e.apply(word, offsets, m)
}

// apply substitutes the abbreviation of a matched rule for word. For
// suffix and infix rules with an abbreviation starting with '-', only the
// matched part of the word is replaced: "-ologie" => "-ol." turns
// "Sociologie" into "Sociol.".
func (e *Engine) apply(word string, offsets []int, m ruleMatch) (string, bool) {
	r := e.index.rule(m.id)
	if r.KeepVerbatim() {
		return word, false
	}
	abbrev := r.Abbreviation
	head := ""
	if strings.HasPrefix(abbrev, "-") {
		if r.Kind == SuffixWildcard || r.Kind == BothWildcard {
			head = word[:offsets[m.start]]
		}
		abbrev = abbrev[1:]
	}
	if head == "" {
		abbrev = matchCase(abbrev, word)
	}
	abbrev = head + abbrev
	return withPeriod(abbrev, word), true
}

// withPeriod appends the ISO 4 abbreviation period, unless abbrev already
// ends in one or is no abbreviation of word at all.
func withPeriod(abbrev, word string) string {
	if strings.HasSuffix(abbrev, ".") || Normalize(abbrev) == Normalize(word) {
		return abbrev
	}
	return abbrev + "."
}
