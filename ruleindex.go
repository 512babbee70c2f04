package isoabbrev

import (
	"errors"
	"fmt"
	"io"
)

// RawRule is an LTWA entry as found in the table, before compilation.
type RawRule struct {
	Pattern      string // e.g. "inform-", "-ology", "journal", "south africa"
	Languages    string // e.g. "eng, fre", "mul"
	Abbreviation string // e.g. "inf.", "-ol.", "j.", "n.a."
}

// RuleReader yields raw rule entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type RuleReader interface {
	Next() (RawRule, error)
}

// WordReader yields exempt words one-by-one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (string, error)
}

// skipCounter is implemented by readers which drop malformed lines.
type skipCounter interface {
	Skipped() int
}

// RuleIndex is a loaded LTWA rule table together with the set of exempt
// words.
//
// Single-word rules are compiled into a frozen trie keyed by their
// normalized fixed part, with rule ids stored per trie state. Multi-word
// rules live in a phrase index. Once frozen, a RuleIndex is never
// modified and may be shared freely.
type RuleIndex struct {
	rules      []Rule
	trie       ruleTrie
	store      *ruleStore
	phrases    *phraseIndex
	exempt     map[string]struct{}
	skipped    int
	Identifier string // Identifies the rule table
}

// IndexStats reports the size of a RuleIndex and density metrics of its
// rule trie.
type IndexStats struct {
	Rules       int // single-word rules
	Phrases     int // multi-word rules
	ExemptWords int
	Skipped     int // malformed entries dropped while loading
	Backend     string
	TrieStates  int
	UsedSlots   int
	TotalSlots  int
	FillRatio   float64
}

// LoadRules compiles rules from a streaming, format-agnostic source.
//
// Entries without a usable pattern or abbreviation are skipped and counted.
// If not a single rule survives, LoadRules fails with a *ConfigError:
// an index without rules would silently leave every title unabbreviated.
//
// File format parsing is intentionally outside the base package. Use
// package ltwa to parse the LTWA table and feed this API.
func LoadRules(name string, reader RuleReader) (*RuleIndex, error) {
	trie := newDATBackend()
	index := &RuleIndex{
		trie:       trie,
		phrases:    newPhraseIndex(),
		exempt:     make(map[string]struct{}),
		Identifier: fmt.Sprintf("ltwa: %s", name),
	}
	type pendingRule struct {
		pos int
		id  int
	}
	pending := make([]pendingRule, 0, 1024)
	for order := 0; ; order++ {
		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rules of %s: %w", name, err)
		}
		rule, ok := compileRule(raw, order)
		if !ok || (rule.IsPhrase() && rule.Kind != Exact && rule.Kind != PrefixWildcard) {
			tracer().Debugf("skipping rule %q => %q", raw.Pattern, raw.Abbreviation)
			index.skipped++
			continue
		}
		id := len(index.rules)
		index.rules = append(index.rules, rule)
		if rule.IsPhrase() {
			index.phrases.add(&index.rules[id], id)
			continue
		}
		key, ok := trie.EncodeKey(rule.Pattern)
		if !ok {
			index.rules = index.rules[:id]
			index.skipped++
			continue
		}
		pos := trie.AllocPositionForWord(key)
		if pos == 0 {
			return nil, fmt.Errorf("could not allocate trie position for rule %q", rule.Pattern)
		}
		pending = append(pending, pendingRule{pos: pos, id: id})
	}
	if sc, ok := reader.(skipCounter); ok {
		index.skipped += sc.Skipped()
	}
	if len(index.rules) == 0 {
		return nil, &ConfigError{Source: name, Reason: "rule table contains no usable rules"}
	}
	trie.Freeze()
	index.store = newRuleStore(trie.Stats().TotalSlots)
	for _, p := range pending {
		state := trie.ResolvePosition(p.pos)
		if state == 0 {
			return nil, fmt.Errorf("could not resolve trie position after freeze for temporary position %d", p.pos)
		}
		if err := index.store.Add(state, p.id); err != nil {
			return nil, err
		}
	}
	st := index.Stats()
	tracer().Infof("loaded %d rules and %d phrases from %s, skipped %d entries",
		st.Rules, st.Phrases, name, st.Skipped)
	tracer().Infof("rule trie stats backend=%s used=%d total=%d fill=%.2f",
		st.Backend, st.UsedSlots, st.TotalSlots, st.FillRatio)
	return index, nil
}

// LoadExemptWords adds exempt words from a streaming source. Words are
// normalized before they are stored.
//
// It fails with a *ConfigError if the index ends up without any exempt
// word. LoadExemptWords must not be called once the index is in use by an
// Engine.
func (index *RuleIndex) LoadExemptWords(reader WordReader) error {
	for {
		word, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("reading exempt words: %w", err)
		}
		index.AddExemptWord(word)
	}
	if sc, ok := reader.(skipCounter); ok {
		index.skipped += sc.Skipped()
	}
	if len(index.exempt) == 0 {
		return &ConfigError{Source: "shortwords", Reason: "exempt-word list contains no words"}
	}
	tracer().Infof("%d exempt words in %s", len(index.exempt), index.Identifier)
	return nil
}

// AddExemptWord registers one word which is never abbreviated.
// Blank words are ignored.
func (index *RuleIndex) AddExemptWord(word string) {
	if w := Normalize(word); w != "" {
		if index.exempt == nil {
			index.exempt = make(map[string]struct{})
		}
		index.exempt[w] = struct{}{}
	}
}

// IsExempt reports whether a normalized word is never to be abbreviated.
func (index *RuleIndex) IsExempt(normalizedWord string) bool {
	_, found := index.exempt[normalizedWord]
	return found
}

// Rules returns the number of compiled rules, phrases included.
func (index *RuleIndex) Rules() int {
	return len(index.rules)
}

// Stats reports size and density metrics of the index.
func (index *RuleIndex) Stats() IndexStats {
	if index == nil {
		return IndexStats{}
	}
	st := IndexStats{
		Phrases:     index.phrases.count,
		ExemptWords: len(index.exempt),
		Skipped:     index.skipped,
	}
	st.Rules = len(index.rules) - st.Phrases
	if index.trie != nil {
		ts := index.trie.Stats()
		st.Backend = ts.Backend
		st.TrieStates = ts.States
		st.UsedSlots = ts.UsedSlots
		st.TotalSlots = ts.TotalSlots
		st.FillRatio = ts.FillRatio()
	}
	return st
}

// ruleMatch locates the fixed part of a matching rule within a word, in
// runes of the normalized word.
type ruleMatch struct {
	id         int
	start, end int
}

// LookupBest returns the most specific rule matching normalizedWord which
// applies to a title in one of the languages langs.
//
// The rule with the longest fixed part wins. Ties are broken by match kind
// (Exact > BothWildcard > PrefixWildcard > SuffixWildcard) and finally by
// table order. If no rule matches, LookupBest returns false and the word
// is to be left unabbreviated.
func (index *RuleIndex) LookupBest(normalizedWord string, langs LanguageScope) (Rule, bool) {
	m, ok := index.lookup(normalizedWord, langs)
	if !ok {
		return Rule{}, false
	}
	return index.rules[m.id], true
}

func (index *RuleIndex) lookup(word string, langs LanguageScope) (ruleMatch, bool) {
	best := ruleMatch{id: -1}
	if index == nil || index.store == nil || word == "" {
		return best, false
	}
	key, ok := index.trie.EncodeKey(word)
	if !ok {
		return best, false
	}
	n := len(key)
	for start := 0; start < n; start++ { // "word", "ord", "rd", "d"
		it := index.trie.Iterator()
		for end := start + 1; end <= n; end++ {
			state := it.Next(key[end-1])
			if state == 0 {
				break
			}
			for _, id := range index.store.Rules(state) {
				r := &index.rules[id]
				if !r.Kind.matches(start, end, n) || !r.Languages.Admits(langs) {
					continue
				}
				if best.id < 0 || r.moreSpecific(&index.rules[best.id]) {
					best = ruleMatch{id: int(id), start: start, end: end}
				}
			}
		}
	}
	return best, best.id >= 0
}

// lookupPhrase finds the best multi-word rule matching the first words of
// a normalized word sequence.
func (index *RuleIndex) lookupPhrase(words []string, langs LanguageScope) (phraseMatch, bool) {
	return index.phrases.lookup(words, index.rules, langs)
}

func (index *RuleIndex) rule(id int) *Rule {
	assert(id >= 0 && id < len(index.rules), "rule id out of range")
	return &index.rules[id]
}
