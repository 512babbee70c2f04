package isoabbrev

import (
	"errors"
	"io"
	"testing"
)

type sliceRuleReader struct {
	entries []RawRule
	index   int
}

func (r *sliceRuleReader) Next() (RawRule, error) {
	if r.index >= len(r.entries) {
		return RawRule{}, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry, nil
}

type sliceWordReader struct {
	words []string
	index int
}

func (r *sliceWordReader) Next() (string, error) {
	if r.index >= len(r.words) {
		return "", io.EOF
	}
	w := r.words[r.index]
	r.index++
	return w, nil
}

func rule(pattern, langs, abbrev string) RawRule {
	return RawRule{Pattern: pattern, Languages: langs, Abbreviation: abbrev}
}

func mustLoadIndex(t *testing.T, rules []RawRule, exempt ...string) *RuleIndex {
	t.Helper()
	index, err := LoadRules("test", &sliceRuleReader{entries: rules})
	if err != nil {
		t.Fatal(err)
	}
	if len(exempt) == 0 {
		exempt = []string{"of", "the", "and", "de", "in"}
	}
	if err := index.LoadExemptWords(&sliceWordReader{words: exempt}); err != nil {
		t.Fatal(err)
	}
	return index
}

func TestLookupLongestMatchWins(t *testing.T) {
	index := mustLoadIndex(t, []RawRule{
		rule("inform-", "mul", "inf."),
		rule("informat-", "mul", "informat."),
	})
	r, ok := index.LookupBest("information", nil)
	if !ok {
		t.Fatalf("expected a rule for 'information'")
	}
	if r.Pattern != "informat" || r.Kind != PrefixWildcard {
		t.Fatalf("expected rule informat-, got %v", r)
	}
	r, ok = index.LookupBest("informal", nil)
	if !ok || r.Pattern != "inform" {
		t.Fatalf("expected rule inform- for 'informal', got %v/%v", r, ok)
	}
	if _, ok = index.LookupBest("international", nil); ok {
		t.Fatalf("'international' matches neither inform- nor informat-")
	}
}

func TestLookupTieBreaks(t *testing.T) {
	tests := []struct {
		rules  []RawRule
		word   string
		abbrev string
	}{
		{ // exact > infix > prefix > suffix
			rules: []RawRule{
				rule("-logic", "mul", "suffix"),
				rule("logic-", "mul", "prefix"),
				rule("-logic-", "mul", "infix"),
				rule("logic", "mul", "exact"),
			},
			word: "logic", abbrev: "exact",
		},
		{
			rules: []RawRule{
				rule("-logic", "mul", "suffix"),
				rule("logic-", "mul", "prefix"),
				rule("-logic-", "mul", "infix"),
			},
			word: "logic", abbrev: "infix",
		},
		{
			rules: []RawRule{
				rule("-logic", "mul", "suffix"),
				rule("logic-", "mul", "prefix"),
			},
			word: "logic", abbrev: "prefix",
		},
		{ // table order is the final tiebreak
			rules: []RawRule{
				rule("logic", "mul", "first"),
				rule("logic", "mul", "second"),
			},
			word: "logic", abbrev: "first",
		},
		{ // length beats kind
			rules: []RawRule{
				rule("-logic-", "mul", "short"),
				rule("-logical", "mul", "long"),
			},
			word: "biological", abbrev: "long",
		},
	}
	for i, tt := range tests {
		index := mustLoadIndex(t, tt.rules)
		r, ok := index.LookupBest(tt.word, nil)
		if !ok {
			t.Fatalf("test %d: expected a match for %q", i, tt.word)
		}
		if r.Abbreviation != tt.abbrev {
			t.Fatalf("test %d: expected %q, got %q", i, tt.abbrev, r.Abbreviation)
		}
	}
}

func TestLookupWildcardPositions(t *testing.T) {
	index := mustLoadIndex(t, []RawRule{
		rule("-ology", "mul", "-ol."),
		rule("graph-", "mul", "graph."),
		rule("-chem-", "mul", "chem."),
		rule("acta", "mul", "n.a."),
	})
	tests := []struct {
		word    string
		pattern string // "" = no match
	}{
		{"sociology", "ology"},
		{"ologyst", ""},
		{"graphics", "graph"},
		{"biography", ""},
		{"biochemistry", "chem"},
		{"acta", "acta"},
		{"actas", ""},
		{"", ""},
	}
	for _, tt := range tests {
		r, ok := index.LookupBest(tt.word, nil)
		if tt.pattern == "" {
			if ok {
				t.Errorf("%q should not match, matched %v", tt.word, r)
			}
			continue
		}
		if !ok || r.Pattern != tt.pattern {
			t.Errorf("%q should match %q, got %v/%v", tt.word, tt.pattern, r, ok)
		}
	}
}

func TestLookupLanguageScope(t *testing.T) {
	index := mustLoadIndex(t, []RawRule{
		rule("revue", "fre", "rev."),
		rule("journal", "eng, fre, ger", "j."),
	})
	if _, ok := index.LookupBest("revue", LanguageScope{"eng"}); ok {
		t.Fatalf("French rule must not apply to English titles")
	}
	if _, ok := index.LookupBest("revue", nil); !ok {
		t.Fatalf("titles of unknown language admit every rule")
	}
	if _, ok := index.LookupBest("journal", LanguageScope{"ger"}); !ok {
		t.Fatalf("rule for eng, fre, ger must apply to German titles")
	}
}

func TestLoadRulesEmptyIsConfigError(t *testing.T) {
	_, err := LoadRules("empty", &sliceRuleReader{})
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	_, err = LoadRules("garbage", &sliceRuleReader{entries: []RawRule{
		rule("-", "mul", "x."),
		rule("journal", "eng", ""),
	}})
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError for table without usable rules, got %v", err)
	}
}

func TestLoadExemptWordsEmptyIsConfigError(t *testing.T) {
	index, err := LoadRules("test", &sliceRuleReader{entries: []RawRule{rule("journal", "mul", "j.")}})
	if err != nil {
		t.Fatal(err)
	}
	err = index.LoadExemptWords(&sliceWordReader{words: []string{"", "  "}})
	var cerr *ConfigError
	if !errors.As(err, &cerr) || cerr.Source != "shortwords" {
		t.Fatalf("expected ConfigError for shortwords, got %v", err)
	}
}

func TestExemptWordsAreNormalized(t *testing.T) {
	index := mustLoadIndex(t, []RawRule{rule("journal", "mul", "j.")}, "Für", "À")
	if !index.IsExempt("fur") || !index.IsExempt("a") {
		t.Fatalf("exempt words must be stored normalized")
	}
	if index.IsExempt("journal") {
		t.Fatalf("journal is not exempt")
	}
}

func TestIndexStats(t *testing.T) {
	index := mustLoadIndex(t, []RawRule{
		rule("journal", "mul", "j."),
		rule("journey-", "mul", "journ."),
		rule("south africa", "mul", "S. Afr."),
		rule("-", "mul", "broken"),
		rule("-south africa", "mul", "phrases may not start with a wildcard"),
	})
	st := index.Stats()
	if st.Rules != 2 || st.Phrases != 1 {
		t.Fatalf("expected 2 rules and 1 phrase, got %d and %d", st.Rules, st.Phrases)
	}
	if st.Skipped != 2 {
		t.Fatalf("expected 2 skipped entries, got %d", st.Skipped)
	}
	if st.Backend != "dat" {
		t.Fatalf("expected dat backend, got %s", st.Backend)
	}
	if st.UsedSlots <= 0 || st.TotalSlots <= 0 {
		t.Fatalf("expected positive slot counts, got used=%d total=%d", st.UsedSlots, st.TotalSlots)
	}
	if st.FillRatio <= 0 || st.FillRatio > 1 {
		t.Fatalf("expected fill ratio in (0,1], got %f", st.FillRatio)
	}
	if index.Rules() != 3 {
		t.Fatalf("expected 3 compiled rules, got %d", index.Rules())
	}
}
