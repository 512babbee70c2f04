package isoabbrev

import (
	"strings"
	"unicode/utf8"

	"github.com/derekparker/trie"
)

// phraseIndex holds multi-word rules, keyed by their normalized words
// joined by a single blank. Rules sharing a key are kept in table order.
type phraseIndex struct {
	keys     *trie.Trie
	maxWords int
	count    int
}

type phraseEntry struct {
	ids []int
}

func newPhraseIndex() *phraseIndex {
	return &phraseIndex{keys: trie.New()}
}

func (p *phraseIndex) add(rule *Rule, id int) {
	if node, found := p.keys.Find(rule.Pattern); found {
		entry := node.Meta().(*phraseEntry)
		entry.ids = append(entry.ids, id)
	} else {
		p.keys.Add(rule.Pattern, &phraseEntry{ids: []int{id}})
	}
	if n := strings.Count(rule.Pattern, " ") + 1; n > p.maxWords {
		p.maxWords = n
	}
	p.count++
}

func (p *phraseIndex) entry(key string) *phraseEntry {
	node, found := p.keys.Find(key)
	if !found {
		return nil
	}
	return node.Meta().(*phraseEntry)
}

// phraseMatch is a phrase rule matching the first words of a sequence.
type phraseMatch struct {
	id    int
	words int
}

// lookup finds the best phrase rule matching a prefix of words, which have
// to be normalized. Phrases covering more words are preferred; among rules
// covering the same words, Rule.moreSpecific decides. The last word of a
// phrase rule may carry a trailing wildcard ("south afr-").
func (p *phraseIndex) lookup(words []string, rules []Rule, langs LanguageScope) (phraseMatch, bool) {
	if p == nil || p.count == 0 || len(words) < 2 {
		return phraseMatch{}, false
	}
	best := phraseMatch{id: -1}
	stem := words[0]
	for i := 1; i < len(words) && i < p.maxWords; i++ {
		stem += " "
		if !p.keys.HasKeysWithPrefix(stem) {
			break
		}
		word := words[i]
		for end := len(word); end > 0; {
			candidate := stem + word[:end]
			if entry := p.entry(candidate); entry != nil {
				whole := end == len(word)
				for _, id := range entry.ids {
					r := &rules[id]
					if !whole && r.Kind != PrefixWildcard {
						continue
					}
					if !r.Languages.Admits(langs) {
						continue
					}
					if best.id < 0 || i+1 > best.words ||
						(i+1 == best.words && r.moreSpecific(&rules[best.id])) {
						best = phraseMatch{id: id, words: i + 1}
					}
				}
			}
			_, size := utf8.DecodeLastRuneInString(word[:end])
			end -= size
		}
		stem += word
	}
	return best, best.id >= 0
}
