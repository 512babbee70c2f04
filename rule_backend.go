package isoabbrev

// keyIterator iterates over successive prefix states for one key.
type keyIterator interface {
	Next(symbol uint16) int
}

type ruleTrieStats struct {
	Backend    string
	States     int
	UsedSlots  int
	TotalSlots int
}

func (s ruleTrieStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// ruleTrie is the internal backend abstraction for rule-key storage.
//
// Positions handed out by AllocPositionForWord before Freeze are temporary
// and have to be translated with ResolvePosition afterwards. Iterators of a
// frozen trie return final state ids.
type ruleTrie interface {
	EncodeKey(s string) ([]uint16, bool)
	AllocPositionForWord(key []uint16) int
	ResolvePosition(pos int) int
	Freeze()
	Iterator() keyIterator
	Stats() ruleTrieStats
}
