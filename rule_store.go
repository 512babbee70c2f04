package isoabbrev

import "fmt"

const initialRuleStoreSlots = 2 // include slot 0 + root slot

// ruleStore keeps the ids of all rules sharing a fixed part, directly
// indexed by trie state. Ids within a slot are kept in table order.
type ruleStore struct {
	slots [][]int32 // will grow with demand
	count int
}

func newRuleStore(capacity int) *ruleStore {
	return &ruleStore{
		slots: make([][]int32, max(initialRuleStoreSlots, capacity)),
	}
}

func (s *ruleStore) ensure(pos int) {
	if pos < len(s.slots) {
		return
	}
	grow := pos + 1 - len(s.slots)
	s.slots = append(s.slots, make([][]int32, grow)...)
}

// Add appends rule id to the rules at trie position pos.
func (s *ruleStore) Add(pos int, id int) error {
	if pos <= 0 {
		return fmt.Errorf("invalid trie position: %d", pos)
	}
	if id < 0 {
		return fmt.Errorf("negative rule id: %d", id)
	}
	s.ensure(pos)
	s.slots[pos] = append(s.slots[pos], int32(id))
	s.count++
	return nil
}

// Rules returns the ids stored at trie position pos, in table order.
func (s *ruleStore) Rules(pos int) []int32 {
	if pos <= 0 || pos >= len(s.slots) {
		return nil
	}
	return s.slots[pos]
}

// Len returns the number of rule ids stored.
func (s *ruleStore) Len() int {
	return s.count
}
