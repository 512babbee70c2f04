package dat

// DAT is a frozen double-array trie over rule keys.
//
// States are slots of Base and Check. Slot 0 is never a state, so a zero
// Check marks a free slot. Following symbol c from state s leads to slot
// t = Base[s]+c, provided Check[t] == s. Symbols are dense ids in
// [1..Sigma], assigned to code units by MapPaged; 0 stands for a code
// unit outside the alphabet and never matches.
//
// The trie stores no payload. Clients index their own tables by state.
type DAT struct {
	Root     uint32      // state of the empty key
	Sigma    uint16      // largest symbol in use
	Base     []int32     // per state: offset of its children
	Check    []int32     // per slot: parent state, 0 if free
	MapPaged PagedMapBMP // code unit => symbol
}

// NStates returns the number of slots, used or free.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition follows symbol dense from state. It fails for symbol 0 and
// for states without such a child.
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := int(d.Base[state]) + int(dense)
	if t <= 0 || t >= len(d.Check) || d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Dense returns the symbol of a BMP code unit, 0 if it is not part of the
// alphabet.
func (d *DAT) Dense(bmp uint16) uint16 { return d.MapPaged.Dense(bmp) }

// Walk follows key from the root and calls visit for every state reached,
// with the number of symbols consumed so far. Walking stops at the first
// missing transition or when visit returns false.
func (d *DAT) Walk(key []uint16, visit func(depth int, state uint32) bool) {
	state := d.Root
	for i, c := range key {
		next, ok := d.Transition(state, c)
		if !ok {
			return
		}
		state = next
		if !visit(i+1, state) {
			return
		}
	}
}
