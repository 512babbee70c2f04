package isoabbrev

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/npillmayer/isoabbrev/dat"
)

// ruleRoot is the state of the empty key in the frozen rule trie. Slot 0
// stays unused, so a check value of 0 marks a free slot.
const ruleRoot = 1

// buildNode is a node of the pointer trie which collects rule keys before
// they are packed into the double-array.
type buildNode struct {
	tmpID    int
	state    uint32
	children map[uint16]*buildNode
}

func newBuildNode(id int) *buildNode {
	return &buildNode{tmpID: id, children: make(map[uint16]*buildNode)}
}

// datBackend collects rule keys in a pointer trie and packs them into a
// dat.DAT on Freeze. Runes are mapped to dense symbols in order of first
// appearance.
type datBackend struct {
	frozen   bool
	root     *buildNode
	nodes    []*buildNode    // by tmpID, until frozen
	alphabet map[rune]uint16 // until frozen
	resolved []uint32        // tmpID => frozen state
	compiled *dat.DAT
}

func newDATBackend() *datBackend {
	root := newBuildNode(1)
	return &datBackend{
		root:     root,
		nodes:    []*buildNode{nil, root},
		alphabet: make(map[rune]uint16),
		compiled: &dat.DAT{Root: ruleRoot},
	}
}

// EncodeKey maps the runes of s to dense symbols. While building, unseen
// runes extend the alphabet. Once frozen, runes outside the alphabet encode
// as 0, which no transition accepts.
func (db *datBackend) EncodeKey(s string) ([]uint16, bool) {
	key := make([]uint16, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		if db.frozen {
			var sym uint16
			if r <= 0xFFFF {
				sym = db.compiled.Dense(uint16(r))
			}
			key = append(key, sym)
			continue
		}
		if r > 0xFFFF {
			return nil, false
		}
		sym, ok := db.alphabet[r]
		if !ok {
			if db.compiled.Sigma == ^uint16(0) {
				return nil, false
			}
			db.compiled.Sigma++
			sym = db.compiled.Sigma
			db.alphabet[r] = sym
			db.compiled.MapPaged.Set(uint16(r), sym)
		}
		key = append(key, sym)
	}
	return key, true
}

// AllocPositionForWord inserts key and returns its temporary position.
// On a frozen trie nothing is inserted; the result is the state of key, or
// 0 if key is not in the trie.
func (db *datBackend) AllocPositionForWord(key []uint16) int {
	if len(key) == 0 {
		return 0
	}
	if db.frozen {
		state, depth := uint32(0), 0
		db.compiled.Walk(key, func(d int, s uint32) bool {
			depth, state = d, s
			return true
		})
		if depth < len(key) {
			return 0
		}
		return int(state)
	}
	n := db.root
	for _, sym := range key {
		if sym == 0 {
			return 0
		}
		child, ok := n.children[sym]
		if !ok {
			child = newBuildNode(len(db.nodes))
			db.nodes = append(db.nodes, child)
			n.children[sym] = child
		}
		n = child
	}
	return n.tmpID
}

// ResolvePosition translates a temporary position into the state of the
// frozen trie. It returns 0 for unknown positions or an unfrozen trie.
func (db *datBackend) ResolvePosition(pos int) int {
	if !db.frozen || pos <= 0 || pos >= len(db.resolved) {
		return 0
	}
	return int(db.resolved[pos])
}

// Freeze packs the collected keys into the double-array, breadth first.
func (db *datBackend) Freeze() {
	if db.frozen {
		return
	}
	d := db.compiled
	d.Base = make([]int32, ruleRoot+1)
	d.Check = make([]int32, ruleRoot+1)
	free := newFreeSlots(ruleRoot + 1)
	db.root.state = ruleRoot
	queue := []*buildNode{db.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if len(n.children) == 0 {
			continue
		}
		symbols := make([]uint16, 0, len(n.children))
		for sym := range n.children {
			symbols = append(symbols, sym)
		}
		slices.Sort(symbols)
		base := free.fit(d.Check, symbols)
		growDAT(d, base+int(symbols[len(symbols)-1]))
		d.Base[n.state] = int32(base)
		for _, sym := range symbols {
			slot := base + int(sym)
			free.take(slot)
			d.Check[slot] = int32(n.state)
			child := n.children[sym]
			child.state = uint32(slot)
			queue = append(queue, child)
		}
	}
	db.resolved = make([]uint32, len(db.nodes))
	for id, n := range db.nodes {
		if n != nil {
			db.resolved[id] = n.state
		}
	}
	db.root, db.nodes, db.alphabet = nil, nil, nil
	db.frozen = true
	tracer().Debugf("froze rule trie: %s", db)
}

// Iterator returns an iterator starting at the root. Before Freeze it
// yields temporary positions, afterwards frozen states.
func (db *datBackend) Iterator() keyIterator {
	if db.frozen {
		return &datIterator{d: db.compiled, state: ruleRoot}
	}
	return &buildIterator{node: db.root}
}

type buildIterator struct {
	node *buildNode
}

func (it *buildIterator) Next(sym uint16) int {
	if it.node == nil {
		return 0
	}
	it.node = it.node.children[sym]
	if it.node == nil {
		return 0
	}
	return it.node.tmpID
}

type datIterator struct {
	d     *dat.DAT
	state uint32 // 0 once a transition failed
}

func (it *datIterator) Next(sym uint16) int {
	if it.state == 0 {
		return 0
	}
	next, ok := it.d.Transition(it.state, sym)
	if !ok {
		next = 0
	}
	it.state = next
	return int(next)
}

// freeSlots finds unused double-array slots. Every used slot links to a
// slot after it; find follows the links and shortens the paths it walks,
// so skipping over densely packed regions stays cheap.
type freeSlots struct {
	next []int32 // next[i] == i for a free slot
}

// newFreeSlots marks all slots below first as used.
func newFreeSlots(first int) *freeSlots {
	fs := &freeSlots{next: make([]int32, first)}
	for i := range fs.next {
		fs.next[i] = int32(i + 1)
	}
	return fs
}

// find returns the lowest free slot at or after i.
func (fs *freeSlots) find(i int) int {
	slot := i
	for slot < len(fs.next) && int(fs.next[slot]) != slot {
		slot = int(fs.next[slot])
	}
	for i < slot {
		i, fs.next[i] = int(fs.next[i]), int32(slot)
	}
	return slot
}

func (fs *freeSlots) take(slot int) {
	for len(fs.next) <= slot {
		fs.next = append(fs.next, int32(len(fs.next)))
	}
	fs.next[slot] = int32(slot + 1)
}

// fit returns the lowest base placing every symbol on a free slot. The
// first symbol goes to a free slot found by find; the others are checked
// directly.
func (fs *freeSlots) fit(check []int32, symbols []uint16) int {
	first := int(symbols[0])
	for slot := fs.find(0); ; slot = fs.find(slot + 1) {
		base := slot - first
		if base < 1 {
			continue
		}
		fits := true
		for _, sym := range symbols[1:] {
			if t := base + int(sym); t < len(check) && check[t] != 0 {
				fits = false
				break
			}
		}
		if fits {
			return base
		}
	}
}

func growDAT(d *dat.DAT, slot int) {
	if slot < len(d.Base) {
		return
	}
	n := slot + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, n)...)
	d.Check = append(d.Check, make([]int32, n)...)
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(slots=%d,sigma=%d,frozen=%v)", db.compiled.NStates(), db.compiled.Sigma, db.frozen)
}

// Stats counts build nodes while building and occupied slots once frozen.
func (db *datBackend) Stats() ruleTrieStats {
	stats := ruleTrieStats{
		Backend:    "dat",
		TotalSlots: db.compiled.NStates(),
	}
	if !db.frozen {
		stats.States = len(db.nodes) - 1
		return stats
	}
	for i, c := range db.compiled.Check {
		if i == ruleRoot || c != 0 {
			stats.UsedSlots++
		}
	}
	stats.States = stats.UsedSlots
	return stats
}
