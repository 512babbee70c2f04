package dat

const pageSize = 256

// PagedMapBMP maps BMP code units to dense symbols. The high byte of a
// code unit selects a page of 256 entries, the low byte an entry within
// it. Pages are allocated on first write; a rule table of Latin words
// needs only a few of them.
type PagedMapBMP struct {
	Top   [256]uint16 // high byte => 1-based page number, 0 if unallocated
	Pages []uint16    // all pages, back to back
}

// Dense returns the symbol of a code unit, or 0 if it has none.
func (m *PagedMapBMP) Dense(bmp uint16) uint16 {
	page := m.Top[bmp>>8]
	if page == 0 {
		return 0
	}
	return m.Pages[m.offset(page, bmp)]
}

// Set maps a code unit to a symbol. Setting 0 clears a mapping and never
// allocates a page.
func (m *PagedMapBMP) Set(bmp uint16, dense uint16) {
	hi := bmp >> 8
	page := m.Top[hi]
	if page == 0 {
		if dense == 0 {
			return
		}
		m.Pages = append(m.Pages, make([]uint16, pageSize)...)
		page = uint16(m.NumPages())
		m.Top[hi] = page
	}
	m.Pages[m.offset(page, bmp)] = dense
}

// NumPages returns the number of allocated pages.
func (m *PagedMapBMP) NumPages() int {
	return len(m.Pages) / pageSize
}

func (m *PagedMapBMP) offset(page, bmp uint16) int {
	return int(page-1)*pageSize + int(bmp&0xFF)
}
