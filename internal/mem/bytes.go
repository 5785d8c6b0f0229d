package mem

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 256

// Bytes implements a byte-oriented paged memory, used for simulated PEEK/POKE
// address spaces: most addresses are never touched, so pages are allocated
// lazily on first store and read back as zero until then.
type Bytes struct {
	PagedCore
	pages [][]byte
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Bytes) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns a single byte from the given address. Unallocated pages read
// back as zero. Returns an error if addr exceeds any configured Limit.
func (m *Bytes) Load(addr uint) (byte, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// Stor stores a single byte at addr, allocating a page if necessary.
// Returns an error if a configured Limit would be exceeded.
func (m *Bytes) Stor(addr uint, value byte) error {
	if err := m.checkLimit(addr, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}

	pageID := m.findPage(addr)
	base, size, page := m.allocPage(pageID, addr)
	if skip := addr - base; skip < size {
		page[skip] = value
	}
	return nil
}

func (m *Bytes) allocPage(pageID int, addr uint) (base, size uint, page []byte) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]byte, size)
		if pageID == len(m.bases) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
