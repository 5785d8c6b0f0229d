package main

import "github.com/journich/CBASIC/internal/mem"

// defaultMemLimit is the simulated memory size (spec §5, §6: "simulated
// memory 64 KiB default").
const defaultMemLimit = 64 * 1024

// memBank is the flat simulated-memory address space backing PEEK/POKE
// (spec §4.3). Grounded on the teacher's internal/mem paged memory model
// (there used for FIRST's dictionary/return-stack address space): paging
// fits PEEK/POKE well because real BASIC programs touch only a handful of
// scattered addresses out of the full 64 KiB space.
type memBank struct {
	bytes mem.Bytes
}

func newMemBank(limit uint) *memBank {
	if limit == 0 {
		limit = defaultMemLimit
	}
	b := &memBank{}
	b.bytes.Limit = limit
	return b
}

func (m *memBank) peek(addr uint) (byte, error) {
	return m.bytes.Load(addr)
}

func (m *memBank) poke(addr uint, value byte) error {
	return m.bytes.Stor(addr, value)
}
