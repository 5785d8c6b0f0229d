package main

import (
	"io"

	"github.com/journich/CBASIC/internal/flushio"
	"github.com/journich/CBASIC/internal/runeio"
)

const (
	termWidth   = 80
	zoneWidth   = 14
	zonesPerRow = termWidth / zoneWidth
)

// term is the PRINT-facing terminal abstraction from spec §4.6: it tracks
// the current output column so that comma zones, TAB, and the 80-column
// auto-wrap all land correctly regardless of what was written before.
// Grounded on the teacher's ioCore, generalized from a single io.Writer
// into column-aware output built over runeio/flushio.
type term struct {
	w   flushio.WriteFlusher
	col int
}

func newTerm(w io.Writer) *term {
	return &term{w: flushio.NewWriteFlusher(w)}
}

func (t *term) column() int { return t.col }

// writeString writes s verbatim, updating the column tracker; a newline in
// s resets the column to zero, matching ordinary terminal behavior.
func (t *term) writeString(s string) error {
	for _, r := range s {
		if _, err := runeio.WriteANSIRune(t.w, r); err != nil {
			return err
		}
		if r == '\n' {
			t.col = 0
		} else {
			t.col++
		}
	}
	return nil
}

// newline writes a single \n and resets the column to zero. No CR and no
// NUL padding bytes are written.
func (t *term) newline() error {
	return t.writeString("\n")
}

// tab advances (never retreats) to column n, spec §4.6 TAB(n): if the
// cursor has already passed n on the current line, it instead wraps to
// column n on the next line.
func (t *term) tab(n int) error {
	if n < 0 {
		n = 0
	}
	if t.col > n {
		if err := t.newline(); err != nil {
			return err
		}
	}
	for t.col < n {
		if err := t.writeString(" "); err != nil {
			return err
		}
	}
	return nil
}

// spc advances n columns, spec §4.6 SPC(n), wrapping at the terminal width.
func (t *term) spc(n int) error {
	for i := 0; i < n; i++ {
		if t.col >= termWidth {
			if err := t.newline(); err != nil {
				return err
			}
		}
		if err := t.writeString(" "); err != nil {
			return err
		}
	}
	return nil
}

// nextZone pads with spaces to the start of the next comma zone (the next
// multiple of 14), writing a newline instead when that zone would start at
// or past the terminal width, i.e. from column 70 on (spec §4.6 comma
// separator).
func (t *term) nextZone() error {
	zone := t.col / zoneWidth
	target := (zone + 1) * zoneWidth
	if target >= termWidth {
		return t.newline()
	}
	for t.col < target {
		if err := t.writeString(" "); err != nil {
			return err
		}
	}
	return nil
}

// printItem writes s, then wraps to a new line first if s would overflow
// the terminal width (spec §4.6 auto-wrap).
func (t *term) printItem(s string) error {
	if t.col+len(s) > termWidth && t.col != 0 {
		if err := t.newline(); err != nil {
			return err
		}
	}
	return t.writeString(s)
}

func (t *term) flush() error {
	if t.w != nil {
		return t.w.Flush()
	}
	return nil
}
