package main

import (
	"io"

	"github.com/journich/CBASIC/internal/fileinput"
)

// programInput adapts fileinput.Input (which only offers rune-at-a-time
// reading, tracking Location/Line for diagnostics) to io.Reader so it can
// feed the interpreter's rune reader (spec §6: "a program file is read line
// by line the same way typed input is, falling through non-digit lines to
// immediate execution once the file is exhausted"). Grounded on the
// teacher's fileinput.Input, generalized from a single compile-time source
// queue into "the program file, then the terminal" for the CLI entrypoint.
type programInput struct {
	*fileinput.Input
}

// newProgramInput builds an input queue of sources (for example a program
// file followed by the terminal), per spec §6's loader semantics: only
// lines beginning with a digit are meaningful when consumed ahead of the
// terminal source; everything else is passed straight to the REPL as if
// typed, so `#`-prefixed lines (spec §6 "loader ignores lines that don't
// start with a digit or '#'") are simply never formed into a stored
// program line by handleLine's own digit check.
func newProgramInput(sources ...io.Reader) *programInput {
	return &programInput{Input: &fileinput.Input{Queue: sources}}
}

// Read implements io.Reader by draining ReadRune, since fileinput.Input
// exposes only rune-oriented reads.
func (p *programInput) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		r, size, err := p.Input.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if size == 0 {
			continue
		}
		b := []byte(string(r))
		if n+len(b) > len(buf) {
			break
		}
		copy(buf[n:], b)
		n += len(b)
	}
	return n, nil
}
