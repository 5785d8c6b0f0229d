package main

import (
	"context"
	"errors"
	"io"
	"strings"
)

// quitWords are the direct-mode commands that end the REPL (SPEC_FULL
// "Supplemental features"): none of these exist in stock MS BASIC, which
// simply has no way to quit back to a host OS; a terminal-hosted
// reimplementation needs one.
var quitWords = map[string]bool{"QUIT": true, "EXIT": true, "BYE": true, "SYSTEM": true}

// repl implements the interactive read-tokenize-execute loop (spec §6): a
// line beginning with a line number is stored (or, with an empty body,
// deleted); any other line is tokenized and executed immediately in direct
// mode.
func (in *Interp) repl(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line, err := in.readInputLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(line)
		if quitWords[strings.ToUpper(trimmed)] {
			return nil
		}
		if trimmed == "" {
			continue
		}

		if err := in.handleLine(line); err != nil {
			if err := in.out(formatError(err, false)); err != nil {
				return err
			}
		}
		if err := in.flushAll(); err != nil {
			return err
		}
	}
}

// handleLine tokenizes one input line and either stores it as a numbered
// program line or executes it in direct mode (spec §6).
func (in *Interp) handleLine(line string) error {
	trimmed := strings.TrimLeft(line, " ")
	if len(trimmed) > 0 && isDigitASCII(trimmed[0]) {
		i := 0
		for i < len(trimmed) && isDigitASCII(trimmed[i]) {
			i++
		}
		num, err := atoiLine(trimmed[:i])
		if err != nil || num < minLineNum || num > maxLineNum {
			return fail(errSyntax)
		}
		rest := strings.TrimLeft(trimmed[i:], " ")
		in.prog.store(num, Tokenize([]byte(rest)))
		return nil
	}

	in.direct = Tokenize([]byte(trimmed))
	err := in.runFrom(cursor{line: 0, pos: 0})
	if err != nil {
		if !canCont(err) {
			in.stopped = false
		}
	}
	return err
}

func atoiLine(s string) (int, error) {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n, nil
}
