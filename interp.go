package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"

	"github.com/journich/CBASIC/internal/logio"
	"github.com/journich/CBASIC/internal/panicerr"
	"github.com/journich/CBASIC/internal/runeio"
)

// Interp is the single shared interpreter state described in spec §3: it
// embeds every subsystem (program store, variables, arrays, user functions,
// control stack, DATA cursor, string heap, simulated memory, RNG, and
// terminal I/O) the way the teacher's VM embeds ioCore, logging, symbols,
// and memory into one struct (first.go).
type Interp struct {
	logio.Logger

	term *term
	in   runeio.Reader

	prog   *program
	vars   *varTable
	arrays *arrayTable
	fns    *fnTable
	stack  *controlStack
	data   *dataState
	heap   *stringHeap
	mem    *memBank
	rnd    *rndState

	cur    cursor // next statement to execute
	direct []byte // tokenised direct-mode statement buffer

	running     bool
	trace       bool
	stopped     bool   // STOP was hit; CONT may resume
	stopCursor  cursor // where CONT resumes
	breakSignal func() bool

	closers []io.Closer
}

// New builds an Interp with the given options applied over sane defaults,
// grounded on the teacher's functional-options New (api.go).
func New(opts ...InterpOption) *Interp {
	var in Interp
	in.init()
	defaultOptions.apply(&in)
	InterpOptions(opts...).apply(&in)
	return &in
}

func (in *Interp) init() {
	if in.term == nil {
		in.term = newTerm(ioutil.Discard)
	}
	if in.in == nil {
		in.in = runeio.NewReader(bytes.NewReader(nil))
	}
	in.prog = newProgram()
	in.vars = newVarTable()
	in.arrays = newArrayTable()
	in.fns = newFnTable()
	in.stack = newControlStack()
	in.data = newDataState()
	in.heap = newStringHeap(defaultHeapCap)
	in.mem = newMemBank(defaultMemLimit)
	in.rnd = newRndState()
}

// clear implements the CLEAR statement and the RUN-implied reset (spec §4.3
// CLEAR/RUN): variables, arrays, functions, the control stack, and the DATA
// cursor are all discarded, but the stored program and string heap capacity
// survive.
func (in *Interp) clear() {
	in.vars.reset()
	in.arrays.reset()
	in.fns.reset()
	in.stack.reset()
	in.data.restore(0)
	in.heap.reset()
	in.stopped = false
}

// new_ implements the NEW statement (spec §4.3 NEW): everything clear
// discards, plus the program itself.
func (in *Interp) new_() {
	in.clear()
	in.prog.reset()
}

// Run drives the interactive read-tokenize-execute loop against in's input
// stream until EOF or a quit command, recovering panics into errors the way
// the teacher's Run does (api.go), since statement execution still uses
// ordinary error returns -- panic/recover here is reserved for genuinely
// unexpected failures, not BASIC-level control flow.
func (in *Interp) Run(ctx context.Context) error {
	err := panicerr.Recover("Interp", func() error {
		return in.repl(ctx)
	})
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (in *Interp) flushAll() error {
	if in.term != nil {
		return in.term.flush()
	}
	return nil
}

func (in *Interp) Close() error {
	var first error
	for _, c := range in.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
