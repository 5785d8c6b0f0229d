package main

import "io"

// WithInput sets the interpreter's input stream, used by INPUT, GET, and the
// REPL's own line reader.
func WithInput(r io.Reader) InterpOption { return withInput(r) }

// WithOutput sets the interpreter's terminal output stream, used by PRINT
// and the REPL's echoing of direct-mode results.
func WithOutput(w io.Writer) InterpOption { return withOutput(w) }

// WithMemLimit bounds the simulated PEEK/POKE address space (spec §3
// "simulated memory").
func WithMemLimit(limit uint) InterpOption { return withMemLimit(limit) }

// WithHeapLimit bounds the string heap (spec §3 "string heap"); exceeding it
// is an Out of memory error (errOOM), not a Go allocation failure.
func WithHeapLimit(limit int) InterpOption { return withHeapLimit(limit) }

// WithTrace turns on the -trace line-execution log (SPEC_FULL §"Supplemental
// features").
func WithTrace(on bool) InterpOption { return withTrace(on) }

// WithLog directs the interpreter's own log output (the trace lines written
// when WithTrace is on) to w. Errors, including panics recovered at the Run
// boundary, are returned by Run rather than logged here.
func WithLog(w io.WriteCloser) InterpOption { return withLog(w) }

type logOption struct{ io.WriteCloser }

func withLog(w io.WriteCloser) logOption { return logOption{w} }

func (o logOption) apply(in *Interp) { in.Logger.SetOutput(o.WriteCloser) }

type discardCloser struct{ io.Writer }

func (discardCloser) Close() error { return nil }
