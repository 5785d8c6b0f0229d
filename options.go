package main

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/journich/CBASIC/internal/runeio"
)

// InterpOption configures an Interp at construction, grounded on the
// teacher's VMOption pattern (options.go): a small closed interface plus a
// slice type that flattens nested option lists.
type InterpOption interface{ apply(in *Interp) }

var defaultOptions = InterpOptions(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
	withLog(discardCloser{ioutil.Discard}),
	withMemLimit(defaultMemLimit),
	withHeapLimit(defaultHeapCap),
)

// InterpOptions flattens any number of options, including nested option
// lists, into a single InterpOption.
func InterpOptions(opts ...InterpOption) InterpOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interp) {}

type options []InterpOption

func (opts options) apply(in *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(in)
		}
	}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type memLimitOption uint
type heapLimitOption int
type traceOption bool

func withInput(r io.Reader) inputOption       { return inputOption{r} }
func withOutput(w io.Writer) outputOption     { return outputOption{w} }
func withMemLimit(limit uint) memLimitOption  { return memLimitOption(limit) }
func withHeapLimit(limit int) heapLimitOption { return heapLimitOption(limit) }
func withTrace(on bool) traceOption           { return traceOption(on) }

func (o inputOption) apply(in *Interp) { in.in = runeio.NewReader(o.Reader) }

func (o outputOption) apply(in *Interp) {
	in.term = newTerm(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		in.closers = append(in.closers, cl)
	}
}

func (lim memLimitOption) apply(in *Interp) { in.mem = newMemBank(uint(lim)) }

func (lim heapLimitOption) apply(in *Interp) { in.heap = newStringHeap(int(lim)) }

func (t traceOption) apply(in *Interp) { in.trace = bool(t) }
