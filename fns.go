package main

// userFn is a DEF FN definition (spec §3 "User function"): a single
// uppercase letter name, single uppercase letter parameter, and the
// tokenised remainder of the defining statement, re-evaluated at each call
// (spec §9 "User function body saved as text and re-evaluated at each
// call").
type userFn struct {
	name  byte
	param byte
	body  []byte // tokenised expression body, owned (heap-backed) copy
}

// fnTable collects user functions. Redefining a name replaces it in place,
// matching spec §3's "Collected in an unordered list; redefining replaces
// in place" — a map keyed by the single letter gives this for free.
type fnTable struct {
	m map[byte]*userFn
}

func (fn *userFn) paramName() varName {
	return normalizeName(string(fn.param), false, false)
}

func newFnTable() *fnTable { return &fnTable{m: make(map[byte]*userFn)} }

func (t *fnTable) define(fn *userFn) { t.m[fn.name] = fn }

func (t *fnTable) lookup(name byte) (*userFn, bool) {
	fn, ok := t.m[name]
	return fn, ok
}

func (t *fnTable) reset() { t.m = make(map[byte]*userFn) }
