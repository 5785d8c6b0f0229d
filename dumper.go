package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/samber/lo"
)

// dumper prints the interpreter's variable, array, and control-stack state
// on exit (spec's supplemental "-dump" debug feature). Grounded on the
// teacher's vmDumper (dumper.go): same "# ... Dump" section-header shape,
// generalized from dictionary/memory-cell addresses to BASIC's named
// variables and arrays.
type dumper struct {
	in  *Interp
	out io.Writer
}

func (d *dumper) dump() {
	fmt.Fprintf(d.out, "# Interp Dump\n")
	d.dumpVars()
	d.dumpArrays()
	d.dumpStack()
	d.dumpData()
}

func sortedNames(keys []varName) []varName {
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func (d *dumper) dumpVars() {
	names := sortedNames(lo.Keys(d.in.vars.m))
	fmt.Fprintf(d.out, "  vars:\n")
	for _, n := range names {
		v := d.in.vars.m[n]
		if v.isString() {
			fmt.Fprintf(d.out, "    %s = %q\n", n, v.Str())
		} else {
			fmt.Fprintf(d.out, "    %s = %v\n", n, v.Num())
		}
	}
}

func (d *dumper) dumpArrays() {
	names := sortedNames(lo.Keys(d.in.arrays.m))
	fmt.Fprintf(d.out, "  arrays:\n")
	for _, n := range names {
		a := d.in.arrays.m[n]
		fmt.Fprintf(d.out, "    %s%v: %d elements\n", n, a.dims, len(a.data))
	}
}

func (d *dumper) dumpStack() {
	fmt.Fprintf(d.out, "  control stack depth: %d\n", d.in.stack.depth())
	for i, f := range d.in.stack.frames {
		switch f.kind {
		case frameFor:
			fmt.Fprintf(d.out, "    [%d] FOR %s STEP %v LIMIT %v -> %v\n", i, f.forF.v, f.forF.step, f.forF.limit, f.forF.resume)
		case frameGosub:
			fmt.Fprintf(d.out, "    [%d] GOSUB -> %v\n", i, f.gsubF.resume)
		}
	}
}

func (d *dumper) dumpData() {
	fmt.Fprintf(d.out, "  data cursor: line %d pos %d\n", d.in.data.line, d.in.data.pos)
}
