package main

// varTable holds simple variables (spec §3): "collectively held as an
// unordered collection keyed by name." A Go map is the natural fit — the
// spec explicitly sanctions replacing the source's linear list with a hash
// map since iteration order is never observed (see spec §9, "Intrusive
// linked lists").
type varTable struct {
	m map[varName]Value
}

func newVarTable() *varTable {
	return &varTable{m: make(map[varName]Value)}
}

// get returns the value bound to name, auto-creating it with its default
// (0 or "") if absent, per §4.2's primary rule for a bare variable reference.
func (t *varTable) get(name varName) Value {
	if v, ok := t.m[name]; ok {
		return v
	}
	v := defaultValue(name.isString())
	t.m[name] = v
	return v
}

func (t *varTable) set(name varName, v Value) {
	t.m[name] = v
}

func (t *varTable) reset() {
	t.m = make(map[varName]Value)
}
