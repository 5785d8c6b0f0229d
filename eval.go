package main

// eval.go implements the expression evaluator (spec §5): a recursive-descent
// parser over the tokenized line buffer, grounded on the teacher's
// step/exec dispatch style (internals.go) generalized from a single
// switch-on-opcode loop into one recursive-descent method per precedence
// level. Every level takes and returns a byte offset into the line body
// alongside its Value, so the executor can resume statement parsing right
// after an expression.

// precedence ladder, weakest to strongest (spec §5.1):
//   or
//   and
//   not
//   comparison (= <> < > <= >=)
//   additive (+ -)
//   multiplicative (* /)
//   power (^)
//   unary (- +)
//   primary (literal, variable, array ref, FN call, parenthesized, builtin)

// evalExpr parses and evaluates a full expression starting at body[pos].
func (in *Interp) evalExpr(body []byte, pos int) (Value, int, error) {
	return in.evalOr(body, pos)
}

func (in *Interp) evalOr(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalAnd(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	for {
		next, ok := matchWordToken(body, pos, "OR")
		if !ok {
			return left, pos, nil
		}
		right, np, err := in.evalAnd(body, next)
		if err != nil {
			return Value{}, np, err
		}
		v, err := bitwiseBinOp(left, right, func(a, b int32) int32 { return a | b })
		if err != nil {
			return Value{}, np, err
		}
		left, pos = v, np
	}
}

func (in *Interp) evalAnd(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalNot(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	for {
		next, ok := matchWordToken(body, pos, "AND")
		if !ok {
			return left, pos, nil
		}
		right, np, err := in.evalNot(body, next)
		if err != nil {
			return Value{}, np, err
		}
		v, err := bitwiseBinOp(left, right, func(a, b int32) int32 { return a & b })
		if err != nil {
			return Value{}, np, err
		}
		left, pos = v, np
	}
}

func (in *Interp) evalNot(body []byte, pos int) (Value, int, error) {
	if next, ok := matchWordToken(body, pos, "NOT"); ok {
		v, np, err := in.evalNot(body, next)
		if err != nil {
			return Value{}, np, err
		}
		if v.isString() {
			return Value{}, np, fail(errType)
		}
		return numVal(float64(^int32(v.Num()))), np, nil
	}
	return in.evalCompare(body, pos)
}

// compareOps lists the comparison tokens in longest-first order, so a
// multi-character spelling (and its synonyms =<, =>, ><, per spec §4.2) is
// tried before a leading single-character token could swallow its first
// byte and choke on the rest.
var compareOps = []struct {
	tok string
	fn  func(cmp int) bool
}{
	{"<=", func(c int) bool { return c <= 0 }},
	{"=<", func(c int) bool { return c <= 0 }},
	{">=", func(c int) bool { return c >= 0 }},
	{"=>", func(c int) bool { return c >= 0 }},
	{"<>", func(c int) bool { return c != 0 }},
	{"><", func(c int) bool { return c != 0 }},
	{"=", func(c int) bool { return c == 0 }},
	{"<", func(c int) bool { return c < 0 }},
	{">", func(c int) bool { return c > 0 }},
}

func (in *Interp) evalCompare(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalAdditive(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	for {
		pos = skipSpaces(body, pos)
		matched := false
		for _, op := range compareOps {
			if hasSymAt(body, pos, op.tok) {
				right, np, err := in.evalAdditive(body, pos+len(op.tok))
				if err != nil {
					return Value{}, np, err
				}
				cmp, err := compareValues(left, right)
				if err != nil {
					return Value{}, np, err
				}
				left, pos = numVal(boolToNum(op.fn(cmp))), np
				matched = true
				break
			}
		}
		if !matched {
			return left, pos, nil
		}
	}
}

func (in *Interp) evalAdditive(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalMultiplicative(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	for {
		pos = skipSpaces(body, pos)
		if pos >= len(body) || (body[pos] != '+' && body[pos] != '-') {
			return left, pos, nil
		}
		op := body[pos]
		right, np, err := in.evalMultiplicative(body, pos+1)
		if err != nil {
			return Value{}, np, err
		}
		var v Value
		if op == '+' {
			v, err = addValues(left, right)
		} else {
			v, err = subValues(left, right)
		}
		if err != nil {
			return Value{}, np, err
		}
		left, pos = v, np
	}
}

func (in *Interp) evalMultiplicative(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalPower(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	for {
		pos = skipSpaces(body, pos)
		if pos >= len(body) || (body[pos] != '*' && body[pos] != '/') {
			return left, pos, nil
		}
		op := body[pos]
		right, np, err := in.evalPower(body, pos+1)
		if err != nil {
			return Value{}, np, err
		}
		if left.isString() || right.isString() {
			return Value{}, np, fail(errType)
		}
		var res float64
		if op == '/' {
			if right.Num() == 0 {
				return Value{}, np, fail(errDivZero)
			}
			res = left.Num() / right.Num()
		} else {
			res = left.Num() * right.Num()
		}
		res, err = checkFinite(res)
		if err != nil {
			return Value{}, np, err
		}
		left, pos = numVal(res), np
	}
}

func (in *Interp) evalPower(body []byte, pos int) (Value, int, error) {
	left, pos, err := in.evalUnary(body, pos)
	if err != nil {
		return Value{}, pos, err
	}
	pos = skipSpaces(body, pos)
	if pos >= len(body) || body[pos] != '^' {
		return left, pos, nil
	}
	// right-associative
	right, np, err := in.evalPower(body, pos+1)
	if err != nil {
		return Value{}, np, err
	}
	if left.isString() || right.isString() {
		return Value{}, np, fail(errType)
	}
	v, err := powValue(left.Num(), right.Num())
	if err != nil {
		return Value{}, np, err
	}
	return numVal(v), np, nil
}

func (in *Interp) evalUnary(body []byte, pos int) (Value, int, error) {
	pos = skipSpaces(body, pos)
	if pos < len(body) && body[pos] == '-' {
		v, np, err := in.evalUnary(body, pos+1)
		if err != nil {
			return Value{}, np, err
		}
		if v.isString() {
			return Value{}, np, fail(errType)
		}
		return numVal(-v.Num()), np, nil
	}
	if pos < len(body) && body[pos] == '+' {
		return in.evalUnary(body, pos+1)
	}
	return in.evalPrimary(body, pos)
}

// bitwiseBinOp implements AND/OR per spec §4.2 and the GLOSSARY's "MS
// truth": both are bitwise operators over the 32-bit signed integer
// truncation of their operands, not logical operators over truthiness.
func bitwiseBinOp(a, b Value, op func(x, y int32) int32) (Value, error) {
	if a.isString() || b.isString() {
		return Value{}, fail(errType)
	}
	return numVal(float64(op(int32(a.Num()), int32(b.Num())))), nil
}

func boolToNum(b bool) float64 {
	if b {
		return -1
	}
	return 0
}
