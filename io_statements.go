package main

import (
	"strings"
)

// execPrint implements PRINT (spec §4.3, §4.6): a list of expressions and
// TAB(n)/SPC(n) pseudo-functions separated by ',' (next print zone) or ';'
// (no padding); a trailing separator suppresses the final newline.
func (in *Interp) execPrint(body []byte, pos int) (int, error) {
	pos = skipSpaces(body, pos)
	trailingSep := false

	for pos < len(body) && body[pos] != ':' {
		trailingSep = false

		if isTokenByte(body[pos]) {
			word, _ := codeToString(body[pos])
			switch word {
			case "TAB(":
				n, np, err := in.evalExpr(body, pos+1)
				if err != nil {
					return np, err
				}
				np = skipSpaces(body, np)
				if np >= len(body) || body[np] != ')' {
					return np, fail(errSyntax)
				}
				if err := in.term.tab(int(n.Num())); err != nil {
					return np, err
				}
				pos = np + 1
				pos = skipSpaces(body, pos)
				continue
			case "SPC(":
				n, np, err := in.evalExpr(body, pos+1)
				if err != nil {
					return np, err
				}
				np = skipSpaces(body, np)
				if np >= len(body) || body[np] != ')' {
					return np, fail(errSyntax)
				}
				if err := in.term.spc(int(n.Num())); err != nil {
					return np, err
				}
				pos = np + 1
				pos = skipSpaces(body, pos)
				continue
			}
		}

		if body[pos] == ',' {
			if err := in.term.nextZone(); err != nil {
				return pos, err
			}
			pos = skipSpaces(body, pos+1)
			trailingSep = true
			continue
		}
		if body[pos] == ';' {
			pos = skipSpaces(body, pos+1)
			trailingSep = true
			continue
		}

		v, np, err := in.evalExpr(body, pos)
		if err != nil {
			return np, err
		}
		var s string
		if v.isString() {
			s = v.Str()
		} else {
			s = formatNumber(v.Num()) + " "
		}
		if err := in.term.printItem(s); err != nil {
			return np, err
		}
		pos = skipSpaces(body, np)
	}

	if !trailingSep {
		if err := in.term.newline(); err != nil {
			return pos, err
		}
	}
	return pos, nil
}

// execInput implements INPUT ["prompt";] v[,v2...] (spec §4.3 INPUT): each
// line of input is split on commas to fill the target list; too few values
// reprompts with "??" the way the original does.
func (in *Interp) execInput(body []byte, pos int) (int, error) {
	pos = skipSpaces(body, pos)
	prompt := "? "
	if pos < len(body) && body[pos] == '"' {
		start := pos + 1
		i := start
		for i < len(body) && body[i] != '"' {
			i++
		}
		prompt = string(body[start:i]) + "? "
		if i < len(body) {
			i++
		}
		pos = skipSpaces(body, i)
		if pos < len(body) && body[pos] == ';' {
			pos = skipSpaces(body, pos+1)
		}
	}

	var names []varName
	var subsList [][]int
	for {
		pos = skipSpaces(body, pos)
		if pos >= len(body) || !isLetterASCII(body[pos]) {
			return pos, fail(errSyntax)
		}
		letters, str, pct, next := parseName(body, pos)
		name := normalizeName(letters, str, pct)
		var subs []int
		next = skipSpaces(body, next)
		if next < len(body) && body[next] == '(' {
			s, np, err := in.evalSubscripts(body, next+1)
			if err != nil {
				return np, err
			}
			subs, next = s, np
		}
		names = append(names, name)
		subsList = append(subsList, subs)
		pos = skipSpaces(body, next)
		if pos < len(body) && body[pos] == ',' {
			pos++
			continue
		}
		break
	}

	for {
		if err := in.out(prompt); err != nil {
			return pos, err
		}
		line, err := in.readInputLine()
		if err != nil {
			return pos, err
		}
		fields := strings.Split(line, ",")
		if len(fields) < len(names) {
			prompt = "?? "
			continue
		}
		for i, name := range names {
			v, err := readValueFor(strings.TrimSpace(fields[i]), name)
			if err != nil {
				return pos, err
			}
			if v.isString() {
				s, err := in.heap.alloc(v.Str())
				if err != nil {
					return pos, err
				}
				v = s2v(s)
			}
			if len(subsList[i]) > 0 {
				arr, err := in.arrays.autoDim(name)
				if err != nil {
					return pos, err
				}
				if err := arr.set(subsList[i], v); err != nil {
					return pos, err
				}
			} else {
				in.vars.set(name, v)
			}
		}
		return pos, nil
	}
}

func s2v(s string) Value { return strVal(s) }

func (in *Interp) out(s string) error { return in.term.writeString(s) }

// readInputLine reads one newline-terminated line from the interpreter's
// input stream.
func (in *Interp) readInputLine() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := in.in.ReadRune()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if r == '\n' {
			s := sb.String()
			return strings.TrimSuffix(s, "\r"), nil
		}
		sb.WriteRune(r)
	}
}

// execGet implements GET v (spec §4.3 GET): reads a single character without
// waiting for newline, storing its numeric or string value.
func (in *Interp) execGet(body []byte, pos int) (int, error) {
	pos = skipSpaces(body, pos)
	if pos >= len(body) || !isLetterASCII(body[pos]) {
		return pos, fail(errSyntax)
	}
	letters, str, pct, next := parseName(body, pos)
	name := normalizeName(letters, str, pct)

	r, _, err := in.in.ReadRune()
	if err != nil {
		return next, nil // GET on EOF leaves the variable unchanged
	}
	var v Value
	if name.isString() {
		v = strVal(string(r))
	} else {
		n := float64(r)
		if name.pct {
			n = float64(int32(n))
		}
		v = numVal(n)
	}
	in.vars.set(name, v)
	return next, nil
}
