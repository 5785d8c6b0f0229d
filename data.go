package main

import "strings"

// dataState tracks the READ cursor described in spec §3 "DATA cursor": a
// position in the program's DATA statements, advanced by READ and reset by
// RESTORE. line == 0 means "start scanning from the first program line";
// line == dataExhausted means every DATA statement has been consumed.
type dataState struct {
	line int
	pos  int
}

const dataExhausted = -1

func newDataState() *dataState { return &dataState{} }

func (d *dataState) restore(toLine int) {
	d.line = toLine
	d.pos = 0
}

// readNext scans forward from the data cursor for the next DATA item,
// crossing line boundaries as needed, and returns its raw text (spec §4.3
// READ/DATA). The cursor is advanced past the item it returns.
func (in *Interp) readNext() (string, error) {
	for {
		body, ok := in.lineAtOrAfterData()
		if !ok {
			return "", fail(errOutData)
		}

		item, next, found := scanDataItem(body, in.data.pos)
		if found {
			in.data.pos = next
			return item, nil
		}

		// No more items on this line; advance to the next program line and
		// keep looking for the next DATA statement.
		n := in.prog.after(in.data.line)
		if n == 0 {
			in.data.line = dataExhausted
			return "", fail(errOutData)
		}
		in.data.line = n
		in.data.pos = 0
	}
}

// lineAtOrAfterData returns the tokenised body of the program line the data
// cursor is positioned in, locating the first DATA statement at or after
// that line if the cursor has not yet been positioned within one.
func (in *Interp) lineAtOrAfterData() ([]byte, bool) {
	if in.data.line == dataExhausted {
		return nil, false
	}
	if in.data.line == 0 {
		in.data.line = in.prog.first()
		in.data.pos = 0
	}
	if in.data.pos > 0 {
		// an earlier READ already left the cursor inside a DATA statement
		if body, ok := in.prog.get(in.data.line); ok {
			return body, true
		}
	}
	for in.data.line != 0 {
		body, ok := in.prog.get(in.data.line)
		if ok {
			if pos, found := findDataToken(body, in.data.pos); found {
				in.data.pos = pos
				return body, true
			}
		}
		in.data.line = in.prog.after(in.data.line)
		in.data.pos = 0
	}
	in.data.line = dataExhausted
	return nil, false
}

func findDataToken(body []byte, from int) (int, bool) {
	code, _ := tokenOf("DATA")
	for i := from; i < len(body); i++ {
		if body[i] == code {
			return i + 1, true
		}
	}
	return 0, false
}

// scanDataItem scans one comma-separated DATA item starting at pos, honoring
// quoted items (spec §4.1's DATA-tail tokenising rule: quotes still toggle
// string mode inside a DATA statement, so a quoted item may contain commas
// and colons). found is false if pos is already past the end of the
// statement (a trailing ':' or end of body with no more items).
func scanDataItem(body []byte, pos int) (item string, next int, found bool) {
	if pos >= len(body) {
		return "", pos, false
	}
	for pos < len(body) && body[pos] == ' ' {
		pos++
	}
	if pos >= len(body) || body[pos] == ':' {
		return "", pos, false
	}
	if body[pos] == '"' {
		start := pos + 1
		i := start
		for i < len(body) && body[i] != '"' {
			i++
		}
		item = string(body[start:i])
		if i < len(body) {
			i++
		}
		i = skipToSeparator(body, i)
		return item, i, true
	}
	start := pos
	i := pos
	for i < len(body) && body[i] != ',' && body[i] != ':' {
		i++
	}
	item = strings.TrimRight(string(body[start:i]), " ")
	return item, skipToSeparator(body, i), true
}

// skipToSeparator consumes a single trailing comma (advancing past it so the
// next scan starts on the following item), leaving a trailing ':' in place
// so the caller's next scan correctly reports end-of-statement.
func skipToSeparator(body []byte, pos int) int {
	pos2 := pos
	for pos2 < len(body) && body[pos2] == ' ' {
		pos2++
	}
	if pos2 < len(body) && body[pos2] == ',' {
		return pos2 + 1
	}
	return pos
}
