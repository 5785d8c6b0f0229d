package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram builds an Interp, feeds it program lines followed by RUN, and
// returns everything it printed. Grounded on the teacher's vmTest builder
// (first_test.go), simplified to this package's need for an end-to-end
// stdin/stdout harness rather than single-opcode driving.
func runProgram(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	src := strings.Join(lines, "\n") + "\nRUN\n"
	in := New(WithInput(strings.NewReader(src)), WithOutput(&out))
	err := in.Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestPrintArithmetic(t *testing.T) {
	out := runProgram(t, `10 PRINT 2+3*4`)
	assert.Equal(t, " 14 \n", out)
}

func TestForNextAccumulates(t *testing.T) {
	out := runProgram(t,
		`10 S=0`,
		`20 FOR I=1 TO 5`,
		`30 S=S+I`,
		`40 NEXT I`,
		`50 PRINT S`,
	)
	assert.Equal(t, " 15 \n", out)
}

func TestGosubReturn(t *testing.T) {
	out := runProgram(t,
		`10 GOSUB 100`,
		`20 PRINT "BACK"`,
		`30 END`,
		`100 PRINT "IN SUB"`,
		`110 RETURN`,
	)
	assert.Equal(t, "IN SUB\nBACK\n", out)
}

func TestStringConcatAndCompare(t *testing.T) {
	out := runProgram(t,
		`10 A$="FOO"`,
		`20 B$="BAR"`,
		`30 PRINT A$+B$`,
		`40 IF A$=B$ THEN PRINT "EQ"`,
		`50 IF A$<>B$ THEN PRINT "NE"`,
	)
	assert.Equal(t, "FOOBAR\nNE\n", out)
}

func TestDataReadRestore(t *testing.T) {
	out := runProgram(t,
		`10 DATA 1,2,3`,
		`20 READ A,B,C`,
		`30 PRINT A+B+C`,
		`40 RESTORE`,
		`50 READ D`,
		`60 PRINT D`,
	)
	assert.Equal(t, " 6 \n 1 \n", out)
}

func TestDivisionByZeroError(t *testing.T) {
	var out bytes.Buffer
	in := New(WithInput(strings.NewReader("10 PRINT 1/0\nRUN\n")), WithOutput(&out))
	err := in.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "/0 ERROR")
}

func TestArrayDimAndIndex(t *testing.T) {
	out := runProgram(t,
		`10 DIM A(3)`,
		`20 A(2)=42`,
		`30 PRINT A(2)`,
	)
	assert.Equal(t, " 42 \n", out)
}

func TestDefFnEvaluates(t *testing.T) {
	out := runProgram(t,
		`10 DEF FNS(X)=X*X+1`,
		`20 PRINT FNS(4)`,
	)
	assert.Equal(t, " 17 \n", out)
}

func TestBitwiseAndOr(t *testing.T) {
	out := runProgram(t,
		`10 PRINT 12 AND 10`,
		`20 PRINT 12 OR 3`,
	)
	assert.Equal(t, " 8 \n 15 \n", out)
}

func TestBitwiseNot(t *testing.T) {
	out := runProgram(t, `10 PRINT NOT 5`)
	assert.Equal(t, "-6 \n", out)
}

func TestComparisonSynonyms(t *testing.T) {
	out := runProgram(t,
		`10 IF 3 =< 3 THEN PRINT "LE"`,
		`20 IF 3 => 4 THEN PRINT "GE"`,
		`30 IF 3 >< 4 THEN PRINT "NE"`,
	)
	assert.Equal(t, "LE\nNE\n", out)
}

func TestIfGoto(t *testing.T) {
	out := runProgram(t,
		`10 IF 1 GOTO 100`,
		`20 PRINT "SKIPPED"`,
		`30 END`,
		`100 PRINT "JUMPED"`,
	)
	assert.Equal(t, "JUMPED\n", out)
}

func TestArithmeticOverflowErrors(t *testing.T) {
	var out bytes.Buffer
	in := New(WithInput(strings.NewReader("10 PRINT 1E308*1E308\nRUN\n")), WithOutput(&out))
	err := in.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "OV ERROR")
}

func TestOnGoto(t *testing.T) {
	out := runProgram(t,
		`10 X=2`,
		`20 ON X GOTO 100,200,300`,
		`30 END`,
		`100 PRINT "ONE"`,
		`110 END`,
		`200 PRINT "TWO"`,
		`210 END`,
		`300 PRINT "THREE"`,
	)
	assert.Equal(t, "TWO\n", out)
}
