package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringBuiltins(t *testing.T) {
	out := runProgram(t,
		`10 A$="HELLO WORLD"`,
		`20 PRINT LEFT$(A$,5)`,
		`30 PRINT RIGHT$(A$,5)`,
		`40 PRINT MID$(A$,7,5)`,
		`50 PRINT LEN(A$)`,
		`60 PRINT ASC("A")`,
		`70 PRINT CHR$(65)`,
	)
	assert.Equal(t, "HELLO\nWORLD\nWORLD\n 11 \n 65 \nA\n", out)
}

func TestNumericBuiltins(t *testing.T) {
	out := runProgram(t,
		`10 PRINT ABS(-5)`,
		`20 PRINT SGN(-3)`,
		`30 PRINT SGN(0)`,
		`40 PRINT INT(3.7)`,
		`50 PRINT SQR(16)`,
	)
	assert.Equal(t, " 5 \n-1 \n 0 \n 3 \n 4 \n", out)
}

func TestValAndStrRoundTrip(t *testing.T) {
	out := runProgram(t,
		`10 PRINT VAL("42.5")`,
		`20 PRINT STR$(42.5)`,
	)
	assert.Equal(t, " 42.5 \n 42.5\n", out)
}

func TestSqrOfNegativeIsIllegal(t *testing.T) {
	out := runProgram(t, `10 PRINT SQR(-1)`)
	assert.Contains(t, out, "FC ERROR")
}
