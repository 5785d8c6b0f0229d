package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeKeywords(t *testing.T) {
	got := Tokenize([]byte(`PRINT "HI"`))
	require.NotEmpty(t, got)
	assert.Equal(t, wordToCode["PRINT"], got[0])
	assert.Equal(t, []byte(` "HI"`), got[1:])
}

func TestTokenizeForStepLongestMatch(t *testing.T) {
	got := Tokenize([]byte("FOR I=1 TO 10 STEP 2"))
	assert.Contains(t, got, wordToCode["FOR"])
	assert.Contains(t, got, wordToCode["TO"])
	assert.Contains(t, got, wordToCode["STEP"])

	// TO and STEP directly followed by a digit fail the same boundary rule
	// TestTokenizeBoundary checks, so they stay as ASCII letters.
	got = Tokenize([]byte("FOR I=1TO10STEP2"))
	assert.Contains(t, got, wordToCode["FOR"])
	assert.NotContains(t, got, wordToCode["TO"])
	assert.NotContains(t, got, wordToCode["STEP"])
}

func TestTokenizeBoundary(t *testing.T) {
	// "FORM" must not be crunched as FOR + M; "FOR" only matches at a
	// letter/digit boundary (spec §4.1 step 4).
	got := Tokenize([]byte("FORM=5"))
	assert.NotContains(t, got, wordToCode["FOR"])
}

func TestTokenizeStringIgnoresKeywords(t *testing.T) {
	got := Tokenize([]byte(`PRINT "FOR"`))
	// no FOR token byte may appear, since the FOR inside quotes must
	// remain literal ASCII.
	count := 0
	for _, b := range got {
		if b == wordToCode["FOR"] {
			count++
		}
	}
	assert.Equal(t, 0, count)
}

func TestTokenizeREMPassesThrough(t *testing.T) {
	got := Tokenize([]byte("REM AND OR"))
	// everything after REM is untouched literal text, not tokenized.
	assert.Equal(t, wordToCode["REM"], got[0])
	assert.NotContains(t, got[1:], wordToCode["AND"])
}

func TestDetokenizeRoundTrip(t *testing.T) {
	src := `PRINT "X=";X;:GOTO10`
	tok := Tokenize([]byte(src))
	out := Detokenize(tok)
	assert.Contains(t, out, "PRINT")
	assert.Contains(t, out, "GOTO")
}
