package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRndDeterministicAfterReseed(t *testing.T) {
	r1 := newRndState()
	r2 := newRndState()

	a := r1.next(-1) // reseed both generators the same way
	b := r2.next(-1)
	require.Equal(t, a, b)

	for i := 0; i < 5; i++ {
		assert.Equal(t, r1.next(1), r2.next(1))
	}
}

func TestRndZeroReturnsLastValueUnchanged(t *testing.T) {
	r := newRndState()
	r.next(-42)
	first := r.next(1)
	again := r.next(0)
	assert.Equal(t, first, again)
	// a second RND(0) call still doesn't advance the sequence
	assert.Equal(t, first, r.next(0))
}

func TestRndSequenceVaries(t *testing.T) {
	r := newRndState()
	r.next(-7)
	seen := map[float64]bool{}
	for i := 0; i < 20; i++ {
		v := r.next(1)
		seen[v] = true
	}
	assert.Greater(t, len(seen), 1, "RND(1) should not repeat the same value every call")
}

// TestRndKnownReferenceValue hand-derives the exact first value RND(-1)
// produces from a freshly-created generator, so a regression to the old
// unscrambled stub (which returned seed magnitudes around 2^24, nowhere
// near [0,1)) is caught by an exact value, not just a range check.
//
// RND(-1) reseeds from fromDouble(1.0), which is exactly
// mbFloat{exp: 0x80, mant: 0x80000000}. scramble byte-reverses that
// mantissa to 0x00000080, packs it with the saved exponent into a 40-bit
// word 0x0000008080, then normalizes: the top set bit (worth 0x8000) sits
// 24 places below bit 39, so 24 left-shifts are needed, taking the forced
// exponent 0x7F down to 0x67 and producing mantissa 0x80800000 with a zero
// overflow byte (no rounding). 0x80800000 is exactly 2^31+2^23, so the
// result is exactly (2^31+2^23)*2^(0x67-128-31) = 2^-25+2^-33 = 257*2^-33.
func TestRndKnownReferenceValue(t *testing.T) {
	r := newRndState()
	got := r.next(-1)
	want := 257.0 / 8589934592.0 // 257 * 2^-33, exact in float64
	assert.Equal(t, want, got)
}

// TestRndValuesStayInUnitRange pins down §4.4's basic contract directly:
// RND(1) must always land in [0,1), never the seed-sized magnitude the
// unscrambled stub used to return.
func TestRndValuesStayInUnitRange(t *testing.T) {
	r := newRndState()
	r.next(-7)
	for i := 0; i < 200; i++ {
		v := r.next(1)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestRndZeroMatchesLastGenerated ties §8's "RND(0) returns exactly the
// last value" property to a value produced by the real x>0 path, not just
// a self-consistency check against whatever next(1) happens to return.
func TestRndZeroMatchesLastGenerated(t *testing.T) {
	r := newRndState()
	r.next(-3)
	last := r.next(1)
	assert.Equal(t, last, r.next(0))
	assert.GreaterOrEqual(t, last, 0.0)
	assert.Less(t, last, 1.0)
}
