package main

import "math"

// mbFloat is the MS-BASIC 5-byte floating value described in the spec
// glossary: an exponent byte biased by 128 (0 means zero), a sign, and a
// 32-bit significand with its leading 1 bit made explicit (so mant is
// always in [1<<31, 1<<32) for a normalized non-zero value). This folds the
// spec's "one high mantissa byte with implied leading 1, three lower
// mantissa bytes" into a single machine word, which is the representation
// freedom the spec explicitly grants (§4.4: "implementations may use any
// data representation provided the byte-level bit patterns ... equal those
// of the 6502 ROM to within at most one ULP").
type mbFloat struct {
	exp  uint8
	sign bool
	mant uint32
}

var mbZero = mbFloat{}

// fromDouble converts a float64 to its nearest mbFloat, used both for
// RND(x<0) reseeding and for any other double→MS-float boundary.
func fromDouble(f float64) mbFloat {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return mbZero
	}
	sign := f < 0
	if sign {
		f = -f
	}
	frac, exp2 := math.Frexp(f) // f == frac * 2^exp2, frac in [0.5,1)
	normFrac := frac * 2        // now in [1,2)
	biased := exp2 - 1 + 128
	if biased <= 0 {
		return mbZero // underflow to zero
	}
	if biased > 255 {
		biased = 255 // overflow clamp; callers needing OV detection check before this
	}
	mant := uint32(math.Round(normFrac * (1 << 31)))
	if mant == 0 {
		return mbZero
	}
	if mant>>31 == 0 { // rounding pushed it back below 2^31: renormalize
		mant <<= 1
		biased--
	}
	return mbFloat{exp: uint8(biased), sign: sign, mant: mant}
}

// toDouble converts an mbFloat back to a float64.
func (m mbFloat) toDouble() float64 {
	if m.exp == 0 {
		return 0
	}
	v := float64(m.mant) * math.Pow(2, float64(int(m.exp)-128-31))
	if m.sign {
		v = -v
	}
	return v
}

// fmul multiplies two mbFloat values, normalizing and rounding the 64-bit
// mantissa product back down to 32 bits (spec §4.4's FMULT).
func fmul(a, b mbFloat) mbFloat {
	if a.exp == 0 || b.exp == 0 {
		return mbZero
	}
	sign := a.sign != b.sign
	prod := uint64(a.mant) * uint64(b.mant) // in [1<<62, 1<<64)
	exp := int(a.exp) + int(b.exp) - 128

	var mant32 uint32
	if prod&(1<<63) != 0 {
		roundBit := (prod >> 31) & 1
		mant32 = uint32(prod >> 32)
		exp++
		if roundBit == 1 {
			mant32, exp = roundMant(mant32, exp)
		}
	} else {
		roundBit := (prod >> 30) & 1
		mant32 = uint32(prod >> 31)
		if roundBit == 1 {
			mant32, exp = roundMant(mant32, exp)
		}
	}
	if exp <= 0 {
		return mbZero
	}
	if exp > 255 {
		exp = 255
	}
	return mbFloat{exp: uint8(exp), sign: sign, mant: mant32}
}

func roundMant(mant uint32, exp int) (uint32, int) {
	if mant == 0xFFFFFFFF {
		return 0x80000000, exp + 1
	}
	return mant + 1, exp
}

// fadd adds two mbFloat values, aligning mantissas by the exponent
// difference (spec §4.4's FADD), ignoring an addend whose exponent trails
// the other by more than the spec's 64-unit threshold.
func fadd(a, b mbFloat) mbFloat {
	if a.exp == 0 {
		return b
	}
	if b.exp == 0 {
		return a
	}
	big, small := a, b
	if small.exp > big.exp {
		big, small = small, big
	}
	diff := int(big.exp) - int(small.exp)
	if diff > 64 {
		return big
	}
	var shifted uint64
	if diff < 32 {
		shifted = uint64(small.mant) >> uint(diff)
	}

	if big.sign == small.sign {
		sum := uint64(big.mant) + shifted
		exp := int(big.exp)
		if sum&(1<<32) != 0 {
			round := sum & 1
			sum >>= 1
			if round == 1 {
				sum++
			}
			exp++
			if sum&(1<<32) != 0 {
				sum >>= 1
				exp++
			}
		}
		if exp > 255 {
			exp = 255
		}
		return mbFloat{exp: uint8(exp), sign: big.sign, mant: uint32(sum)}
	}

	bigM, smM := int64(big.mant), int64(shifted)
	diffVal := bigM - smM
	sign := big.sign
	if diffVal == 0 {
		return mbZero
	}
	exp := int(big.exp)
	for diffVal < (1<<31) && exp > 0 {
		diffVal <<= 1
		exp--
	}
	if exp <= 0 {
		return mbZero
	}
	return mbFloat{exp: uint8(exp), sign: sign, mant: uint32(diffVal)}
}
