package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{0, " 0"},
		{5, " 5"},
		{-5, "-5"},
		{3.14, " 3.14"},
		{0.5, " 0.5"},
		{-0.5, "-0.5"},
		{100, " 100"},
		{1e10, " 1.0E+10"},
		{1e-10, " 1.0E-10"},
		{123456789, " 123456789"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatNumber(c.n), "formatNumber(%v)", c.n)
	}
}

func TestFormatNumberTrimsTrailingZeros(t *testing.T) {
	assert.Equal(t, " 0.333333333", formatNumber(1.0/3.0))
}

func TestFormatNumberNegativeZeroIsPositive(t *testing.T) {
	assert.Equal(t, " 0", formatNumber(math.Copysign(0, -1)))
}
