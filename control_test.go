package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nm(a, b byte) varName { return varName{letters: [2]byte{a, b}} }

func TestControlStackForReplacesSameVar(t *testing.T) {
	s := newControlStack()
	s.pushFor(forFrame{v: nm('I', ' '), limit: 10, resume: cursor{line: 20}})
	s.pushGosub(gosubFrame{resume: cursor{line: 30}})
	s.pushForReplacing(forFrame{v: nm('I', ' '), limit: 20, resume: cursor{line: 40}})

	// re-opening FOR I dropped the GOSUB frame pushed above the old FOR I
	assert.Equal(t, 1, s.depth())
	f, ok := s.popForVar(nm('I', ' '), false)
	assert.True(t, ok)
	assert.Equal(t, 20.0, f.limit)
}

func TestControlStackNextFindsMatchingVar(t *testing.T) {
	s := newControlStack()
	s.pushFor(forFrame{v: nm('I', ' '), resume: cursor{line: 10}})
	s.pushFor(forFrame{v: nm('J', ' '), resume: cursor{line: 20}})

	// NEXT I (inner loop not yet exited) pops J's frame along with it
	f, ok := s.popForVar(nm('I', ' '), false)
	assert.True(t, ok)
	assert.Equal(t, cursor{line: 10}, f.resume)
	assert.Equal(t, 0, s.depth())
}

func TestControlStackReturnWithoutGosub(t *testing.T) {
	s := newControlStack()
	_, ok := s.popGosub()
	assert.False(t, ok)
}

func TestArrayRedimFails(t *testing.T) {
	tbl := newArrayTable()
	require := assert.New(t)
	require.NoError(tbl.dim(nm('A', ' '), []int{5}))
	err := tbl.dim(nm('A', ' '), []int{10})
	require.Error(err)
	require.Equal(errRedim, err.(basicError).code)
}

func TestArrayAutoDimSizeEleven(t *testing.T) {
	tbl := newArrayTable()
	arr, err := tbl.autoDim(nm('B', ' '))
	assert.NoError(t, err)
	_, err = arr.get([]int{10})
	assert.NoError(t, err)
	_, err = arr.get([]int{11})
	assert.Error(t, err)
}
