package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrect(t *testing.T) {
	testCases := []struct {
		description string
		line        string
		expect      string
		from, to    byte
		ok          bool
	}{
		{description: "letter advance", line: "Q, A extra text", expect: "Q, B extra text", from: 'A', to: 'B', ok: true},
		{description: "Y to Z", line: "1, Y", expect: "1, Z", from: 'Y', to: 'Z', ok: true},
		{description: "Z wraps to A", line: "1, Z", expect: "1, A", from: 'Z', to: 'A', ok: true},
		{description: "non letter increments code point", line: "1, 9", expect: "1, :", from: '9', to: ':', ok: true},
		{description: "lower case is not wrapped", line: "1, z", expect: "1, {", from: 'z', to: '{', ok: true},
		{description: "no comma", line: "no comma here", expect: "no comma here"},
		{description: "target out of bounds", line: "1,", expect: "1,"},
		{description: "target one past end", line: "1, ", expect: "1, "},
		{description: "empty", line: "", expect: ""},
		{description: "first comma wins", line: "a,bC,dE", expect: "a,bD,dE", from: 'C', to: 'D', ok: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, from, to, ok := Correct(tc.line)
			assert.Equal(t, tc.expect, actual)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.from, from)
			assert.Equal(t, tc.to, to)
		})
	}
}

func TestAdvance_FullCycle(t *testing.T) {
	c := byte('A')
	for i := 0; i < 26; i++ {
		c = Advance(c)
	}
	assert.Equal(t, byte('A'), c)
}

func TestRubric_SetLines(t *testing.T) {
	var rubric Rubric
	rubric.SetLines([]string{"1, A\n", "2, B\r\n"})
	assert.Equal(t, "1, A", rubric[0])
	assert.Equal(t, "2, B", rubric[1])
	assert.Equal(t, "", rubric[4])
	assert.Equal(t, "1, A\n2, B\n\n\n\n", rubric.Text())

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	rubric.SetLines([]string{string(long), "a", "b", "c", "d", "ignored"})
	assert.Len(t, rubric[0], MaxLineLength-1)
	assert.Equal(t, "d", rubric[4])
}
