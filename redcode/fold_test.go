package redcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldIsIdempotent(t *testing.T) {
	cases := []int{0, 1, -1, 8000, -8000, 12345, -12345, 7999, -7999}
	for _, v := range cases {
		f := Fold(v, 8000)
		assert.GreaterOrEqual(t, f, 0)
		assert.Less(t, f, 8000)
		assert.Equal(t, f, Fold(f, 8000), "fold should be idempotent for %d", v)
	}
}

func TestFoldSignedRange(t *testing.T) {
	for v := -20000; v <= 20000; v += 137 {
		f := FoldSigned(v, 8000)
		assert.Greater(t, f, -4000)
		assert.LessOrEqual(t, f, 4000)
	}
}

func TestDefaultModifier(t *testing.T) {
	tests := []struct {
		op       OpCode
		a, b     AddressMode
		expected Modifier
	}{
		{DAT, Direct, Direct, ModF},
		{MOV, Immediate, Direct, ModAB},
		{MOV, Direct, Immediate, ModB},
		{MOV, Direct, Direct, ModI},
		{ADD, Immediate, Direct, ModAB},
		{ADD, Direct, Direct, ModF},
		{SLT, Immediate, Direct, ModAB},
		{SLT, Direct, Direct, ModB},
		{JMP, Direct, Direct, ModB},
		{SPL, Direct, Direct, ModB},
	}
	for _, tc := range tests {
		got := DefaultModifier(tc.op, tc.a, tc.b)
		assert.Equal(t, tc.expected, got, "opcode %s modes %s/%s", tc.op, tc.a, tc.b)
	}
}
