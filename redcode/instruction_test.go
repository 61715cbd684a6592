package redcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionEqualIgnoresPID(t *testing.T) {
	a := Instruction{Op: MOV, Mod: ModI, A: Operand{Mode: Direct, Field: 0}, B: Operand{Mode: Direct, Field: 1}, PID: 1}
	b := a
	b.PID = 2
	assert.True(t, a.Equal(b))

	c := a
	c.B.Field = 2
	assert.False(t, a.Equal(c))
}

func TestInstructionString(t *testing.T) {
	in := Instruction{Op: MOV, Mod: ModI, A: Operand{Mode: Direct, Field: 0}, B: Operand{Mode: Direct, Field: 1}}
	assert.Equal(t, "mov.i $0, $1", in.String())
}
