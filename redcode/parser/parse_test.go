package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.redcode.dev/mars/redcode"
)

const coreSize = 8000

func TestParseImp(t *testing.T) {
	src := `
;redcode-94
;name Imp
        ORG     start
start   MOV.I   $0, $1
        END
`
	prog, err := New("imp.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 1)
	assert.Equal(t, redcode.MOV, prog.Instructions[0].Op)
	assert.Equal(t, redcode.ModI, prog.Instructions[0].Mod)
	assert.Equal(t, 0, prog.Start)
}

func TestParseForRofUnroll(t *testing.T) {
	src := `
;redcode-94
COUNT EQU 3
LBL   FOR COUNT
      DAT #LBL, #0
      ROF
      END
`
	prog, err := New("for.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 3)
	for _, in := range prog.Instructions {
		assert.Equal(t, redcode.DAT, in.Op)
		assert.Equal(t, redcode.ModF, in.Mod)
	}
}

func TestParseForZeroCount(t *testing.T) {
	src := `
;redcode-94
ZERO EQU 0
     FOR ZERO
     DAT #0, #0
     ROF
     NOP
     END
`
	prog, err := New("zero.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 1)
	assert.Equal(t, redcode.NOP, prog.Instructions[0].Op)
}

func TestParseDwarfPattern(t *testing.T) {
	src := `
;redcode-94
;name Dwarf
        ORG     start
start   ADD.AB  #4, $3
        MOV.AB  #0, @2
        JMP     $-2
        DAT     #0, #0
        END
`
	prog, err := New("dwarf.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 4)
	assert.Equal(t, redcode.ADD, prog.Instructions[0].Op)
	assert.Equal(t, redcode.MOV, prog.Instructions[1].Op)
	assert.Equal(t, redcode.JMP, prog.Instructions[2].Op)
	assert.Equal(t, redcode.DAT, prog.Instructions[3].Op)
	assert.Equal(t, -2, prog.Instructions[2].A.Field)
}

func TestParseMissingMarkerErrors(t *testing.T) {
	_, err := New("bad.red", coreSize).Parse("MOV.I $0, $1\n")
	assert.Error(t, err)
}

func TestParseUnknownSymbolErrors(t *testing.T) {
	src := `
;redcode-94
      JMP missing
      END
`
	_, err := New("bad2.red", coreSize).Parse(src)
	assert.Error(t, err)
}

func TestParseRedefinedConstant(t *testing.T) {
	src := `
;redcode-94
A EQU 1
A EQU 2
      DAT #0, #0
      END
`
	_, err := New("bad3.red", coreSize).Parse(src)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, RedefinedConstant, perr.Kind)
}

// '<', '>' and '*' must still lex as binary operators in an
// expression, not just as addressing-mode prefixes.
func TestParseOperandExpressionOperators(t *testing.T) {
	src := `
;redcode-94
      DAT #(2*3), #(1<2)
      DAT #(5>9), #(4<=4)
      END
`
	prog, err := New("ops.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, 6, prog.Instructions[0].A.Field)
	assert.Equal(t, 1, prog.Instructions[0].B.Field)
	assert.Equal(t, 0, prog.Instructions[1].A.Field)
	assert.Equal(t, 1, prog.Instructions[1].B.Field)
}

// The same three characters must still mean BPredecrement,
// BPostincrement and AIndirect when they lead an operand.
func TestParseOperandModePrefixes(t *testing.T) {
	src := `
;redcode-94
      DAT <3, >4
      DAT *5, $0
      END
`
	prog, err := New("modes.red", coreSize).Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, redcode.BPredecrement, prog.Instructions[0].A.Mode)
	assert.Equal(t, 3, prog.Instructions[0].A.Field)
	assert.Equal(t, redcode.BPostincrement, prog.Instructions[0].B.Mode)
	assert.Equal(t, 4, prog.Instructions[0].B.Field)
	assert.Equal(t, redcode.AIndirect, prog.Instructions[1].A.Mode)
	assert.Equal(t, 5, prog.Instructions[1].A.Field)
}

func TestRoundTripPrettyPrint(t *testing.T) {
	src := `
;redcode-94
;name Imp
        ORG     start
start   MOV.I   $0, $1
        END
`
	prog, err := New("imp.red", coreSize).Parse(src)
	require.NoError(t, err)

	reparsed, err := New("imp-reprinted.red", coreSize).Parse(prog.String())
	require.NoError(t, err)
	require.Len(t, reparsed.Instructions, len(prog.Instructions))
	for i := range prog.Instructions {
		assert.True(t, prog.Instructions[i].Equal(reparsed.Instructions[i]))
	}
}
