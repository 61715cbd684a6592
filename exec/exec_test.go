package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

func newMem(size int) *core.Memory {
	return core.New(size, size, size, trace.NullTracer{})
}

// Imp: MOV.I $0, $1 copies itself one cell forward on every cycle,
// advancing through the entire core.
func TestStepImpCopiesItselfForward(t *testing.T) {
	mem := newMem(8000)
	imp := redcode.Instruction{
		Op: redcode.MOV, Mod: redcode.ModI,
		A: redcode.Operand{Mode: redcode.Direct, Field: 0},
		B: redcode.Operand{Mode: redcode.Direct, Field: 1},
	}
	mem.Place(100, redcode.Program{Instructions: []redcode.Instruction{imp}}, 1)

	pc := 100
	for i := 0; i < 50; i++ {
		next := Step(mem, pc, 1, 100, nil)
		require.Len(t, next, 1)
		assert.Equal(t, mem.Fold(pc+1), next[0])
		assert.True(t, mem.Load(pc+1).Equal(imp))
		pc = next[0]
	}
}

// DIV.A #0, $1 divides by zero and the process must die (no next PC),
// leaving the target cell untouched.
func TestStepDivByZeroKillsProcess(t *testing.T) {
	mem := newMem(100)
	target := redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 9}, B: redcode.Operand{Field: 9}}
	mem.Store(0, 1, target, 2)

	div := redcode.Instruction{
		Op: redcode.DIV, Mod: redcode.ModA,
		A: redcode.Operand{Mode: redcode.Immediate, Field: 0},
		B: redcode.Operand{Mode: redcode.Direct, Field: 1},
	}
	mem.Store(0, 0, div, 2)

	next := Step(mem, 0, 2, 0, nil)
	assert.Empty(t, next)
	assert.Equal(t, 9, mem.Load(1).A.Field)
	assert.Equal(t, 9, mem.Load(1).B.Field)
}

// SPL forks: the parent's PC always advances, and a second process is
// enqueued at the jump target, giving two live PCs from one instruction.
func TestStepSplForksProcess(t *testing.T) {
	mem := newMem(100)
	spl := redcode.Instruction{
		Op: redcode.SPL, Mod: redcode.ModB,
		A: redcode.Operand{Mode: redcode.Direct, Field: 5},
		B: redcode.Operand{Mode: redcode.Direct, Field: 0},
	}
	mem.Store(0, 10, spl, 1)

	next := Step(mem, 10, 1, 0, nil)
	require.Len(t, next, 2)
	assert.Equal(t, mem.Fold(11), next[0])
	assert.Equal(t, mem.Fold(15), next[1])
}

// SEQ (CMP).I skips two instructions ahead when the compared cells are
// identical, one otherwise.
func TestStepSeqSkipsOnEqualCells(t *testing.T) {
	mem := newMem(100)
	dat := redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 4}, B: redcode.Operand{Field: 4}}
	mem.Store(0, 10, dat, 9)
	mem.Store(0, 11, dat, 9)

	cmp := redcode.Instruction{
		Op: redcode.CMP, Mod: redcode.ModI,
		A: redcode.Operand{Mode: redcode.Direct, Field: 10},
		B: redcode.Operand{Mode: redcode.Direct, Field: 11},
	}
	mem.Store(0, 0, cmp, 9)

	next := Step(mem, 0, 9, 0, nil)
	require.Len(t, next, 1)
	assert.Equal(t, 2, next[0])

	mem.Store(0, 11, redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 4}, B: redcode.Operand{Field: 5}}, 9)
	next = Step(mem, 0, 9, 0, nil)
	require.Len(t, next, 1)
	assert.Equal(t, 1, next[0])
}

// JMZ only branches when every field the modifier selects is zero.
func TestStepJmzBranchesOnZero(t *testing.T) {
	mem := newMem(100)
	zero := redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF}
	mem.Store(0, 20, zero, 3)

	jmz := redcode.Instruction{
		Op: redcode.JMZ, Mod: redcode.ModB,
		A: redcode.Operand{Mode: redcode.Direct, Field: 50},
		B: redcode.Operand{Mode: redcode.Direct, Field: 20},
	}
	mem.Store(0, 0, jmz, 3)

	next := Step(mem, 0, 3, 0, nil)
	require.Len(t, next, 1)
	assert.Equal(t, 50, next[0])
}

// JMN with a whole-instruction modifier only branches when every
// tested subfield is nonzero; one zero subfield must suppress it.
func TestStepJmnRequiresAllFieldsNonzero(t *testing.T) {
	mem := newMem(100)
	mixed := redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 5}, B: redcode.Operand{Field: 0}}
	mem.Store(0, 20, mixed, 3)

	jmn := redcode.Instruction{
		Op: redcode.JMN, Mod: redcode.ModF,
		A: redcode.Operand{Mode: redcode.Direct, Field: 50},
		B: redcode.Operand{Mode: redcode.Direct, Field: 20},
	}
	mem.Store(0, 0, jmn, 3)

	next := Step(mem, 0, 3, 0, nil)
	require.Len(t, next, 1)
	assert.Equal(t, 1, next[0], "one zero subfield must suppress the branch")

	bothNonzero := redcode.Instruction{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 5}, B: redcode.Operand{Field: 7}}
	mem.Store(0, 20, bothNonzero, 3)
	next = Step(mem, 0, 3, 0, nil)
	require.Len(t, next, 1)
	assert.Equal(t, 50, next[0], "every tested subfield nonzero must take the branch")
}

// Dwarf's bombing loop (ADD.AB #4,$3 / MOV.AB #0,@2 / JMP $-2 / DAT
// #0,#0) walks through core dropping a DAT bomb every four cells.
func TestStepDwarfBombsEveryFourCells(t *testing.T) {
	mem := newMem(8000)
	prog := redcode.Program{Instructions: []redcode.Instruction{
		{Op: redcode.ADD, Mod: redcode.ModAB, A: redcode.Operand{Mode: redcode.Immediate, Field: 4}, B: redcode.Operand{Mode: redcode.Direct, Field: 3}},
		{Op: redcode.MOV, Mod: redcode.ModAB, A: redcode.Operand{Mode: redcode.Immediate, Field: 0}, B: redcode.Operand{Mode: redcode.BIndirect, Field: 2}},
		{Op: redcode.JMP, Mod: redcode.ModB, A: redcode.Operand{Mode: redcode.Direct, Field: -2}, B: redcode.Operand{Mode: redcode.Direct, Field: 0}},
		{Op: redcode.DAT, Mod: redcode.ModF, A: redcode.Operand{Field: 0}, B: redcode.Operand{Field: 0}},
	}}
	mem.Place(0, prog, 1)

	pc := 0
	for i := 0; i < 3; i++ {
		next := Step(mem, pc, 1, 0, nil)
		require.Len(t, next, 1)
		pc = next[0]
	}
	bombTarget := mem.Load(3).B.Field
	assert.Equal(t, 4, bombTarget)
}
