package mars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

func impProgram() redcode.Program {
	return redcode.Program{Instructions: []redcode.Instruction{
		{Op: redcode.MOV, Mod: redcode.ModI,
			A: redcode.Operand{Mode: redcode.Direct, Field: 0},
			B: redcode.Operand{Mode: redcode.Direct, Field: 1}},
	}}
}

// A lone Imp against a single DAT should win: the DAT warrior's only
// process executes DAT on the first cycle and dies, leaving it with
// zero processes, so it is declared dead after that cycle.
func TestMatchImpBeatsDeadWarrior(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoreSize = 800
	cfg.MinDistance = 50

	dead := redcode.Program{Instructions: []redcode.Instruction{{Op: redcode.DAT}}}
	m, err := NewMatch(cfg, []string{"imp", "corpse"}, []redcode.Program{impProgram(), dead}, 1, trace.NullTracer{})
	require.NoError(t, err)

	res := m.Run(context.Background())
	require.NotNil(t, res.Winner)
	assert.Equal(t, "imp", res.Winner.Name)
}

// Two identical Imps never terminate within a bounded cycle budget:
// the match should end in a draw once MaxCycles is reached.
func TestMatchTwoImpsDrawOnCycleLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoreSize = 800
	cfg.MinDistance = 50
	cfg.MaxCycles = 500

	m, err := NewMatch(cfg, []string{"a", "b"}, []redcode.Program{impProgram(), impProgram()}, 2, trace.NullTracer{})
	require.NoError(t, err)

	res := m.Run(context.Background())
	assert.True(t, res.Draw)
	assert.Equal(t, cfg.MaxCycles, res.Cycles)
}

func TestPlaceIsDeterministicFromSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoreSize = 8000
	progs := []redcode.Program{impProgram(), impProgram(), impProgram()}

	a, err := Place(cfg, progs, 42)
	require.NoError(t, err)
	b, err := Place(cfg, progs, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Place(cfg, progs, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestWarriorPushDropsExcessProcesses(t *testing.T) {
	w := newWarrior(1, "spl-heavy", impProgram(), 0)
	w.push([]int{1, 2, 3}, 2)
	assert.Equal(t, 2, w.Processes())
}

func TestTournamentAggregatesWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoreSize = 800
	cfg.MinDistance = 50

	dead := redcode.Program{Instructions: []redcode.Instruction{{Op: redcode.DAT}}}
	tourney := NewTournament(cfg, []string{"imp", "corpse"}, []redcode.Program{impProgram(), dead}, 5, 7, nil)

	res, err := tourney.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 5, res.Wins["imp"])
	assert.Equal(t, 0, res.Draws)
}
