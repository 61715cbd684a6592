package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

func TestFoldWraps(t *testing.T) {
	m := New(8000, 8000, 8000, trace.NullTracer{})
	assert.Equal(t, 0, m.Fold(8000))
	assert.Equal(t, 7999, m.Fold(-1))
	assert.Equal(t, 0, m.Fold(0))
}

func TestStoreTagsOwnership(t *testing.T) {
	m := New(100, 100, 100, trace.NullTracer{})
	in := redcode.Instruction{Op: redcode.DAT}
	ok := m.Store(0, 5, in, 7)
	assert.True(t, ok)
	assert.Equal(t, 7, m.Load(5).PID)
}

func TestWriteWindowSuppressesOutOfRange(t *testing.T) {
	m := New(100, 100, 10, trace.NullTracer{})
	in := redcode.Instruction{Op: redcode.DAT}
	// write-limit 10: half window is 5, so offset 50 is out of range.
	ok := m.Store(0, 50, in, 3)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Load(50).PID)
}

func TestPlaceWrapsAroundCore(t *testing.T) {
	m := New(10, 10, 10, trace.NullTracer{})
	prog := redcode.Program{Instructions: []redcode.Instruction{
		{Op: redcode.NOP}, {Op: redcode.NOP}, {Op: redcode.NOP},
	}}
	m.Place(9, prog, 1)
	assert.Equal(t, redcode.NOP, m.Load(9).Op)
	assert.Equal(t, redcode.NOP, m.Load(0).Op)
	assert.Equal(t, redcode.NOP, m.Load(1).Op)
}
