// Package core implements the circular instruction memory every
// warrior executes against.
package core

import (
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

// LimitKind distinguishes the read-window check from the write-window
// check; both use the same symmetric-distance rule but against
// independently configurable limits.
type LimitKind int

const (
	ReadLimit LimitKind = iota
	WriteLimit
)

// Memory is the ring of Instruction cells every warrior shares.
// Opcode-level reads and writes are routed through Load/Store so the
// injected Tracer sees them and writes are window-checked. Field and
// BumpField (addressing-mode side effects) and Place (loading) access
// cells directly, bypassing both the tracer and the window check.
type Memory struct {
	cells      []redcode.Instruction
	readLimit  int
	writeLimit int
	tracer     trace.Tracer
}

// New builds an empty core of the given size, filled with the
// standard DAT.F #0, #0 cell owned by nobody (PID 0). readLimit and
// writeLimit must each divide size evenly, per the limits a real
// MARS host configures (CORESIZE itself is always a valid limit).
func New(size, readLimit, writeLimit int, tracer trace.Tracer) *Memory {
	if tracer == nil {
		tracer = trace.NullTracer{}
	}
	m := &Memory{
		cells:      make([]redcode.Instruction, size),
		readLimit:  readLimit,
		writeLimit: writeLimit,
		tracer:     tracer,
	}
	for i := range m.cells {
		m.cells[i] = redcode.Instruction{
			Op: redcode.DAT, Mod: redcode.ModF,
			A: redcode.Operand{Mode: redcode.Immediate},
			B: redcode.Operand{Mode: redcode.Immediate},
		}
	}
	return m
}

func (m *Memory) Size() int { return len(m.cells) }

// Fold reduces x into [0, Size()) using Euclidean modulo.
func (m *Memory) Fold(x int) int {
	return redcode.Fold(x, len(m.cells))
}

// Load returns a deep copy of the cell at address (after fold), the
// way every operand evaluation and the executor's "take a snapshot
// before executing" rule require. The tracer is notified of every
// load, so every access-tagged memory read stays observable.
func (m *Memory) Load(addr int) redcode.Instruction {
	a := m.Fold(addr)
	instr := m.cells[a]
	m.tracer.LogLoad(a, instr)
	return instr
}

// Store writes instr into the cell at address (after fold) and tags
// it with pid, unless the access falls outside the write window from
// pc, in which case it is a silent no-op. Returns whether the store
// happened.
func (m *Memory) Store(pc, addr int, instr redcode.Instruction, pid int) bool {
	if !m.CheckLimit(WriteLimit, pc, addr) {
		return false
	}
	a := m.Fold(addr)
	instr.PID = pid
	m.cells[a] = instr
	m.tracer.LogStore(a, instr)
	return true
}

// CheckLimit reports whether target is within the read or write
// window measured from pc: fold(target-pc) <= limit/2 or
// fold(pc-target) <= limit/2, where limit is readLimit or writeLimit
// depending on kind.
func (m *Memory) CheckLimit(kind LimitKind, pc, target int) bool {
	limit := m.readLimit
	if kind == WriteLimit {
		limit = m.writeLimit
	}
	half := limit / 2
	fwd := m.Fold(target - pc)
	back := m.Fold(pc - target)
	return fwd <= half || back <= half
}

// Field reads the A or B subfield of the cell at addr (after fold)
// without going through Load/tracer, for the addressing-mode
// resolution that needs a raw peek, not a logged access.
func (m *Memory) Field(addr int, isA bool) int {
	a := m.Fold(addr)
	if isA {
		return m.cells[a].A.Field
	}
	return m.cells[a].B.Field
}

// BumpField adjusts the A or B subfield of the cell at addr by delta,
// folded into the signed field range, and returns the new value. Used
// for pre-decrement and post-increment addressing side effects, which
// mutate core directly and are not subject to the write-window check
// or ownership reassignment a genuine opcode Store performs.
func (m *Memory) BumpField(addr int, isA bool, delta int) int {
	a := m.Fold(addr)
	if isA {
		m.cells[a].A.Field = redcode.FoldSigned(m.cells[a].A.Field+delta, len(m.cells))
		return m.cells[a].A.Field
	}
	m.cells[a].B.Field = redcode.FoldSigned(m.cells[a].B.Field+delta, len(m.cells))
	return m.cells[a].B.Field
}

// Place copies prog's instructions into the core starting at base,
// tagging each cell with pid. Addresses fold, so a program may wrap
// around the end of the core.
func (m *Memory) Place(base int, prog redcode.Program, pid int) {
	for i, in := range prog.Instructions {
		in.PID = pid
		m.cells[m.Fold(base+i)] = in
	}
}
