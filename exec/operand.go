// Package exec implements per-opcode instruction semantics against a
// core.Memory: the arithmetic, branching, comparison, copy, and fork
// behavior each Redcode opcode defines.
package exec

import (
	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

// resolved is the result of evaluating one operand: the pointer it
// resolved to, and a stable snapshot of the cell it points at, taken
// after any pre-decrement and before any post-increment so the
// executing opcode never observes its own write mid-flight.
type resolved struct {
	pointer int
	target  redcode.Instruction

	// postIncrAddr is the address whose A or B field must be
	// incremented after the opcode runs; -1 means no post-increment
	// is pending for this operand.
	postIncrAddr int
	postIncrA    bool
}

func (r resolved) applyPostIncrement(mem *core.Memory) {
	if r.postIncrAddr < 0 {
		return
	}
	mem.BumpField(r.postIncrAddr, r.postIncrA, 1)
}

// evalOperand implements the addressing-mode table: it computes the
// pointer and target snapshot for opnd relative to pc, applying any
// pre-decrement side effect to live core before taking the snapshot.
func evalOperand(mem *core.Memory, pc int, opnd redcode.Operand, tr trace.Tracer) resolved {
	f := opnd.Field
	switch opnd.Mode {
	case redcode.Immediate:
		return resolved{pointer: 0, target: mem.Load(pc), postIncrAddr: -1}

	case redcode.Direct:
		ptr := f
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: -1}

	case redcode.BIndirect:
		cellAddr := pc + f
		b := mem.Field(cellAddr, false)
		ptr := f + b
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: -1}

	case redcode.BPredecrement:
		cellAddr := pc + f
		newB := mem.BumpField(cellAddr, false, -1)
		ptr := f + newB
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: -1}

	case redcode.BPostincrement:
		cellAddr := pc + f
		b := mem.Field(cellAddr, false)
		ptr := f + b
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: mem.Fold(cellAddr), postIncrA: false}

	case redcode.AIndirect:
		cellAddr := pc + f
		a := mem.Field(cellAddr, true)
		ptr := f + a
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: -1}

	case redcode.APredecrement:
		cellAddr := pc + f
		newA := mem.BumpField(cellAddr, true, -1)
		ptr := f + newA
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: -1}

	case redcode.APostincrement:
		cellAddr := pc + f
		a := mem.Field(cellAddr, true)
		ptr := f + a
		return resolved{pointer: ptr, target: mem.Load(pc + ptr), postIncrAddr: mem.Fold(cellAddr), postIncrA: true}

	default:
		return resolved{pointer: f, target: mem.Load(pc + f), postIncrAddr: -1}
	}
}
