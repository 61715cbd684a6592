package exec

import (
	"errors"

	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

var errDivByZero = errors.New("division or modulo by zero")

// Step runs the instruction at pc on behalf of pid (base is the
// warrior's placement address, kept for callers that need it for
// trace context; the executor itself only ever addresses core
// relative to pc). It returns the list of program counters the
// scheduler should enqueue next: empty means the process dies, two
// entries only for SPL.
func Step(mem *core.Memory, pc, pid, base int, tr trace.Tracer) []int {
	if tr == nil {
		tr = trace.NullTracer{}
	}
	instr := mem.Load(pc)
	tr.BeginInstruction(pc, instr, pid)

	tr.BeginAOperand()
	a := evalOperand(mem, pc, instr.A, tr)

	tr.BeginBOperand()
	b := evalOperand(mem, pc, instr.B, tr)
	bTargetAddr := mem.Fold(pc + b.pointer)

	next := dispatch(mem, instr, pc, pid, a, b, bTargetAddr, tr)

	a.applyPostIncrement(mem)
	b.applyPostIncrement(mem)

	tr.BeginAOperand()
	tr.LogOperand(a.pointer, a.target, mem.Load(pc+a.pointer))
	tr.BeginBOperand()
	tr.LogOperand(b.pointer, b.target, mem.Load(bTargetAddr))

	filtered := next[:0:0]
	for _, n := range next {
		if mem.CheckLimit(core.ReadLimit, pc, n) {
			filtered = append(filtered, mem.Fold(n))
		}
	}
	tr.ProgramCounters(pid, filtered)
	return filtered
}

func dispatch(mem *core.Memory, instr redcode.Instruction, pc, pid int, a, b resolved, bAddr int, tr trace.Tracer) []int {
	switch instr.Op {
	case redcode.DAT:
		return nil

	case redcode.NOP:
		return []int{pc + 1}

	case redcode.MOV:
		execMove(mem, instr, pc, pid, bAddr, a.target, b.target)
		return []int{pc + 1}

	case redcode.ADD, redcode.SUB, redcode.MUL, redcode.DIV, redcode.MOD:
		if execArith(mem, instr, pc, pid, bAddr, a.target, b.target) {
			return []int{pc + 1}
		}
		return nil

	case redcode.JMP:
		return []int{pc + a.pointer}

	case redcode.JMZ:
		if allZero(b.target, instr.Mod) {
			return []int{pc + a.pointer}
		}
		return []int{pc + 1}

	case redcode.JMN:
		if noneZero(b.target, instr.Mod) {
			return []int{pc + a.pointer}
		}
		return []int{pc + 1}

	case redcode.DJN:
		decremented := decrementTarget(mem, instr.Mod, pc, pid, bAddr, b.target)
		if !allZero(decremented, instr.Mod) {
			return []int{pc + a.pointer}
		}
		return []int{pc + 1}

	case redcode.CMP:
		if compareEqual(instr.Mod, a.target, b.target) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SNE:
		if !compareEqual(instr.Mod, a.target, b.target) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SLT:
		if compareLess(instr.Mod, a.target, b.target) {
			return []int{pc + 2}
		}
		return []int{pc + 1}

	case redcode.SPL:
		return []int{pc + 1, pc + a.pointer}

	default:
		return nil
	}
}

func execMove(mem *core.Memory, instr redcode.Instruction, pc, pid, bAddr int, aCopy, bTarget redcode.Instruction) {
	if instr.Mod == redcode.ModI {
		whole := aCopy
		whole.PID = pid
		mem.Store(pc, bAddr, whole, pid)
		return
	}
	result := bTarget
	for _, p := range pairsFor(instr.Mod) {
		setField(&result, p.dst, getField(aCopy, p.src))
	}
	mem.Store(pc, bAddr, result, pid)
}

// execArith applies ADD/SUB/MUL/DIV/MOD across every subfield the
// modifier selects, always attempting every selected pair even if an
// earlier one divides by zero, and reports whether the process
// survives (false if any attempted subfield divided or modulo'd by
// zero).
func execArith(mem *core.Memory, instr redcode.Instruction, pc, pid, bAddr int, aCopy, bTarget redcode.Instruction) bool {
	op := arithOp(instr.Op)
	result := bTarget
	ok := true
	for _, p := range pairsFor(instr.Mod) {
		v, err := op(getField(bTarget, p.dst), getField(aCopy, p.src))
		if err != nil {
			ok = false
			continue
		}
		setField(&result, p.dst, redcode.FoldSigned(v, mem.Size()))
	}
	mem.Store(pc, bAddr, result, pid)
	return ok
}

func arithOp(op redcode.OpCode) func(l, r int) (int, error) {
	switch op {
	case redcode.ADD:
		return func(l, r int) (int, error) { return l + r, nil }
	case redcode.SUB:
		return func(l, r int) (int, error) { return l - r, nil }
	case redcode.MUL:
		return func(l, r int) (int, error) { return l * r, nil }
	case redcode.DIV:
		return func(l, r int) (int, error) {
			if r == 0 {
				return 0, errDivByZero
			}
			return l / r, nil
		}
	default: // MOD
		return func(l, r int) (int, error) {
			if r == 0 {
				return 0, errDivByZero
			}
			return l % r, nil
		}
	}
}

func allZero(instr redcode.Instruction, mod redcode.Modifier) bool {
	for _, f := range testFields(mod) {
		if getField(instr, f) != 0 {
			return false
		}
	}
	return true
}

// noneZero reports whether every subfield the modifier selects is
// nonzero. JMN only branches when none of its tested subfields are
// zero, the mirror image of JMZ's allZero rather than a negation of
// it: a JMZ/JMN pair on the same modifier is only guaranteed to take
// exactly one branch when the modifier selects a single field.
func noneZero(instr redcode.Instruction, mod redcode.Modifier) bool {
	for _, f := range testFields(mod) {
		if getField(instr, f) == 0 {
			return false
		}
	}
	return true
}

// decrementTarget decrements every subfield DJN's modifier selects,
// writing the result back to the B-target through the same
// write-window and ownership rules an arithmetic store uses, and
// returns the post-decrement snapshot.
func decrementTarget(mem *core.Memory, mod redcode.Modifier, pc, pid, bAddr int, bTarget redcode.Instruction) redcode.Instruction {
	result := bTarget
	for _, f := range testFields(mod) {
		setField(&result, f, redcode.FoldSigned(getField(bTarget, f)-1, mem.Size()))
	}
	mem.Store(pc, bAddr, result, pid)
	return result
}

func compareEqual(mod redcode.Modifier, a, b redcode.Instruction) bool {
	if mod == redcode.ModI {
		return a.Equal(b)
	}
	for _, p := range pairsFor(mod) {
		if getField(a, p.src) != getField(b, p.dst) {
			return false
		}
	}
	return true
}

// compareLess implements SLT; SLT.I degrades to F semantics per the
// modifier table's note that instruction-wide ordering isn't
// meaningful, only subfield ordering is.
func compareLess(mod redcode.Modifier, a, b redcode.Instruction) bool {
	if mod == redcode.ModI {
		mod = redcode.ModF
	}
	for _, p := range pairsFor(mod) {
		if !(getField(a, p.src) < getField(b, p.dst)) {
			return false
		}
	}
	return true
}
