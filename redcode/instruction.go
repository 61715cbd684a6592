package redcode

import "fmt"

// Operand is one operand of an instruction: an addressing mode and a
// field value. The field starts out as the literal distance written in
// source and is later folded into core-relative form by the parser's
// label-resolution pass; at runtime it is always a folded distance.
type Operand struct {
	Mode  AddressMode
	Field int
}

func (o Operand) String() string {
	return fmt.Sprintf("%s%d", o.Mode, o.Field)
}

// Instruction is one cell of the core: an opcode, modifier, and two
// operands. Instructions are copied by value throughout this module —
// the executor takes a snapshot of the instruction at the program
// counter before applying any side effects, so a MOV that overwrites
// the currently executing cell can't corrupt the copy already in hand.
type Instruction struct {
	Op  OpCode
	Mod Modifier
	A   Operand
	B   Operand

	// PID tags the warrior that owns this cell, for trace and
	// scoring purposes. It is not part of Redcode semantics and is
	// never read by the executor's arithmetic.
	PID int
}

func (in Instruction) String() string {
	return fmt.Sprintf("%s.%s %s, %s", in.Op, in.Mod, in.A, in.B)
}

// Equal compares opcode, modifier and both operands, ignoring PID.
// Two cells loaded from identical source but owned by different
// warriors are Equal.
func (in Instruction) Equal(other Instruction) bool {
	return in.Op == other.Op && in.Mod == other.Mod && in.A == other.A && in.B == other.B
}
