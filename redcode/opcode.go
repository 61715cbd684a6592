package redcode

import "strings"

// OpCode identifies a Redcode instruction.
type OpCode int

const (
	DAT OpCode = iota
	MOV
	ADD
	SUB
	MUL
	DIV
	MOD
	JMP
	JMZ
	JMN
	DJN
	CMP // Alias SEQ.
	SNE
	SLT
	SPL
	NOP
)

// opcodeNames is indexed by OpCode. CMP is printed as "cmp"; "seq" is
// accepted on parse as an alias, same opcode.
var opcodeNames = [...]string{
	DAT: "dat",
	MOV: "mov",
	ADD: "add",
	SUB: "sub",
	MUL: "mul",
	DIV: "div",
	MOD: "mod",
	JMP: "jmp",
	JMZ: "jmz",
	JMN: "jmn",
	DJN: "djn",
	CMP: "cmp",
	SNE: "sne",
	SLT: "slt",
	SPL: "spl",
	NOP: "nop",
}

func (o OpCode) String() string {
	if int(o) < 0 || int(o) >= len(opcodeNames) {
		return "???"
	}
	return opcodeNames[o]
}

// ParseOpCode resolves a case-insensitive mnemonic, including the "seq"
// alias for CMP, to its OpCode. Reports ok=false on no match.
func ParseOpCode(s string) (OpCode, bool) {
	s = strings.ToLower(s)
	if s == "seq" {
		return CMP, true
	}
	for i, name := range opcodeNames {
		if name == s {
			return OpCode(i), true
		}
	}
	return 0, false
}
