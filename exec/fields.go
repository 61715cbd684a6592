package exec

import "go.redcode.dev/mars/redcode"

type field int

const (
	fieldA field = iota
	fieldB
)

func getField(in redcode.Instruction, f field) int {
	if f == fieldA {
		return in.A.Field
	}
	return in.B.Field
}

func setField(in *redcode.Instruction, f field, v int) {
	if f == fieldA {
		in.A.Field = v
	} else {
		in.B.Field = v
	}
}

// fieldPair is one (read-from-A, write-to-B) subfield mapping a
// modifier selects for MOV and the arithmetic opcodes.
type fieldPair struct {
	src field // which field of the A-copy to read
	dst field // which field of the B-target to read/write
}

// pairsFor returns the subfield mapping the modifier grid in the
// executor's common protocol specifies for MOV/ADD/SUB/MUL/DIV/MOD.
func pairsFor(mod redcode.Modifier) []fieldPair {
	switch mod {
	case redcode.ModA:
		return []fieldPair{{fieldA, fieldA}}
	case redcode.ModB:
		return []fieldPair{{fieldB, fieldB}}
	case redcode.ModAB:
		return []fieldPair{{fieldA, fieldB}}
	case redcode.ModBA:
		return []fieldPair{{fieldB, fieldA}}
	case redcode.ModX:
		return []fieldPair{{fieldA, fieldB}, {fieldB, fieldA}}
	default: // ModF, ModI
		return []fieldPair{{fieldA, fieldA}, {fieldB, fieldB}}
	}
}

// testFields returns which of the B-target's own subfields a
// single-operand opcode (JMZ, JMN, DJN) inspects for a given
// modifier; SEQ/SNE/SLT compare A against B through pairsFor
// instead. AB and BA, which have
// no second operand to pair against here, fall back to the field
// they'd write under the MOV/arithmetic grid (B for AB, A for BA).
func testFields(mod redcode.Modifier) []field {
	switch mod {
	case redcode.ModA, redcode.ModBA:
		return []field{fieldA}
	case redcode.ModB, redcode.ModAB:
		return []field{fieldB}
	default: // ModF, ModX, ModI
		return []field{fieldA, fieldB}
	}
}
