package redcode

import "strings"

// Modifier selects which subfields of the A- and B-operands an opcode
// reads and writes.
type Modifier int

const (
	ModA Modifier = iota
	ModB
	ModAB
	ModBA
	ModF
	ModX
	ModI
)

var modifierNames = [...]string{
	ModA:  "a",
	ModB:  "b",
	ModAB: "ab",
	ModBA: "ba",
	ModF:  "f",
	ModX:  "x",
	ModI:  "i",
}

func (m Modifier) String() string {
	if int(m) < 0 || int(m) >= len(modifierNames) {
		return "?"
	}
	return modifierNames[m]
}

// ParseModifier resolves a case-insensitive modifier suffix. ".BA" is
// accepted as first-class, distinct from ".AB".
func ParseModifier(s string) (Modifier, bool) {
	s = strings.ToLower(s)
	for i, name := range modifierNames {
		if name == s {
			return Modifier(i), true
		}
	}
	return 0, false
}

// modeClass buckets an addressing mode into the two categories the
// default-modifier grid distinguishes: immediate, or anything else.
func modeClass(m AddressMode) bool { return m == Immediate }

// DefaultModifier picks the modifier a source line gets when it omits
// ".modifier", given the opcode and the addressing modes of its A- and
// B-operand.
func DefaultModifier(op OpCode, aMode, bMode AddressMode) Modifier {
	aImm, bImm := modeClass(aMode), modeClass(bMode)

	switch op {
	case DAT, NOP:
		return ModF

	case MOV, CMP, SNE:
		return movLikeDefault(aImm, bImm)

	case ADD, SUB, MUL, DIV, MOD:
		if !aImm && bImm {
			return ModB
		}
		if aImm || bImm {
			return ModAB
		}
		return ModF

	case SLT:
		if aImm {
			return ModAB
		}
		return ModB

	case JMP, JMZ, JMN, DJN, SPL:
		return ModB

	default:
		return ModF
	}
}

// movLikeDefault implements the MOV/CMP(SEQ)/SNE row:
// #/M -> AB ; M/# -> B ; else I.
func movLikeDefault(aImm, bImm bool) Modifier {
	switch {
	case aImm && !bImm:
		return ModAB
	case !aImm && bImm:
		return ModB
	case aImm && bImm:
		// Both immediate is degenerate (B-immediate operands aren't
		// writable); treat the same as aImm-only, matching reference
		// MARS behavior of using the A-side classification first.
		return ModAB
	default:
		return ModI
	}
}
