package parser

import (
	"go.redcode.dev/mars/redcode"
)

// parseExprText lexes and parses a standalone expression (used for
// ORG/END targets, which have no surrounding operand syntax).
func (p *Parser) parseExprText(text string) (expr, error) {
	items, err := lexLine(text)
	if err != nil {
		return nil, err
	}
	e, rest, err := parseExpr(items)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, newError(SyntaxError, p.file, 0, 0, "trailing tokens after expression")
	}
	return e, nil
}

// parseInstruction parses "[label] opcode[.mod] operand[, operand]"
// and appends the result to p.pending.
func (p *Parser) parseInstruction(line string, lineNo int) error {
	items, err := lexLine(line)
	if err != nil {
		return p.err(SyntaxError, lineNo, 1, "%v", err)
	}
	if len(items) == 0 {
		return nil
	}

	idx := 0
	if items[idx].typ == itemIdentifier {
		if _, isOp := redcode.ParseOpCode(items[idx].val); !isOp {
			p.labels[items[idx].val] = len(p.pending)
			idx++
		}
	}

	if idx >= len(items) || items[idx].typ != itemIdentifier {
		return p.err(SyntaxError, lineNo, items[min(idx, len(items)-1)].col, "expected opcode")
	}
	op, ok := redcode.ParseOpCode(items[idx].val)
	if !ok {
		return p.err(SyntaxError, lineNo, items[idx].col, "unknown opcode %q", items[idx].val)
	}
	idx++

	mod := redcode.Modifier(-1)
	if idx < len(items) && items[idx].typ == itemDot {
		idx++
		if idx >= len(items) || items[idx].typ != itemIdentifier {
			return p.err(BadModifier, lineNo, items[min(idx, len(items)-1)].col, "expected modifier after '.'")
		}
		m, ok := redcode.ParseModifier(items[idx].val)
		if !ok {
			return p.err(BadModifier, lineNo, items[idx].col, "unknown modifier %q", items[idx].val)
		}
		mod, idx = m, idx+1
	}

	aOperand, idx, err := p.parseOperand(items, idx, lineNo)
	if err != nil {
		return err
	}

	bOperand := pendingOperand{mode: redcode.Immediate, expr: litExpr{v: 0}}
	if idx < len(items) && items[idx].typ == itemComma {
		idx++
		bOperand, idx, err = p.parseOperand(items, idx, lineNo)
		if err != nil {
			return err
		}
	}

	if idx != len(items) {
		return p.err(SyntaxError, lineNo, items[idx].col, "unexpected trailing token %q", items[idx].val)
	}

	if mod < 0 {
		mod = redcode.DefaultModifier(op, aOperand.mode, bOperand.mode)
	}

	p.pending = append(p.pending, pendingInstruction{
		pc: len(p.pending), line: lineNo, op: op, mod: mod, a: aOperand, b: bOperand,
	})
	return nil
}

func isOperandModeOperator(val string) bool {
	return val == "<" || val == ">" || val == "*"
}

func (p *Parser) parseOperand(items []item, idx, lineNo int) (pendingOperand, int, error) {
	mode := redcode.DefaultAddressMode
	if idx >= len(items) {
		return pendingOperand{}, idx, p.err(MissingOperand, lineNo, 1, "missing operand")
	}
	if items[idx].typ == itemMode {
		mode = redcode.AddressMode(items[idx].val[0])
		idx++
	} else if items[idx].typ == itemOperator && isOperandModeOperator(items[idx].val) {
		// '<', '>' and '*' lex as operators everywhere else in an
		// expression; only here, at the start of an operand, do they
		// mean BPredecrement/BPostincrement/AIndirect instead. A
		// binary operator can never be the first token of an operand,
		// so this is unambiguous.
		mode = redcode.AddressMode(items[idx].val[0])
		idx++
	}
	e, rest, err := parseExpr(items[idx:])
	if err != nil {
		return pendingOperand{}, idx, p.err(SyntaxError, lineNo, items[idx].col, "%v", err)
	}
	consumed := len(items[idx:]) - len(rest)
	return pendingOperand{mode: mode, expr: e}, idx + consumed, nil
}

// resolve runs the post-pass: every pending instruction's operand
// expressions are evaluated against the completed label table and
// folded into the signed field range, and ORG/END (if present) become
// the program's start offset.
func (p *Parser) resolve() (*redcode.Program, error) {
	instructions := make([]redcode.Instruction, len(p.pending))
	for _, pi := range p.pending {
		aVal, err := pi.a.expr.eval(&evalContext{symbols: p.labels, instructionAddr: pi.pc})
		if err != nil {
			return nil, p.err(UnknownSymbol, pi.line, 1, "A-operand: %v", err)
		}
		bVal, err := pi.b.expr.eval(&evalContext{symbols: p.labels, instructionAddr: pi.pc})
		if err != nil {
			return nil, p.err(UnknownSymbol, pi.line, 1, "B-operand: %v", err)
		}
		instructions[pi.pc] = redcode.Instruction{
			Op:  pi.op,
			Mod: pi.mod,
			A:   redcode.Operand{Mode: pi.a.mode, Field: redcode.FoldSigned(aVal, p.coreSize)},
			B:   redcode.Operand{Mode: pi.b.mode, Field: redcode.FoldSigned(bVal, p.coreSize)},
		}
	}

	start := 0
	switch {
	case p.sawEnd && p.endExpr != nil:
		v, err := p.endExpr.eval(&evalContext{symbols: p.labels, instructionAddr: 0})
		if err != nil {
			return nil, p.err(UnknownSymbol, 0, 1, "END expression: %v", err)
		}
		start = v
	case p.sawOrg:
		v, err := p.orgExpr.eval(&evalContext{symbols: p.labels, instructionAddr: 0})
		if err != nil {
			return nil, p.err(UnknownSymbol, 0, 1, "ORG expression: %v", err)
		}
		start = v
	}
	if len(instructions) > 0 {
		start = redcode.Fold(start, len(instructions))
	} else {
		start = 0
	}

	labels := make(map[string]int, len(p.labels))
	for k, v := range p.labels {
		labels[k] = v
	}

	return &redcode.Program{
		Instructions: instructions,
		Start:        start,
		Labels:       labels,
		Metadata:     p.meta,
	}, nil
}

