package parser

import (
	"strings"

	"go.redcode.dev/mars/redcode"
)

// pendingOperand is an operand whose expression hasn't been resolved
// to an integer field yet; resolution happens once, in the post-pass,
// once every label in the program is known.
type pendingOperand struct {
	mode redcode.AddressMode
	expr expr
}

type pendingInstruction struct {
	pc   int
	line int
	op   redcode.OpCode
	mod  redcode.Modifier
	a, b pendingOperand
}

// Parser assembles one Redcode source file into a redcode.Program.
// It is single-use: construct with New, call Parse once.
type Parser struct {
	file     string
	coreSize int

	equs   *equTable
	labels map[string]int
	meta   redcode.Metadata

	pending []pendingInstruction
	orgExpr expr
	sawOrg  bool
	endExpr expr
	sawEnd  bool
}

// New returns a Parser bound to the given core size, used to fold
// resolved operand fields into the standard symmetric range.
func New(file string, coreSize int) *Parser {
	return &Parser{
		file:     file,
		coreSize: coreSize,
		equs:     newEQUTable(),
		labels:   map[string]int{},
	}
}

// Parse assembles source and returns the resulting Program, or the
// first *Error encountered.
func (p *Parser) Parse(source string) (*redcode.Program, error) {
	rawLines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	active := false
	var body []string
	var bodyStartLine int
	for i, raw := range rawLines {
		trimmed := strings.TrimSpace(raw)
		if !active {
			if isRedcodeMarker(trimmed) {
				active = true
				bodyStartLine = i + 2
			}
			continue
		}
		body = append(body, raw)
		_ = bodyStartLine
		if isEndLine(trimmed) {
			break
		}
	}
	if !active {
		return nil, p.err(SyntaxError, 1, 1, "missing ;redcode or ;redcode-94 marker")
	}

	if err := p.processLines(body, bodyStartLine); err != nil {
		return nil, err
	}

	return p.resolve()
}

func isRedcodeMarker(line string) bool {
	l := strings.ToLower(line)
	return strings.HasPrefix(l, ";redcode-94") || strings.HasPrefix(l, ";redcode")
}

func isEndLine(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && strings.EqualFold(fields[0], "END")
}

// processLines is the sequential scan that tracks EQU definitions,
// expands FOR/ROF blocks (re-feeding their unrolled body through
// itself), handles END and ORG, and hands everything else to
// parseInstruction.
func (p *Parser) processLines(lines []string, firstLineNo int) error {
	for i := 0; i < len(lines); i++ {
		lineNo := firstLineNo + i
		raw := lines[i]
		trimmed := strings.TrimSpace(stripComment(raw))
		if trimmed == "" {
			if meta := parseMetadataComment(raw); meta != nil {
				p.applyMetadata(*meta)
			}
			continue
		}

		if name, rhs, ok := parseEQULine(trimmed); ok {
			substRHS := p.equs.substitute(rhs)
			if !p.equs.define(name, substRHS) {
				return p.err(RedefinedConstant, lineNo, 1, "constant %q already defined", name)
			}
			continue
		}

		substituted := p.equs.substitute(trimmed)

		if hdr, ok := parseForHeader(substituted); ok {
			body, rofIdx, err := collectBody(lines, i+1)
			if err != nil {
				return p.err(ForWithoutRof, lineNo, 1, "%v", err)
			}
			count, err := evalConstExpr(p.equs.substitute(hdr.countText))
			if err != nil {
				return p.err(SyntaxError, lineNo, 1, "FOR count: %v", err)
			}
			unrolled, err := unrollForBody(hdr.varName, count, body, p.equs)
			if err != nil {
				return p.err(SyntaxError, lineNo, 1, "%v", err)
			}
			if err := p.processLines(unrolled, lineNo); err != nil {
				return err
			}
			i = rofIdx
			continue
		}

		if isEndLine(substituted) {
			fields := strings.Fields(substituted)
			if len(fields) > 1 {
				e, err := p.parseExprText(strings.Join(fields[1:], " "))
				if err != nil {
					return p.err(SyntaxError, lineNo, 1, "END expression: %v", err)
				}
				p.endExpr, p.sawEnd = e, true
			}
			return nil
		}

		if rest, ok := stripKeyword(substituted, "ORG"); ok {
			e, err := p.parseExprText(rest)
			if err != nil {
				return p.err(SyntaxError, lineNo, 1, "ORG expression: %v", err)
			}
			p.orgExpr, p.sawOrg = e, true
			continue
		}

		if err := p.parseInstruction(substituted, lineNo); err != nil {
			return err
		}
	}
	return nil
}

// unrollForBody expands one FOR block's body count times, applying
// constant substitution before loop-variable substitution on every
// line of every iteration, then recursing into any loops nested
// inside the body.
func unrollForBody(varName string, count int, body []string, equs *equTable) ([]string, error) {
	var out []string
	for n := 0; n < count; n++ {
		bindings := map[string]int{}
		if varName != "" {
			bindings[varName] = n + 1
		}
		substituted := make([]string, len(body))
		for j, line := range body {
			substituted[j] = equs.substitute(line)
		}
		for j := range substituted {
			substituted[j] = substituteBindings(substituted[j], bindings)
		}
		expanded, next, err := unrollRun(substituted, 0, equs, nil)
		if err != nil {
			return nil, err
		}
		if next != len(substituted) {
			return nil, errUnexpectedROF
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (p *Parser) applyMetadata(m metaComment) {
	switch m.key {
	case "name":
		p.meta.Name = m.value
	case "author":
		p.meta.Author = m.value
	case "strategy":
		p.meta.Strategy = append(p.meta.Strategy, m.value)
	case "assert":
		p.meta.Assert = m.value
	}
}

func (p *Parser) err(kind ErrorKind, line, col int, format string, args ...any) error {
	return newError(kind, p.file, line, col, format, args...)
}
