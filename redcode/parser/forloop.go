package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// forHeader is a parsed "[name] FOR <expr>" line.
type forHeader struct {
	varName   string
	countText string
}

func parseForHeader(line string) (forHeader, bool) {
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.EqualFold(f, "FOR") {
			var varName string
			if i == 1 {
				varName = fields[0]
			}
			return forHeader{varName: varName, countText: strings.Join(fields[i+1:], " ")}, true
		}
		// Only a single leading label token is allowed before FOR.
		if i > 0 {
			break
		}
	}
	return forHeader{}, false
}

func isRofLine(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "ROF")
}

// unrollRun processes lines[start:] until either the input is
// exhausted or a ROF belonging to an enclosing caller is reached (in
// which case next points at that ROF line, not past it).
func unrollRun(lines []string, start int, equs *equTable, bindings map[string]int) ([]string, int, error) {
	var out []string
	i := start
	for i < len(lines) {
		line := lines[i]
		if isRofLine(line) {
			return out, i, nil
		}
		hdr, ok := parseForHeader(line)
		if !ok {
			out = append(out, substituteBindings(line, bindings))
			i++
			continue
		}

		countText := substituteBindings(equs.substitute(hdr.countText), bindings)
		count, err := evalConstExpr(countText)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: FOR count: %w", i+1, err)
		}

		body, rofIdx, err := collectBody(lines, i+1)
		if err != nil {
			return nil, 0, err
		}

		for n := 0; n < count; n++ {
			childBindings := cloneBindings(bindings)
			if hdr.varName != "" {
				childBindings[hdr.varName] = n + 1
			}
			substituted := make([]string, len(body))
			for j, bl := range body {
				substituted[j] = equs.substitute(bl)
			}
			expanded, next, err := unrollRun(substituted, 0, equs, childBindings)
			if err != nil {
				return nil, 0, err
			}
			if next != len(substituted) {
				return nil, 0, fmt.Errorf("line %d: ROF without matching FOR", i+1)
			}
			out = append(out, expanded...)
		}
		i = rofIdx + 1
	}
	return out, i, nil
}

// collectBody returns the lines between a FOR and its matching ROF,
// accounting for nested FOR/ROF pairs, plus the index of the
// matching ROF.
func collectBody(lines []string, start int) ([]string, int, error) {
	depth := 0
	for i := start; i < len(lines); i++ {
		if _, ok := parseForHeader(lines[i]); ok {
			depth++
			continue
		}
		if isRofLine(lines[i]) {
			if depth == 0 {
				return lines[start:i], i, nil
			}
			depth--
		}
	}
	return nil, 0, fmt.Errorf("line %d: FOR without matching ROF", start)
}

func cloneBindings(b map[string]int) map[string]int {
	out := make(map[string]int, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// substituteBindings rewrites loop-variable references in line:
// "&name" becomes a zero-padded two-digit value, a bare "name"
// identifier becomes its decimal value.
func substituteBindings(line string, bindings map[string]int) string {
	for name, val := range bindings {
		line = substituteAmpToken(line, name, val)
		line = substituteBareToken(line, name, val)
	}
	return line
}

func substituteAmpToken(line, name string, val int) string {
	token := "&" + name
	var out strings.Builder
	i := 0
	for {
		idx := strings.Index(line[i:], token)
		if idx < 0 {
			out.WriteString(line[i:])
			break
		}
		idx += i
		out.WriteString(line[i:idx])
		out.WriteString(fmt.Sprintf("%02d", val))
		i = idx + len(token)
	}
	return out.String()
}

func substituteBareToken(line, name string, val int) string {
	var out strings.Builder
	i := 0
	for i < len(line) {
		if !isIdentHead(line[i]) {
			out.WriteByte(line[i])
			i++
			continue
		}
		j := i
		for j < len(line) && isIdentChar(line[j]) {
			j++
		}
		word := line[i:j]
		if word == name {
			out.WriteString(strconv.Itoa(val))
		} else {
			out.WriteString(word)
		}
		i = j
	}
	return out.String()
}

// evalConstExpr evaluates a FOR-count expression that, after EQU and
// binding substitution, should contain only literals and arithmetic.
func evalConstExpr(text string) (int, error) {
	items, err := lexLine(text)
	if err != nil {
		return 0, err
	}
	e, rest, err := parseExpr(items)
	if err != nil {
		return 0, err
	}
	if len(rest) != 0 {
		return 0, fmt.Errorf("trailing tokens in FOR count expression")
	}
	return e.eval(&evalContext{symbols: map[string]int{}})
}
