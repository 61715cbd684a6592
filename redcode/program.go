package redcode

import (
	"strconv"
	"strings"
)

// Metadata captures the info-comment header a Redcode source file may
// carry (;name, ;author, ;strategy, ;assert).
type Metadata struct {
	Name     string
	Author   string
	Strategy []string
	Assert   string
}

// Program is an assembled warrior: a flat sequence of instructions
// ready for loading into a core, plus the symbol table and header
// metadata that produced it. Start is the index, relative to the first
// instruction, where execution begins (set by an "org" line or
// defaulted to 0).
type Program struct {
	Instructions []Instruction
	Start        int
	Labels       map[string]int
	Metadata     Metadata
}

func (p Program) Len() int {
	return len(p.Instructions)
}

// String renders the program back to Redcode source, including the
// leading ;redcode-94 marker and trailing END line a parser requires.
// Re-parsing the result with the same core size yields a Program with
// an identical Instructions slice; labels are not guaranteed to
// round-trip by name, only the resolved numeric fields are (the one
// label printed is the one the "org" line names, on its instruction).
func (p Program) String() string {
	var b strings.Builder
	b.WriteString(";redcode-94\n")
	if p.Metadata.Name != "" {
		b.WriteString(";name " + p.Metadata.Name + "\n")
	}
	if p.Metadata.Author != "" {
		b.WriteString(";author " + p.Metadata.Author + "\n")
	}
	for _, line := range p.Metadata.Strategy {
		b.WriteString(";strategy " + line + "\n")
	}
	if p.Metadata.Assert != "" {
		b.WriteString(";assert " + p.Metadata.Assert + "\n")
	}
	startLabel := ""
	if p.Start != 0 {
		org := labelAtOrIndex(p.Labels, p.Start)
		b.WriteString(org)
		b.WriteByte('\n')
		if name := strings.TrimPrefix(org, "org "); name != strconv.Itoa(p.Start) {
			startLabel = name
		}
	}
	for i, in := range p.Instructions {
		if i == p.Start && startLabel != "" {
			b.WriteString(startLabel + " ")
		}
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	b.WriteString("END\n")
	return b.String()
}

// labelAtOrIndex renders an "org" directive, preferring a label name
// that resolves to idx when one exists.
func labelAtOrIndex(labels map[string]int, idx int) string {
	for name, v := range labels {
		if v == idx {
			return "org " + name
		}
	}
	return "org " + strconv.Itoa(idx)
}
