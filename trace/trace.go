// Package trace implements the push-style observer the executor and
// memory core report every step to.
package trace

import "go.redcode.dev/mars/redcode"

// Tracer is injected explicitly into the executor and memory core,
// rather than reached through a package-level singleton, so a match
// can be run with a NullTracer in production and a RecordingTracer in
// tests without either caller knowing the difference.
type Tracer interface {
	BeginInstruction(address int, instr redcode.Instruction, pid int)
	Cycle(n int)
	BeginAOperand()
	BeginBOperand()
	LogOperand(pointer int, target redcode.Instruction, postIncrement redcode.Instruction)
	LogLoad(addr int, instr redcode.Instruction)
	LogStore(addr int, instr redcode.Instruction)
	Operation(text string)
	ProgramCounters(pid int, queue []int)
}

// NullTracer discards every event. It is the default for a match run
// outside of tests or explicit trace export.
type NullTracer struct{}

func (NullTracer) BeginInstruction(int, redcode.Instruction, int)         {}
func (NullTracer) Cycle(int)                                             {}
func (NullTracer) BeginAOperand()                                        {}
func (NullTracer) BeginBOperand()                                        {}
func (NullTracer) LogOperand(int, redcode.Instruction, redcode.Instruction) {}
func (NullTracer) LogLoad(int, redcode.Instruction)                      {}
func (NullTracer) LogStore(int, redcode.Instruction)                     {}
func (NullTracer) Operation(string)                                      {}
func (NullTracer) ProgramCounters(int, []int)                            {}

var _ Tracer = NullTracer{}
