// Package mars implements the scheduler: warrior placement, the
// round-robin process queue, and round/tournament outcome
// determination on top of core.Memory and exec.Step.
package mars

import "go.redcode.dev/mars/redcode"

// Config mirrors the standard constants a match is configured with.
// Every field has a documented default and may be overridden by a
// host (CLI flags, a tournament runner) before a match starts.
type Config struct {
	CoreSize     int // Size of the memory core.
	MaxCycles    int // Round length before it's declared a draw.
	MaxProcesses int // Per-warrior process cap; SPL beyond it is dropped.
	MaxLength    int // Max instructions per warrior program.
	MinDistance  int // Minimum placement separation between warriors.
	ReadLimit    int // Read window, must divide CoreSize.
	WriteLimit   int // Write window, must divide CoreSize.
}

// DefaultConfig returns the standard '94 constants.
func DefaultConfig() Config {
	return Config{
		CoreSize:     redcode.DefaultCoreSize,
		MaxCycles:    redcode.DefaultMaxCycles,
		MaxProcesses: redcode.DefaultMaxProcesses,
		MaxLength:    redcode.DefaultMaxLength,
		MinDistance:  redcode.DefaultMinDistance,
		ReadLimit:    redcode.DefaultReadLimit,
		WriteLimit:   redcode.DefaultWriteLimit,
	}
}
