package redcode

// Standard '94 constants. A Config in the mars package may override
// these per match; the values here are the compiled-in defaults used
// when nothing else is specified.
const (
	DefaultCoreSize    = 8000
	DefaultMaxCycles   = 80000
	DefaultMaxProcesses = 8000
	DefaultMaxLength   = 100
	DefaultMinDistance = 100
	DefaultReadLimit   = DefaultCoreSize
	DefaultWriteLimit  = DefaultCoreSize
)

// Fold reduces v into [0, size) using Euclidean (always-non-negative)
// modulo, the way core addresses wrap regardless of how far negative
// an unresolved expression or a predecrement pushed them.
func Fold(v, size int) int {
	if size <= 0 {
		return 0
	}
	m := v % size
	if m < 0 {
		m += size
	}
	return m
}

// FoldSigned reduces v into the symmetric range used for field values
// that represent a relative distance rather than an absolute address:
// (-size/2, size/2]. Two distances that address the same cell modulo
// size compare equal after FoldSigned.
func FoldSigned(v, size int) int {
	f := Fold(v, size)
	if f > size/2 {
		f -= size
	}
	return f
}
