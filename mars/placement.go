package mars

import (
	"fmt"
	"math/rand/v2"

	"go.redcode.dev/mars/redcode"
)

// Place chooses a base address for each program so that no two
// overlap (accounting for program length) and every pair is separated
// by at least cfg.MinDistance. Placement is deterministic given seed:
// the same seed and the same programs in the same order always
// produce the same bases.
func Place(cfg Config, programs []redcode.Program, seed uint64) ([]int, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	bases := make([]int, len(programs))
	for attempt := 0; attempt < 10000; attempt++ {
		ok := true
		for i := range programs {
			bases[i] = rng.IntN(cfg.CoreSize)
		}
		for i := range programs {
			for j := i + 1; j < len(programs); j++ {
				if !separated(cfg, bases[i], len(programs[i].Instructions), bases[j], len(programs[j].Instructions)) {
					ok = false
					break
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			return bases, nil
		}
	}
	return nil, fmt.Errorf("could not place %d warriors with min distance %d in core size %d", len(programs), cfg.MinDistance, cfg.CoreSize)
}

// separated reports whether two placements of the given lengths keep
// at least cfg.MinDistance between every pair of cells they occupy,
// measured circularly.
func separated(cfg Config, baseA, lenA, baseB, lenB int) bool {
	span := max(lenA, lenB) + cfg.MinDistance
	d := redcode.Fold(baseB-baseA, cfg.CoreSize)
	back := cfg.CoreSize - d
	return d >= span && back >= span
}
