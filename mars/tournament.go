package mars

import (
	"context"
	"sync"

	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

// Tournament runs N independent rounds of the same warrior set and
// accumulates per-warrior win and overall draw tallies (a round with
// no winner, including a cancelled one, counts as a draw). Rounds
// never share state beyond
// this aggregator: each gets its own core, scheduler, and tracer.
type Tournament struct {
	cfg      Config
	names    []string
	programs []redcode.Program
	rounds   int
	seedBase uint64

	mu      sync.Mutex
	wins    []int
	draws   int
	metrics *Metrics
}

// NewTournament prepares a tournament of rounds independent matches
// between the given named programs. seedBase is mixed with the round
// index so every round gets its own deterministic placement seed
// while the whole tournament stays reproducible from one seed.
func NewTournament(cfg Config, names []string, programs []redcode.Program, rounds int, seedBase uint64, metrics *Metrics) *Tournament {
	return &Tournament{
		cfg:      cfg,
		names:    names,
		programs: programs,
		rounds:   rounds,
		seedBase: seedBase,
		wins:     make([]int, len(programs)),
		metrics:  metrics,
	}
}

// TournamentResult tallies outcomes across every round.
type TournamentResult struct {
	Wins  map[string]int
	Draws int
	Total int
}

// Run executes every round, optionally in parallel (one match per
// goroutine), and returns the aggregated tally. Concurrency is safe
// because each round's Match owns its own core.Memory; the only
// shared state is this Tournament's tally, guarded by mu.
func (t *Tournament) Run(ctx context.Context, concurrent bool) (TournamentResult, error) {
	run := func(round int) error {
		seed := t.seedBase ^ uint64(round)*0x2545f4914f6cdd1d
		match, err := NewMatch(t.cfg, t.names, t.programs, seed, trace.NullTracer{})
		if err != nil {
			return err
		}
		res := match.Run(ctx)

		t.mu.Lock()
		defer t.mu.Unlock()
		if res.Draw || res.Winner == nil {
			t.draws++
		} else {
			for i, name := range t.names {
				if name == res.Winner.Name {
					t.wins[i]++
				}
			}
		}
		if t.metrics != nil {
			t.metrics.observeRound(res)
		}
		return nil
	}

	if !concurrent {
		for r := 0; r < t.rounds; r++ {
			if err := run(r); err != nil {
				return TournamentResult{}, err
			}
		}
	} else {
		var wg sync.WaitGroup
		errs := make(chan error, t.rounds)
		for r := 0; r < t.rounds; r++ {
			wg.Add(1)
			go func(r int) {
				defer wg.Done()
				if err := run(r); err != nil {
					errs <- err
				}
			}(r)
		}
		wg.Wait()
		close(errs)
		if err := <-errs; err != nil {
			return TournamentResult{}, err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	wins := make(map[string]int, len(t.names))
	for i, name := range t.names {
		wins[name] = t.wins[i]
	}
	return TournamentResult{Wins: wins, Draws: t.draws, Total: t.rounds}, nil
}
