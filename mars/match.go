package mars

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/exec"
	"go.redcode.dev/mars/redcode"
	"go.redcode.dev/mars/trace"
)

// Result is a finished match's outcome.
type Result struct {
	Cycles  int
	Winner  *Warrior // nil on a draw
	Draw    bool
	Alive   []*Warrior
}

// Match runs one round: a fixed set of warriors loaded into one core,
// scheduled round-robin until one remains, all die, or MaxCycles is
// reached.
type Match struct {
	ID       string
	cfg      Config
	memory   *core.Memory
	warriors []*Warrior
	cycle    int
	tracer   trace.Tracer
}

// NewMatch places every program into a fresh core and returns a Match
// ready to Step or Run. Each call is tagged with a fresh UUID in ID so
// concurrent matches (e.g. from a Tournament) can be told apart
// without the caller having to invent an ID scheme; the CSV trace
// export does not include it.
func NewMatch(cfg Config, names []string, programs []redcode.Program, seed uint64, tracer trace.Tracer) (*Match, error) {
	if len(names) != len(programs) {
		return nil, fmt.Errorf("mars: %d names for %d programs", len(names), len(programs))
	}
	for i, p := range programs {
		if len(p.Instructions) > cfg.MaxLength {
			return nil, fmt.Errorf("mars: warrior %q has %d instructions, exceeds MaxLength %d", names[i], len(p.Instructions), cfg.MaxLength)
		}
	}
	bases, err := Place(cfg, programs, seed)
	if err != nil {
		return nil, err
	}
	if tracer == nil {
		tracer = trace.NullTracer{}
	}

	mem := core.New(cfg.CoreSize, cfg.ReadLimit, cfg.WriteLimit, tracer)
	warriors := make([]*Warrior, len(programs))
	for i, p := range programs {
		pid := i + 1
		warriors[i] = newWarrior(pid, names[i], p, bases[i])
		mem.Place(bases[i], p, pid)
	}

	return &Match{
		ID:       uuid.NewString(),
		cfg:      cfg,
		memory:   mem,
		warriors: warriors,
		tracer:   tracer,
	}, nil
}

// Memory exposes the underlying core, mainly for tests that assert on
// specific cell contents.
func (m *Match) Memory() *core.Memory { return m.memory }

// Warriors returns the match's warriors in placement order.
func (m *Match) Warriors() []*Warrior { return m.warriors }

func (m *Match) Cycle() int { return m.cycle }

// Step advances exactly one cycle: every warrior with a nonempty
// queue pops its head process, executes it, and enqueues whatever
// comes back. Returns the Result and true once the round has ended
// (one or zero warriors left alive, or MaxCycles reached); otherwise
// returns a zero Result and false.
func (m *Match) Step() (Result, bool) {
	m.cycle++
	m.tracer.Cycle(m.cycle)

	for _, w := range m.warriors {
		if !w.Alive() {
			continue
		}
		pc, ok := w.pop()
		if !ok {
			continue
		}
		next := exec.Step(m.memory, pc, w.PID, w.Base, m.tracer)
		w.push(next, m.cfg.MaxProcesses)
		if len(w.queue) == 0 {
			w.alive = false
		}
	}

	return m.checkDone()
}

func (m *Match) checkDone() (Result, bool) {
	var alive []*Warrior
	for _, w := range m.warriors {
		if w.Alive() {
			alive = append(alive, w)
		}
	}

	switch {
	case len(alive) == 0:
		return Result{Cycles: m.cycle, Draw: true}, true
	case len(alive) == 1:
		return Result{Cycles: m.cycle, Winner: alive[0], Alive: alive}, true
	case m.cycle >= m.cfg.MaxCycles:
		return Result{Cycles: m.cycle, Draw: true, Alive: alive}, true
	default:
		return Result{}, false
	}
}

// Run steps the match to completion, or until ctx is cancelled, in
// which case it returns the partial state as of the last completed
// cycle with Draw left false and Winner nil (an undetermined, not
// drawn, outcome).
func (m *Match) Run(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			var alive []*Warrior
			for _, w := range m.warriors {
				if w.Alive() {
					alive = append(alive, w)
				}
			}
			return Result{Cycles: m.cycle, Alive: alive}
		default:
		}
		if res, done := m.Step(); done {
			return res
		}
	}
}
