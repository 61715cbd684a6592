package mars

import "go.redcode.dev/mars/redcode"

// Warrior is one competitor's runtime state: its assembled program,
// the PID the executor tags its writes with, its placement base, and
// the FIFO of live process program counters.
type Warrior struct {
	Program redcode.Program
	PID     int
	Base    int
	Name    string

	queue []int
	alive bool
}

func newWarrior(pid int, name string, prog redcode.Program, base int) *Warrior {
	return &Warrior{
		Program: prog,
		PID:     pid,
		Base:    base,
		Name:    name,
		queue:   []int{base + prog.Start},
		alive:   true,
	}
}

// Alive reports whether this warrior still has at least one process.
func (w *Warrior) Alive() bool { return w.alive && len(w.queue) > 0 }

// Processes returns the current number of live processes queued.
func (w *Warrior) Processes() int { return len(w.queue) }

func (w *Warrior) pop() (int, bool) {
	if len(w.queue) == 0 {
		return 0, false
	}
	pc := w.queue[0]
	w.queue = w.queue[1:]
	return pc, true
}

// push enqueues next PCs at the tail, dropping any SPL children that
// would exceed maxProcesses while always keeping the parent.
func (w *Warrior) push(next []int, maxProcesses int) {
	for _, pc := range next {
		if len(w.queue) >= maxProcesses {
			return
		}
		w.queue = append(w.queue, pc)
	}
}
