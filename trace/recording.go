package trace

import (
	"fmt"
	"strings"
	"sync"

	"go.redcode.dev/mars/redcode"
)

// Record is one executed instruction, shaped to match the exported
// CSV header exactly: Cycle;PID;Address;Instruction;A-Pointer;A-Load1;
// A-Load2;A-Store;B-Pointer;B-Load1;B-Load2;B-Store;Store1;Store2;PCS.
type Record struct {
	Cycle       int
	PID         int
	Address     int
	Instruction string
	APointer    int
	ALoad1      string
	ALoad2      string
	AStore      string
	BPointer    int
	BLoad1      string
	BLoad2      string
	BStore      string
	Store1      string
	Store2      string
	PCS         string
}

func (r Record) row() []string {
	return []string{
		itoa(r.Cycle), itoa(r.PID), itoa(r.Address), r.Instruction,
		itoa(r.APointer), r.ALoad1, r.ALoad2, r.AStore,
		itoa(r.BPointer), r.BLoad1, r.BLoad2, r.BStore,
		r.Store1, r.Store2, r.PCS,
	}
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

// ring is a fixed-capacity FIFO that drops its oldest entry once full,
// the bounded buffer the tracer promises for both the global history
// and each warrior's per-PID history.
type ring struct {
	buf   []Record
	cap   int
	start int
}

func newRing(cap int) *ring {
	if cap <= 0 {
		cap = 1
	}
	return &ring{cap: cap}
}

func (r *ring) push(rec Record) {
	if len(r.buf) < r.cap {
		r.buf = append(r.buf, rec)
		return
	}
	r.buf[r.start] = rec
	r.start = (r.start + 1) % r.cap
}

func (r *ring) snapshot() []Record {
	out := make([]Record, 0, len(r.buf))
	for i := 0; i < len(r.buf); i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}

// RecordingTracer accumulates Records into a bounded global ring and
// a bounded ring per PID, and optionally fans every finished Record
// out on a channel for a live consumer, the same producer/observer
// split as an ordinary message-stream watcher.
type RecordingTracer struct {
	mu       sync.Mutex
	global   *ring
	perPID   map[int]*ring
	perPIDCap int
	cycle    int

	cur        Record
	recordingA bool

	Records chan Record
}

// NewRecordingTracer builds a tracer whose global history holds up to
// globalCap records and whose per-PID histories each hold up to
// perPIDCap. If chanCap > 0, Records is a buffered channel that
// receives every finalized Record; a slow or absent consumer never
// blocks the running match since sends are non-blocking and drop on
// a full channel.
func NewRecordingTracer(globalCap, perPIDCap, chanCap int) *RecordingTracer {
	t := &RecordingTracer{
		global:    newRing(globalCap),
		perPID:    map[int]*ring{},
		perPIDCap: perPIDCap,
	}
	if chanCap > 0 {
		t.Records = make(chan Record, chanCap)
	}
	return t
}

func (t *RecordingTracer) BeginInstruction(address int, instr redcode.Instruction, pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cur = Record{Cycle: t.cycle, PID: pid, Address: address, Instruction: instr.String()}
}

func (t *RecordingTracer) Cycle(n int) {
	t.mu.Lock()
	t.cycle = n
	t.mu.Unlock()
}

func (t *RecordingTracer) BeginAOperand() {
	t.mu.Lock()
	t.recordingA = true
	t.mu.Unlock()
}

func (t *RecordingTracer) BeginBOperand() {
	t.mu.Lock()
	t.recordingA = false
	t.mu.Unlock()
}

func (t *RecordingTracer) LogOperand(pointer int, target, postIncrement redcode.Instruction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recordingA {
		t.cur.APointer, t.cur.ALoad1, t.cur.ALoad2 = pointer, target.String(), postIncrement.String()
	} else {
		t.cur.BPointer, t.cur.BLoad1, t.cur.BLoad2 = pointer, target.String(), postIncrement.String()
	}
}

func (t *RecordingTracer) LogLoad(addr int, instr redcode.Instruction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recordingA {
		t.cur.AStore = instr.String()
	} else {
		t.cur.BStore = instr.String()
	}
}

func (t *RecordingTracer) LogStore(addr int, instr redcode.Instruction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur.Store1 == "" {
		t.cur.Store1 = instr.String()
	} else {
		t.cur.Store2 = instr.String()
	}
}

func (t *RecordingTracer) Operation(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cur.Instruction != "" {
		t.cur.Instruction = t.cur.Instruction + " (" + text + ")"
	}
}

func (t *RecordingTracer) ProgramCounters(pid int, queue []int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	strs := make([]string, len(queue))
	for i, q := range queue {
		strs[i] = itoa(q)
	}
	t.cur.PCS = strings.Join(strs, "|")

	rec := t.cur
	t.global.push(rec)
	pr, ok := t.perPID[pid]
	if !ok {
		pr = newRing(t.perPIDCap)
		t.perPID[pid] = pr
	}
	pr.push(rec)

	if t.Records != nil {
		select {
		case t.Records <- rec:
		default:
		}
	}
}

// Global returns a snapshot of the global ring buffer, oldest first.
func (t *RecordingTracer) Global() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.global.snapshot()
}

// ForPID returns a snapshot of one warrior's ring buffer, oldest
// first. Returns nil if the PID never executed.
func (t *RecordingTracer) ForPID(pid int) []Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	pr, ok := t.perPID[pid]
	if !ok {
		return nil
	}
	return pr.snapshot()
}

var _ Tracer = (*RecordingTracer)(nil)
