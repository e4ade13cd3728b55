package audit

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/fault"
)

// #region phase
// Phase names the analysis stage an entry belongs to.
type Phase string

const (
	PhaseTrace     Phase = "trace"
	PhaseAxis      Phase = "axis"
	PhaseCoherence Phase = "coherence"
	PhaseEscalate  Phase = "escalate"
	PhaseResult    Phase = "result"
)

// #endregion phase

// #region entry
// Entry is one row in the analysis audit trail.
type Entry struct {
	ID        string
	Seq       int
	Phase     Phase
	Pattern   string // pattern name, empty for batch-level entries
	Severity  fault.Severity
	Message   string
	CreatedAt time.Time
}

// #endregion entry

// #region trail
// Trail is the in-memory audit record for one analysis call. Appends are
// safe from concurrent goroutines; the trail lives and dies with its
// gating context.
type Trail struct {
	mu      sync.Mutex
	entries []Entry
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Record appends a clean entry for the given phase.
func (t *Trail) Record(phase Phase, patternName, message string) {
	t.append(Entry{Phase: phase, Pattern: patternName, Message: message})
}

// Surface appends a fault entry and writes it to the process log. Trail
// implements fault.Surfacer so escalations always land in the audit record.
func (t *Trail) Surface(tol fault.Tolerance) {
	t.append(Entry{Phase: PhaseEscalate, Severity: tol.Severity, Message: tol.Message})
	log.Printf("[FAULT] severity=%s recovery=%s %s", tol.Severity, tol.Recovery, tol.Message)
}

// Entries returns a copy of the trail in append order.
func (t *Trail) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of recorded entries.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Trail) append(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e.ID = uuid.New().String()
	e.Seq = len(t.entries) + 1
	e.CreatedAt = time.Now()
	t.entries = append(t.entries, e)
}

// #endregion trail

var _ fault.Surfacer = (*Trail)(nil)
