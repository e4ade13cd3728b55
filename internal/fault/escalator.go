package fault

import (
	"fmt"
	"log"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
)

// #region table

// escalationTable maps (coherence classification, tracer fault state) to a
// fault record. The Insufficient and Unknown rows do not distinguish the
// tracer state beyond a panic override.
var escalationTable = map[coherence.PatternCoherence]map[odts.FaultState]Tolerance{
	coherence.CoherenceValid: {
		odts.FaultClean: {Severity: SeverityClean, Recovery: RecoveryNone, Message: "all patterns coherent and derivative-terminated"},
		odts.FaultPanic: {Severity: SeverityPanic, Recovery: RecoverySystemReset, Message: "derivative panic despite coherent batch"},
	},
	coherence.CoherenceInsufficient: {
		odts.FaultClean: {Severity: SeverityWarning, Recovery: RecoveryRequestMoreData, Message: "insufficient pattern data for coherence classification"},
		odts.FaultPanic: {Severity: SeverityWarning, Recovery: RecoveryRequestMoreData, Message: "insufficient pattern data for coherence classification"},
	},
	coherence.CoherenceIncoherent: {
		odts.FaultClean: {Severity: SeverityError, Recovery: RecoveryRollback, Message: "pattern coherence lost across batch"},
		odts.FaultPanic: {Severity: SeverityPanic, Recovery: RecoverySystemReset, Message: "mathematical inconsistency detected in derivative trace"},
	},
	coherence.CoherenceUnknown: {
		odts.FaultClean: {Severity: SeverityWarning, Recovery: RecoveryRequestMoreData, Message: "coherence state unresolved"},
		odts.FaultPanic: {Severity: SeverityPanic, Recovery: RecoverySystemReset, Message: "analysis aborted before coherence classification"},
	},
}

// #endregion table

// #region escalator

// Escalator reduces gate outcomes to a fault record and surfaces every
// record of severity Warning or above.
type Escalator struct {
	surfacer Surfacer
}

// NewEscalator returns an Escalator. A nil surfacer falls back to the log
// surfacer so surfacing can never be skipped.
func NewEscalator(s Surfacer) *Escalator {
	if s == nil {
		s = LogSurfacer{}
	}
	return &Escalator{surfacer: s}
}

// Escalate looks up the decision table row for the given coherence
// classification and tracer fault state. The optional detail is appended to
// the diagnostic. Combinations outside the table escalate as a handled
// Exception rather than passing silently.
func (e *Escalator) Escalate(c coherence.PatternCoherence, f odts.FaultState, detail string) Tolerance {
	tol, ok := escalationTable[c][f]
	if !ok {
		tol = Tolerance{
			Severity: SeverityException,
			Recovery: RecoveryRollback,
			Message:  fmt.Sprintf("unmapped escalation (%s, %s)", c, f),
		}
	}
	if detail != "" {
		tol.Message = tol.Message + ": " + detail
	}
	if tol.Surfaceable() {
		e.surfacer.Surface(tol)
	}
	return tol
}

// #endregion escalator

// #region log-surfacer

// LogSurfacer writes fault records to the process log.
type LogSurfacer struct{}

// Surface logs the record.
func (LogSurfacer) Surface(t Tolerance) {
	log.Printf("[FAULT] severity=%s recovery=%s %s", t.Severity, t.Recovery, t.Message)
}

// #endregion log-surfacer
