package odts

import (
	"errors"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region errors

// ErrNonTerminating reports a derivative chain that failed to stabilize
// within the per-chain step bound.
var ErrNonTerminating = errors.New("derivative chain did not terminate")

// ErrSafetyCeiling reports a termination order above the batch safety ceiling.
var ErrSafetyCeiling = errors.New("termination order exceeds safety ceiling")

// #endregion errors

// #region fault-state

// FaultState is the per-pattern tracer outcome.
type FaultState int

const (
	FaultClean FaultState = iota
	FaultPanic
)

// String returns the display name for a fault state.
func (f FaultState) String() string {
	switch f {
	case FaultClean:
		return "CLEAN"
	case FaultPanic:
		return "PANIC"
	}
	return "UNKNOWN"
}

// #endregion fault-state

// #region chain

// Chain is the derivative chain for one feature: the successive values of
// repeated derivative application, starting from the feature itself. A chain
// either terminates at a finite step within the bound or is rejected; there
// is no silently-passing unresolved representation.
type Chain[F any] struct {
	FeatureIndex    int
	Steps           []F // Steps[0] is the initial feature value
	Terminated      bool
	TerminationStep int // first step whose result equals its predecessor
}

// #endregion chain

// #region config

const (
	DefaultMaxSteps      = 64
	DefaultSafetyCeiling = 48
)

// Config holds the caller-supplied derivative operator pair and the two
// termination bounds. The safety ceiling is the stricter batch-level bound
// on termination order, distinct from the per-chain step bound.
type Config[F any] struct {
	Derivative    func(F) F
	Equal         func(F, F) bool
	MaxSteps      int
	SafetyCeiling int
}

// NewConfig wraps a derivative function and equality predicate with the
// default bounds.
func NewConfig[F any](derivative func(F) F, equal func(F, F) bool) Config[F] {
	return Config[F]{
		Derivative:    derivative,
		Equal:         equal,
		MaxSteps:      DefaultMaxSteps,
		SafetyCeiling: DefaultSafetyCeiling,
	}
}

// #endregion config

// #region result

// Result is the per-pattern tracer outcome: one chain per traced feature,
// the termination order, and the fault state. Read-only after Trace returns.
type Result[F any] struct {
	GUID        string
	PatternName string
	Before      pattern.Snapshot
	After       pattern.Snapshot
	Chains      []Chain[F]
	// TerminationOrder is the maximum termination step across terminated chains.
	TerminationOrder int
	FaultState       FaultState
	Reason           string // populated when FaultState is not Clean
}

// Terminated reports whether every traced chain stabilized.
func (r *Result[F]) Terminated() bool {
	return r.FaultState == FaultClean
}

// #endregion result
