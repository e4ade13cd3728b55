package coherence

import (
	"errors"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region errors

// ErrCrossCheck reports a pair that failed the cross-derivative consistency
// predicate before any metric was computed.
var ErrCrossCheck = errors.New("cross-derivative consistency failed")

// ErrIncoherentPair reports a pairwise metric below the coherence threshold.
var ErrIncoherentPair = errors.New("coherence metric below threshold")

// #endregion errors

// #region classification

// PatternCoherence is the aggregate coherence classification for a batch.
// Unknown is the zero value: unclassified, or aborted by the caller.
type PatternCoherence int

const (
	CoherenceUnknown PatternCoherence = iota
	CoherenceValid
	CoherenceInsufficient
	CoherenceIncoherent
)

// String returns the display name for a coherence classification.
func (c PatternCoherence) String() string {
	switch c {
	case CoherenceUnknown:
		return "UNKNOWN"
	case CoherenceValid:
		return "VALID"
	case CoherenceInsufficient:
		return "INSUFFICIENT"
	case CoherenceIncoherent:
		return "INCOHERENT"
	}
	return "UNKNOWN"
}

// #endregion classification

// #region property-set

// PropertySet is the per-pattern summary vector compared pairwise by the
// gate. Derivation is a pure function of the pattern.
type PropertySet struct {
	PatternName string
	Dimensions  []float64
}

// #endregion property-set

// #region pair

// Pair keys the upper-triangular metric table; always I < J.
type Pair struct {
	I, J int
}

// #endregion pair

// #region alignment

// Alignment is the gate output: the classification, the pairwise metric
// table, and, for incoherent batches, the first offending pair.
type Alignment struct {
	Classification PatternCoherence
	Metrics        map[Pair]float64
	FailedPair     *Pair
	Reason         string
}

// Metric looks up the pairwise metric for (i, j) in either order.
func (a Alignment) Metric(i, j int) (float64, bool) {
	if i > j {
		i, j = j, i
	}
	m, ok := a.Metrics[Pair{I: i, J: j}]
	return m, ok
}

// #endregion alignment

// #region gate-config

// Config holds the gate thresholds and the three injectable functions: the
// property derivation, the cross-consistency predicate, and the pairwise
// metric. Threshold and predicate are parameters, never hard-wired.
type Config[F any] struct {
	Threshold      float64 // minimum pairwise metric for a Valid batch
	OrderTolerance int     // max termination-order gap tolerated by the default cross-check

	Properties func(*pattern.Pattern[F]) PropertySet
	CrossCheck func(a, b *odts.Result[F]) error // nil means consistent
	Metric     func(a, b PropertySet) float64
}

// NewConfig wraps a property derivation with the default threshold,
// tolerance, cross-check, and metric.
func NewConfig[F any](properties func(*pattern.Pattern[F]) PropertySet) Config[F] {
	return Config[F]{
		Threshold:      DefaultThreshold,
		OrderTolerance: DefaultOrderTolerance,
		Properties:     properties,
	}
}

const (
	DefaultThreshold      = 0.95
	DefaultOrderTolerance = 2
)

// #endregion gate-config
