package pattern

import (
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
)

// #region pattern
// Pattern is one gatable entity in a batch: an ordered feature payload plus
// the three axis states and the policy inputs consulted by the gates. The
// feature kind F is opaque to the engine; only the caller-supplied derivative
// function and equality predicate ever interpret it.
type Pattern[F any] struct {
	Name     string
	Features []F

	// Axis states, mutated only by the axis machines during one gating call.
	Workflow   axis.WorkflowState
	Validation axis.ValidationState
	Deployment axis.DeploymentState

	// Policy inputs.
	Cost    float64  // policy cost metric, checked against the cost ceiling
	Markers []string // compliance markers carried by the pattern

	// External evidence consulted by the axis guards.
	Readiness Readiness
}

// FeatureCount returns the number of features in the pattern.
func (p *Pattern[F]) FeatureCount() int {
	return len(p.Features)
}

// HasMarker reports whether the pattern carries the given compliance marker.
func (p *Pattern[F]) HasMarker(marker string) bool {
	for _, m := range p.Markers {
		if m == marker {
			return true
		}
	}
	return false
}

// #endregion pattern

// #region readiness
// Readiness carries the external evidence flags behind the axis guards:
// workflow evidence for the X axis and rollout checks for the Z axis.
type Readiness struct {
	DepsResolved bool
	SpecPresent  bool
	TestsPassed  bool
	Coverage     float64

	StagingOK bool
	DeployOK  bool
}

// #endregion readiness

// #region snapshot
// Snapshot is a point-in-time copy of a pattern's gating-relevant state,
// captured by the tracer before and after a trace.
type Snapshot struct {
	Name         string
	FeatureCount int
	Cost         float64
	Workflow     axis.WorkflowState
	Validation   axis.ValidationState
	Deployment   axis.DeploymentState
}

// Snapshot captures the pattern's current gating state.
func (p *Pattern[F]) Snapshot() Snapshot {
	return Snapshot{
		Name:         p.Name,
		FeatureCount: p.FeatureCount(),
		Cost:         p.Cost,
		Workflow:     p.Workflow,
		Validation:   p.Validation,
		Deployment:   p.Deployment,
	}
}

// #endregion snapshot
