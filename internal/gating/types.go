package gating

import (
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/audit"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/fault"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/policy"
)

// #region result

// Result is the terminal outcome of one Analyze call over a pattern batch.
type Result int

const (
	// ResultFaultDetected is the zero value; a context is never born passing.
	ResultFaultDetected Result = iota
	ResultValid
	ResultDerivativeTerminated
	ResultPatternUncertain
)

func (r Result) String() string {
	switch r {
	case ResultValid:
		return "VALID"
	case ResultDerivativeTerminated:
		return "DERIVATIVE_TERMINATED"
	case ResultPatternUncertain:
		return "PATTERN_UNCERTAIN"
	case ResultFaultDetected:
		return "FAULT_DETECTED"
	default:
		return "UNKNOWN"
	}
}

// #endregion result

// #region context

// AxisStates holds the batch-level aggregate for each axis. An aggregate is
// the least-advanced state across the batch, so a single straggler holds the
// whole batch back.
type AxisStates struct {
	Workflow   axis.WorkflowState
	Validation axis.ValidationState
	Deployment axis.DeploymentState
}

// Context carries everything one Analyze call produced: the batch, the
// per-pattern trace results and policy verdicts, the coherence alignment,
// the escalated fault, and the audit trail. It is built fresh per call and
// never shared between calls.
type Context[F any] struct {
	Patterns     []*pattern.Pattern[F]
	PatternCount int

	Results  []*odts.Result[F]
	Verdicts []policy.Verdict

	Alignment coherence.Alignment
	Fault     fault.Tolerance
	Aggregate AxisStates

	Trail  *audit.Trail
	Result Result
}

// #endregion context

// #region config

// Config bundles the per-phase configs an Engine is wired with.
type Config[F any] struct {
	Tracer   odts.Config[F]
	Gate     coherence.Config[F]
	Policy   policy.Config
	Workflow axis.WorkflowConfig
}

// #endregion config
