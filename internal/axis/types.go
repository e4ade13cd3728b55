package axis

import "errors"

// ErrUnreachableState reports an axis state value outside the machine's
// defined range. Transition functions return it instead of guessing.
var ErrUnreachableState = errors.New("unreachable axis state")

// #region workflow
// WorkflowState is the X axis: task progress for one pattern.
type WorkflowState int

const (
	WorkflowTodo WorkflowState = iota
	WorkflowDoing
	WorkflowDone
)

// String returns the display name for a workflow state.
func (s WorkflowState) String() string {
	switch s {
	case WorkflowTodo:
		return "TODO"
	case WorkflowDoing:
		return "DOING"
	case WorkflowDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// WorkflowInputs carries the evidence consulted by workflow transitions.
type WorkflowInputs struct {
	DepsResolved bool
	SpecPresent  bool
	TestsPassed  bool
	Coverage     float64
}

// WorkflowConfig holds the guard thresholds for the workflow axis.
type WorkflowConfig struct {
	CoverageFloor float64 // Doing→Done requires coverage at or above this
}

// DefaultWorkflowConfig returns the standard workflow guards.
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{CoverageFloor: 0.95}
}

// #endregion workflow

// #region validation
// ValidationState is the Y axis: policy validation progress for one pattern.
type ValidationState int

const (
	ValidationOpen ValidationState = iota
	ValidationValidate
	ValidationClose
)

// String returns the display name for a validation state.
func (s ValidationState) String() string {
	switch s {
	case ValidationOpen:
		return "OPEN"
	case ValidationValidate:
		return "VALIDATE"
	case ValidationClose:
		return "CLOSE"
	}
	return "UNKNOWN"
}

// #endregion validation

// #region deployment
// DeploymentState is the Z axis: rollout progress for one pattern.
type DeploymentState int

const (
	DeploymentStage DeploymentState = iota
	DeploymentDeploy
	DeploymentMonitor
)

// String returns the display name for a deployment state.
func (s DeploymentState) String() string {
	switch s {
	case DeploymentStage:
		return "STAGE"
	case DeploymentDeploy:
		return "DEPLOY"
	case DeploymentMonitor:
		return "MONITOR"
	}
	return "UNKNOWN"
}

// DeploymentValidator supplies the external readiness checks consulted by the
// deployment axis. Each check returns the next state for the pattern the
// validator is bound to; the machine only sequences which check runs.
type DeploymentValidator interface {
	CheckStaging() DeploymentState
	CheckDeployment() DeploymentState
	CheckMonitoring() DeploymentState
}

// #endregion deployment
