package axis

import "fmt"

// #region advance-workflow
// AdvanceWorkflow attempts one workflow transition. Unmet guards keep the
// current state; Done is terminal. States never regress within one call.
func AdvanceWorkflow(s WorkflowState, in WorkflowInputs, cfg WorkflowConfig) (WorkflowState, error) {
	switch s {
	case WorkflowTodo:
		if in.DepsResolved && in.SpecPresent {
			return WorkflowDoing, nil
		}
		return WorkflowTodo, nil
	case WorkflowDoing:
		if in.TestsPassed && in.Coverage >= cfg.CoverageFloor {
			return WorkflowDone, nil
		}
		return WorkflowDoing, nil
	case WorkflowDone:
		return WorkflowDone, nil
	}
	return s, fmt.Errorf("workflow state %d: %w", int(s), ErrUnreachableState)
}

// #endregion advance-workflow

// #region advance-validation
// AdvanceValidation attempts one validation transition from the three policy
// verdicts. A cost or marker violation pins the pattern at Open; Close is
// reached only when all three verdicts hold at once, otherwise a pattern in
// progress stays at Validate.
func AdvanceValidation(s ValidationState, costOK, markersOK, traceOK bool) (ValidationState, error) {
	switch s {
	case ValidationOpen:
		if costOK && markersOK {
			return ValidationValidate, nil
		}
		return ValidationOpen, nil
	case ValidationValidate:
		if costOK && markersOK && traceOK {
			return ValidationClose, nil
		}
		return ValidationValidate, nil
	case ValidationClose:
		return ValidationClose, nil
	}
	return s, fmt.Errorf("validation state %d: %w", int(s), ErrUnreachableState)
}

// #endregion advance-validation

// #region advance-deployment
// AdvanceDeployment attempts one deployment transition by delegating to the
// validator check for the current state and consuming the state it returns.
// A validator cannot force regression: a returned state behind the current
// one is clamped to the current state.
func AdvanceDeployment(s DeploymentState, v DeploymentValidator) (DeploymentState, error) {
	var next DeploymentState
	switch s {
	case DeploymentStage:
		next = v.CheckStaging()
	case DeploymentDeploy:
		next = v.CheckDeployment()
	case DeploymentMonitor:
		next = v.CheckMonitoring()
	default:
		return s, fmt.Errorf("deployment state %d: %w", int(s), ErrUnreachableState)
	}
	if next < DeploymentStage || next > DeploymentMonitor {
		return s, fmt.Errorf("deployment validator returned state %d: %w", int(next), ErrUnreachableState)
	}
	if next < s {
		next = s
	}
	return next, nil
}

// #endregion advance-deployment

// #region aggregates
// AggregateWorkflow returns the least-advanced workflow state in the batch.
func AggregateWorkflow(states []WorkflowState) WorkflowState {
	agg := WorkflowDone
	if len(states) == 0 {
		return WorkflowTodo
	}
	for _, s := range states {
		if s < agg {
			agg = s
		}
	}
	return agg
}

// AggregateValidation returns the least-advanced validation state in the batch.
func AggregateValidation(states []ValidationState) ValidationState {
	agg := ValidationClose
	if len(states) == 0 {
		return ValidationOpen
	}
	for _, s := range states {
		if s < agg {
			agg = s
		}
	}
	return agg
}

// AggregateDeployment returns the least-advanced deployment state in the batch.
func AggregateDeployment(states []DeploymentState) DeploymentState {
	agg := DeploymentMonitor
	if len(states) == 0 {
		return DeploymentStage
	}
	for _, s := range states {
		if s < agg {
			agg = s
		}
	}
	return agg
}

// #endregion aggregates
