package deploy

import (
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region validator

// Validator binds deployment readiness checks to individual patterns. The
// deployment axis consumes the per-state checks it yields.
type Validator[F any] interface {
	For(p *pattern.Pattern[F]) axis.DeploymentValidator
}

// #endregion validator

// #region checklist

// ChecklistValidator is the default deployment validator: it reads the
// pattern's recorded readiness flags. Staging advances once staging checks
// pass, deployment advances once deploy checks pass, and monitoring is the
// steady terminal state.
type ChecklistValidator[F any] struct{}

// For returns the axis-facing checks for one pattern.
func (ChecklistValidator[F]) For(p *pattern.Pattern[F]) axis.DeploymentValidator {
	return patternChecks[F]{p: p}
}

type patternChecks[F any] struct {
	p *pattern.Pattern[F]
}

func (c patternChecks[F]) CheckStaging() axis.DeploymentState {
	if c.p.Readiness.StagingOK {
		return axis.DeploymentDeploy
	}
	return axis.DeploymentStage
}

func (c patternChecks[F]) CheckDeployment() axis.DeploymentState {
	if c.p.Readiness.DeployOK {
		return axis.DeploymentMonitor
	}
	return axis.DeploymentDeploy
}

func (c patternChecks[F]) CheckMonitoring() axis.DeploymentState {
	return axis.DeploymentMonitor
}

// #endregion checklist

var _ Validator[float64] = ChecklistValidator[float64]{}
