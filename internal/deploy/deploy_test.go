package deploy

import (
	"testing"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

func TestChecklistHoldsWithoutStagingChecks(t *testing.T) {
	p := &pattern.Pattern[float64]{Name: "p"}
	checks := ChecklistValidator[float64]{}.For(p)

	next, err := axis.AdvanceDeployment(axis.DeploymentStage, checks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != axis.DeploymentStage {
		t.Fatalf("expected STAGE, got %s", next)
	}
}

func TestChecklistAdvancesThroughRollout(t *testing.T) {
	p := &pattern.Pattern[float64]{
		Name:      "p",
		Readiness: pattern.Readiness{StagingOK: true, DeployOK: true},
	}
	checks := ChecklistValidator[float64]{}.For(p)

	s := axis.DeploymentStage
	var err error
	s, err = axis.AdvanceDeployment(s, checks)
	if err != nil || s != axis.DeploymentDeploy {
		t.Fatalf("expected DEPLOY, got %s (%v)", s, err)
	}
	s, err = axis.AdvanceDeployment(s, checks)
	if err != nil || s != axis.DeploymentMonitor {
		t.Fatalf("expected MONITOR, got %s (%v)", s, err)
	}
	s, err = axis.AdvanceDeployment(s, checks)
	if err != nil || s != axis.DeploymentMonitor {
		t.Fatalf("MONITOR should be steady state, got %s (%v)", s, err)
	}
}

func TestChecklistDeployGateIndependentOfStaging(t *testing.T) {
	p := &pattern.Pattern[float64]{
		Name:      "p",
		Readiness: pattern.Readiness{StagingOK: true},
	}
	checks := ChecklistValidator[float64]{}.For(p)

	s, err := axis.AdvanceDeployment(axis.DeploymentDeploy, checks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != axis.DeploymentDeploy {
		t.Fatalf("deploy checks failing should hold at DEPLOY, got %s", s)
	}
}
