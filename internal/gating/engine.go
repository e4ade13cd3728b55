// Package gating runs the full analysis pipeline over a pattern batch:
// derivative tracing, axis progression, coherence classification, fault
// escalation, and the final cross-verified result.
package gating

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/audit"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/deploy"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/fault"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/policy"
)

// #region construction

// Engine wires the phase collaborators together. One Engine serves any
// number of Analyze calls; per-call state lives in the Context.
type Engine[F any] struct {
	tracer   *odts.Tracer[F]
	gate     *coherence.Gate[F]
	policy   *policy.Engine[F]
	deploy   deploy.Validator[F]
	workflow axis.WorkflowConfig
}

// NewEngine builds an Engine from cfg. A nil validator falls back to the
// readiness-checklist validator.
func NewEngine[F any](cfg Config[F], validator deploy.Validator[F]) (*Engine[F], error) {
	tracer, err := odts.NewTracer(cfg.Tracer)
	if err != nil {
		return nil, fmt.Errorf("gating: tracer: %w", err)
	}
	gate, err := coherence.NewGate(cfg.Gate)
	if err != nil {
		return nil, fmt.Errorf("gating: gate: %w", err)
	}
	if cfg.Workflow.CoverageFloor <= 0 {
		cfg.Workflow = axis.DefaultWorkflowConfig()
	}
	if validator == nil {
		validator = deploy.ChecklistValidator[F]{}
	}
	return &Engine[F]{
		tracer:   tracer,
		gate:     gate,
		policy:   policy.NewEngine[F](cfg.Policy),
		deploy:   validator,
		workflow: cfg.Workflow,
	}, nil
}

// #endregion construction

// #region analyze

// Analyze runs the pipeline over the batch and returns the populated
// Context. Domain failures (non-terminating chains, ceiling breaches,
// incoherence) are reported through Context.Result and Context.Fault, not
// through the error return. A non-nil error means the call itself could not
// complete: external cancellation, or an axis state outside its machine.
func (e *Engine[F]) Analyze(ctx context.Context, patterns []*pattern.Pattern[F]) (*Context[F], error) {
	trail := audit.NewTrail()
	esc := fault.NewEscalator(trail)
	gc := &Context[F]{
		Patterns:     patterns,
		PatternCount: len(patterns),
		Trail:        trail,
		Result:       ResultFaultDetected,
	}

	if len(patterns) == 0 {
		return e.abort(gc, esc, "empty pattern batch"), nil
	}
	for i, p := range patterns {
		if p == nil {
			return e.abort(gc, esc, fmt.Sprintf("nil pattern at index %d", i)), nil
		}
	}

	results, err := e.tracer.TraceBatch(ctx, patterns)
	gc.Results = results
	for _, r := range results {
		if r != nil {
			trail.Record(audit.PhaseTrace, r.PatternName,
				fmt.Sprintf("order=%d state=%s", r.TerminationOrder, r.FaultState))
		}
	}
	if err != nil {
		if !errors.Is(err, odts.ErrNonTerminating) && !errors.Is(err, odts.ErrSafetyCeiling) {
			return gc, err
		}
		return e.abort(gc, esc, err.Error()), nil
	}

	if err := e.advanceAxes(gc); err != nil {
		return gc, err
	}

	gc.Alignment = e.gate.Classify(ctx, patterns, results)
	trail.Record(audit.PhaseCoherence, "",
		fmt.Sprintf("classification=%s pairs=%d", gc.Alignment.Classification, len(gc.Alignment.Metrics)))
	if ctx.Err() != nil {
		return gc, ctx.Err()
	}

	worst := odts.FaultClean
	for _, r := range results {
		if r != nil && r.FaultState == odts.FaultPanic {
			worst = odts.FaultPanic
		}
	}
	gc.Fault = esc.Escalate(gc.Alignment.Classification, worst, gc.Alignment.Reason)
	gc.Result = crossVerify(gc.Alignment.Classification, worst)
	trail.Record(audit.PhaseResult, "", gc.Result.String())
	log.Printf("[GATE] analyze: patterns=%d coherence=%s severity=%s result=%s",
		gc.PatternCount, gc.Alignment.Classification, gc.Fault.Severity, gc.Result)
	return gc, nil
}

// abort short-circuits the pipeline before coherence classification ran.
func (e *Engine[F]) abort(gc *Context[F], esc *fault.Escalator, detail string) *Context[F] {
	gc.Alignment.Classification = coherence.CoherenceUnknown
	gc.Fault = esc.Escalate(coherence.CoherenceUnknown, odts.FaultPanic, detail)
	gc.Result = ResultFaultDetected
	gc.Trail.Record(audit.PhaseResult, "", gc.Result.String())
	log.Printf("[GATE] analyze aborted: %s", detail)
	return gc
}

// advanceAxes runs one transition step on every axis of every pattern and
// fills the per-pattern verdicts and the batch aggregates.
func (e *Engine[F]) advanceAxes(gc *Context[F]) error {
	n := len(gc.Patterns)
	gc.Verdicts = make([]policy.Verdict, n)
	wf := make([]axis.WorkflowState, n)
	vd := make([]axis.ValidationState, n)
	dp := make([]axis.DeploymentState, n)

	for i, p := range gc.Patterns {
		in := axis.WorkflowInputs{
			DepsResolved: p.Readiness.DepsResolved,
			SpecPresent:  p.Readiness.SpecPresent,
			TestsPassed:  p.Readiness.TestsPassed,
			Coverage:     p.Readiness.Coverage,
		}
		next, err := axis.AdvanceWorkflow(p.Workflow, in, e.workflow)
		if err != nil {
			return fmt.Errorf("workflow axis for %q: %w", p.Name, err)
		}
		p.Workflow, wf[i] = next, next

		verdict := e.policy.Evaluate(p, gc.Results[i])
		gc.Verdicts[i] = verdict
		vnext, err := axis.AdvanceValidation(p.Validation, verdict.CostOK, verdict.MarkersOK, verdict.TraceOK)
		if err != nil {
			return fmt.Errorf("validation axis for %q: %w", p.Name, err)
		}
		p.Validation, vd[i] = vnext, vnext

		dnext, err := axis.AdvanceDeployment(p.Deployment, e.deploy.For(p))
		if err != nil {
			return fmt.Errorf("deployment axis for %q: %w", p.Name, err)
		}
		p.Deployment, dp[i] = dnext, dnext

		gc.Trail.Record(audit.PhaseAxis, p.Name,
			fmt.Sprintf("workflow=%s validation=%s deployment=%s", next, vnext, dnext))
		if !verdict.AllPassed {
			gc.Trail.Record(audit.PhaseAxis, p.Name, "policy: "+verdict.Reason)
		}
	}

	gc.Aggregate = AxisStates{
		Workflow:   axis.AggregateWorkflow(wf),
		Validation: axis.AggregateValidation(vd),
		Deployment: axis.AggregateDeployment(dp),
	}
	return nil
}

// crossVerify maps the coherence classification and the worst per-pattern
// fault state onto the terminal result. Insufficient and Unknown take
// precedence over the incoherent branch.
func crossVerify(c coherence.PatternCoherence, worst odts.FaultState) Result {
	switch {
	case c == coherence.CoherenceValid && worst == odts.FaultClean:
		return ResultValid
	case c == coherence.CoherenceInsufficient || c == coherence.CoherenceUnknown:
		return ResultPatternUncertain
	case c == coherence.CoherenceIncoherent && worst == odts.FaultClean:
		return ResultDerivativeTerminated
	default:
		return ResultFaultDetected
	}
}

// #endregion analyze
