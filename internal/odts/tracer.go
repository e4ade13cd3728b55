package odts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region tracer

// Tracer proves derivative-chain termination for patterns. It is stateless
// beyond its config and safe for use from concurrent goroutines.
type Tracer[F any] struct {
	cfg Config[F]
}

// NewTracer validates the config and returns a Tracer.
func NewTracer[F any](cfg Config[F]) (*Tracer[F], error) {
	if cfg.Derivative == nil {
		return nil, fmt.Errorf("odts: derivative function is required")
	}
	if cfg.Equal == nil {
		return nil, fmt.Errorf("odts: equality predicate is required")
	}
	if cfg.MaxSteps <= 0 {
		return nil, fmt.Errorf("odts: max steps %d must be positive", cfg.MaxSteps)
	}
	if cfg.SafetyCeiling <= 0 || cfg.SafetyCeiling >= cfg.MaxSteps {
		return nil, fmt.Errorf("odts: safety ceiling %d must be in (0, %d)", cfg.SafetyCeiling, cfg.MaxSteps)
	}
	return &Tracer[F]{cfg: cfg}, nil
}

// SafetyCeiling returns the configured batch-level termination-order bound.
func (t *Tracer[F]) SafetyCeiling() int {
	return t.cfg.SafetyCeiling
}

// #endregion tracer

// #region trace

// Trace computes the derivative chain for every feature in order. The first
// chain that fails to stabilize marks the result Panic and stops tracing for
// this pattern; remaining features are not traced. The context is polled
// between features so a batch-level abort cancels in-flight traces.
func (t *Tracer[F]) Trace(ctx context.Context, p *pattern.Pattern[F]) (*Result[F], error) {
	res := &Result[F]{
		GUID:        uuid.New().String(),
		PatternName: p.Name,
		Before:      p.Snapshot(),
		FaultState:  FaultClean,
	}
	for i, f := range p.Features {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chain := t.traceFeature(i, f)
		res.Chains = append(res.Chains, chain)
		if !chain.Terminated {
			res.FaultState = FaultPanic
			res.Reason = fmt.Sprintf("feature %d did not stabilize within %d steps", i, t.cfg.MaxSteps)
			break
		}
		if chain.TerminationStep > res.TerminationOrder {
			res.TerminationOrder = chain.TerminationStep
		}
	}
	res.After = p.Snapshot()
	return res, nil
}

// traceFeature applies the derivative until two consecutive values are equal
// or the step bound is exhausted. The initial feature value counts as the
// predecessor of step 1.
func (t *Tracer[F]) traceFeature(index int, initial F) Chain[F] {
	chain := Chain[F]{FeatureIndex: index, Steps: []F{initial}}
	prev := initial
	for step := 1; step <= t.cfg.MaxSteps; step++ {
		next := t.cfg.Derivative(prev)
		chain.Steps = append(chain.Steps, next)
		if t.cfg.Equal(next, prev) {
			chain.Terminated = true
			chain.TerminationStep = step
			return chain
		}
		prev = next
	}
	return chain
}

// #endregion trace

// #region trace-batch

// TraceBatch traces every pattern on its own goroutine and waits for all of
// them: the returned slice is complete only when the error is nil. The first
// non-terminating chain or safety-ceiling breach cancels the group context,
// aborting in-flight traces; the wrapped sentinel (ErrNonTerminating or
// ErrSafetyCeiling) is returned together with whatever results were already
// recorded. Slots for cancelled or unstarted traces stay nil.
func (t *Tracer[F]) TraceBatch(ctx context.Context, patterns []*pattern.Pattern[F]) ([]*Result[F], error) {
	results := make([]*Result[F], len(patterns))
	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			res, err := t.Trace(gCtx, p)
			if err != nil {
				return err
			}
			if res.FaultState == FaultClean && res.TerminationOrder > t.cfg.SafetyCeiling {
				res.FaultState = FaultPanic
				res.Reason = fmt.Sprintf("termination order %d exceeds safe boundary %d", res.TerminationOrder, t.cfg.SafetyCeiling)
				results[i] = res
				return fmt.Errorf("pattern %q: order %d over ceiling %d: %w", p.Name, res.TerminationOrder, t.cfg.SafetyCeiling, ErrSafetyCeiling)
			}
			results[i] = res
			if res.FaultState == FaultPanic {
				return fmt.Errorf("pattern %q: %s: %w", p.Name, res.Reason, ErrNonTerminating)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// #endregion trace-batch
