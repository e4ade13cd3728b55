package coherence

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region gate

// Gate classifies the pairwise coherence of a batch. Pairwise evaluation
// fans out across goroutines; the first inconsistent or below-threshold
// pair cancels the rest of the batch.
type Gate[F any] struct {
	cfg Config[F]
}

// NewGate validates the config, fills the default cross-check and metric,
// and returns a Gate.
func NewGate[F any](cfg Config[F]) (*Gate[F], error) {
	if cfg.Properties == nil {
		return nil, fmt.Errorf("coherence: property derivation is required")
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("coherence: threshold %.4f must be in (0, 1]", cfg.Threshold)
	}
	if cfg.OrderTolerance < 0 {
		return nil, fmt.Errorf("coherence: order tolerance %d must not be negative", cfg.OrderTolerance)
	}
	if cfg.CrossCheck == nil {
		cfg.CrossCheck = OrderCrossCheck[F](cfg.OrderTolerance)
	}
	if cfg.Metric == nil {
		cfg.Metric = CosineMetric
	}
	return &Gate[F]{cfg: cfg}, nil
}

// #endregion gate

// #region cross-check

// OrderCrossCheck is the default cross-consistency predicate: both results
// present and clean, with termination orders no further apart than the
// tolerance.
func OrderCrossCheck[F any](tolerance int) func(a, b *odts.Result[F]) error {
	return func(a, b *odts.Result[F]) error {
		if a == nil || b == nil {
			return fmt.Errorf("missing derivative result: %w", ErrCrossCheck)
		}
		if a.FaultState != odts.FaultClean || b.FaultState != odts.FaultClean {
			return fmt.Errorf("derivative fault %s/%s: %w", a.FaultState, b.FaultState, ErrCrossCheck)
		}
		gap := a.TerminationOrder - b.TerminationOrder
		if gap < 0 {
			gap = -gap
		}
		if gap > tolerance {
			return fmt.Errorf("termination order gap %d exceeds tolerance %d: %w", gap, tolerance, ErrCrossCheck)
		}
		return nil
	}
}

// #endregion cross-check

// #region classify

// Classify derives every pattern's property set, runs the cross-consistency
// predicate and coherence metric over all unordered pairs, and reduces to a
// single classification. Fewer than two patterns is always Insufficient. A
// single inconsistent or below-threshold pair classifies the whole batch
// Incoherent; in-flight pair evaluations are cancelled and record no further
// metrics once the signal fires.
func (g *Gate[F]) Classify(ctx context.Context, patterns []*pattern.Pattern[F], results []*odts.Result[F]) Alignment {
	if len(patterns) < 2 {
		return Alignment{
			Classification: CoherenceInsufficient,
			Metrics:        map[Pair]float64{},
			Reason:         fmt.Sprintf("%d pattern(s): pairwise coherence undefined", len(patterns)),
		}
	}

	props := make([]PropertySet, len(patterns))
	for i, p := range patterns {
		props[i] = g.cfg.Properties(p)
	}

	resultAt := func(i int) *odts.Result[F] {
		if i >= len(results) {
			return nil
		}
		return results[i]
	}

	var (
		mu         sync.Mutex
		metrics    = make(map[Pair]float64)
		failed     *Pair
		failReason string
	)
	fail := func(pr Pair, reason string) {
		mu.Lock()
		if failed == nil {
			failed = &pr
			failReason = reason
		}
		mu.Unlock()
	}

	grp, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(patterns); i++ {
		for j := i + 1; j < len(patterns); j++ {
			pr := Pair{I: i, J: j}
			grp.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				if err := g.cfg.CrossCheck(resultAt(pr.I), resultAt(pr.J)); err != nil {
					reason := fmt.Sprintf("pair (%d,%d): %v", pr.I, pr.J, err)
					fail(pr, reason)
					return fmt.Errorf("pair (%d,%d): %w", pr.I, pr.J, err)
				}
				m := g.cfg.Metric(props[pr.I], props[pr.J])

				mu.Lock()
				if err := gCtx.Err(); err != nil {
					mu.Unlock()
					return err
				}
				metrics[pr] = m
				mu.Unlock()

				if m < g.cfg.Threshold {
					reason := fmt.Sprintf("pair (%d,%d): metric %.4f below threshold %.4f", pr.I, pr.J, m, g.cfg.Threshold)
					fail(pr, reason)
					return fmt.Errorf("pair (%d,%d): metric %.4f: %w", pr.I, pr.J, m, ErrIncoherentPair)
				}
				return nil
			})
		}
	}

	if err := grp.Wait(); err != nil {
		mu.Lock()
		defer mu.Unlock()
		if failed == nil {
			// Aborted from outside before any pair disqualified the batch.
			return Alignment{
				Classification: CoherenceUnknown,
				Metrics:        metrics,
				Reason:         fmt.Sprintf("classification aborted: %v", err),
			}
		}
		return Alignment{
			Classification: CoherenceIncoherent,
			Metrics:        metrics,
			FailedPair:     failed,
			Reason:         failReason,
		}
	}
	return Alignment{Classification: CoherenceValid, Metrics: metrics}
}

// #endregion classify
