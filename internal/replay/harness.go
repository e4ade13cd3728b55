// Package replay re-runs recorded pattern batches through the gating engine
// and diffs each outcome against the fixture's expectations. Operates
// entirely in-memory.
package replay

import (
	"context"
	"fmt"
	"log"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/config"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/fault"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/gating"
)

// #region types

// Outcome captures one scenario's analysis next to its expectations.
type Outcome struct {
	Scenario  string
	Result    gating.Result
	Severity  fault.Severity
	Recovery  fault.Recovery
	Coherence coherence.PatternCoherence

	// Divergences lists expectation mismatches; empty means the scenario passed.
	Divergences []string
	Passed      bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total    int
	Passed   int
	Diverged int
}

// #endregion types

// #region replay

// Run replays a fixture with its embedded engine configuration.
func Run(ctx context.Context, f *Fixture) ([]Outcome, error) {
	return RunWith(ctx, f, f.Config.ToEngineConfig())
}

// RunWith replays every scenario through a fresh engine built from base and
// the scenario's derivative kind, then diffs the analysis against the
// scenario's expectations. The first scenario that cannot run at all aborts
// the replay.
func RunWith(ctx context.Context, f *Fixture, base config.EngineConfig) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(f.Scenarios))

	for _, sc := range f.Scenarios {
		derivative, equal, err := DerivativeFor(sc.Derivative)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		eng, err := gating.NewEngine(config.Build(base, derivative, equal, coherence.NumericProperties), nil)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}

		gc, err := eng.Analyze(ctx, BuildBatch(sc))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: analyze: %w", sc.Name, err)
		}

		out := Outcome{
			Scenario:  sc.Name,
			Result:    gc.Result,
			Severity:  gc.Fault.Severity,
			Recovery:  gc.Fault.Recovery,
			Coherence: gc.Alignment.Classification,
		}
		out.Divergences = diff(sc.Expected, out)
		out.Passed = len(out.Divergences) == 0
		if !out.Passed {
			log.Printf("[REPLAY] %s diverged: %v", sc.Name, out.Divergences)
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// diff compares an outcome against the expectation, field by field. Empty
// expectation fields are skipped.
func diff(want Expectation, got Outcome) []string {
	var divergences []string
	if want.Result != "" && got.Result.String() != want.Result {
		divergences = append(divergences, fmt.Sprintf("result: got %s, want %s", got.Result, want.Result))
	}
	if want.Severity != "" && got.Severity.String() != want.Severity {
		divergences = append(divergences, fmt.Sprintf("severity: got %s, want %s", got.Severity, want.Severity))
	}
	if want.Recovery != "" && got.Recovery.String() != want.Recovery {
		divergences = append(divergences, fmt.Sprintf("recovery: got %s, want %s", got.Recovery, want.Recovery))
	}
	if want.Coherence != "" && got.Coherence.String() != want.Coherence {
		divergences = append(divergences, fmt.Sprintf("coherence: got %s, want %s", got.Coherence, want.Coherence))
	}
	return divergences
}

// Summarize computes aggregate stats from scenario outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Passed {
			s.Passed++
		} else {
			s.Diverged++
		}
	}
	return s
}

// #endregion replay
