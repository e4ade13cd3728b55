package replay

import (
	"context"
	"strings"
	"testing"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/gating"
)

// helper: fixture pattern with uniform features and full readiness.
func uniformPattern(name string, edges int, edgeLen, cost float64) FixturePattern {
	features := make([]float64, edges)
	for i := range features {
		features[i] = edgeLen
	}
	return FixturePattern{
		Name:     name,
		Features: features,
		Cost:     cost,
		Markers:  []string{"#sorrynotsorry", "#hacc", "#noghosting"},
		Readiness: FixtureReadiness{
			DepsResolved: true,
			SpecPresent:  true,
			TestsPassed:  true,
			Coverage:     0.97,
			StagingOK:    true,
		},
	}
}

func coherentTrio() []FixturePattern {
	return []FixturePattern{
		uniformPattern("hexagon", 6, 10.0, 0.30),
		uniformPattern("square", 4, 7.5, 0.42),
		uniformPattern("octagon", 8, 12.0, 0.35),
	}
}

func TestRunFlagsDivergence(t *testing.T) {
	f := &Fixture{Scenarios: []Scenario{{
		Name:       "mislabeled",
		Derivative: "contraction",
		Patterns:   coherentTrio(),
		Expected:   Expectation{Result: "FAULT_DETECTED"},
	}}}
	outcomes, err := Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcomes[0].Passed {
		t.Fatal("mislabeled scenario should diverge")
	}
	if len(outcomes[0].Divergences) != 1 || !strings.Contains(outcomes[0].Divergences[0], "got VALID, want FAULT_DETECTED") {
		t.Fatalf("unexpected divergences: %v", outcomes[0].Divergences)
	}
	s := Summarize(outcomes)
	if s.Diverged != 1 || s.Passed != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestRunEmptyExpectationAlwaysPasses(t *testing.T) {
	f := &Fixture{Scenarios: []Scenario{{
		Name:     "unchecked",
		Patterns: coherentTrio(),
	}}}
	outcomes, err := Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcomes[0].Passed || len(outcomes[0].Divergences) != 0 {
		t.Fatalf("empty expectation should pass: %+v", outcomes[0])
	}
}

func TestRunIsolatesScenarios(t *testing.T) {
	// A faulting scenario must not poison the engine used by the next one.
	f := &Fixture{Scenarios: []Scenario{
		{
			Name:       "runaway",
			Derivative: "diverging",
			Patterns:   []FixturePattern{uniformPattern("hexagon", 6, 10.0, 0.30)},
			Expected:   Expectation{Result: "FAULT_DETECTED"},
		},
		{
			Name:       "healthy",
			Derivative: "contraction",
			Patterns:   coherentTrio(),
			Expected:   Expectation{Result: "VALID", Coherence: "VALID"},
		},
	}}
	outcomes, err := Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Passed {
			t.Fatalf("scenario %s diverged: %v", o.Scenario, o.Divergences)
		}
	}
	if outcomes[1].Result != gating.ResultValid {
		t.Fatalf("healthy scenario result = %s, want VALID", outcomes[1].Result)
	}
}

func TestRunRejectsUnknownDerivative(t *testing.T) {
	f := &Fixture{Scenarios: []Scenario{{
		Name:       "bogus",
		Derivative: "quadratic",
		Patterns:   coherentTrio(),
	}}}
	if _, err := Run(context.Background(), f); err == nil || !strings.Contains(err.Error(), "unknown derivative kind") {
		t.Fatalf("expected derivative-kind error, got %v", err)
	}
}

func TestSummarizeCounts(t *testing.T) {
	outcomes := []Outcome{
		{Scenario: "a", Passed: true},
		{Scenario: "b", Passed: false, Divergences: []string{"result: got X, want Y"}},
		{Scenario: "c", Passed: true},
	}
	s := Summarize(outcomes)
	if s.Total != 3 || s.Passed != 2 || s.Diverged != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
