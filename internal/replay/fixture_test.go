package replay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// #region fixture-tests

// TestFixture_DemoBatch loads the demo_batch fixture and replays every
// scenario. This is the primary regression test: if tracer bounds, coherence
// thresholds, or the escalation table change, this catches drift.
func TestFixture_DemoBatch(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "demo_batch.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	outcomes, err := Run(context.Background(), f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != len(f.Scenarios) {
		t.Fatalf("expected %d outcomes, got %d", len(f.Scenarios), len(outcomes))
	}
	for _, o := range outcomes {
		if !o.Passed {
			t.Errorf("scenario %s diverged: %v", o.Scenario, o.Divergences)
		}
	}
	s := Summarize(outcomes)
	if s.Total != len(outcomes) || s.Diverged != 0 || s.Passed != len(outcomes) {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil || !strings.Contains(err.Error(), "read fixture") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoadFixtureMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(path); err == nil || !strings.Contains(err.Error(), "parse fixture") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadFixtureWithoutScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"scenarios": []}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFixture(path); err == nil || !strings.Contains(err.Error(), "no scenarios") {
		t.Fatalf("expected no-scenarios error, got %v", err)
	}
}

func TestDerivativeKinds(t *testing.T) {
	cases := []struct {
		kind string
		in   float64
		want float64
	}{
		{"contraction", 10, 5},
		{"", 10, 5},
		{"identity", 3, 3},
		{"diverging", 3, 7},
		{"oscillating", 3, -3},
	}
	for _, tc := range cases {
		derivative, equal, err := DerivativeFor(tc.kind)
		if err != nil {
			t.Fatalf("DerivativeFor(%q): %v", tc.kind, err)
		}
		if got := derivative(tc.in); got != tc.want {
			t.Fatalf("kind %q: derivative(%g) = %g, want %g", tc.kind, tc.in, got, tc.want)
		}
		if !equal(1.0, 1.0) {
			t.Fatalf("kind %q: equality predicate rejected identical values", tc.kind)
		}
	}
	if _, _, err := DerivativeFor("quadratic"); err == nil || !strings.Contains(err.Error(), "unknown derivative kind") {
		t.Fatalf("expected unknown-kind error, got %v", err)
	}
}

func TestToPatternCopiesSlices(t *testing.T) {
	fp := FixturePattern{
		Name:     "hexagon",
		Features: []float64{10, 10, 10},
		Cost:     0.3,
		Markers:  []string{"#hacc"},
		Readiness: FixtureReadiness{
			DepsResolved: true,
			Coverage:     0.97,
		},
	}
	p := fp.ToPattern()
	fp.Features[0] = 99
	fp.Markers[0] = "#other"
	if p.Features[0] != 10 || p.Markers[0] != "#hacc" {
		t.Fatalf("domain pattern must not alias fixture slices: %+v", p)
	}
	if !p.Readiness.DepsResolved || p.Readiness.Coverage != 0.97 {
		t.Fatalf("readiness lost in conversion: %+v", p.Readiness)
	}
}

func TestToEngineConfigOverlay(t *testing.T) {
	fc := FixtureConfig{MaxSteps: 32, Threshold: 0.9}
	cfg := fc.ToEngineConfig()
	if cfg.Tracer.MaxSteps != 32 {
		t.Fatalf("max steps = %d, want 32", cfg.Tracer.MaxSteps)
	}
	// ceiling derives from the overridden step bound
	if cfg.Tracer.SafetyCeiling != 24 {
		t.Fatalf("safety ceiling = %d, want 24", cfg.Tracer.SafetyCeiling)
	}
	if cfg.Coherence.Threshold != 0.9 {
		t.Fatalf("threshold = %g, want 0.9", cfg.Coherence.Threshold)
	}
	if cfg.Policy.CostCeiling != 0.55 {
		t.Fatalf("untouched fields must keep defaults, got %g", cfg.Policy.CostCeiling)
	}
}

// #endregion fixture-tests
