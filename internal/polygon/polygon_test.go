package polygon

import (
	"math"
	"strings"
	"testing"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/policy"
)

func TestRegularBuildsUniformFeatures(t *testing.T) {
	p, err := Regular("hexagon", 6, 10.0, 0.30)
	if err != nil {
		t.Fatalf("Regular: %v", err)
	}
	if len(p.Features) != 6 {
		t.Fatalf("expected 6 features, got %d", len(p.Features))
	}
	for i, f := range p.Features {
		if f != 10.0 {
			t.Fatalf("feature %d = %g, want 10.0", i, f)
		}
	}
	if p.Cost != 0.30 || p.Name != "hexagon" {
		t.Fatalf("unexpected pattern header: %+v", p)
	}
}

func TestRegularRejectsDegenerateShapes(t *testing.T) {
	if _, err := Regular("line", 2, 5.0, 0); err == nil || !strings.Contains(err.Error(), "cannot close") {
		t.Fatalf("expected edge-count error, got %v", err)
	}
	if _, err := Regular("point", 4, 0, 0); err == nil || !strings.Contains(err.Error(), "must be positive") {
		t.Fatalf("expected edge-length error, got %v", err)
	}
}

func TestMustRegularPanicsOnBadShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a two-edged polygon")
		}
	}()
	MustRegular("line", 2, 5.0, 0)
}

func TestDemoBatchSatisfiesDefaultPolicy(t *testing.T) {
	eng := policy.NewEngine[float64](policy.DefaultConfig())
	clean := &odts.Result[float64]{FaultState: odts.FaultClean}
	for _, p := range DemoBatch() {
		v := eng.Evaluate(p, clean)
		if !v.AllPassed {
			t.Fatalf("%s should pass the default policy: %s", p.Name, v.Reason)
		}
	}
}

func TestContractionStabilizesWithinDefaultCeiling(t *testing.T) {
	for _, p := range DemoBatch() {
		prev := p.Features[0]
		order := 0
		for step := 1; step <= odts.DefaultMaxSteps; step++ {
			next := Contraction(prev)
			if EpsilonEqual(next, prev) {
				order = step
				break
			}
			prev = next
		}
		if order == 0 {
			t.Fatalf("%s: contraction did not stabilize within %d steps", p.Name, odts.DefaultMaxSteps)
		}
		if order > odts.DefaultSafetyCeiling {
			t.Fatalf("%s: order %d exceeds default ceiling %d", p.Name, order, odts.DefaultSafetyCeiling)
		}
	}
}

func TestEpsilonEqualBoundary(t *testing.T) {
	if !EpsilonEqual(1.0, 1.0+Epsilon/2) {
		t.Fatal("values inside the tolerance should compare equal")
	}
	if EpsilonEqual(1.0, 1.0+Epsilon*2) {
		t.Fatal("values outside the tolerance should compare unequal")
	}
}

func TestPerimeter(t *testing.T) {
	p := MustRegular("hexagon", 6, 10.0, 0)
	if got := Perimeter(p); math.Abs(got-60.0) > 1e-9 {
		t.Fatalf("Perimeter = %g, want 60", got)
	}
}
