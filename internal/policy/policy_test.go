package policy

import (
	"strings"
	"testing"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

func makeCompliant(cost float64) *pattern.Pattern[float64] {
	return &pattern.Pattern[float64]{
		Name:    "p",
		Cost:    cost,
		Markers: []string{"#sorrynotsorry", "#hacc", "#noghosting"},
	}
}

func cleanTrace() *odts.Result[float64] {
	return &odts.Result[float64]{FaultState: odts.FaultClean, TerminationOrder: 3}
}

func TestPolicyAllChecksPass(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	v := e.Evaluate(makeCompliant(0.3), cleanTrace())
	if !v.AllPassed {
		t.Fatalf("expected all checks to pass: %+v", v)
	}
	if v.Reason != "" {
		t.Fatalf("passing verdict should carry no reason, got %q", v.Reason)
	}
}

func TestPolicyCostAtCeilingPasses(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	v := e.Evaluate(makeCompliant(0.55), cleanTrace())
	if !v.CostOK {
		t.Fatalf("cost exactly at ceiling must pass: %+v", v)
	}
}

func TestPolicyCostOverCeilingFails(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	v := e.Evaluate(makeCompliant(0.9), cleanTrace())
	if v.CostOK || v.AllPassed {
		t.Fatalf("cost 0.9 must fail: %+v", v)
	}
	if !strings.Contains(v.Reason, "cost") {
		t.Fatalf("reason should name the cost check, got %q", v.Reason)
	}
}

func TestPolicyMissingMarkerFails(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	p := makeCompliant(0.3)
	p.Markers = []string{"#sorrynotsorry", "#hacc"}
	v := e.Evaluate(p, cleanTrace())
	if v.MarkersOK || v.AllPassed {
		t.Fatalf("missing marker must fail: %+v", v)
	}
	if !strings.Contains(v.Reason, "#noghosting") {
		t.Fatalf("reason should name the missing marker, got %q", v.Reason)
	}
}

func TestPolicyNilTraceFailsIntegrity(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	v := e.Evaluate(makeCompliant(0.3), nil)
	if v.TraceOK || v.AllPassed {
		t.Fatalf("nil trace must fail integrity: %+v", v)
	}
	if !v.CostOK || !v.MarkersOK {
		t.Fatalf("other checks should still pass: %+v", v)
	}
}

func TestPolicyPanicTraceFailsIntegrity(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	trace := &odts.Result[float64]{FaultState: odts.FaultPanic, Reason: "feature 0 did not stabilize"}
	v := e.Evaluate(makeCompliant(0.3), trace)
	if v.TraceOK || v.AllPassed {
		t.Fatalf("panicked trace must fail integrity: %+v", v)
	}
}

func TestPolicyCostFailureReportedFirst(t *testing.T) {
	e := NewEngine[float64](DefaultConfig())
	p := makeCompliant(0.9)
	p.Markers = nil
	v := e.Evaluate(p, nil)
	if v.AllPassed {
		t.Fatal("everything failing must not pass")
	}
	if !strings.Contains(v.Reason, "cost") {
		t.Fatalf("cost failure should be reported first, got %q", v.Reason)
	}
}

func TestPolicyCustomConfig(t *testing.T) {
	cfg := Config{CostCeiling: 1.5, RequiredMarkers: []string{"#audited"}}
	e := NewEngine[float64](cfg)
	p := &pattern.Pattern[float64]{Name: "p", Cost: 1.2, Markers: []string{"#audited"}}
	v := e.Evaluate(p, cleanTrace())
	if !v.AllPassed {
		t.Fatalf("custom policy should pass: %+v", v)
	}
}
