package policy

import (
	"fmt"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
)

// #region engine
// Engine evaluates the gating policy for one pattern at a time.
type Engine[F any] struct {
	cfg Config
}

// NewEngine creates a policy engine with the given thresholds.
func NewEngine[F any](cfg Config) *Engine[F] {
	return &Engine[F]{cfg: cfg}
}

// Evaluate runs the three policy checks: cost against the ceiling, required
// compliance markers, and derivative trace-chain integrity. A nil trace
// counts as a failed integrity check.
func (e *Engine[F]) Evaluate(p *pattern.Pattern[F], trace *odts.Result[F]) Verdict {
	v := Verdict{
		CostOK:    p.Cost <= e.cfg.CostCeiling,
		MarkersOK: true,
		TraceOK:   trace != nil && trace.Terminated(),
	}

	var missing string
	for _, m := range e.cfg.RequiredMarkers {
		if !p.HasMarker(m) {
			v.MarkersOK = false
			missing = m
			break
		}
	}

	v.AllPassed = v.CostOK && v.MarkersOK && v.TraceOK
	switch {
	case v.AllPassed:
	case !v.CostOK:
		v.Reason = fmt.Sprintf("cost %.2f exceeds ceiling %.2f", p.Cost, e.cfg.CostCeiling)
	case !v.MarkersOK:
		v.Reason = fmt.Sprintf("missing required marker %q", missing)
	default:
		v.Reason = "derivative trace chain incomplete"
	}
	return v
}

// #endregion engine
