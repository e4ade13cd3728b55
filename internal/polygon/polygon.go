// Package polygon builds regular-polygon demo patterns whose features are
// edge lengths, plus the contraction derivative pair the demo traces them
// with.
package polygon

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/policy"
)

// Epsilon is the equality tolerance for contracted edge features.
const Epsilon = 1e-6

// #region factory

// Regular builds a pattern whose features are the edge lengths of a regular
// polygon. Markers and readiness are left for the caller to fill.
func Regular(name string, edges int, edgeLen, cost float64) (*pattern.Pattern[float64], error) {
	if edges < 3 {
		return nil, fmt.Errorf("polygon: %d edge(s) cannot close a polygon", edges)
	}
	if edgeLen <= 0 {
		return nil, fmt.Errorf("polygon: edge length %g must be positive", edgeLen)
	}
	features := make([]float64, edges)
	for i := range features {
		features[i] = edgeLen
	}
	return &pattern.Pattern[float64]{
		Name:     name,
		Features: features,
		Cost:     cost,
	}, nil
}

// MustRegular is Regular for known-good arguments; it panics on error.
func MustRegular(name string, edges int, edgeLen, cost float64) *pattern.Pattern[float64] {
	p, err := Regular(name, edges, edgeLen, cost)
	if err != nil {
		panic(err)
	}
	return p
}

// DemoBatch returns the hexagon, square and octagon trio carrying the
// default policy markers and staging readiness.
func DemoBatch() []*pattern.Pattern[float64] {
	markers := policy.DefaultConfig().RequiredMarkers
	defs := []struct {
		name    string
		edges   int
		edgeLen float64
		cost    float64
	}{
		{"hexagon", 6, 10.0, 0.30},
		{"square", 4, 7.5, 0.42},
		{"octagon", 8, 12.0, 0.35},
	}
	batch := make([]*pattern.Pattern[float64], 0, len(defs))
	for _, d := range defs {
		p := MustRegular(d.name, d.edges, d.edgeLen, d.cost)
		p.Markers = append([]string(nil), markers...)
		p.Readiness = pattern.Readiness{
			DepsResolved: true,
			SpecPresent:  true,
			TestsPassed:  true,
			Coverage:     0.97,
			StagingOK:    true,
		}
		batch = append(batch, p)
	}
	return batch
}

// Perimeter sums a pattern's edge features.
func Perimeter(p *pattern.Pattern[float64]) float64 {
	total := 0.0
	for _, f := range p.Features {
		total += f
	}
	return total
}

// #endregion factory

// #region derivative

// Contraction halves an edge feature. Repeated application stabilizes at
// zero within Epsilon for any finite start.
func Contraction(x float64) float64 { return x / 2 }

// EpsilonEqual reports whether two edge features agree within Epsilon.
func EpsilonEqual(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// #endregion derivative
