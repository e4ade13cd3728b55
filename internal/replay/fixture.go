package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/config"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/polygon"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Config      FixtureConfig `json:"config"`
	Scenarios   []Scenario    `json:"scenarios"`
}

// Scenario is one recorded batch together with its expected analysis.
type Scenario struct {
	Name       string           `json:"name"`
	Derivative string           `json:"derivative"` // contraction | identity | diverging | oscillating
	Patterns   []FixturePattern `json:"patterns"`
	Expected   Expectation      `json:"expected"`
}

// FixturePattern mirrors pattern.Pattern with JSON tags.
type FixturePattern struct {
	Name      string           `json:"name"`
	Features  []float64        `json:"features"`
	Cost      float64          `json:"cost"`
	Markers   []string         `json:"markers"`
	Readiness FixtureReadiness `json:"readiness"`
}

// FixtureReadiness mirrors pattern.Readiness with JSON tags.
type FixtureReadiness struct {
	DepsResolved bool    `json:"deps_resolved"`
	SpecPresent  bool    `json:"spec_present"`
	TestsPassed  bool    `json:"tests_passed"`
	Coverage     float64 `json:"coverage"`
	StagingOK    bool    `json:"staging_ok"`
	DeployOK     bool    `json:"deploy_ok"`
}

// Expectation captures the expected analysis outcome for one scenario. Empty
// fields are not checked.
type Expectation struct {
	Result    string `json:"result"`
	Severity  string `json:"severity"`
	Recovery  string `json:"recovery"`
	Coherence string `json:"coherence"`
}

// FixtureConfig mirrors the engine configuration with JSON tags. Zero fields
// keep the engine defaults.
type FixtureConfig struct {
	MaxSteps          int      `json:"max_steps"`
	SafetyCeiling     int      `json:"safety_ceiling"`
	Threshold         float64  `json:"coherence_threshold"`
	OrderTolerance    *int     `json:"order_tolerance"`
	CostCeiling       float64  `json:"cost_ceiling"`
	RequiredMarkers   []string `json:"required_markers"`
	CoverageThreshold float64  `json:"coverage_threshold"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("fixture %s has no scenarios", path)
	}
	return &f, nil
}

// ToPattern converts a FixturePattern to a domain pattern.
func (fp *FixturePattern) ToPattern() *pattern.Pattern[float64] {
	return &pattern.Pattern[float64]{
		Name:     fp.Name,
		Features: append([]float64(nil), fp.Features...),
		Cost:     fp.Cost,
		Markers:  append([]string(nil), fp.Markers...),
		Readiness: pattern.Readiness{
			DepsResolved: fp.Readiness.DepsResolved,
			SpecPresent:  fp.Readiness.SpecPresent,
			TestsPassed:  fp.Readiness.TestsPassed,
			Coverage:     fp.Readiness.Coverage,
			StagingOK:    fp.Readiness.StagingOK,
			DeployOK:     fp.Readiness.DeployOK,
		},
	}
}

// ToEngineConfig overlays the fixture's non-zero settings on the defaults.
func (fc *FixtureConfig) ToEngineConfig() config.EngineConfig {
	cfg := config.DefaultEngineConfig()
	if fc.MaxSteps != 0 {
		cfg.Tracer.MaxSteps = fc.MaxSteps
		cfg.Tracer.SafetyCeiling = fc.MaxSteps * 3 / 4
	}
	if fc.SafetyCeiling != 0 {
		cfg.Tracer.SafetyCeiling = fc.SafetyCeiling
	}
	if fc.Threshold != 0 {
		cfg.Coherence.Threshold = fc.Threshold
	}
	if fc.OrderTolerance != nil {
		cfg.Coherence.OrderTolerance = fc.OrderTolerance
	}
	if fc.CostCeiling != 0 {
		cfg.Policy.CostCeiling = fc.CostCeiling
	}
	if fc.RequiredMarkers != nil {
		cfg.Policy.RequiredMarkers = fc.RequiredMarkers
	}
	if fc.CoverageThreshold != 0 {
		cfg.Workflow.CoverageThreshold = fc.CoverageThreshold
	}
	return cfg
}

// BuildBatch converts a scenario's patterns to a domain batch.
func BuildBatch(sc Scenario) []*pattern.Pattern[float64] {
	batch := make([]*pattern.Pattern[float64], len(sc.Patterns))
	for i := range sc.Patterns {
		batch[i] = sc.Patterns[i].ToPattern()
	}
	return batch
}

// DerivativeFor maps a fixture derivative kind to its operator pair. The
// empty kind defaults to contraction.
func DerivativeFor(kind string) (func(float64) float64, func(float64, float64) bool, error) {
	switch kind {
	case "", "contraction":
		return polygon.Contraction, polygon.EpsilonEqual, nil
	case "identity":
		return func(x float64) float64 { return x }, polygon.EpsilonEqual, nil
	case "diverging":
		return func(x float64) float64 { return x*2 + 1 }, polygon.EpsilonEqual, nil
	case "oscillating":
		return func(x float64) float64 { return -x }, polygon.EpsilonEqual, nil
	default:
		return nil, nil, fmt.Errorf("unknown derivative kind %q", kind)
	}
}

// #endregion fixture-loader
