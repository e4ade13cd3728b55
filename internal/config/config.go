// Package config resolves engine settings from defaults, an optional YAML
// file, and GATING_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/axis"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/gating"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/odts"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/pattern"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/policy"
)

// #region types

// TracerConfig bounds the derivative tracer.
type TracerConfig struct {
	MaxSteps int `yaml:"max_steps" json:"max_steps" env:"GATING_MAX_STEPS"`
	// SafetyCeiling left at zero derives three quarters of MaxSteps.
	SafetyCeiling int `yaml:"safety_ceiling" json:"safety_ceiling" env:"GATING_SAFETY_CEILING"`
}

// CoherenceConfig holds the gate thresholds.
type CoherenceConfig struct {
	Threshold      float64 `yaml:"threshold" json:"threshold" env:"GATING_COHERENCE_THRESHOLD"`
	OrderTolerance *int    `yaml:"order_tolerance" json:"order_tolerance" env:"GATING_ORDER_TOLERANCE"`
}

// PolicyConfig holds the validation policy knobs.
type PolicyConfig struct {
	CostCeiling     float64  `yaml:"cost_ceiling" json:"cost_ceiling" env:"GATING_COST_CEILING"`
	RequiredMarkers []string `yaml:"required_markers" json:"required_markers"`
}

// WorkflowConfig holds the workflow axis guards.
type WorkflowConfig struct {
	CoverageThreshold float64 `yaml:"coverage_threshold" json:"coverage_threshold" env:"GATING_COVERAGE_THRESHOLD"`
}

// EngineConfig models the full engine configuration file.
type EngineConfig struct {
	Tracer    TracerConfig    `yaml:"tracer" json:"tracer"`
	Coherence CoherenceConfig `yaml:"coherence" json:"coherence"`
	Policy    PolicyConfig    `yaml:"policy" json:"policy"`
	Workflow  WorkflowConfig  `yaml:"workflow" json:"workflow"`
}

// DefaultEngineConfig mirrors the per-package defaults.
func DefaultEngineConfig() EngineConfig {
	tolerance := coherence.DefaultOrderTolerance
	pol := policy.DefaultConfig()
	return EngineConfig{
		Tracer: TracerConfig{
			MaxSteps:      odts.DefaultMaxSteps,
			SafetyCeiling: odts.DefaultSafetyCeiling,
		},
		Coherence: CoherenceConfig{
			Threshold:      coherence.DefaultThreshold,
			OrderTolerance: &tolerance,
		},
		Policy: PolicyConfig{
			CostCeiling:     pol.CostCeiling,
			RequiredMarkers: pol.RequiredMarkers,
		},
		Workflow: WorkflowConfig{
			CoverageThreshold: axis.DefaultWorkflowConfig().CoverageFloor,
		},
	}
}

// #endregion types

// #region load

// Load resolves the engine configuration: defaults, then the YAML file at
// path (skipped when path is empty), then GATING_* environment variables.
func Load(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return EngineConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return EngineConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return EngineConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *EngineConfig) applyDefaults() {
	if c.Tracer.MaxSteps == 0 {
		c.Tracer.MaxSteps = odts.DefaultMaxSteps
	}
	if c.Tracer.SafetyCeiling == 0 {
		c.Tracer.SafetyCeiling = c.Tracer.MaxSteps * 3 / 4
	}
	if c.Coherence.Threshold == 0 {
		c.Coherence.Threshold = coherence.DefaultThreshold
	}
	if c.Coherence.OrderTolerance == nil {
		tolerance := coherence.DefaultOrderTolerance
		c.Coherence.OrderTolerance = &tolerance
	}
	pol := policy.DefaultConfig()
	if c.Policy.CostCeiling == 0 {
		c.Policy.CostCeiling = pol.CostCeiling
	}
	if c.Policy.RequiredMarkers == nil {
		c.Policy.RequiredMarkers = pol.RequiredMarkers
	}
	if c.Workflow.CoverageThreshold == 0 {
		c.Workflow.CoverageThreshold = axis.DefaultWorkflowConfig().CoverageFloor
	}
}

func (c *EngineConfig) validate() error {
	if c.Tracer.MaxSteps < 1 {
		return fmt.Errorf("tracer.max_steps must be positive, got %d", c.Tracer.MaxSteps)
	}
	if c.Tracer.SafetyCeiling < 1 || c.Tracer.SafetyCeiling >= c.Tracer.MaxSteps {
		return fmt.Errorf("tracer.safety_ceiling %d must be in (0, %d)", c.Tracer.SafetyCeiling, c.Tracer.MaxSteps)
	}
	if c.Coherence.Threshold <= 0 || c.Coherence.Threshold > 1 {
		return fmt.Errorf("coherence.threshold %g must be in (0, 1]", c.Coherence.Threshold)
	}
	if *c.Coherence.OrderTolerance < 0 {
		return fmt.Errorf("coherence.order_tolerance %d must not be negative", *c.Coherence.OrderTolerance)
	}
	if c.Policy.CostCeiling <= 0 || c.Policy.CostCeiling > 1 {
		return fmt.Errorf("policy.cost_ceiling %g must be in (0, 1]", c.Policy.CostCeiling)
	}
	if c.Workflow.CoverageThreshold <= 0 || c.Workflow.CoverageThreshold > 1 {
		return fmt.Errorf("workflow.coverage_threshold %g must be in (0, 1]", c.Workflow.CoverageThreshold)
	}
	return nil
}

// #endregion load

// #region build

// Build binds a resolved configuration to a derivative operator pair and a
// property derivation, producing the typed engine config.
func Build[F any](c EngineConfig, derivative func(F) F, equal func(F, F) bool, properties func(*pattern.Pattern[F]) coherence.PropertySet) gating.Config[F] {
	return gating.Config[F]{
		Tracer: odts.Config[F]{
			Derivative:    derivative,
			Equal:         equal,
			MaxSteps:      c.Tracer.MaxSteps,
			SafetyCeiling: c.Tracer.SafetyCeiling,
		},
		Gate: coherence.Config[F]{
			Threshold:      c.Coherence.Threshold,
			OrderTolerance: *c.Coherence.OrderTolerance,
			Properties:     properties,
		},
		Policy: policy.Config{
			CostCeiling:     c.Policy.CostCeiling,
			RequiredMarkers: c.Policy.RequiredMarkers,
		},
		Workflow: axis.WorkflowConfig{
			CoverageFloor: c.Workflow.CoverageThreshold,
		},
	}
}

// #endregion build
