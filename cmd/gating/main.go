package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/coherence"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/config"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/gating"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/polygon"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to engine config YAML")
	cost := flag.Float64("cost", 0.35, "operational cost assigned to the octagon pattern")
	markers := flag.String("markers", "", "comma-separated compliance markers applied to every pattern")
	verbose := flag.Bool("v", false, "print the full audit trail")
	flag.Parse()

	os.Exit(run(*configPath, *cost, *markers, *verbose))
}

func run(configPath string, cost float64, markers string, verbose bool) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 2
	}

	batch := polygon.DemoBatch()
	for _, p := range batch {
		if p.Name == "octagon" {
			p.Cost = cost
		}
	}
	if markers != "" {
		ms := splitMarkers(markers)
		for _, p := range batch {
			p.Markers = ms
		}
	}

	eng, err := gating.NewEngine(config.Build(cfg, polygon.Contraction, polygon.EpsilonEqual, coherence.NumericProperties), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		return 2
	}

	fmt.Println("Pattern gating demo.")
	fmt.Printf("  max_steps=%d safety_ceiling=%d coherence_threshold=%.2f cost_ceiling=%.2f\n",
		cfg.Tracer.MaxSteps, cfg.Tracer.SafetyCeiling, cfg.Coherence.Threshold, cfg.Policy.CostCeiling)

	gc, err := eng.Analyze(context.Background(), batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		return 2
	}

	render(gc)
	if verbose {
		renderTrail(gc)
	}

	if gc.Result == gating.ResultValid {
		return 0
	}
	return 1
}

// #endregion main

// #region render

func render(gc *gating.Context[float64]) {
	fmt.Printf("\n%-10s %9s %6s %-6s %-9s %-10s %s\n",
		"Pattern", "Perimeter", "Order", "Fault", "Workflow", "Validation", "Deployment")
	fmt.Printf("%-10s %9s %6s %-6s %-9s %-10s %s\n",
		"----------", "---------", "------", "------", "---------", "----------", "----------")

	for i, p := range gc.Patterns {
		order := "-"
		state := "-"
		if i < len(gc.Results) && gc.Results[i] != nil {
			order = fmt.Sprintf("%d", gc.Results[i].TerminationOrder)
			state = gc.Results[i].FaultState.String()
		}
		fmt.Printf("%-10s %9.2f %6s %-6s %-9s %-10s %s\n",
			p.Name, polygon.Perimeter(p), order, state, p.Workflow, p.Validation, p.Deployment)
	}

	if len(gc.Alignment.Metrics) > 0 {
		fmt.Printf("\nPairwise coherence (threshold check on each):\n")
		pairs := make([]coherence.Pair, 0, len(gc.Alignment.Metrics))
		for pr := range gc.Alignment.Metrics {
			pairs = append(pairs, pr)
		}
		sort.Slice(pairs, func(a, b int) bool {
			if pairs[a].I != pairs[b].I {
				return pairs[a].I < pairs[b].I
			}
			return pairs[a].J < pairs[b].J
		})
		for _, pr := range pairs {
			fmt.Printf("  %-10s %-10s %.4f\n",
				gc.Patterns[pr.I].Name, gc.Patterns[pr.J].Name, gc.Alignment.Metrics[pr])
		}
	}

	fmt.Printf("\nCoherence: %s\n", gc.Alignment.Classification)
	fmt.Printf("Fault:     severity=%s recovery=%s %s\n", gc.Fault.Severity, gc.Fault.Recovery, gc.Fault.Message)
	fmt.Printf("Result:    %s\n", gc.Result)
}

func renderTrail(gc *gating.Context[float64]) {
	fmt.Printf("\nAudit trail:\n")
	for _, e := range gc.Trail.Entries() {
		name := e.Pattern
		if name == "" {
			name = "-"
		}
		fmt.Printf("  %3d %-10s %-10s %s\n", e.Seq, e.Phase, name, e.Message)
	}
}

// #endregion render

// #region helpers

func splitMarkers(raw string) []string {
	parts := strings.Split(raw, ",")
	markers := make([]string, 0, len(parts))
	for _, p := range parts {
		if m := strings.TrimSpace(p); m != "" {
			markers = append(markers, m)
		}
	}
	return markers
}

// #endregion helpers
