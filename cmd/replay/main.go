package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/config"
	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to scenario fixture JSON")
	configPath := flag.String("config", "", "engine config YAML overriding the fixture's embedded config")
	verbose := flag.Bool("v", false, "print analysis fields for passing scenarios too")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--config engine.yaml] [-v]")
		os.Exit(2)
	}
	os.Exit(run(*fixturePath, *configPath, *verbose))
}

func run(fixturePath, configPath string, verbose bool) int {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	base := f.Config.ToEngineConfig()
	if configPath != "" {
		base, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			return 2
		}
	}

	outcomes, err := replay.RunWith(context.Background(), f, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}

	return printOutcomes(outcomes, verbose)
}

// #endregion main

// #region output

// printOutcomes renders one line per scenario plus a summary, and returns
// the exit code: 0 all pass, 1 any divergence.
func printOutcomes(outcomes []replay.Outcome, verbose bool) int {
	fmt.Printf("%-20s| %-9s| %s\n", "Scenario", "Status", "Detail")
	fmt.Printf("%-20s+%-10s+%s\n", "--------------------", "----------", "----------------------------")

	for _, o := range outcomes {
		status := "PASS"
		detail := ""
		if !o.Passed {
			status = "DIVERGED"
			detail = fmt.Sprintf("%v", o.Divergences)
		} else if verbose {
			detail = fmt.Sprintf("result=%s severity=%s recovery=%s coherence=%s",
				o.Result, o.Severity, o.Recovery, o.Coherence)
		}
		fmt.Printf("%-20s| %-9s| %s\n", o.Scenario, status, detail)
	}

	s := replay.Summarize(outcomes)
	fmt.Printf("\nSummary: %d total, %d pass, %d diverge\n", s.Total, s.Passed, s.Diverged)

	if s.Diverged > 0 {
		return 1
	}
	return 0
}

// #endregion output
