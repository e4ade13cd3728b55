package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/pattern-gating/go-engine/internal/config"
)

// #region main

// inspect prints the fully resolved engine configuration: defaults, then the
// optional YAML file, then GATING_* environment overrides.
func main() {
	configPath := flag.String("config", "", "path to engine config YAML")
	jsonOut := flag.Bool("json", false, "output as JSON instead of YAML")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		fmt.Fprintln(os.Stderr, "usage: inspect [--config engine.yaml] [--json]")
		os.Exit(2)
	}

	if err := print(cfg, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "render config: %v\n", err)
		os.Exit(2)
	}
}

func print(cfg config.EngineConfig, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// #endregion main
