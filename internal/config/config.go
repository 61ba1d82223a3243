// Package config loads advisor settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete advisor configuration.
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Charts     ChartSettings      `hcl:"charts,block"`
	Table      TableSettings      `hcl:"table,block"`
	Log        LogSettings        `hcl:"log,block"`
}

// SimulationSettings tunes the Monte Carlo equity runs.
type SimulationSettings struct {
	Trials  int `hcl:"trials,optional"`
	Workers int `hcl:"workers,optional"`
}

// ChartSettings points at range chart overrides.
type ChartSettings struct {
	// Dir holds JSON chart files that replace the embedded defaults.
	Dir string `hcl:"dir,optional"`
}

// TableSettings carries table and tournament defaults.
type TableSettings struct {
	Format          string  `hcl:"format,optional"`
	PayoutStructure string  `hcl:"payout_structure,optional"`
	PrizePool       float64 `hcl:"prize_pool,optional"`
}

// LogSettings controls logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Trials:  50000,
			Workers: 0, // simulator picks
		},
		Table: TableSettings{
			Format: "6max",
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	defaults := Default()
	if cfg.Simulation.Trials == 0 {
		cfg.Simulation.Trials = defaults.Simulation.Trials
	}
	if cfg.Table.Format == "" {
		cfg.Table.Format = defaults.Table.Format
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	return &cfg, nil
}

// Validate checks field values after loading.
func (c *Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("simulation trials must be positive")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation workers cannot be negative")
	}
	if c.Table.PrizePool < 0 {
		return fmt.Errorf("prize pool cannot be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}
