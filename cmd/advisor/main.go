package main

import (
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-advisor/internal/charts"
	"github.com/lox/holdem-advisor/internal/config"
	"github.com/lox/holdem-advisor/internal/engine"
	"github.com/lox/holdem-advisor/internal/equity"
	"github.com/lox/holdem-advisor/internal/icm"
	"github.com/lox/holdem-advisor/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `short:"c" default:"advisor.hcl" help:"Path to HCL config file"`
	Debug   bool             `help:"Enable debug logging"`
	Seed    *int64           `help:"Random seed for reproducible simulations"`

	Advise   AdviseCmd   `cmd:"" help:"Recommend an action for a table snapshot"`
	Odds     OddsCmd     `cmd:"" help:"Estimate equity for a hand against opponents"`
	ICM      ICMCmd      `cmd:"" help:"Price tournament stacks against a payout structure"`
	PushFold PushFoldCmd `cmd:"push-fold" help:"Look up a push/fold chart spot"`
	Range    RangeCmd    `cmd:"" help:"Expand and print range notation"`
}

// app carries the wired-up components into each subcommand.
type app struct {
	cfg    *config.Config
	log    *log.Logger
	charts *charts.Store
	equity *equity.Simulator
	icm    *icm.Calculator
	engine *engine.Engine
	rng    *rand.Rand
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("advisor"),
		kong.Description("Hold'em decision core: equity, ICM and chart-driven recommendations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	a, err := buildApp(&cli)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}

func buildApp(cli *CLI) (*app, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := log.WarnLevel
	if cli.Debug || cfg.Log.Level == "debug" {
		level = log.DebugLevel
	} else if cfg.Log.Level == "info" {
		level = log.InfoLevel
	} else if cfg.Log.Level == "error" {
		level = log.ErrorLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	store, err := charts.NewStore()
	if err != nil {
		return nil, err
	}
	if cfg.Charts.Dir != "" {
		if err := store.LoadDir(cfg.Charts.Dir); err != nil {
			return nil, err
		}
		logger.Debug("loaded chart overrides", "dir", cfg.Charts.Dir)
	}

	var opts []equity.Option
	if cfg.Simulation.Workers > 0 {
		opts = append(opts, equity.WithWorkers(cfg.Simulation.Workers))
	}
	sim := equity.NewSimulator(opts...)
	calc := icm.NewCalculator()

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}

	return &app{
		cfg:    cfg,
		log:    logger,
		charts: store,
		equity: sim,
		icm:    calc,
		engine: engine.New(store, sim, calc, logger),
		rng:    randutil.New(seed),
	}, nil
}
