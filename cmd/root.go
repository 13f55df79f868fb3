// Package cmd is the flag-based front end: it parses the command line,
// loads the configuration, and dispatches to one of the run modes.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fantop/fantop/config"
	"github.com/fantop/fantop/engine"
	"github.com/fantop/fantop/ui"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags.
var Version = "0.3.0"

// Config holds CLI configuration after flag parsing.
type Config struct {
	Interval    time.Duration
	EvalMode    bool
	WatchMode   bool
	WatchCount  int
	JSONMode    bool
	DaemonMode  bool
	BenchCycles int
	ProfilePath string
	Synthetic   bool
	Seed        int64
	Apply       bool
	DumpConfig  bool
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `fantop v%s — Fuzzy-logic TEC fan controller

Usage:
  fantop [OPTIONS] [INTERVAL]

Modes:
  (default)             Interactive TUI (bubbletea, fullscreen)
  -eval T RATE POWER DUTY
                        One-shot evaluation of four crisp inputs:
                        temperature degC, temperature change degC/sec,
                        TEC power W, current fan duty %%
  -watch                CLI output mode — prints to terminal with auto-refresh
  -json                 Single evaluation as JSON to stdout, then exit
  -daemon               Headless control loop (PID file, zap logging)
  -bench N              Run N evaluation cycles and print latency percentiles
  -dump-config          Print the effective configuration as YAML and exit
  -version              Print version and exit

Options:
  -interval N           Control loop interval in seconds (default from config)
  -profile PATH         Configuration file with shape tables and rules
                        (default: $XDG_CONFIG_HOME/fantop/config.yaml)
  -synthetic            Drive the simulated TEC plant instead of hwmon sensors
  -seed N               Seed for the synthetic plant (0 = from the clock)
  -apply                Write duty commands to the pwm attribute (needs root)

Positional:
  INTERVAL              First positional arg sets interval: fantop 5

Examples:
  fantop                              TUI on live sensors (synthetic fallback)
  fantop -synthetic 2                 TUI on the simulated plant, 2s refresh
  fantop -eval 30 0 20 50             One-shot: warm plate, fan at half duty
  fantop -watch -count 10             Ten frames of CLI output, then exit
  fantop -json | jq .duty
  sudo fantop -daemon -apply          Control the fan for real
  fantop -bench 100000                Evaluation latency distribution
  fantop -dump-config > ~/.config/fantop/config.yaml
`, Version)
}

// Run parses flags and starts the selected mode.
func Run() error {
	var cli Config
	var intervalSec int
	var showVersion bool

	flag.IntVar(&intervalSec, "interval", 0, "Control loop interval in seconds (0 = from config)")
	flag.BoolVar(&cli.EvalMode, "eval", false, "One-shot evaluation of four crisp inputs")
	flag.BoolVar(&cli.WatchMode, "watch", false, "CLI output mode (no TUI)")
	flag.IntVar(&cli.WatchCount, "count", 0, "Number of iterations for -watch (0=infinite)")
	flag.BoolVar(&cli.JSONMode, "json", false, "Output a single evaluation as JSON and exit")
	flag.BoolVar(&cli.DaemonMode, "daemon", false, "Run the headless control loop")
	flag.IntVar(&cli.BenchCycles, "bench", 0, "Run N evaluation cycles and print latency percentiles")
	flag.StringVar(&cli.ProfilePath, "profile", "", "Configuration file path")
	flag.BoolVar(&cli.Synthetic, "synthetic", false, "Use the simulated TEC plant")
	flag.Int64Var(&cli.Seed, "seed", 0, "Synthetic plant seed (0 = from the clock)")
	flag.BoolVar(&cli.Apply, "apply", false, "Write duty commands to the pwm attribute")
	flag.BoolVar(&cli.DumpConfig, "dump-config", false, "Print the effective configuration as YAML")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if showVersion {
		fmt.Printf("fantop v%s\n", Version)
		return nil
	}

	cfg, err := config.Load(cli.ProfilePath)
	if err != nil {
		return err
	}

	// Eval mode consumes the positional args itself; everywhere else the
	// first positional sets the interval: `fantop 5` = `fantop -interval 5`.
	args := flag.Args()
	if cli.EvalMode {
		return runEval(os.Stdout, cfg, args)
	}
	if intervalSec == 0 {
		intervalSec = cfg.IntervalSec
	}
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			intervalSec = n
		}
	}
	cli.Interval = time.Duration(intervalSec) * time.Second

	if cli.DumpConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	if cli.BenchCycles > 0 {
		return engine.RunBench(cfg, cli.BenchCycles, os.Stdout)
	}

	if cli.DaemonMode {
		return runDaemon(cfg, cli)
	}

	if cli.JSONMode {
		eng, err := buildEngine(cfg, cli, true)
		if err != nil {
			return err
		}
		return runJSON(eng)
	}

	if cli.WatchMode {
		eng, err := buildEngine(cfg, cli, false)
		if err != nil {
			return err
		}
		return runWatch(eng, cli)
	}

	// Normal TUI mode
	eng, err := buildEngine(cfg, cli, false)
	if err != nil {
		return err
	}
	model := ui.NewModel(eng, cli.Interval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// buildEngine wires an engine for the requested sensor source. The
// interactive modes fall back to the synthetic plant when the hwmon
// chips are missing; strict modes surface the error instead.
func buildEngine(cfg config.Config, cli Config, strict bool) (*engine.Engine, error) {
	opts := engine.Options{
		Synthetic: cli.Synthetic,
		Seed:      cli.Seed,
		Apply:     cli.Apply,
	}
	eng, err := engine.New(cfg, opts)
	if err == nil || strict || cli.Synthetic {
		return eng, err
	}
	fmt.Fprintf(os.Stderr, "Warning: %v — falling back to the synthetic plant\n", err)
	opts.Synthetic = true
	opts.Apply = false
	return engine.New(cfg, opts)
}

func runDaemon(cfg config.Config, cli Config) error {
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	eng, err := engine.New(cfg, engine.Options{
		Synthetic: cli.Synthetic,
		Seed:      cli.Seed,
		Apply:     cli.Apply || cfg.Daemon.Apply,
	})
	if err != nil {
		return err
	}

	var ticker engine.Ticker = eng
	if cfg.Metrics.Enabled {
		ticker = engine.NewInstrumentedTicker(eng)
		go engine.ServeMetrics(cfg.Metrics.Addr, log)
		log.Info("metrics exporter listening", zap.String("addr", cfg.Metrics.Addr))
	}

	return engine.RunDaemon(ticker, engine.DaemonConfig{
		Interval: cli.Interval,
		PIDFile:  cfg.Daemon.PIDFile,
		Log:      log,
	})
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	c.Level = zap.NewAtomicLevelAt(lvl)
	if cfg.Path != "" {
		c.OutputPaths = []string{cfg.Path}
		c.ErrorOutputPaths = []string{cfg.Path}
	}
	return c.Build()
}
