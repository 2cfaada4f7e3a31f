package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"machinerun.io/raidcheck"
	"machinerun.io/raidcheck/aacraid"
	"machinerun.io/raidcheck/cciss"
	"machinerun.io/raidcheck/fio"
	"machinerun.io/raidcheck/linux"
	"machinerun.io/raidcheck/mdraid"
	"machinerun.io/raidcheck/megaraid"
	"machinerun.io/raidcheck/mptsas"
	"machinerun.io/raidcheck/override"
	"machinerun.io/raidcheck/proc"
	"machinerun.io/raidcheck/smart"
	"machinerun.io/raidcheck/tw"
)

var version string

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "raidcheck: %s\n", err)
		os.Exit(3)
	}

	app := &cli.App{
		Name:    "raidcheck",
		Version: version,
		Usage:   "audit RAID controller and md array health",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "override-dir",
				Usage: "directory holding operator sentinel files",
				Value: cfg.OverrideDir,
			},
			&cli.StringFlag{
				Name:  "smartctl",
				Usage: "path to smartctl (default: search usual locations)",
				Value: cfg.Smartctl,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "log every external command with timing",
				Value: cfg.Trace,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "zerolog level for diagnostics on stderr",
				Value: cfg.LogLevel,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "raidcheck: %s\n", err)
		os.Exit(3)
	}
}

func run(c *cli.Context) error {
	log := newLogger(c.String("log-level"))
	runner := &proc.ExecRunner{Log: log, Trace: c.Bool("trace")}

	disc := linux.NewDiscoverer()
	disc.Log = log

	instances, err := disc.Discover()
	if err != nil {
		return cli.Exit(fmt.Sprintf("raidcheck: discovery failed: %s", err), 3)
	}

	if len(instances) == 0 {
		fmt.Println(raidcheck.AllClearLine)
		return nil
	}

	findings := raidcheck.CheckAll(instances,
		newRegistry(runner, c.String("smartctl")),
		override.New(c.String("override-dir")))

	line, code := raidcheck.Report(findings)
	fmt.Println(line)

	if code != 0 {
		return cli.Exit("", code)
	}

	return nil
}

func newRegistry(runner proc.Commander, smartctl string) raidcheck.Registry {
	var health *smart.Cache
	if smartctl != "" {
		health = smart.NewCacheTool(runner, smartctl, true)
	} else {
		health = smart.NewCache(runner)
	}

	return raidcheck.Registry{
		raidcheck.MDRaid:    mdraid.New(health),
		raidcheck.MegaRAID:  megaraid.New(runner),
		raidcheck.MptSAS:    mptsas.New(runner),
		raidcheck.AacRAID:   aacraid.New(runner),
		raidcheck.CCISS:     cciss.New(runner),
		raidcheck.ThreeWare: tw.New(runner),
		raidcheck.FusionIO:  fio.New(runner),
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).With().Timestamp().Logger()
}
