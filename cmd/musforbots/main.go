package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Debug    bool             `help:"Enable debug logging"`
	Simulate SimulateCmd      `cmd:"" help:"Run batches of seeded matches with random agents"`
	Match    MatchCmd         `cmd:"" help:"Play a single match and log it play by play"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a four-card hand for all four categories"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("musforbots"),
		kong.Description("Deterministic Mus rules engine for simulation and RL harnesses"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(setupLogger(cli.Debug))
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
