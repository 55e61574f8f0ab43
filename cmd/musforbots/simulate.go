package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/simulator"
)

// SimulateCmd runs a batch of matches and prints aggregate statistics.
// Flags override values from the scenario file when given.
type SimulateCmd struct {
	Config       string        `help:"HCL scenario file" type:"path"`
	Matches      int           `help:"Number of matches to play"`
	Workers      int           `help:"Parallel match workers"`
	TargetScore  int           `help:"Score needed to win a partial game"`
	WinsRequired int           `help:"Partial-game wins needed to win a match"`
	Intercept    float64       `help:"Signal interception probability" default:"-1"`
	Seed         int64         `help:"Base random seed"`
	Timeout      time.Duration `help:"Per-match hang protection timeout"`
}

func (c *SimulateCmd) Run(logger *log.Logger) error {
	scenario, err := simulator.LoadScenario(c.Config)
	if err != nil {
		return err
	}
	if c.Matches > 0 {
		scenario.Simulation.Matches = c.Matches
	}
	if c.Workers > 0 {
		scenario.Simulation.Workers = c.Workers
	}
	if c.TargetScore > 0 {
		scenario.Match.TargetScore = c.TargetScore
	}
	if c.WinsRequired > 0 {
		scenario.Match.WinsRequired = c.WinsRequired
	}
	if c.Intercept >= 0 {
		scenario.Match.InterceptProbability = c.Intercept
	}
	if c.Seed != 0 {
		scenario.Simulation.Seed = c.Seed
	}
	if c.Timeout > 0 {
		scenario.Simulation.TimeoutSeconds = int(c.Timeout.Seconds())
	}
	if err := scenario.Validate(); err != nil {
		return err
	}

	config := simulator.FromScenario(scenario, logger)
	logger.Info("starting simulation",
		"matches", config.Matches, "workers", config.Workers, "seed", config.Seed)

	stats, err := simulator.New(config).Run(context.Background())
	if err != nil {
		return err
	}

	simulator.PrintSummary(stats)
	return nil
}
