package main

import (
	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/game"
)

// MatchCmd plays one full match with random agents, logging every partial
// game as it goes.
type MatchCmd struct {
	TargetScore  int     `help:"Score needed to win a partial game" default:"40"`
	WinsRequired int     `help:"Partial-game wins needed to win the match" default:"3"`
	Intercept    float64 `help:"Signal interception probability" default:"0.2"`
	Seed         int64   `help:"Random seed" default:"1"`
}

func (c *MatchCmd) Run(logger *log.Logger) error {
	result, err := game.PlayMatch(game.MatchConfig{
		Players:              4,
		TargetScore:          c.TargetScore,
		WinsRequired:         c.WinsRequired,
		InterceptProbability: c.Intercept,
		Seed:                 c.Seed,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("match result",
		"winner", result.Winner,
		"teamA", result.Wins[game.TeamA],
		"teamB", result.Wins[game.TeamB],
		"partialGames", result.PartialGames,
		"replays", result.Replays,
		"ordagoGames", result.OrdagoGames,
		"interceptions", result.Interceptions)
	return nil
}
