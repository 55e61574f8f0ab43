package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/internal/randutil"
)

// maxStepsPerGame bounds a partial game against agents that never settle a
// betting round. Well-behaved agents finish in a handful of steps.
const maxStepsPerGame = 512

// MatchConfig holds the parameters for a full match.
type MatchConfig struct {
	Players              int
	TargetScore          int
	WinsRequired         int
	InterceptProbability float64
	Seed                 int64
}

// GameConfig returns the per-game slice of the match configuration.
func (c MatchConfig) GameConfig() Config {
	return Config{
		Players:              c.Players,
		TargetScore:          c.TargetScore,
		InterceptProbability: c.InterceptProbability,
	}
}

// MatchResult reports the outcome of a completed match.
type MatchResult struct {
	Winner        int
	Wins          [2]int
	PartialGames  int // games that counted toward the match
	Replays       int // tied games discarded and replayed
	OrdagoGames   int
	Interceptions int
}

// Match repeats partial games until one team accumulates the required
// number of wins. Each partial game is a freshly constructed Game with its
// own derived random stream; a tied game is discarded and replayed.
type Match struct {
	cfg    MatchConfig
	logger *log.Logger
}

// NewMatch validates the configuration and creates a match controller.
func NewMatch(cfg MatchConfig, logger *log.Logger) (*Match, error) {
	if err := validateConfig(cfg.GameConfig()); err != nil {
		return nil, err
	}
	if cfg.WinsRequired <= 0 {
		return nil, fmt.Errorf("%w: wins required must be positive, got %d", ErrInvalidConfig, cfg.WinsRequired)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Match{cfg: cfg, logger: logger}, nil
}

// Play runs the match to completion, driving every partial game with the
// given per-player agents.
func (m *Match) Play(agents map[int]Agent) (*MatchResult, error) {
	result := &MatchResult{Winner: -1}

	for gameIndex := 0; result.Wins[TeamA] < m.cfg.WinsRequired && result.Wins[TeamB] < m.cfg.WinsRequired; gameIndex++ {
		rng := randutil.New(randutil.Derive(m.cfg.Seed, gameIndex))
		g, err := NewGame(rng, m.cfg.GameConfig(), m.logger)
		if err != nil {
			return nil, err
		}

		if err := m.playPartialGame(g, agents, result); err != nil {
			return nil, err
		}

		teamA, teamB := g.Scores()
		switch {
		case teamA > teamB:
			result.Wins[TeamA]++
			result.PartialGames++
			m.logger.Debug("partial game won", "team", TeamA, "wins", result.Wins)
		case teamB > teamA:
			result.Wins[TeamB]++
			result.PartialGames++
			m.logger.Debug("partial game won", "team", TeamB, "wins", result.Wins)
		default:
			result.Replays++
			m.logger.Debug("partial game tied, replaying", "score", teamA)
		}
	}

	if result.Wins[TeamA] >= m.cfg.WinsRequired {
		result.Winner = TeamA
	} else {
		result.Winner = TeamB
	}
	m.logger.Info("match complete", "winner", result.Winner,
		"teamA", result.Wins[TeamA], "teamB", result.Wins[TeamB])
	return result, nil
}

// playPartialGame drives one game from deal to scoring, collecting agent
// actions for every step.
func (m *Match) playPartialGame(g *Game, agents map[int]Agent, result *MatchResult) error {
	if err := g.InitialDeal(); err != nil {
		return err
	}

	for steps := 0; g.Phase() == PhaseMus || g.Phase() == PhasePlay; steps++ {
		if steps >= maxStepsPerGame {
			return fmt.Errorf("partial game did not complete within %d steps", maxStepsPerGame)
		}

		actions := make(map[int]Action, g.NumPlayers())
		for player := 0; player < g.NumPlayers(); player++ {
			agent, ok := agents[player]
			if !ok {
				continue
			}
			actions[player] = agent.Act(g.Observation(player))
		}

		stepResult, err := g.Step(actions)
		if err != nil {
			return err
		}
		for _, interceptors := range stepResult.Intercepted {
			result.Interceptions += len(interceptors)
		}
	}

	if g.OrdagoResult() != nil {
		result.OrdagoGames++
	}
	return nil
}

// PlayMatch runs a full match with random-policy agents, mirroring the
// original simulation driver. The seed fixes both the card streams and the
// agent policies.
func PlayMatch(cfg MatchConfig, logger *log.Logger) (*MatchResult, error) {
	m, err := NewMatch(cfg, logger)
	if err != nil {
		return nil, err
	}

	agents := make(map[int]Agent, cfg.Players)
	for player := 0; player < cfg.Players; player++ {
		agents[player] = NewRandomAgent(randutil.New(randutil.Derive(cfg.Seed, 1000+player)))
	}
	return m.Play(agents)
}
