// Package simulator runs batches of seeded Mus matches with random-policy
// agents and aggregates the outcomes. It is the in-repo stand-in for an
// external training harness driving the engine.
package simulator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/musforbots/internal/game"
	"github.com/lox/musforbots/internal/randutil"
)

// Config holds configuration for running simulations.
type Config struct {
	Matches              int
	Workers              int
	TargetScore          int
	WinsRequired         int
	InterceptProbability float64
	Seed                 int64
	Timeout              time.Duration
	Logger               *log.Logger
	Clock                quartz.Clock
}

// Stats aggregates match results across a simulation run.
type Stats struct {
	mu sync.Mutex

	Matches       int
	TeamWins      [2]int
	PartialGames  int
	Replays       int
	OrdagoGames   int
	Interceptions int
	Elapsed       time.Duration
}

func (s *Stats) add(r *game.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Matches++
	s.TeamWins[r.Winner]++
	s.PartialGames += r.PartialGames
	s.Replays += r.Replays
	s.OrdagoGames += r.OrdagoGames
	s.Interceptions += r.Interceptions
}

// Validate sanity-checks the aggregated numbers.
func (s *Stats) Validate() error {
	if s.TeamWins[0]+s.TeamWins[1] != s.Matches {
		return fmt.Errorf("team wins %d+%d do not sum to matches %d",
			s.TeamWins[0], s.TeamWins[1], s.Matches)
	}
	return nil
}

// Simulator runs Mus match simulations.
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a simulator, applying defaults for unset fields.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Simulator{config: config, clock: clock}
}

// FromScenario builds a simulator config from a loaded scenario.
func FromScenario(s *Scenario, logger *log.Logger) Config {
	return Config{
		Matches:              s.Simulation.Matches,
		Workers:              s.Simulation.Workers,
		TargetScore:          s.Match.TargetScore,
		WinsRequired:         s.Match.WinsRequired,
		InterceptProbability: s.Match.InterceptProbability,
		Seed:                 s.Simulation.Seed,
		Timeout:              time.Duration(s.Simulation.TimeoutSeconds) * time.Second,
		Logger:               logger,
	}
}

// Run executes the configured number of matches, spreading them over the
// worker pool, and returns aggregate statistics. Every match gets an
// independent derived seed, so results are reproducible regardless of
// worker count.
func (s *Simulator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	start := time.Now()

	indices := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := 0; i < s.config.Matches; i++ {
			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			for idx := range indices {
				result, err := s.playMatchWithTimeout(ctx, randutil.Derive(s.config.Seed, idx))
				if err != nil {
					return fmt.Errorf("match %d: %w", idx+1, err)
				}
				stats.add(result)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.Elapsed = time.Since(start)

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playMatchWithTimeout runs a single match with hang protection.
func (s *Simulator) playMatchWithTimeout(ctx context.Context, seed int64) (*game.MatchResult, error) {
	type outcome struct {
		result *game.MatchResult
		err    error
	}
	resultCh := make(chan outcome, 1)
	timedOut := make(chan struct{})

	timer := s.clock.AfterFunc(s.config.Timeout, func() {
		close(timedOut)
	})
	defer timer.Stop()

	go func() {
		result, err := game.PlayMatch(game.MatchConfig{
			Players:              4,
			TargetScore:          s.config.TargetScore,
			WinsRequired:         s.config.WinsRequired,
			InterceptProbability: s.config.InterceptProbability,
			Seed:                 seed,
		}, s.config.Logger)
		resultCh <- outcome{result, err}
	}()

	select {
	case o := <-resultCh:
		return o.result, o.err
	case <-timedOut:
		return nil, fmt.Errorf("match timed out after %v (seed: %d)", s.config.Timeout, seed)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PrintSummary prints a summary of simulation results.
func PrintSummary(stats *Stats) {
	fmt.Printf("\n=== SIMULATION RESULTS ===\n")
	fmt.Printf("Matches played: %d (%.1fs)\n", stats.Matches, stats.Elapsed.Seconds())
	fmt.Printf("Team A wins: %d (%.1f%%)\n", stats.TeamWins[0],
		float64(stats.TeamWins[0])/float64(stats.Matches)*100)
	fmt.Printf("Team B wins: %d (%.1f%%)\n", stats.TeamWins[1],
		float64(stats.TeamWins[1])/float64(stats.Matches)*100)
	fmt.Printf("Partial games: %d (%.2f per match), %d tied and replayed\n",
		stats.PartialGames, float64(stats.PartialGames)/float64(stats.Matches), stats.Replays)
	fmt.Printf("Ordago games: %d\n", stats.OrdagoGames)
	fmt.Printf("Signals intercepted: %d\n", stats.Interceptions)
}
