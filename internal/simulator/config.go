package simulator

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Scenario is a simulation scenario loaded from an HCL file.
type Scenario struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Match      *MatchSettings      `hcl:"match,block"`
}

// SimulationSettings controls the rollout batch.
type SimulationSettings struct {
	Matches        int   `hcl:"matches,optional"`
	Workers        int   `hcl:"workers,optional"`
	Seed           int64 `hcl:"seed,optional"`
	TimeoutSeconds int   `hcl:"timeout_seconds,optional"`
}

// MatchSettings controls the rules of each match.
type MatchSettings struct {
	TargetScore          int     `hcl:"target_score,optional"`
	WinsRequired         int     `hcl:"wins_required,optional"`
	InterceptProbability float64 `hcl:"intercept_probability,optional"`
}

// DefaultScenario returns the standard scenario: 100 matches of classic
// 40-stone Mus, best of 3 partial games, 20% signal interception.
func DefaultScenario() *Scenario {
	return &Scenario{
		Simulation: &SimulationSettings{
			Matches:        100,
			Workers:        1,
			Seed:           1,
			TimeoutSeconds: 30,
		},
		Match: &MatchSettings{
			TargetScore:          40,
			WinsRequired:         3,
			InterceptProbability: 0.2,
		},
	}
}

// LoadScenario loads a scenario from an HCL file, falling back to defaults
// for a missing file or missing values.
func LoadScenario(filename string) (*Scenario, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultScenario(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var scenario Scenario
	diags = gohcl.DecodeBody(file.Body, nil, &scenario)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	scenario.applyDefaults()
	return &scenario, nil
}

// ParseScenario decodes a scenario from in-memory HCL source.
func ParseScenario(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var scenario Scenario
	diags = gohcl.DecodeBody(file.Body, nil, &scenario)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	scenario.applyDefaults()
	return &scenario, nil
}

func (s *Scenario) applyDefaults() {
	def := DefaultScenario()
	if s.Simulation == nil {
		s.Simulation = def.Simulation
	}
	if s.Match == nil {
		s.Match = def.Match
	}
	if s.Simulation.Matches == 0 {
		s.Simulation.Matches = def.Simulation.Matches
	}
	if s.Simulation.Workers == 0 {
		s.Simulation.Workers = def.Simulation.Workers
	}
	if s.Simulation.Seed == 0 {
		s.Simulation.Seed = def.Simulation.Seed
	}
	if s.Simulation.TimeoutSeconds == 0 {
		s.Simulation.TimeoutSeconds = def.Simulation.TimeoutSeconds
	}
	if s.Match.TargetScore == 0 {
		s.Match.TargetScore = def.Match.TargetScore
	}
	if s.Match.WinsRequired == 0 {
		s.Match.WinsRequired = def.Match.WinsRequired
	}
}

// Validate validates the scenario.
func (s *Scenario) Validate() error {
	if s.Simulation.Matches <= 0 {
		return fmt.Errorf("matches must be positive, got %d", s.Simulation.Matches)
	}
	if s.Simulation.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", s.Simulation.Workers)
	}
	if s.Simulation.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", s.Simulation.TimeoutSeconds)
	}
	if s.Match.TargetScore <= 0 {
		return fmt.Errorf("target_score must be positive, got %d", s.Match.TargetScore)
	}
	if s.Match.WinsRequired <= 0 {
		return fmt.Errorf("wins_required must be positive, got %d", s.Match.WinsRequired)
	}
	if s.Match.InterceptProbability < 0 || s.Match.InterceptProbability > 1 {
		return fmt.Errorf("intercept_probability must be in [0,1], got %v", s.Match.InterceptProbability)
	}
	return nil
}
