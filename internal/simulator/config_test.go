package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	src := []byte(`
simulation {
  matches = 500
  workers = 4
  seed    = 99
}

match {
  target_score          = 30
  wins_required         = 2
  intercept_probability = 0.5
}
`)

	scenario, err := ParseScenario(src, "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, 500, scenario.Simulation.Matches)
	assert.Equal(t, 4, scenario.Simulation.Workers)
	assert.Equal(t, int64(99), scenario.Simulation.Seed)
	assert.Equal(t, 30, scenario.Match.TargetScore)
	assert.Equal(t, 2, scenario.Match.WinsRequired)
	assert.Equal(t, 0.5, scenario.Match.InterceptProbability)

	// Omitted timeout falls back to the default.
	assert.Equal(t, 30, scenario.Simulation.TimeoutSeconds)
}

func TestParseScenarioAppliesDefaults(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
simulation {
  matches = 10
}
`), "partial.hcl")
	require.NoError(t, err)

	def := DefaultScenario()
	assert.Equal(t, 10, scenario.Simulation.Matches)
	assert.Equal(t, def.Simulation.Workers, scenario.Simulation.Workers)
	assert.Equal(t, def.Match.TargetScore, scenario.Match.TargetScore)
	assert.Equal(t, def.Match.InterceptProbability, scenario.Match.InterceptProbability)
}

func TestParseScenarioInvalidHCL(t *testing.T) {
	_, err := ParseScenario([]byte(`simulation {`), "broken.hcl")
	require.Error(t, err)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	scenario, err := LoadScenario("/nonexistent/scenario.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), scenario)
}

func TestScenarioValidate(t *testing.T) {
	require.NoError(t, DefaultScenario().Validate())

	cases := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{"negative matches", func(s *Scenario) { s.Simulation.Matches = -1 }},
		{"negative workers", func(s *Scenario) { s.Simulation.Workers = -1 }},
		{"negative timeout", func(s *Scenario) { s.Simulation.TimeoutSeconds = -1 }},
		{"negative target", func(s *Scenario) { s.Match.TargetScore = -1 }},
		{"negative wins", func(s *Scenario) { s.Match.WinsRequired = -1 }},
		{"probability out of range", func(s *Scenario) { s.Match.InterceptProbability = 1.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultScenario()
			tc.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}
