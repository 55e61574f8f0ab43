package game

import rand "math/rand/v2"

// Agent chooses one action per step from a player's observation. Agents
// only make decisions; the game applies them and owns all state.
type Agent interface {
	Act(obs Observation) Action
}

// RandomAgent plays a uniform random policy: in the mus phase it either
// discards a random selection or sends a random signal, and in the play
// phase it picks among bet, raise, call and pass. It never declares ordago.
// Useful as a simulation baseline and for exercising the engine.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates a random agent with its own random source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Act(obs Observation) Action {
	switch obs.Phase {
	case PhaseMus:
		if a.rng.Float64() < 0.5 {
			var mask [4]bool
			for i := range mask {
				mask[i] = a.rng.IntN(2) == 1
			}
			return Discard{Mask: mask}
		}
		return Signal{Value: 1 + a.rng.IntN(3)}

	case PhasePlay:
		switch a.rng.IntN(4) {
		case 0:
			return Bet{}
		case 1:
			return Raise{Amount: 1 + a.rng.IntN(2)}
		case 2:
			return Call{}
		default:
			return Pass{}
		}
	}
	return Pass{}
}
