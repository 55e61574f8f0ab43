package game

import rand "math/rand/v2"

// signalLog holds the covert-signal side channel for one partial game:
// each player's last-sent signal and, per player, the set of senders that
// player has intercepted. Interception is monotonic for the lifetime of
// the game; the log is created fresh with every new partial game.
type signalLog struct {
	rng         *rand.Rand
	probability float64
	signals     []int
	intercepted []map[int]bool // reader -> set of intercepted senders
}

func newSignalLog(rng *rand.Rand, numPlayers int, probability float64) *signalLog {
	intercepted := make([]map[int]bool, numPlayers)
	for i := range intercepted {
		intercepted[i] = make(map[int]bool)
	}
	return &signalLog{
		rng:         rng,
		probability: probability,
		signals:     make([]int, numPlayers),
		intercepted: intercepted,
	}
}

// Send records a player's signal and rolls interception independently for
// each opponent. Value 0 clears the signal without any interception check.
// Returns the players that intercepted this send, in opponent order.
func (sl *signalLog) Send(sender, value int, opponents []int) []int {
	if value == 0 {
		sl.signals[sender] = 0
		return nil
	}
	sl.signals[sender] = value

	var interceptors []int
	for _, opp := range opponents {
		if sl.rng.Float64() < sl.probability {
			sl.intercepted[opp][sender] = true
			interceptors = append(interceptors, opp)
		}
	}
	return interceptors
}

// Signal returns a player's current signal, 0 if none sent.
func (sl *signalLog) Signal(player int) int {
	return sl.signals[player]
}

// Intercepted returns the current signal of every opponent the reader has
// previously intercepted.
func (sl *signalLog) Intercepted(reader int) map[int]int {
	out := make(map[int]int, len(sl.intercepted[reader]))
	for sender := range sl.intercepted[reader] {
		out[sender] = sl.signals[sender]
	}
	return out
}
