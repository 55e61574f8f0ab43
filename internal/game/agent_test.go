package game

import (
	"testing"

	"github.com/lox/musforbots/internal/randutil"
)

func TestRandomAgentStaysInPhase(t *testing.T) {
	agent := NewRandomAgent(randutil.New(1))

	for i := 0; i < 200; i++ {
		switch a := agent.Act(Observation{Phase: PhaseMus}).(type) {
		case Discard:
		case Signal:
			if a.Value < 1 || a.Value > 3 {
				t.Fatalf("mus signal value %d out of range", a.Value)
			}
		default:
			t.Fatalf("%s is not a mus-phase action", a)
		}
	}

	for i := 0; i < 200; i++ {
		switch a := agent.Act(Observation{Phase: PhasePlay}).(type) {
		case Bet, Call, Pass:
		case Raise:
			if a.Amount < 1 || a.Amount > 2 {
				t.Fatalf("raise amount %d out of range", a.Amount)
			}
		case Ordago:
			t.Fatal("random agent should never declare ordago")
		default:
			t.Fatalf("%s is not a play-phase action", a)
		}
	}
}
