package game

import "fmt"

// Action is a tagged union over the seven things a player can do. Each
// variant carries only its required fields; the orchestrator dispatches on
// the concrete type.
type Action interface {
	isAction()
	fmt.Stringer
}

// Discard requests replacement of the masked hand positions during the mus
// phase. The mask always covers the four hand slots.
type Discard struct {
	Mask [4]bool
}

// Signal sends a covert signal to the player's partner during the mus
// phase. Value 0 clears any standing signal; values 1..3 set it and risk
// interception by the opposing team.
type Signal struct {
	Value int
}

// Bet opens the wagering in the current category at the standing bet.
type Bet struct{}

// Raise increases the standing bet by Amount, which must be positive.
type Raise struct {
	Amount int
}

// Call matches the standing bet.
type Call struct{}

// Pass withdraws the player from the current category's wagering.
type Pass struct{}

// Ordago declares all-in, immediately ending the category and, once
// resolved, the whole partial game.
type Ordago struct{}

func (Discard) isAction() {}
func (Signal) isAction()  {}
func (Bet) isAction()     {}
func (Raise) isAction()   {}
func (Call) isAction()    {}
func (Pass) isAction()    {}
func (Ordago) isAction()  {}

func (d Discard) String() string {
	n := 0
	for _, m := range d.Mask {
		if m {
			n++
		}
	}
	return fmt.Sprintf("discard(%d)", n)
}
func (s Signal) String() string { return fmt.Sprintf("signal(%d)", s.Value) }
func (Bet) String() string      { return "bet" }
func (r Raise) String() string  { return fmt.Sprintf("raise(%d)", r.Amount) }
func (Call) String() string     { return "call" }
func (Pass) String() string     { return "pass" }
func (Ordago) String() string   { return "ordago" }
