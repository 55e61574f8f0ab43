package game

import "fmt"

// Category is one of the four Mus play categories. Rounds are always played
// in this order.
type Category int

const (
	Grande Category = iota
	Chica
	Pares
	Juego

	NumCategories = 4
)

func (c Category) String() string {
	return [...]string{"grande", "chica", "pares", "juego"}[c]
}

// RoundState tracks the betting round lifecycle.
type RoundState int

const (
	RoundOpen RoundState = iota // no bets placed yet
	RoundInProgress
	RoundComplete
)

// bettingSeat is the per-player record inside a betting round, kept in turn
// order.
type bettingSeat struct {
	player int
	active bool
	bet    int
	hasBet bool
	allIn  bool
}

// BettingRound resolves one category's wagering. It is owned by the game
// orchestrator for the duration of the category and discarded once a winner
// is determined.
type BettingRound struct {
	category   Category
	seats      []bettingSeat
	currentBet int
	lastRaiser int // player id, -1 when nobody has raised
	state      RoundState
	acted      bool // any action applied since construction
}

// NewBettingRound creates a round over the players in turn order. Mus opens
// every category with a standing bet of one stone.
func NewBettingRound(players []int, category Category, initialBet int) *BettingRound {
	seats := make([]bettingSeat, len(players))
	for i, p := range players {
		seats[i] = bettingSeat{player: p, active: true}
	}
	return &BettingRound{
		category:   category,
		seats:      seats,
		currentBet: initialBet,
		lastRaiser: -1,
	}
}

// Category returns the play category this round is for.
func (br *BettingRound) Category() Category { return br.category }

// CurrentBet returns the standing bet.
func (br *BettingRound) CurrentBet() int { return br.currentBet }

// State returns the round lifecycle state.
func (br *BettingRound) State() RoundState { return br.state }

// Complete reports whether the round is terminal.
func (br *BettingRound) Complete() bool { return br.state == RoundComplete }

// Acted reports whether any action has been applied to this round.
func (br *BettingRound) Acted() bool { return br.acted }

// LastRaiser returns the player who last escalated the bet, -1 if nobody
// has.
func (br *BettingRound) LastRaiser() int { return br.lastRaiser }

// IsActive reports whether a player is still in the round. Unknown players
// are not active.
func (br *BettingRound) IsActive(player int) bool {
	s := br.seat(player)
	return s != nil && s.active
}

func (br *BettingRound) seat(player int) *bettingSeat {
	for i := range br.seats {
		if br.seats[i].player == player {
			return &br.seats[i]
		}
	}
	return nil
}

// PlayerAction applies an action from a player. Actions from unknown or
// inactive players are silently ignored, which keeps batched simulation
// loops simple. A non-positive raise is rejected with ErrInvalidAction, as
// is an action kind that has no meaning in a betting round.
func (br *BettingRound) PlayerAction(player int, action Action) error {
	if br.state == RoundComplete {
		return nil
	}
	seat := br.seat(player)
	if seat == nil || !seat.active {
		return nil
	}

	switch a := action.(type) {
	case Bet:
		if br.currentBet == 0 {
			br.currentBet = 1
		}
		seat.bet = br.currentBet
		seat.hasBet = true
		br.lastRaiser = player

	case Raise:
		if a.Amount <= 0 {
			return fmt.Errorf("%w: raise amount must be positive, got %d", ErrInvalidAction, a.Amount)
		}
		br.currentBet += a.Amount
		seat.bet = br.currentBet
		seat.hasBet = true
		br.lastRaiser = player

	case Call:
		seat.bet = br.currentBet
		seat.hasBet = true

	case Pass:
		seat.active = false

	case Ordago:
		seat.bet = br.currentBet
		seat.hasBet = true
		seat.allIn = true
		br.acted = true
		br.state = RoundComplete
		return nil

	default:
		return fmt.Errorf("%w: %T is not a betting action", ErrInvalidAction, action)
	}

	br.acted = true
	if br.state == RoundOpen {
		br.state = RoundInProgress
	}
	if br.isComplete() {
		br.state = RoundComplete
	}
	return nil
}

// isComplete applies the completion rule: the round ends when at most one
// active player remains, or when every active player with a recorded
// non-all-in bet has recorded the same value.
func (br *BettingRound) isComplete() bool {
	activePlayers := 0
	for i := range br.seats {
		if br.seats[i].active {
			activePlayers++
		}
	}
	if activePlayers <= 1 {
		return true
	}

	seen := false
	var first int
	for i := range br.seats {
		s := &br.seats[i]
		if !s.active || !s.hasBet || s.allIn {
			continue
		}
		if !seen {
			seen, first = true, s.bet
			continue
		}
		if s.bet != first {
			return false
		}
	}
	return seen
}

// Abandon force-completes a round nobody bet into. The round resolves with
// no winner and scoring falls back to hand evaluation for the category.
func (br *BettingRound) Abandon() {
	br.state = RoundComplete
	for i := range br.seats {
		br.seats[i].active = false
		br.seats[i].hasBet = false
	}
}

// RoundResult is the outcome of a completed betting round.
type RoundResult struct {
	Category Category
	Winner   int // player id, -1 when the round produced no winner
	FinalBet int
	Ordago   bool
}

// Winner determines the round outcome. An all-in player wins outright with
// an ordago outcome. Otherwise the active player with the highest recorded
// bet wins, ties broken by lowest turn-order index; a lone survivor wins
// even without a recorded bet. A round with no active players and no all-in
// yields no winner.
func (br *BettingRound) Winner() RoundResult {
	res := RoundResult{Category: br.category, Winner: -1, FinalBet: br.currentBet}

	for i := range br.seats {
		if br.seats[i].allIn {
			res.Winner = br.seats[i].player
			res.Ordago = true
			return res
		}
	}

	best := -1
	bestBet := 0
	actives := 0
	var survivor int
	for i := range br.seats {
		s := &br.seats[i]
		if !s.active {
			continue
		}
		actives++
		survivor = s.player
		if s.hasBet && (best == -1 || s.bet > bestBet) {
			best = s.player
			bestBet = s.bet
		}
	}

	switch {
	case best != -1:
		res.Winner = best
	case actives == 1:
		res.Winner = survivor
	}
	return res
}
