package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/mus"
)

// Phase is the partial-game lifecycle. Phases are strictly cyclic; the next
// partial game is a freshly constructed Game, not a transition on this one.
type Phase int

const (
	PhaseDeal Phase = iota
	PhaseMus
	PhasePlay
	PhaseScoring
)

func (p Phase) String() string {
	return [...]string{"deal", "mus", "play", "scoring"}[p]
}

// Teams. Team A is the mano's team.
const (
	TeamA = 0
	TeamB = 1
)

// Config holds the parameters for one partial game.
type Config struct {
	Players              int
	TargetScore          int
	InterceptProbability float64
}

// Game owns one partial game: deck, hands, phase, turn order, mano, scores
// and the covert-signal log. It is driven synchronously by a single caller
// and never mutated concurrently.
type Game struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	deck     *mus.Deck
	discards []mus.Card
	hands    []mus.Hand
	dealt    bool

	phase     Phase
	mano      int
	turnOrder []int

	round    *BettingRound
	category Category
	results  [NumCategories]*RoundResult
	ordago   *RoundResult
	revealed bool

	signals *signalLog
	scores  [2]int
}

// StepResult reports what happened during one Step call: signals
// intercepted (sender to interceptors) and per-player entries that were
// skipped as malformed.
type StepResult struct {
	Intercepted map[int][]int
	Rejected    map[int]error
}

func newStepResult() *StepResult {
	return &StepResult{
		Intercepted: make(map[int][]int),
		Rejected:    make(map[int]error),
	}
}

// validateConfig checks the constructor parameters. The engine supports
// the standard four-player game of two teams of two.
func validateConfig(cfg Config) error {
	if cfg.Players != 4 {
		return fmt.Errorf("%w: need 4 players, got %d", ErrInvalidConfig, cfg.Players)
	}
	if cfg.TargetScore <= 0 {
		return fmt.Errorf("%w: target score must be positive, got %d", ErrInvalidConfig, cfg.TargetScore)
	}
	if cfg.InterceptProbability < 0 || cfg.InterceptProbability > 1 {
		return fmt.Errorf("%w: intercept probability must be in [0,1], got %v", ErrInvalidConfig, cfg.InterceptProbability)
	}
	return nil
}

// NewGame validates the configuration and creates a fresh partial game in
// the deal phase.
func NewGame(rng *rand.Rand, cfg Config, logger *log.Logger) (*Game, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		cfg:     cfg,
		rng:     rng,
		logger:  logger,
		deck:    mus.NewDeck(rng),
		hands:   make([]mus.Hand, cfg.Players),
		phase:   PhaseDeal,
		signals: newSignalLog(rng, cfg.Players, cfg.InterceptProbability),
	}, nil
}

// InitialDeal deals four cards to every player, determines the mano and
// advances to the mus phase. Calling it again re-deals: prior hands go to
// the discard pile first, so card conservation holds.
func (g *Game) InitialDeal() error {
	if g.dealt {
		for _, h := range g.hands {
			g.discards = append(g.discards, h[:]...)
		}
	}

	for player := range g.hands {
		cards, err := g.drawFromDeck(mus.HandSize)
		if err != nil {
			return err
		}
		copy(g.hands[player][:], cards)
	}
	g.dealt = true

	g.determineMano()
	g.setTurnOrder()
	g.phase = PhaseMus

	g.logger.Debug("dealt hands", "mano", g.mano)
	return g.validateConservation()
}

// drawFromDeck deals n cards, reshuffling the discard pile back into the
// deck first when it would come up short.
func (g *Game) drawFromDeck(n int) ([]mus.Card, error) {
	if g.deck.Len() < n {
		g.logger.Debug("reshuffling discard pile into deck",
			"deck", g.deck.Len(), "discards", len(g.discards), "want", n)
		g.deck.Add(g.discards...)
		g.discards = nil
		g.deck.Shuffle()
	}
	cards, err := g.deck.Deal(n)
	if err != nil {
		// Unreachable under 40-card conservation; a fatal invariant
		// violation if it ever fires.
		return nil, fmt.Errorf("draw of %d cards failed: %w", n, err)
	}
	return cards, nil
}

// determineMano compares one revealed card per player, the first of each
// hand. Highest order wins, first-seen wins ties.
func (g *Game) determineMano() {
	highest := -1
	for player := range g.hands {
		if o := g.hands[player][0].Order(); o > highest {
			highest = o
			g.mano = player
		}
	}
}

func (g *Game) setTurnOrder() {
	g.turnOrder = make([]int, g.cfg.Players)
	for i := range g.turnOrder {
		g.turnOrder[i] = (g.mano + i) % g.cfg.Players
	}
}

// teamOf returns the team of a player. Team A is the mano and the player
// two seats clockwise; team B is the complement.
func (g *Game) teamOf(player int) int {
	if player == g.mano || player == (g.mano+2)%g.cfg.Players {
		return TeamA
	}
	return TeamB
}

// partner returns the other member of a player's team.
func (g *Game) partner(player int) int {
	for p := 0; p < g.cfg.Players; p++ {
		if p != player && g.teamOf(p) == g.teamOf(player) {
			return p
		}
	}
	return -1
}

// opponents returns the players on the other team, in ascending order.
func (g *Game) opponents(player int) []int {
	var opps []int
	for p := 0; p < g.cfg.Players; p++ {
		if g.teamOf(p) != g.teamOf(player) {
			opps = append(opps, p)
		}
	}
	return opps
}

// Step processes one batch of player actions. Malformed entries are skipped
// for that player and reported in the result, never fatal to the call.
// Outside the mus and play phases Step is a no-op.
func (g *Game) Step(actions map[int]Action) (*StepResult, error) {
	switch g.phase {
	case PhaseMus:
		return g.stepMus(actions)
	case PhasePlay:
		return g.stepPlay(actions)
	default:
		return newStepResult(), nil
	}
}

// stepMus processes one simultaneous batch of discard and signal actions,
// then unconditionally advances to the play phase. Players are processed in
// ascending ID order so seeded runs replay exactly.
func (g *Game) stepMus(actions map[int]Action) (*StepResult, error) {
	res := newStepResult()

	players := make([]int, 0, len(actions))
	for p := range actions {
		players = append(players, p)
	}
	sort.Ints(players)

	for _, player := range players {
		if player < 0 || player >= g.cfg.Players {
			continue
		}
		switch a := actions[player].(type) {
		case Signal:
			if a.Value < 0 || a.Value > 3 {
				res.Rejected[player] = fmt.Errorf("%w: signal value %d out of range", ErrInvalidAction, a.Value)
				continue
			}
			interceptors := g.signals.Send(player, a.Value, g.opponents(player))
			if len(interceptors) > 0 {
				res.Intercepted[player] = interceptors
				g.logger.Debug("signal intercepted", "sender", player, "interceptors", interceptors)
			}
		case Discard:
			if err := g.performDiscard(player, a.Mask); err != nil {
				return res, err
			}
		default:
			res.Rejected[player] = fmt.Errorf("%w: %s is not a mus-phase action", ErrInvalidAction, actions[player])
		}
	}

	if err := g.validateConservation(); err != nil {
		return res, err
	}
	g.startPlay()
	return res, nil
}

// performDiscard replaces the masked hand positions with fresh cards and
// appends the discarded ones to the discard pile.
func (g *Game) performDiscard(player int, mask [4]bool) error {
	var kept, thrown []mus.Card
	for i, c := range g.hands[player] {
		if mask[i] {
			thrown = append(thrown, c)
		} else {
			kept = append(kept, c)
		}
	}
	if len(thrown) == 0 {
		return nil
	}

	drawn, err := g.drawFromDeck(len(thrown))
	if err != nil {
		return err
	}
	copy(g.hands[player][:], append(kept, drawn...))
	g.discards = append(g.discards, thrown...)

	g.logger.Debug("player discarded", "player", player, "count", len(thrown))
	return nil
}

func (g *Game) startPlay() {
	g.phase = PhasePlay
	g.category = Grande
	g.round = NewBettingRound(g.turnOrder, Grande, 1)
	g.logger.Debug("play phase started", "category", g.category)
}

// stepPlay feeds the batch into the current category's betting round in
// turn order. Once the round completes, remaining entries are dropped;
// players act per category. A batch that engages nobody abandons the round,
// leaving the category to hand evaluation at scoring.
func (g *Game) stepPlay(actions map[int]Action) (*StepResult, error) {
	res := newStepResult()

	applied := false
	for _, player := range g.turnOrder {
		if g.round.Complete() {
			break
		}
		action, ok := actions[player]
		if !ok {
			continue
		}
		switch action.(type) {
		case Discard, Signal:
			res.Rejected[player] = fmt.Errorf("%w: %s is not a play-phase action", ErrInvalidAction, action)
			continue
		}
		if !g.round.IsActive(player) {
			// Withdrawn players may keep submitting; ignore them.
			continue
		}
		if err := g.round.PlayerAction(player, action); err != nil {
			res.Rejected[player] = err
			continue
		}
		applied = true
	}

	if !applied && !g.round.Complete() {
		g.logger.Debug("betting round abandoned", "category", g.category)
		g.round.Abandon()
	}
	if g.round.Complete() {
		g.finishRound()
	}
	return res, nil
}

// finishRound records the completed round's outcome and advances: next
// category, or straight to scoring on an ordago or after juego.
func (g *Game) finishRound() {
	result := g.round.Winner()
	g.results[g.category] = &result
	g.logger.Debug("betting round complete",
		"category", result.Category, "winner", result.Winner,
		"bet", result.FinalBet, "ordago", result.Ordago,
		"lastRaiser", g.round.LastRaiser())

	if result.Ordago {
		g.ordago = &result
		g.round = nil
		g.scoreRound()
		return
	}
	if g.category < Juego {
		g.category++
		g.round = NewBettingRound(g.turnOrder, g.category, 1)
		return
	}
	g.round = nil
	g.scoreRound()
}

// scoreRound settles the partial game. An ordago reveals all hands and
// awards the entire target score to the team with the strictly higher
// order-sum; an exact tie awards nothing. Otherwise each category awards
// one stone to its winner: the betting winner when the round produced one,
// else the best evaluated hand.
func (g *Game) scoreRound() {
	g.phase = PhaseScoring

	if g.ordago != nil {
		g.revealHands()
		sums := [2]int{}
		for player := range g.hands {
			team := g.teamOf(player)
			for _, c := range g.hands[player] {
				sums[team] += c.Order()
			}
		}
		switch {
		case sums[TeamA] > sums[TeamB]:
			g.scores[TeamA] += g.cfg.TargetScore
		case sums[TeamB] > sums[TeamA]:
			g.scores[TeamB] += g.cfg.TargetScore
		default:
			// Equal order-sums: nobody scores, the partial game is a wash.
		}
		g.logger.Debug("ordago resolved",
			"player", g.ordago.Winner, "teamA", sums[TeamA], "teamB", sums[TeamB])
	} else {
		for cat := Grande; cat <= Juego; cat++ {
			winner := -1
			if r := g.results[cat]; r != nil && r.Winner >= 0 {
				winner = r.Winner
			} else {
				winner = g.bestHand(cat)
			}
			g.scores[g.teamOf(winner)]++
			g.logger.Debug("category scored", "category", cat, "winner", winner)
		}
	}

	g.phase = PhaseDeal
	g.logger.Debug("partial game scored", "teamA", g.scores[TeamA], "teamB", g.scores[TeamB])
}

// bestHand evaluates every hand for a category and returns the extremal
// player, first-seen winning ties.
func (g *Game) bestHand(cat Category) int {
	best := 0
	switch cat {
	case Grande:
		bestScore := mus.Grande(g.hands[0])
		for p := 1; p < g.cfg.Players; p++ {
			if s := mus.Grande(g.hands[p]); s.Compare(bestScore) > 0 {
				best, bestScore = p, s
			}
		}
	case Chica:
		bestScore := mus.Chica(g.hands[0])
		for p := 1; p < g.cfg.Players; p++ {
			if s := mus.Chica(g.hands[p]); s.Compare(bestScore) > 0 {
				best, bestScore = p, s
			}
		}
	case Pares:
		bestScore := mus.Pares(g.hands[0])
		for p := 1; p < g.cfg.Players; p++ {
			if s := mus.Pares(g.hands[p]); s.Compare(bestScore) > 0 {
				best, bestScore = p, s
			}
		}
	case Juego:
		bestScore := mus.Juego(g.hands[0])
		for p := 1; p < g.cfg.Players; p++ {
			if s := mus.Juego(g.hands[p]); s.Compare(bestScore) > 0 {
				best, bestScore = p, s
			}
		}
	}
	return best
}

func (g *Game) revealHands() {
	g.revealed = true
	for player := range g.hands {
		g.logger.Debug("revealed hand", "player", player, "hand", g.hands[player])
	}
}

// validateConservation checks the 40-card invariant: deck, discard pile and
// hands always partition the full deck.
func (g *Game) validateConservation() error {
	total := g.deck.Len() + len(g.discards)
	if g.dealt {
		total += len(g.hands) * mus.HandSize
	}
	if total != mus.DeckSize {
		err := fmt.Errorf("card conservation violated: counted %d, want %d", total, mus.DeckSize)
		g.logger.Error("card conservation violation detected", "error", err)
		return err
	}
	return nil
}

// BettingInfo describes the standing bet during the play phase.
type BettingInfo struct {
	CurrentBet int
	Category   Category
}

// Observation is one player's view of the game.
type Observation struct {
	Player        int
	Hand          [4]int // order values of the player's cards
	Phase         Phase
	PartnerSignal int
	Intercepted   map[int]int
	Scores        [2]int
	Betting       *BettingInfo
}

// Observation returns the given player's view: their own hand as order
// values, the phase, the partner's signal, any intercepted opponent
// signals, both team scores and the standing bet when one exists.
func (g *Game) Observation(player int) Observation {
	obs := Observation{
		Player:        player,
		Phase:         g.phase,
		PartnerSignal: g.signals.Signal(g.partner(player)),
		Intercepted:   g.signals.Intercepted(player),
		Scores:        g.scores,
	}
	for i, c := range g.hands[player] {
		obs.Hand[i] = c.Order()
	}
	if g.phase == PhasePlay && g.round != nil {
		obs.Betting = &BettingInfo{
			CurrentBet: g.round.CurrentBet(),
			Category:   g.round.Category(),
		}
	}
	return obs
}

// IsTerminal reports whether either team has reached the target score.
func (g *Game) IsTerminal() bool {
	return g.scores[TeamA] >= g.cfg.TargetScore || g.scores[TeamB] >= g.cfg.TargetScore
}

// Scores returns the (team A, team B) scores.
func (g *Game) Scores() (int, int) {
	return g.scores[TeamA], g.scores[TeamB]
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Mano returns the lead player, valid after InitialDeal.
func (g *Game) Mano() int { return g.mano }

// TurnOrder returns a copy of the clockwise turn order starting at mano.
func (g *Game) TurnOrder() []int {
	out := make([]int, len(g.turnOrder))
	copy(out, g.turnOrder)
	return out
}

// Hand returns a player's current hand.
func (g *Game) Hand(player int) mus.Hand { return g.hands[player] }

// NumPlayers returns the player count.
func (g *Game) NumPlayers() int { return g.cfg.Players }

// CategoryResult returns the recorded betting outcome for a category, nil
// if its round never ran.
func (g *Game) CategoryResult(cat Category) *RoundResult {
	return g.results[cat]
}

// OrdagoResult returns the ordago outcome if one ended the play phase.
func (g *Game) OrdagoResult() *RoundResult { return g.ordago }
