package game

import (
	"errors"
	"testing"

	"github.com/lox/musforbots/internal/randutil"
	"github.com/lox/musforbots/mus"
)

func testConfig() Config {
	return Config{Players: 4, TargetScore: 40, InterceptProbability: 0}
}

func newTestGame(t *testing.T, seed int64, cfg Config) *Game {
	t.Helper()
	g, err := NewGame(randutil.New(seed), cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGameValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"wrong player count", Config{Players: 2, TargetScore: 40}},
		{"zero target", Config{Players: 4, TargetScore: 0}},
		{"negative probability", Config{Players: 4, TargetScore: 40, InterceptProbability: -0.1}},
		{"probability above one", Config{Players: 4, TargetScore: 40, InterceptProbability: 1.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewGame(randutil.New(1), tc.cfg, nil); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestInitialDealManoRule(t *testing.T) {
	g := newTestGame(t, 11, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	// Highest order among each player's first card, first seen wins ties.
	want, highest := 0, -1
	for p := 0; p < g.NumPlayers(); p++ {
		if o := g.Hand(p)[0].Order(); o > highest {
			highest, want = o, p
		}
	}
	if g.Mano() != want {
		t.Errorf("mano = %d, want %d", g.Mano(), want)
	}
	if g.Phase() != PhaseMus {
		t.Errorf("phase = %v, want mus", g.Phase())
	}

	// Same seed replays the same deal.
	g2 := newTestGame(t, 11, testConfig())
	if err := g2.InitialDeal(); err != nil {
		t.Fatal(err)
	}
	if g2.Mano() != g.Mano() {
		t.Errorf("mano differs across identical seeds: %d vs %d", g2.Mano(), g.Mano())
	}
	for p := 0; p < g.NumPlayers(); p++ {
		if g2.Hand(p) != g.Hand(p) {
			t.Errorf("player %d hand differs across identical seeds", p)
		}
	}
}

func TestTurnOrderAndTeams(t *testing.T) {
	g := newTestGame(t, 3, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	mano := g.Mano()
	order := g.TurnOrder()
	for i, p := range order {
		if p != (mano+i)%4 {
			t.Fatalf("turn order %v does not start at mano %d", order, mano)
		}
	}

	if g.teamOf(mano) != TeamA || g.teamOf((mano+2)%4) != TeamA {
		t.Error("mano and the player across should both be team A")
	}
	if g.teamOf((mano+1)%4) != TeamB || g.teamOf((mano+3)%4) != TeamB {
		t.Error("the other pair should be team B")
	}
	if g.partner(mano) != (mano+2)%4 {
		t.Errorf("partner(%d) = %d, want %d", mano, g.partner(mano), (mano+2)%4)
	}
	opps := g.opponents(mano)
	if len(opps) != 2 || g.teamOf(opps[0]) != TeamB || g.teamOf(opps[1]) != TeamB {
		t.Errorf("opponents(%d) = %v, want the team B pair", mano, opps)
	}
}

func TestStepBeforeDealIsNoOp(t *testing.T) {
	g := newTestGame(t, 1, testConfig())
	res, err := g.Step(map[int]Action{0: Bet{}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rejected) != 0 || len(res.Intercepted) != 0 {
		t.Errorf("step before dealing produced %+v, want empty result", res)
	}
	if g.Phase() != PhaseDeal {
		t.Errorf("phase = %v, want deal", g.Phase())
	}
}

func TestMusPhaseDiscardAndConservation(t *testing.T) {
	g := newTestGame(t, 5, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	before := g.Hand(0)
	_, err := g.Step(map[int]Action{0: Discard{Mask: [4]bool{true, true, false, false}}})
	if err != nil {
		t.Fatal(err)
	}

	after := g.Hand(0)
	// Kept cards move to the front, fresh cards fill the back.
	if after[0] != before[2] || after[1] != before[3] {
		t.Errorf("kept cards not preserved: before %v after %v", before, after)
	}
	if len(g.discards) != 2 {
		t.Errorf("discard pile holds %d cards, want 2", len(g.discards))
	}
	if g.Phase() != PhasePlay {
		t.Errorf("phase = %v, want play after the mus batch", g.Phase())
	}
}

func TestMusPhaseRejectsInvalidActions(t *testing.T) {
	g := newTestGame(t, 5, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	res, err := g.Step(map[int]Action{
		0: Signal{Value: 7},
		1: Bet{},
		2: Signal{Value: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range []int{0, 1} {
		if !errors.Is(res.Rejected[p], ErrInvalidAction) {
			t.Errorf("player %d rejection = %v, want ErrInvalidAction", p, res.Rejected[p])
		}
	}
	if _, rejected := res.Rejected[2]; rejected {
		t.Error("valid signal should not be rejected")
	}
	// Rejections don't stall the game.
	if g.Phase() != PhasePlay {
		t.Errorf("phase = %v, want play", g.Phase())
	}
}

func TestRepeatedDealReshufflesDiscards(t *testing.T) {
	g := newTestGame(t, 9, testConfig())

	// The third deal needs 16 cards with only 8 left in the deck, forcing
	// the discard pile back in.
	for i := 0; i < 3; i++ {
		if err := g.InitialDeal(); err != nil {
			t.Fatalf("deal %d: %v", i+1, err)
		}
	}

	total := g.deck.Len() + len(g.discards) + g.NumPlayers()*mus.HandSize
	if total != mus.DeckSize {
		t.Errorf("cards in circulation = %d, want %d", total, mus.DeckSize)
	}
	for p := 0; p < g.NumPlayers(); p++ {
		seen := map[mus.Card]bool{}
		for _, c := range g.Hand(p) {
			if seen[c] {
				t.Errorf("player %d holds duplicate card %s", p, c)
			}
			seen[c] = true
		}
	}
}

func TestPlayPhaseAllCategoriesByHandEvaluation(t *testing.T) {
	g := newTestGame(t, 21, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(nil); err != nil {
		t.Fatal(err)
	}

	// Four empty batches: each abandons one category's round, leaving the
	// category to hand evaluation at scoring.
	for cat := Grande; cat <= Juego; cat++ {
		if g.Phase() != PhasePlay {
			t.Fatalf("phase = %v before %s, want play", g.Phase(), cat)
		}
		if _, err := g.Step(nil); err != nil {
			t.Fatal(err)
		}
	}

	if g.Phase() != PhaseDeal {
		t.Errorf("phase = %v, want deal after scoring", g.Phase())
	}
	a, b := g.Scores()
	if a+b != NumCategories {
		t.Errorf("scores %d+%d, want one stone per category", a, b)
	}
	for cat := Grande; cat <= Juego; cat++ {
		r := g.CategoryResult(cat)
		if r == nil || r.Winner != -1 {
			t.Errorf("category %s result = %+v, want abandoned round", cat, r)
		}
	}
}

func TestPlayPhaseBettingWinnerScores(t *testing.T) {
	g := newTestGame(t, 13, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(nil); err != nil {
		t.Fatal(err)
	}

	mano := g.Mano()
	if _, err := g.Step(map[int]Action{mano: Bet{}}); err != nil {
		t.Fatal(err)
	}

	r := g.CategoryResult(Grande)
	if r == nil || r.Winner != mano || r.FinalBet != 1 {
		t.Fatalf("grande result = %+v, want mano winning at bet 1", r)
	}
	if g.Phase() != PhasePlay {
		t.Errorf("phase = %v, want play to continue with chica", g.Phase())
	}
}

func TestOrdagoAwardsFullTarget(t *testing.T) {
	g := newTestGame(t, 17, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	// Fix the hands so the mano's team holds the higher order-sum.
	// Conservation only counts cards, so swapping contents is safe here.
	mano := g.Mano()
	strong := [2]mus.Hand{
		mus.MustParseHand("Ko Kc 3e 3b"),
		mus.MustParseHand("7o 7c 6e 6b"),
	}
	weak := mus.MustParseHand("Ao 2c 4e 5b")
	for p := 0; p < g.NumPlayers(); p++ {
		g.hands[p] = weak
	}
	g.hands[mano] = strong[0]
	g.hands[g.partner(mano)] = strong[1]

	if _, err := g.Step(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(map[int]Action{mano: Ordago{}}); err != nil {
		t.Fatal(err)
	}

	if g.Phase() != PhaseDeal {
		t.Errorf("phase = %v, want the ordago to end the partial game", g.Phase())
	}
	if r := g.OrdagoResult(); r == nil || r.Winner != mano {
		t.Fatalf("ordago result = %+v, want declared by mano", r)
	}
	a, b := g.Scores()
	if a != g.cfg.TargetScore || b != 0 {
		t.Errorf("scores = (%d, %d), want the full target to team A", a, b)
	}
	if !g.IsTerminal() {
		t.Error("game should be terminal after an ordago award")
	}
	// Later categories never ran.
	if g.CategoryResult(Chica) != nil {
		t.Error("chica should not have been played after a grande ordago")
	}
}

func TestOrdagoTieAwardsNothing(t *testing.T) {
	g := newTestGame(t, 17, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	// Every hand carries the same order-sum, so the teams tie exactly.
	for p := 0; p < g.NumPlayers(); p++ {
		g.hands[p] = mus.MustParseHand("Ko 2c 4e 5b")
	}

	if _, err := g.Step(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Step(map[int]Action{g.Mano(): Ordago{}}); err != nil {
		t.Fatal(err)
	}

	a, b := g.Scores()
	if a != 0 || b != 0 {
		t.Errorf("scores = (%d, %d), want a wash on the tie", a, b)
	}
	if g.IsTerminal() {
		t.Error("tied ordago should leave the game unresolved")
	}
}

func TestObservation(t *testing.T) {
	g := newTestGame(t, 19, testConfig())
	if err := g.InitialDeal(); err != nil {
		t.Fatal(err)
	}

	partner := g.partner(0)
	if _, err := g.Step(map[int]Action{partner: Signal{Value: 2}}); err != nil {
		t.Fatal(err)
	}

	obs := g.Observation(0)
	if obs.Player != 0 || obs.Phase != PhasePlay {
		t.Errorf("observation header = %+v", obs)
	}
	if obs.PartnerSignal != 2 {
		t.Errorf("partner signal = %d, want 2", obs.PartnerSignal)
	}
	if len(obs.Intercepted) != 0 {
		t.Errorf("intercepted = %v, want nothing at zero probability", obs.Intercepted)
	}
	for i, c := range g.Hand(0) {
		if obs.Hand[i] != c.Order() {
			t.Errorf("hand order %d = %d, want %d", i, obs.Hand[i], c.Order())
		}
	}
	if obs.Betting == nil || obs.Betting.Category != Grande || obs.Betting.CurrentBet != 1 {
		t.Errorf("betting info = %+v, want grande at one stone", obs.Betting)
	}
}
