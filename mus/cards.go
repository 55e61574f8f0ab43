// Package mus implements the card model and hand evaluation rules for the
// Spanish card game Mus: a 40-card Spanish deck and the four play
// categories (grande, chica, pares, juego).
package mus

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Rank identifies one of the ten card ranks used in Mus.
// The Spanish deck has no eights, nines or tens.
type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Jack
	Knight
	King

	NumRanks = 10
)

// Suit identifies one of the four Spanish suits. Suit never affects ranking.
type Suit uint8

const (
	Oros Suit = iota
	Copas
	Espadas
	Bastos

	NumSuits = 4
)

// order gives the Mus ranking strength of each rank. Kings and threes are
// equal at the top, twos and aces equal at the bottom.
var order = [NumRanks]int{
	Ace:    2,
	Two:    2,
	Three:  9,
	Four:   3,
	Five:   4,
	Six:    5,
	Seven:  6,
	Jack:   7,
	Knight: 8,
	King:   9,
}

// value gives the juego point value of each rank. Threes count as kings
// and twos count as aces.
var value = [NumRanks]int{
	Ace:    1,
	Two:    1,
	Three:  10,
	Four:   4,
	Five:   5,
	Six:    6,
	Seven:  7,
	Jack:   10,
	Knight: 10,
	King:   10,
}

// Order returns the ranking strength of the rank (2..9).
// Ranks outside the closed set are a programming error.
func (r Rank) Order() int {
	if r >= NumRanks {
		panic(fmt.Sprintf("mus: invalid rank %d", r))
	}
	return order[r]
}

// Value returns the juego point value of the rank (1..10).
func (r Rank) Value() int {
	if r >= NumRanks {
		panic(fmt.Sprintf("mus: invalid rank %d", r))
	}
	return value[r]
}

func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return [...]string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Jack", "Knight", "King"}[r]
}

func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return [...]string{"Oros", "Copas", "Espadas", "Bastos"}[s]
}

// Card is an immutable playing card. Any (rank, suit) combination from the
// closed sets is valid.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Order returns the ranking strength of the card.
func (c Card) Order() int { return c.Rank.Order() }

// Value returns the juego point value of the card.
func (c Card) Value() int { return c.Rank.Value() }

// String returns the short form, e.g. "Ko" for the king of oros.
func (c Card) String() string {
	ranks := "A234567JCK"
	suits := "oceb"
	if c.Rank >= NumRanks || c.Suit >= NumSuits {
		return "??"
	}
	return string(ranks[c.Rank]) + string(suits[c.Suit])
}

// ParseCard parses a short card string like "Ko" or "7e".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	var rank Rank
	switch s[0] {
	case 'A', 'a', '1':
		rank = Ace
	case '2':
		rank = Two
	case '3':
		rank = Three
	case '4':
		rank = Four
	case '5':
		rank = Five
	case '6':
		rank = Six
	case '7':
		rank = Seven
	case 'J', 'j':
		rank = Jack
	case 'C', 'c':
		rank = Knight
	case 'K', 'k':
		rank = King
	default:
		return Card{}, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'o', 'O':
		suit = Oros
	case 'c', 'C':
		suit = Copas
	case 'e', 'E':
		suit = Espadas
	case 'b', 'B':
		suit = Bastos
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", s[1])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// HandSize is the number of cards in a Mus hand.
const HandSize = 4

// Hand is a player's four cards.
type Hand [HandSize]Card

// ParseHand parses four space-separated card strings, e.g. "Ko Kc Jo Je".
func ParseHand(s string) (Hand, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Hand{}, fmt.Errorf("a hand needs exactly 4 cards, got %d", len(fields))
	}
	var h Hand
	for i, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return Hand{}, err
		}
		h[i] = c
	}
	return h, nil
}

// MustParseHand is a test helper that panics on malformed input.
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// DeckSize is the number of cards in a full Spanish deck.
const DeckSize = NumRanks * NumSuits

// ErrInsufficientCards is returned by Deal when the deck cannot supply the
// requested number of cards. Callers holding a discard pile are expected to
// reshuffle it back in before dealing.
var ErrInsufficientCards = errors.New("mus: insufficient cards in deck")

// Deck is an ordered pile of cards, mutable only by Shuffle, Deal and Add.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a full 40-card deck, shuffled with the provided RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	for suit := Suit(0); suit < NumSuits; suit++ {
		for rank := Rank(0); rank < NumRanks; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
	d.Shuffle()
	return d
}

// Shuffle permutes the remaining cards using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the first n cards in current order.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, len(d.cards))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Add returns cards to the bottom of the deck. Used when reshuffling the
// discard pile back in.
func (d *Deck) Add(cards ...Card) {
	d.cards = append(d.cards, cards...)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}
