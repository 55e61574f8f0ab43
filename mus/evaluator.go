package mus

import "sort"

// The four evaluators are pure: they score a hand for one play category and
// return a value with a total order. Each score type carries a Compare
// method where a positive result means the receiver is the stronger hand
// under that category's convention.

// GrandeScore is the four card orders sorted descending. Lexicographically
// larger is stronger.
type GrandeScore [4]int

// Grande scores a hand for the grande (high cards) category.
func Grande(h Hand) GrandeScore {
	var s GrandeScore
	for i, c := range h {
		s[i] = c.Order()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(s[:])))
	return s
}

// Compare returns >0 if a is stronger than b, <0 if weaker, 0 if equal.
func (a GrandeScore) Compare(b GrandeScore) int {
	for i := range a {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return 0
}

// ChicaScore is the four card orders sorted ascending. Lexicographically
// smaller is stronger.
type ChicaScore [4]int

// Chica scores a hand for the chica (low cards) category.
func Chica(h Hand) ChicaScore {
	var s ChicaScore
	for i, c := range h {
		s[i] = c.Order()
	}
	sort.Ints(s[:])
	return s
}

// Compare returns >0 if a is stronger than b. Lower orders win chica, so the
// sign is inverted relative to the lexicographic comparison.
func (a ChicaScore) Compare(b ChicaScore) int {
	for i := range a {
		if a[i] != b[i] {
			return b[i] - a[i]
		}
	}
	return 0
}

// ParesCategory classifies the rank multiplicities of a hand.
type ParesCategory int

const (
	NoPares ParesCategory = iota
	Par                   // exactly one pair
	Medias                // three of a kind
	Duples                // two pairs, or four of a kind
)

func (p ParesCategory) String() string {
	return [...]string{"none", "par", "medias", "duples"}[p]
}

// ParesScore is the pares category plus its tie-break payload. For duples
// the payload is the two pair orders sorted descending; for medias and a
// single pair it is the order of the repeated rank, with the second slot
// left at zero. Four of a kind also leaves the second slot at zero.
type ParesScore struct {
	Category ParesCategory
	TieBreak [2]int
}

// Pares scores a hand for the pares (pairs) category.
func Pares(h Hand) ParesScore {
	counts := make(map[Rank]int, 4)
	for _, c := range h {
		counts[c.Rank]++
	}

	var pairs []int
	var triple, quad int
	hasTriple, hasQuad := false, false
	for rank, n := range counts {
		switch n {
		case 2:
			pairs = append(pairs, rank.Order())
		case 3:
			triple, hasTriple = rank.Order(), true
		case 4:
			quad, hasQuad = rank.Order(), true
		}
	}

	switch {
	case hasQuad:
		return ParesScore{Category: Duples, TieBreak: [2]int{quad, 0}}
	case hasTriple:
		return ParesScore{Category: Medias, TieBreak: [2]int{triple, 0}}
	case len(pairs) == 2:
		hi, lo := pairs[0], pairs[1]
		if lo > hi {
			hi, lo = lo, hi
		}
		return ParesScore{Category: Duples, TieBreak: [2]int{hi, lo}}
	case len(pairs) == 1:
		return ParesScore{Category: Par, TieBreak: [2]int{pairs[0], 0}}
	default:
		return ParesScore{Category: NoPares}
	}
}

// Compare returns >0 if a is stronger than b. Comparison is lexicographic on
// (category, tie-break); NoPares never beats any other category.
func (a ParesScore) Compare(b ParesScore) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	for i := range a.TieBreak {
		if a.TieBreak[i] != b.TieBreak[i] {
			return a.TieBreak[i] - b.TieBreak[i]
		}
	}
	return 0
}

// juegoRanking maps qualifying point totals to their strength. 31 is the
// best juego, then 32, then 40, then 37 down to 33. 38 and 39 are
// unreachable with Mus card values.
var juegoRanking = map[int]int{
	31: 8,
	32: 7,
	40: 6,
	37: 5,
	36: 4,
	35: 3,
	34: 2,
	33: 1,
}

// JuegoScore ranks a hand for the juego (point total) category. A
// qualifying hand (sum >= 31) always beats a non-qualifying one. Qualifying
// hands compare by the Mus juego ranking, non-qualifying hands by raw sum.
type JuegoScore struct {
	Qualifies bool
	Points    int // juego ranking if Qualifies, raw sum otherwise
}

// Juego scores a hand for the juego category.
func Juego(h Hand) JuegoScore {
	total := 0
	for _, c := range h {
		total += c.Value()
	}
	if total >= 31 {
		return JuegoScore{Qualifies: true, Points: juegoRanking[total]}
	}
	return JuegoScore{Qualifies: false, Points: total}
}

// Compare returns >0 if a is stronger than b.
func (a JuegoScore) Compare(b JuegoScore) int {
	if a.Qualifies != b.Qualifies {
		if a.Qualifies {
			return 1
		}
		return -1
	}
	return a.Points - b.Points
}
