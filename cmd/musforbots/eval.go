package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/musforbots/mus"
)

// EvalCmd scores a hand for every play category, e.g.
//
//	musforbots eval Ko Kc Jo Je
type EvalCmd struct {
	Cards []string `arg:"" help:"Four cards in short form (rank A234567JCK, suit oceb)"`
}

func (c *EvalCmd) Run(logger *log.Logger) error {
	hand, err := mus.ParseHand(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}

	grande := mus.Grande(hand)
	chica := mus.Chica(hand)
	pares := mus.Pares(hand)
	juego := mus.Juego(hand)

	fmt.Printf("hand:   %s\n", hand)
	fmt.Printf("grande: %v\n", grande)
	fmt.Printf("chica:  %v\n", chica)
	if pares.Category == mus.NoPares {
		fmt.Printf("pares:  none\n")
	} else {
		fmt.Printf("pares:  %s %v\n", pares.Category, pares.TieBreak)
	}
	if juego.Qualifies {
		fmt.Printf("juego:  yes (rank %d)\n", juego.Points)
	} else {
		fmt.Printf("juego:  no (%d points)\n", juego.Points)
	}
	return nil
}
