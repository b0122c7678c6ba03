// Package policy holds the fixed decisions the goldfish loop makes where the
// rules leave a choice: which land to play, where a scried or surveilled card
// goes, which spells to cast first and whether to keep an opening hand.
package policy

import (
	"sort"

	"github.com/magefree/goldfish-go/internal/deck"
	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// KeyCard is the card the whole game plan revolves around.
const KeyCard = deck.DuskmournsClaim

// Phase is the part of the game that decides land preference.
type Phase struct {
	// FirstTurn is set while no land is in play yet.
	FirstTurn bool
	// KeyCardInPlay is set once a KeyCard is on the battlefield.
	KeyCardInPlay bool
}

// PhaseOf derives the phase from the battlefield.
func PhaseOf(bf *battlefield.Battlefield) Phase {
	return Phase{
		FirstTurn:     len(bf.Lands()) == 0,
		KeyCardInPlay: bf.HasObjectNamed(KeyCard),
	}
}

type landProperty func(card.Card) bool

// SelectLand returns the hand index of the land to play, if any.
//
// Lands are ranked on three properties in order:
//   - first turn: enters tapped, makes black, scries or surveils
//   - key card in play: scries or surveils, enters untapped, makes black
//   - otherwise: makes black, enters untapped, scries or surveils
//
// Ties go to the card earlier in hand.
func SelectLand(hand []battlefield.OwnedCard, phase Phase) (int, bool) {
	var keys [3]landProperty
	switch {
	case phase.FirstTurn:
		keys = [3]landProperty{card.EntersTapped, ProducesBlack, HasLookTrigger}
	case phase.KeyCardInPlay:
		keys = [3]landProperty{HasLookTrigger, entersUntapped, ProducesBlack}
	default:
		keys = [3]landProperty{ProducesBlack, entersUntapped, HasLookTrigger}
	}

	var lands []int
	for i, c := range hand {
		if card.IsLand(c.Card) {
			lands = append(lands, i)
		}
	}
	if len(lands) == 0 {
		return -1, false
	}

	sort.SliceStable(lands, func(a, b int) bool {
		ca, cb := hand[lands[a]].Card, hand[lands[b]].Card
		for _, key := range keys {
			ka, kb := key(ca), key(cb)
			if ka != kb {
				return ka
			}
		}
		return false
	})
	return lands[0], true
}

func entersUntapped(c card.Card) bool {
	return !card.EntersTapped(c)
}

// HasLookTrigger reports whether the card scries or surveils as it enters.
func HasLookTrigger(c card.Card) bool {
	face, ok := landFace(c)
	if !ok {
		return false
	}
	for _, t := range face.EnterTriggers() {
		if t.Kind == card.Scry || t.Kind == card.Surveil {
			return true
		}
	}
	return false
}

// ProducesBlack reports whether the card is a land with the Swamp subtype or
// a land that taps for black without extra mana.
func ProducesBlack(c card.Card) bool {
	face, ok := landFace(c)
	if !ok {
		return false
	}
	land, ok := face.TypeLine.(card.Land)
	if !ok {
		return false
	}
	if land.HasSubtype(card.Swamp) {
		return true
	}
	for _, a := range face.ManaAbilities() {
		if a.Cost.ManaCost.IsZero() && a.Produce.Contains(mana.ManaBlack) {
			return true
		}
	}
	return false
}

func landFace(c card.Card) (*card.Face, bool) {
	switch c := c.(type) {
	case card.Single:
		return c.Face, true
	case card.Adventure:
		return c.Primary, true
	case card.Split, card.Omen:
		return nil, false
	default:
		panic("policy: unknown card arrangement")
	}
}

// ShouldBottom decides where a scried or surveilled card goes. Lands stay on
// top until the key card is in play, big spells (mana value above 5) only
// once it is, and the key card itself always stays. Everything else is
// bottomed (or put into the graveyard when surveilling).
func ShouldBottom(c card.Card, keyCardInPlay bool) bool {
	isLand := card.IsLand(c)
	isBig := !isLand && card.ManaValue(c) > 5
	name, _ := card.PrimaryName(c)
	isKey := !isLand && !isBig && name == KeyCard

	keepOnTop := (isLand && !keyCardInPlay) || (isBig && keyCardInPlay) || isKey
	return !keepOnTop
}
