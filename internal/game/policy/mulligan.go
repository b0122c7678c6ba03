package policy

import (
	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
)

// OpeningHandSize is the number of cards drawn for every opening hand.
const OpeningHandSize = 7

// DefaultMulliganThreshold keeps every hand.
const DefaultMulliganThreshold = OpeningHandSize + 1

// Mulligan decides whether to keep an opening hand.
type Mulligan struct {
	// Threshold is the hand size below which any hand is kept. A hand of
	// 7 - taken cards is judged on its contents only when it has at least
	// Threshold cards.
	Threshold int
}

// DefaultMulligan keeps every opening hand.
func DefaultMulligan() Mulligan {
	return Mulligan{Threshold: DefaultMulliganThreshold}
}

// Keep judges a freshly drawn seven after taken mulligans. A hand is good
// with two to five lands, a land that makes black and a spell with mana
// value 4 or less.
func (m Mulligan) Keep(hand []battlefield.OwnedCard, taken int) bool {
	if OpeningHandSize-taken < m.Threshold || taken >= OpeningHandSize {
		return true
	}

	lands, blackSources, cheapSpells := 0, 0, 0
	for _, c := range hand {
		if card.IsLand(c.Card) {
			lands++
			if ProducesBlack(c.Card) {
				blackSources++
			}
			continue
		}
		if card.ManaValue(c.Card) <= 4 {
			cheapSpells++
		}
	}
	return lands >= 2 && lands <= 5 && blackSources > 0 && cheapSpells > 0
}

// ChooseBottom picks the card to put on the bottom for a mulligan: the first
// card with mana value above 4, else the first land, else the last card.
func (m Mulligan) ChooseBottom(hand []battlefield.OwnedCard) int {
	for i, c := range hand {
		if card.ManaValue(c.Card) > 4 {
			return i
		}
	}
	for i, c := range hand {
		if card.IsLand(c.Card) {
			return i
		}
	}
	return len(hand) - 1
}
