package policy

import (
	"github.com/magefree/goldfish-go/internal/deck"
	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Candidate is a spell the loop tries to cast, by name and the cost of the
// face being cast.
type Candidate struct {
	Name string
	// Split candidates match a split card with a face of that name.
	Split bool
	Cost  mana.Cost
}

// Find returns the index of the first matching card in hand.
func (c Candidate) Find(hand []battlefield.OwnedCard) (int, bool) {
	for i, oc := range hand {
		if c.matches(oc.Card) {
			return i, true
		}
	}
	return -1, false
}

func (c Candidate) matches(cc card.Card) bool {
	if c.Split {
		_, isSplit := cc.(card.Split)
		return isSplit && card.HasFaceNamed(cc, c.Name)
	}
	name, ok := card.PrimaryName(cc)
	return ok && name == c.Name
}

// CastOrder lists the spells to cast, most impactful first. Each one is cast
// for as long as a copy is in hand and can be paid for.
func CastOrder() []Candidate {
	return []Candidate{
		{Name: deck.DuskmournsClaim, Cost: mana.MustParseCost("{2}{B}")},
		{Name: deck.GeologicalAppraiser, Cost: mana.MustParseCost("{2}{R}{R}")},
		{Name: deck.TrumpetingCarnosaur, Cost: mana.MustParseCost("{4}{R}{R}")},
		{Name: deck.Cease, Split: true, Cost: mana.MustParseCost("{1}{B/G}")},
		{Name: deck.SteamingSauna, Split: true, Cost: mana.MustParseCost("{3}{U}{U}")},
		{Name: deck.ShatteredYard, Split: true, Cost: mana.MustParseCost("{4}{R}")},
	}
}
