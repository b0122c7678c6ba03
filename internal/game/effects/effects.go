// Package effects implements the bespoke card texts the battlefield resolves
// by effect ID.
package effects

import (
	"errors"

	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
)

// Effect IDs referenced by the deck catalog.
const (
	CeaseID           card.EffectID = "cease"
	DuskmournsClaimID card.EffectID = "duskmourns-claim"
	ShatteredYardID   card.EffectID = "shattered-yard"
	SteamingSaunaID   card.EffectID = "steaming-sauna"
)

// Registry returns every effect keyed by its ID.
func Registry() battlefield.Effects {
	return battlefield.Effects{
		CeaseID:           NewCeaseEffect(),
		DuskmournsClaimID: NewDuskmournsClaimEffect(),
		ShatteredYardID:   NewShatteredYardEffect(),
		SteamingSaunaID:   NewSteamingSaunaEffect(),
	}
}

// drawIfAble draws for id and ignores an empty library.
func drawIfAble(bf *battlefield.Battlefield, id battlefield.PlayerID) {
	if _, err := bf.Draw(id); err != nil && !errors.Is(err, battlefield.ErrDecked) {
		panic(err)
	}
}

// CeaseEffect makes the caster gain life and draw a card.
type CeaseEffect struct {
	LifeGain int
}

// NewCeaseEffect creates the Cease effect (gain 2 life, draw a card).
func NewCeaseEffect() *CeaseEffect {
	return &CeaseEffect{LifeGain: 2}
}

func (e *CeaseEffect) Apply(bf *battlefield.Battlefield, source battlefield.OwnedCard) {
	bf.GainLife(source.Owner, e.LifeGain)
	drawIfAble(bf, source.Owner)
}

// DuskmournsClaimEffect has the controller and the first opponent each put
// the top card of their library into their hand. Each then loses life equal
// to the mana value of the card the other one got.
type DuskmournsClaimEffect struct{}

func NewDuskmournsClaimEffect() *DuskmournsClaimEffect {
	return &DuskmournsClaimEffect{}
}

func (e *DuskmournsClaimEffect) Apply(bf *battlefield.Battlefield, source battlefield.OwnedCard) {
	me := bf.Player(source.Owner)
	var opp *battlefield.PlayerState
	for _, p := range bf.Players {
		if p.ID != me.ID {
			opp = p
			break
		}
	}
	if opp == nil {
		panic("effects: Duskmourn's Claim needs an opponent")
	}

	mine, mineOK := me.Zones.Library.PopFront()
	theirs, theirsOK := opp.Zones.Library.PopFront()

	if mineOK {
		bf.LoseLife(opp.ID, card.ManaValue(mine.Card))
		toHand(bf, me, mine)
	}
	if theirsOK {
		bf.LoseLife(me.ID, card.ManaValue(theirs.Card))
		toHand(bf, opp, theirs)
	}
}

func toHand(bf *battlefield.Battlefield, p *battlefield.PlayerState, c battlefield.OwnedCard) {
	p.Zones.Hand = append(p.Zones.Hand, c)
	bf.Record(battlefield.Event{Type: battlefield.EventToHand, Player: p.ID, Card: c.Card})
}

// ShatteredYardEffect makes each opponent of the controller lose life.
type ShatteredYardEffect struct {
	LifeLoss int
}

// NewShatteredYardEffect creates the Shattered Yard effect (each opponent
// loses 1 life).
func NewShatteredYardEffect() *ShatteredYardEffect {
	return &ShatteredYardEffect{LifeLoss: 1}
}

func (e *ShatteredYardEffect) Apply(bf *battlefield.Battlefield, source battlefield.OwnedCard) {
	for _, p := range bf.Players {
		if p.ID != source.Owner {
			bf.LoseLife(p.ID, e.LifeLoss)
		}
	}
}

// SteamingSaunaEffect draws a card for the controller.
type SteamingSaunaEffect struct{}

func NewSteamingSaunaEffect() *SteamingSaunaEffect {
	return &SteamingSaunaEffect{}
}

func (e *SteamingSaunaEffect) Apply(bf *battlefield.Battlefield, source battlefield.OwnedCard) {
	drawIfAble(bf, source.Owner)
}
