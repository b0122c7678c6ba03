package battlefield

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/magefree/goldfish-go/internal/game/card"
)

// StartingLife is every player's life total at the start of a game.
const StartingLife = 20

// ErrDecked is returned when a player draws from an empty library.
var ErrDecked = errors.New("library is empty")

// PlayerID identifies a player within one game.
type PlayerID uint32

func (id PlayerID) String() string {
	return fmt.Sprintf("player-%d", uint32(id))
}

// OwnedCard is a physical card together with its owner.
type OwnedCard struct {
	Card  card.Card
	Owner PlayerID
}

func (c OwnedCard) String() string {
	return card.Name(c.Card)
}

// Zones holds a player's hidden and public card zones.
type Zones struct {
	Hand      []OwnedCard
	Library   Library
	Graveyard []OwnedCard
	Exile     []OwnedCard
}

// PlayerState is a player's identity, life total and zones.
type PlayerState struct {
	ID    PlayerID
	Life  int
	Zones Zones
}

// NewPlayer creates a player at 20 life whose library is the given deck,
// shuffled once with rng.
func NewPlayer(id PlayerID, deck []card.Card, rng *rand.Rand) *PlayerState {
	cards := make([]OwnedCard, len(deck))
	for i, c := range deck {
		cards[i] = OwnedCard{Card: c, Owner: id}
	}
	p := &PlayerState{
		ID:   id,
		Life: StartingLife,
		Zones: Zones{
			Hand:    make([]OwnedCard, 0, 16),
			Library: Library{cards: cards},
		},
	}
	p.Zones.Library.Shuffle(rng)
	return p
}

// Draw moves the top card of the library into the hand.
func (p *PlayerState) Draw() (OwnedCard, error) {
	c, ok := p.Zones.Library.PopFront()
	if !ok {
		return OwnedCard{}, ErrDecked
	}
	p.Zones.Hand = append(p.Zones.Hand, c)
	return c, nil
}

// TakeFromHand removes and returns the card at index i of the hand, keeping
// the order of the remaining cards.
func (p *PlayerState) TakeFromHand(i int) OwnedCard {
	if i < 0 || i >= len(p.Zones.Hand) {
		panic(fmt.Sprintf("battlefield: hand index %d out of range for %s (hand size %d)", i, p.ID, len(p.Zones.Hand)))
	}
	c := p.Zones.Hand[i]
	p.Zones.Hand = append(p.Zones.Hand[:i], p.Zones.Hand[i+1:]...)
	return c
}

// FindInHand returns the index of the first card in hand matching pred.
func (p *PlayerState) FindInHand(pred func(card.Card) bool) (int, bool) {
	for i, c := range p.Zones.Hand {
		if pred(c.Card) {
			return i, true
		}
	}
	return -1, false
}

// ShuffleHandIntoLibrary moves every card in hand into the library and
// shuffles the library.
func (p *PlayerState) ShuffleHandIntoLibrary(rng *rand.Rand) {
	for _, c := range p.Zones.Hand {
		p.Zones.Library.PushBack(c)
	}
	p.Zones.Hand = p.Zones.Hand[:0]
	p.Zones.Library.Shuffle(rng)
}

// Library is an ordered pile of cards; index 0 is the top.
type Library struct {
	cards []OwnedCard
}

// NewLibrary builds a library whose top is cards[0].
func NewLibrary(cards ...OwnedCard) Library {
	return Library{cards: append([]OwnedCard(nil), cards...)}
}

func (l *Library) Len() int {
	return len(l.cards)
}

// At returns the card at position i from the top.
func (l *Library) At(i int) OwnedCard {
	return l.cards[i]
}

// Cards returns a copy of the library, top first.
func (l *Library) Cards() []OwnedCard {
	return append([]OwnedCard(nil), l.cards...)
}

// PopFront removes the top card.
func (l *Library) PopFront() (OwnedCard, bool) {
	if len(l.cards) == 0 {
		return OwnedCard{}, false
	}
	c := l.cards[0]
	l.cards = l.cards[1:]
	return c, true
}

// PushFront puts c on top.
func (l *Library) PushFront(c OwnedCard) {
	l.cards = append(l.cards, OwnedCard{})
	copy(l.cards[1:], l.cards)
	l.cards[0] = c
}

// PushBack puts c on the bottom.
func (l *Library) PushBack(c OwnedCard) {
	l.cards = append(l.cards, c)
}

// RemoveAt removes and returns the card at position i from the top.
func (l *Library) RemoveAt(i int) OwnedCard {
	c := l.cards[i]
	l.cards = append(l.cards[:i:i], l.cards[i+1:]...)
	return c
}

// IndexFunc returns the position of the first card from the top matching pred.
func (l *Library) IndexFunc(pred func(card.Card) bool) (int, bool) {
	for i, c := range l.cards {
		if pred(c.Card) {
			return i, true
		}
	}
	return -1, false
}

// Shuffle randomizes the library order using rng.
func (l *Library) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(l.cards), func(i, j int) {
		l.cards[i], l.cards[j] = l.cards[j], l.cards[i]
	})
}
