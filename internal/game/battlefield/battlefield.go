// Package battlefield holds the mutable state of one game: players and their
// zones, the objects in play and the event log, together with the primitive
// state transitions the turn loop is built from.
package battlefield

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/counters"
)

// Effect is the implementation behind a card.EffectID.
type Effect interface {
	Apply(bf *Battlefield, source OwnedCard)
}

// EffectFunc adapts a plain function to Effect.
type EffectFunc func(bf *Battlefield, source OwnedCard)

func (f EffectFunc) Apply(bf *Battlefield, source OwnedCard) {
	f(bf, source)
}

// Effects maps effect IDs to their implementations.
type Effects map[card.EffectID]Effect

// Resolve returns the registered effect. Card data referencing an unknown
// effect is a construction bug, so a miss panics.
func (e Effects) Resolve(id card.EffectID) Effect {
	eff, ok := e[id]
	if !ok {
		panic(fmt.Sprintf("battlefield: no effect registered for %q", id))
	}
	return eff
}

// InPlayObject is a physical object on the battlefield.
type InPlayObject struct {
	ID         int
	Controller PlayerID
	Card       OwnedCard
	Tapped     bool
	Counters   counters.Counters
	IsToken    bool
}

func (o *InPlayObject) IsLand() bool {
	return card.IsLand(o.Card.Card)
}

func (o *InPlayObject) String() string {
	state := "untapped"
	if o.Tapped {
		state = "tapped"
	}
	return fmt.Sprintf("#%d %s (%s)", o.ID, o.Card, state)
}

// Battlefield is the state of one game. Objects keep insertion order and are
// never removed.
type Battlefield struct {
	GameID  uuid.UUID
	Players []*PlayerState
	Objects []*InPlayObject
	Log     Log

	effects Effects
	nextID  int
}

// New creates a battlefield for the given players. The first player is the
// one being simulated.
func New(gameID uuid.UUID, players []*PlayerState, effects Effects) *Battlefield {
	if len(players) == 0 {
		panic("battlefield: at least one player is required")
	}
	return &Battlefield{
		GameID:  gameID,
		Players: players,
		Objects: make([]*InPlayObject, 0, 32),
		Log:     make(Log, 0, 256),
		effects: effects,
	}
}

// Record appends an entry to the game log.
func (bf *Battlefield) Record(e Event) {
	bf.Log = append(bf.Log, e)
}

// Player returns the player with the given id.
func (bf *Battlefield) Player(id PlayerID) *PlayerState {
	for _, p := range bf.Players {
		if p.ID == id {
			return p
		}
	}
	panic(fmt.Sprintf("battlefield: unknown %s", id))
}

// Me returns the simulated player.
func (bf *Battlefield) Me() *PlayerState {
	return bf.Players[0]
}

// Opponents returns every player other than the simulated one.
func (bf *Battlefield) Opponents() []*PlayerState {
	return bf.Players[1:]
}

// Effect returns the implementation registered for id.
func (bf *Battlefield) Effect(id card.EffectID) Effect {
	return bf.effects.Resolve(id)
}

// Lands returns the land objects in battlefield order.
func (bf *Battlefield) Lands() []*InPlayObject {
	var out []*InPlayObject
	for _, o := range bf.Objects {
		if o.IsLand() {
			out = append(out, o)
		}
	}
	return out
}

// UntappedLands returns the untapped land objects in battlefield order.
func (bf *Battlefield) UntappedLands() []*InPlayObject {
	var out []*InPlayObject
	for _, o := range bf.Objects {
		if !o.Tapped && o.IsLand() {
			out = append(out, o)
		}
	}
	return out
}

// HasObjectNamed reports whether an object whose card carries the given
// primary name is in play.
func (bf *Battlefield) HasObjectNamed(name string) bool {
	for _, o := range bf.Objects {
		if n, ok := card.PrimaryName(o.Card.Card); ok && n == name {
			return true
		}
	}
	return false
}

func (bf *Battlefield) enter(c OwnedCard) *InPlayObject {
	bf.nextID++
	obj := &InPlayObject{
		ID:         bf.nextID,
		Controller: c.Owner,
		Card:       c,
		Tapped:     card.EntersTapped(c.Card),
	}
	bf.Objects = append(bf.Objects, obj)
	bf.Record(Event{Type: EventEnteredPlay, Player: obj.Controller, ObjectID: obj.ID, Card: c.Card})
	return obj
}

// PlayLand puts a land from hand into play. Removing it from hand is the
// caller's job. The returned trigger is the land's scry or surveil, which
// the caller resolves.
func (bf *Battlefield) PlayLand(c OwnedCard) (card.EnterTrigger, bool) {
	if !card.IsLand(c.Card) {
		panic(fmt.Sprintf("battlefield: %s is not a land", c))
	}
	bf.enter(c)

	single, ok := c.Card.(card.Single)
	if !ok {
		return card.EnterTrigger{}, false
	}
	for _, t := range single.Face.EnterTriggers() {
		if t.Kind == card.Scry || t.Kind == card.Surveil {
			return t, true
		}
	}
	return card.EnterTrigger{}, false
}

// CastSpell resolves a spell cast by its owner. Removing the card from its
// previous zone and paying for it are the caller's job.
//
// A split card with an instant or sorcery face carrying an effect resolves
// that effect and goes to the graveyard. Anything else enters play, and its
// enter triggers resolve. Discover hits are cast in turn from a queue, so
// chains are bounded by the library size.
func (bf *Battlefield) CastSpell(c OwnedCard) {
	queue := []OwnedCard{c}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if hit, ok := bf.resolve(next); ok {
			queue = append(queue, hit)
		}
	}
}

func (bf *Battlefield) resolve(c OwnedCard) (OwnedCard, bool) {
	if split, ok := c.Card.(card.Split); ok {
		if face, ok := spellFace(split); ok {
			for _, a := range face.Abilities {
				if other, ok := a.(card.Other); ok {
					bf.Effect(other.Effect).Apply(bf, c)
				}
			}
			bf.ToGraveyard(c)
			return OwnedCard{}, false
		}
	}

	obj := bf.enter(c)
	face, ok := card.PermanentFace(c.Card)
	if !ok {
		return OwnedCard{}, false
	}

	var hit OwnedCard
	found := false
	for _, t := range face.EnterTriggers() {
		switch t.Kind {
		case card.GainLife:
			bf.GainLife(obj.Controller, t.Amount)
		case card.Discover:
			hit, found = bf.discover(c.Owner, t.Amount)
		case card.TappedTrigger, card.Scry, card.Surveil:
			// Lands only; handled by the land drop.
		default:
			panic(fmt.Sprintf("battlefield: unhandled enter trigger %s", t.Kind))
		}
	}
	return hit, found
}

// spellFace returns the first non-permanent face of a split card that carries
// an effect.
func spellFace(s card.Split) (*card.Face, bool) {
	for _, f := range []*card.Face{s.Left, s.Right} {
		if card.IsPermanentType(f.TypeLine) {
			continue
		}
		for _, a := range f.Abilities {
			if _, ok := a.(card.Other); ok {
				return f, true
			}
		}
	}
	return nil, false
}

// discover removes the first nonland card with mana value at most n from the
// caster's library and returns it to be cast.
func (bf *Battlefield) discover(caster PlayerID, n int) (OwnedCard, bool) {
	p := bf.Player(caster)
	i, ok := p.Zones.Library.IndexFunc(func(c card.Card) bool {
		return !card.IsLand(c) && card.ManaValue(c) <= n
	})
	if !ok {
		bf.Record(Event{Type: EventDiscoverInto, Player: caster, Amount: n})
		return OwnedCard{}, false
	}
	hit := p.Zones.Library.RemoveAt(i)
	bf.Record(Event{Type: EventDiscoverInto, Player: caster, Card: hit.Card, Amount: n})
	return hit, true
}

// Tap taps an object and logs it.
func (bf *Battlefield) Tap(o *InPlayObject) {
	if o.Tapped {
		panic(fmt.Sprintf("battlefield: %s is already tapped", o))
	}
	o.Tapped = true
	bf.Record(Event{Type: EventTap, Player: o.Controller, ObjectID: o.ID, Card: o.Card.Card})
}

// UntapAll untaps every tapped object controlled by id.
func (bf *Battlefield) UntapAll(id PlayerID) {
	for _, o := range bf.Objects {
		if o.Tapped && o.Controller == id {
			o.Tapped = false
			bf.Record(Event{Type: EventUntap, Player: id, ObjectID: o.ID, Card: o.Card.Card})
		}
	}
}

// Draw draws a card for the player and logs it. ErrDecked is returned
// unchanged on an empty library.
func (bf *Battlefield) Draw(id PlayerID) (OwnedCard, error) {
	c, err := bf.Player(id).Draw()
	if err != nil {
		return OwnedCard{}, err
	}
	bf.Record(Event{Type: EventDraw, Player: id, Card: c.Card})
	return c, nil
}

func (bf *Battlefield) LoseLife(id PlayerID, n int) {
	bf.Player(id).Life -= n
	bf.Record(Event{Type: EventLostLife, Player: id, Amount: n})
}

func (bf *Battlefield) GainLife(id PlayerID, n int) {
	bf.Player(id).Life += n
	bf.Record(Event{Type: EventGainedLife, Player: id, Amount: n})
}

// ToGraveyard puts a card into its owner's graveyard.
func (bf *Battlefield) ToGraveyard(c OwnedCard) {
	p := bf.Player(c.Owner)
	p.Zones.Graveyard = append(p.Zones.Graveyard, c)
	bf.Record(Event{Type: EventToGraveyard, Player: c.Owner, Card: c.Card})
}

// EndStepEffects collects the end-step effects of every face of every object
// in battlefield order, paired with the card that carries them.
func (bf *Battlefield) EndStepEffects() []Triggered {
	var out []Triggered
	for _, o := range bf.Objects {
		for _, f := range card.Faces(o.Card.Card) {
			for _, id := range f.EndStepEffects() {
				out = append(out, Triggered{Effect: id, Source: o.Card})
			}
		}
	}
	return out
}

// Triggered is a pending effect together with its source card.
type Triggered struct {
	Effect card.EffectID
	Source OwnedCard
}
