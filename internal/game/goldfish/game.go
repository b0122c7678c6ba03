// Package goldfish plays one deck against an opponent that does nothing,
// from the opening hand until the game is won or lost.
package goldfish

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/effects"
	"github.com/magefree/goldfish-go/internal/game/payment"
	"github.com/magefree/goldfish-go/internal/game/policy"
)

// Flow is the state of the game after a turn.
type Flow int

const (
	Continue Flow = iota
	Victory
	Loss
)

var flowNames = map[Flow]string{
	Continue: "CONTINUE",
	Victory:  "VICTORY",
	Loss:     "LOSS",
}

func (f Flow) String() string {
	if name, ok := flowNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FLOW_%d", int(f))
}

// Outcome is the result of a finished game.
type Outcome struct {
	Turns int
	Won   bool
}

// Signed encodes the outcome as a turn count, negated for a loss.
func (o Outcome) Signed() int {
	if o.Won {
		return o.Turns
	}
	return -o.Turns
}

// Option configures a Game.
type Option func(*Game)

// WithMulligan sets the opening hand policy.
func WithMulligan(m policy.Mulligan) Option {
	return func(g *Game) {
		g.mulligan = m
	}
}

// WithCastOrder replaces the spell priority list.
func WithCastOrder(order []policy.Candidate) Option {
	return func(g *Game) {
		g.castOrder = order
	}
}

// WithEffects replaces the effect registry.
func WithEffects(e battlefield.Effects) Option {
	return func(g *Game) {
		g.effects = e
	}
}

// Game is a single goldfish game. It is not safe for concurrent use.
type Game struct {
	bf        *battlefield.Battlefield
	rng       *rand.Rand
	turn      *TurnTracker
	mulligan  policy.Mulligan
	castOrder []policy.Candidate
	effects   battlefield.Effects
}

// New sets up a game between deck (the simulated player) and opponentDeck.
// Both libraries are shuffled with rng, which also seeds the game id.
func New(deck, opponentDeck []card.Card, rng *rand.Rand, opts ...Option) *Game {
	g := &Game{
		rng:       rng,
		turn:      NewTurnTracker(),
		mulligan:  policy.DefaultMulligan(),
		castOrder: policy.CastOrder(),
		effects:   effects.Registry(),
	}
	for _, opt := range opts {
		opt(g)
	}

	id := uuid.Must(uuid.NewRandomFromReader(rng))
	players := []*battlefield.PlayerState{
		battlefield.NewPlayer(0, deck, rng),
		battlefield.NewPlayer(1, opponentDeck, rng),
	}
	g.bf = battlefield.New(id, players, g.effects)
	return g
}

// Battlefield exposes the game state for inspection.
func (g *Game) Battlefield() *battlefield.Battlefield {
	return g.bf
}

// Turn returns the number of the current (or last played) turn.
func (g *Game) Turn() int {
	return g.turn.TurnNumber()
}

// OpeningHand draws seven and mulligans until the policy keeps, then puts
// one card on the bottom per mulligan taken. It returns the number of
// mulligans.
func (g *Game) OpeningHand() (int, error) {
	me := g.bf.Me()
	taken := 0
	for {
		for i := 0; i < policy.OpeningHandSize; i++ {
			if _, err := g.bf.Draw(me.ID); err != nil {
				return taken, fmt.Errorf("opening hand: %w", err)
			}
		}
		if g.mulligan.Keep(me.Zones.Hand, taken) {
			break
		}
		taken++
		g.bf.Record(battlefield.Event{Type: battlefield.EventMulligan, Player: me.ID, Amount: taken})
		me.ShuffleHandIntoLibrary(g.rng)
	}

	for i := 0; i < taken; i++ {
		c := me.TakeFromHand(g.mulligan.ChooseBottom(me.Zones.Hand))
		me.Zones.Library.PushBack(c)
		g.bf.Record(battlefield.Event{Type: battlefield.EventPutOnBottom, Player: me.ID, Card: c.Card})
	}
	return taken, nil
}

// TakeTurn plays one full turn for the simulated player.
func (g *Game) TakeTurn() Flow {
	me := g.bf.Me()
	g.turn.BeginTurn()
	g.bf.Record(battlefield.Event{Type: battlefield.EventStartTurn, Player: me.ID, Amount: g.turn.TurnNumber()})

	g.bf.UntapAll(me.ID)

	g.turn.AdvanceStep()
	if _, err := g.bf.Draw(me.ID); err != nil {
		if errors.Is(err, battlefield.ErrDecked) {
			return Loss
		}
		panic(err)
	}

	g.turn.AdvanceStep()
	g.playLand()
	g.castSpells()

	g.turn.AdvanceStep()
	for _, t := range g.bf.EndStepEffects() {
		g.bf.Effect(t.Effect).Apply(g.bf, t.Source)
	}

	if g.opponentsDead() {
		return Victory
	}
	if me.Life <= 0 {
		return Loss
	}
	g.bf.Record(battlefield.Event{Type: battlefield.EventEndTurn, Player: me.ID, Amount: g.turn.TurnNumber()})
	return Continue
}

func (g *Game) opponentsDead() bool {
	for _, p := range g.bf.Opponents() {
		if p.Life > 0 {
			return false
		}
	}
	return true
}

// Play runs the opening hand and then turns until the game ends. A library
// too small for an opening hand loses on turn 1.
func (g *Game) Play() Outcome {
	if _, err := g.OpeningHand(); err != nil {
		return Outcome{Turns: 1}
	}
	for {
		switch flow := g.TakeTurn(); flow {
		case Continue:
		case Victory:
			return Outcome{Turns: g.turn.TurnNumber(), Won: true}
		case Loss:
			return Outcome{Turns: g.turn.TurnNumber()}
		default:
			panic(fmt.Sprintf("goldfish: unknown flow %s", flow))
		}
	}
}

func (g *Game) playLand() {
	me := g.bf.Me()
	phase := policy.PhaseOf(g.bf)
	i, ok := policy.SelectLand(me.Zones.Hand, phase)
	if !ok {
		return
	}
	trigger, ok := g.bf.PlayLand(me.TakeFromHand(i))
	if !ok {
		return
	}
	g.lookAtTop(me, trigger, phase.KeyCardInPlay)
}

// lookAtTop resolves a scry or surveil. Cards kept on top return in the
// order they were seen.
func (g *Game) lookAtTop(p *battlefield.PlayerState, trigger card.EnterTrigger, keyCardInPlay bool) {
	var top []battlefield.OwnedCard
	for n := 0; n < trigger.Amount; n++ {
		c, ok := p.Zones.Library.PopFront()
		if !ok {
			break
		}
		if !policy.ShouldBottom(c.Card, keyCardInPlay) {
			top = append(top, c)
			continue
		}
		switch trigger.Kind {
		case card.Scry:
			p.Zones.Library.PushBack(c)
			g.bf.Record(battlefield.Event{Type: battlefield.EventScryBottom, Player: p.ID, Card: c.Card})
		case card.Surveil:
			p.Zones.Graveyard = append(p.Zones.Graveyard, c)
			g.bf.Record(battlefield.Event{Type: battlefield.EventSurveilYard, Player: p.ID, Card: c.Card})
		default:
			panic(fmt.Sprintf("goldfish: %s is not a look trigger", trigger.Kind))
		}
	}

	keep := battlefield.EventScryTop
	if trigger.Kind == card.Surveil {
		keep = battlefield.EventSurveilTop
	}
	for i := len(top) - 1; i >= 0; i-- {
		p.Zones.Library.PushFront(top[i])
	}
	for _, c := range top {
		g.bf.Record(battlefield.Event{Type: keep, Player: p.ID, Card: c.Card})
	}
}

// castSpells casts each candidate, in priority order, for as long as a copy
// is in hand and the lands can pay for it. The card leaves the hand only
// once it is paid for.
func (g *Game) castSpells() {
	me := g.bf.Me()
	for _, candidate := range g.castOrder {
		for {
			i, ok := candidate.Find(me.Zones.Hand)
			if !ok {
				break
			}
			if !payment.Pay(g.bf, candidate.Cost).Paid {
				break
			}
			g.bf.CastSpell(me.TakeFromHand(i))
		}
	}
}

// Simulator returns a function that plays one fresh game per call and
// reports its signed turn count. The deck slices are only read, so the
// function may be shared by concurrent workers as long as each passes its
// own rng.
func Simulator(deck, opponentDeck []card.Card, opts ...Option) func(*rand.Rand) int {
	return func(rng *rand.Rand) int {
		return New(deck, opponentDeck, rng, opts...).Play().Signed()
	}
}
