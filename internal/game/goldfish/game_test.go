package goldfish

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/goldfish-go/internal/deck"
	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/policy"
)

func lookup(t *testing.T, name string) card.Card {
	t.Helper()
	c, ok := deck.Lookup(name)
	require.True(t, ok, name)
	return c
}

func copies(c card.Card, n int) []card.Card {
	out := make([]card.Card, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func newGame(t *testing.T, cards []card.Card, opts ...Option) *Game {
	t.Helper()
	return New(cards, deck.Goldfish(), rand.New(rand.NewSource(11)), opts...)
}

func TestPlayTerminates(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := New(deck.Claim(), deck.Goldfish(), rand.New(rand.NewSource(seed)))
		out := g.Play()
		assert.Positive(t, out.Turns)
		assert.NotZero(t, out.Signed())
		assert.LessOrEqual(t, out.Turns, deck.Size)
	}
}

func TestPlayIsDeterministicPerSeed(t *testing.T) {
	a := New(deck.Claim(), deck.Goldfish(), rand.New(rand.NewSource(99)))
	b := New(deck.Claim(), deck.Goldfish(), rand.New(rand.NewSource(99)))
	assert.Equal(t, a.Play(), b.Play())
	assert.Equal(t, a.Battlefield().GameID, b.Battlefield().GameID)
	assert.Equal(t, len(a.Battlefield().Log), len(b.Battlefield().Log))
}

func TestDeckingIsALoss(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 8))

	out := g.Play()

	assert.Equal(t, Outcome{Turns: 2, Won: false}, out)
	assert.Equal(t, -2, out.Signed())
	assert.Equal(t, 1, g.Battlefield().Log.Count(battlefield.EventEndTurn))
}

func TestOpeningHandTooSmallLoses(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 3))
	assert.Equal(t, -1, g.Play().Signed())
}

func TestEndStepDamageWins(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 20))
	bf := g.Battlefield()
	_, err := g.OpeningHand()
	require.NoError(t, err)

	bf.Player(1).Life = 1
	bf.CastSpell(battlefield.OwnedCard{Card: lookup(t, deck.ShatteredYard)})

	assert.Equal(t, Victory, g.TakeTurn())
	assert.Equal(t, 0, bf.Player(1).Life)
	assert.Equal(t, 0, bf.Log.Count(battlefield.EventEndTurn))
}

func TestOwnLifeAtZeroLoses(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 20))
	_, err := g.OpeningHand()
	require.NoError(t, err)

	g.Battlefield().Me().Life = 0
	assert.Equal(t, Loss, g.TakeTurn())
}

func TestTakeTurnContinues(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 20))
	_, err := g.OpeningHand()
	require.NoError(t, err)

	assert.Equal(t, Continue, g.TakeTurn())
	assert.Equal(t, Continue, g.TakeTurn())

	bf := g.Battlefield()
	assert.Equal(t, 2, g.Turn())
	assert.Len(t, bf.Lands(), 2)
	assert.Equal(t, 2, bf.Log.Count(battlefield.EventStartTurn))
	assert.Equal(t, 2, bf.Log.Count(battlefield.EventEndTurn))
	assert.Len(t, bf.Me().Zones.Hand, 7)
}

func TestStrictMulligan(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 60), WithMulligan(policy.Mulligan{Threshold: 6}))

	taken, err := g.OpeningHand()
	require.NoError(t, err)

	me := g.Battlefield().Me()
	assert.Equal(t, 2, taken)
	assert.Len(t, me.Zones.Hand, 5)
	assert.Equal(t, 55, me.Zones.Library.Len())
	assert.Equal(t, 2, g.Battlefield().Log.Count(battlefield.EventMulligan))
	assert.Equal(t, 2, g.Battlefield().Log.Count(battlefield.EventPutOnBottom))
}

func TestDefaultMulliganKeepsSeven(t *testing.T) {
	g := newGame(t, deck.Claim())
	taken, err := g.OpeningHand()
	require.NoError(t, err)
	assert.Zero(t, taken)
	assert.Len(t, g.Battlefield().Me().Zones.Hand, 7)
	assert.Equal(t, 7, g.Battlefield().Log.Count(battlefield.EventDraw))
}

func TestLookAtTop(t *testing.T) {
	mountain := battlefield.OwnedCard{Card: lookup(t, deck.Mountain)}
	claim := battlefield.OwnedCard{Card: lookup(t, deck.DuskmournsClaim)}
	appraiser := battlefield.OwnedCard{Card: lookup(t, deck.GeologicalAppraiser)}

	t.Run("scry keeps land before key card", func(t *testing.T) {
		g := newGame(t, nil)
		me := g.Battlefield().Me()
		me.Zones.Library = battlefield.NewLibrary(mountain, claim)

		g.lookAtTop(me, card.EnterTrigger{Kind: card.Scry, Amount: 1}, false)

		assert.Equal(t, deck.Mountain, me.Zones.Library.At(0).String())
		assert.Equal(t, 1, g.Battlefield().Log.Count(battlefield.EventScryTop))
	})

	t.Run("scry bottoms land after key card", func(t *testing.T) {
		g := newGame(t, nil)
		me := g.Battlefield().Me()
		me.Zones.Library = battlefield.NewLibrary(mountain, claim)

		g.lookAtTop(me, card.EnterTrigger{Kind: card.Scry, Amount: 1}, true)

		assert.Equal(t, deck.DuskmournsClaim, me.Zones.Library.At(0).String())
		assert.Equal(t, deck.Mountain, me.Zones.Library.At(1).String())
		assert.Equal(t, 1, g.Battlefield().Log.Count(battlefield.EventScryBottom))
	})

	t.Run("surveil mills a mid-size spell", func(t *testing.T) {
		g := newGame(t, nil)
		me := g.Battlefield().Me()
		me.Zones.Library = battlefield.NewLibrary(appraiser, claim)

		g.lookAtTop(me, card.EnterTrigger{Kind: card.Surveil, Amount: 1}, false)

		assert.Equal(t, 1, me.Zones.Library.Len())
		require.Len(t, me.Zones.Graveyard, 1)
		assert.Equal(t, deck.GeologicalAppraiser, me.Zones.Graveyard[0].String())
		assert.Equal(t, 1, g.Battlefield().Log.Count(battlefield.EventSurveilYard))
	})

	t.Run("surveil two keeps order of kept cards", func(t *testing.T) {
		g := newGame(t, nil)
		me := g.Battlefield().Me()
		me.Zones.Library = battlefield.NewLibrary(claim, mountain, appraiser)

		g.lookAtTop(me, card.EnterTrigger{Kind: card.Surveil, Amount: 2}, false)

		require.Equal(t, 3, me.Zones.Library.Len())
		assert.Equal(t, deck.DuskmournsClaim, me.Zones.Library.At(0).String())
		assert.Equal(t, deck.Mountain, me.Zones.Library.At(1).String())
		assert.Equal(t, 2, g.Battlefield().Log.Count(battlefield.EventSurveilTop))
	})

	t.Run("empty library", func(t *testing.T) {
		g := newGame(t, nil)
		me := g.Battlefield().Me()
		g.lookAtTop(me, card.EnterTrigger{Kind: card.Scry, Amount: 1}, false)
		assert.Zero(t, me.Zones.Library.Len())
	})
}

func TestCastSpellsKeepsUnpaidCardInHand(t *testing.T) {
	g := newGame(t, nil)
	me := g.Battlefield().Me()
	me.Zones.Hand = append(me.Zones.Hand, battlefield.OwnedCard{Card: lookup(t, deck.DuskmournsClaim)})

	g.castSpells()

	assert.Len(t, me.Zones.Hand, 1)
	assert.Empty(t, g.Battlefield().Objects)
}

func TestCastSpellsPaysAndCasts(t *testing.T) {
	g := newGame(t, nil)
	bf := g.Battlefield()
	me := bf.Me()
	for _, name := range []string{deck.Swamp, deck.Mountain, deck.Mountain, deck.Mountain} {
		bf.PlayLand(battlefield.OwnedCard{Card: lookup(t, name)})
	}
	claim := battlefield.OwnedCard{Card: lookup(t, deck.DuskmournsClaim)}
	me.Zones.Hand = append(me.Zones.Hand, claim, claim)

	g.castSpells()

	assert.Len(t, me.Zones.Hand, 1)
	assert.True(t, bf.HasObjectNamed(deck.DuskmournsClaim))
	assert.Len(t, bf.UntappedLands(), 1)
}

func TestCeaseGoesToGraveyardAndDraws(t *testing.T) {
	g := newGame(t, copies(lookup(t, deck.Mountain), 5))
	bf := g.Battlefield()
	me := bf.Me()
	bf.PlayLand(battlefield.OwnedCard{Card: lookup(t, deck.Swamp)})
	bf.PlayLand(battlefield.OwnedCard{Card: lookup(t, deck.Mountain)})
	me.Zones.Hand = append(me.Zones.Hand, battlefield.OwnedCard{Card: lookup(t, deck.Cease)})

	g.castSpells()

	assert.Equal(t, 22, me.Life)
	require.Len(t, me.Zones.Graveyard, 1)
	require.Len(t, me.Zones.Hand, 1)
	assert.Equal(t, deck.Mountain, me.Zones.Hand[0].String())
}

func TestFlowAndOutcome(t *testing.T) {
	assert.Equal(t, "VICTORY", Victory.String())
	assert.Equal(t, "FLOW_7", Flow(7).String())
	assert.Equal(t, 5, Outcome{Turns: 5, Won: true}.Signed())
	assert.Equal(t, -9, Outcome{Turns: 9}.Signed())
}
