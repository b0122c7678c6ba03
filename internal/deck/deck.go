// Package deck is the card catalog for the Duskmourn's Claim list and the
// goldfish opponent.
package deck

import (
	"fmt"

	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/effects"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Size is the number of cards in a legal constructed deck.
const Size = 60

// MaxCopies is the copy limit for non-basic cards.
const MaxCopies = 4

// Card names referenced by the policies.
const (
	Cease               = "Cease"
	Desist              = "Desist"
	TwinmawStormbrood   = "Twinmaw Stormbrood"
	CharringBite        = "Charring Bite"
	RoaringFurnace      = "Roaring Furnace"
	SteamingSauna       = "Steaming Sauna"
	VirtueOfPersistence = "Virtue of Persistence"
	LocthwainScorn      = "Locthwain Scorn"
	TrumpetingCarnosaur = "Trumpeting Carnosaur"
	Glassworks          = "Glassworks"
	ShatteredYard       = "Shattered Yard"
	GeologicalAppraiser = "Geological Appraiser"
	UnholyAnnex         = "Unholy Annex"
	RitualChamber       = "Ritual Chamber"
	DuskmournsClaim     = "Duskmourn's Claim"
	Mountain            = "Mountain"
	Swamp               = "Swamp"
	ConduitPylons       = "Conduit Pylons"
	CrystalGrotto       = "Crystal Grotto"
	HiddenGrotto        = "Hidden Grotto"
	TempleOfMalice      = "Temple of Malice"
	RaucousTheater      = "Raucous Theater"
	BlazemireVerge      = "Blazemire Verge"
)

func cost(s string) *mana.Cost {
	c := mana.MustParseCost(s)
	return &c
}

func room() card.Enchantment {
	return card.Enchantment{EnchantmentProperties: card.EnchantmentProperties{
		Subtypes: []card.EnchantmentSubtype{card.Room},
	}}
}

func creature(power, toughness int, subtypes ...card.CreatureSubtype) card.Creature {
	return card.Creature{CreatureProperties: card.CreatureProperties{
		Subtypes:  subtypes,
		Power:     card.Fixed(power),
		Toughness: card.Fixed(toughness),
	}}
}

func land(basic bool, subtypes ...card.LandSubtype) card.Land {
	return card.Land{LandProperties: card.LandProperties{IsBasic: basic, Subtypes: subtypes}}
}

func free(p mana.Production) card.ManaAbility {
	return card.TapFor(p, mana.Cost{})
}

// filtered is the "{T}: add {C}" plus "{1}, {T}: add one mana of any color"
// pair shared by the utility lands.
func filtered() []card.Ability {
	return []card.Ability{
		free(mana.ColorlessProduction()),
		card.TapFor(mana.AnyColorProduction(), mana.MustParseCost("{1}")),
	}
}

var (
	ceaseDesist = card.Split{
		Left: &card.Face{
			Name:      Cease,
			ManaCost:  cost("{1}{B/G}"),
			Color:     card.Golgari(),
			TypeLine:  card.Instant{},
			Abilities: []card.Ability{card.Other{Effect: effects.CeaseID}},
		},
		Right: &card.Face{
			Name:     Desist,
			ManaCost: cost("{4}{G/W}{G/W}"),
			Color:    card.Selesnya(),
			TypeLine: card.Sorcery{},
		},
	}

	stormbrood = card.Omen{
		Primary: &card.Face{
			Name:      TwinmawStormbrood,
			ManaCost:  cost("{5}{W}"),
			Color:     card.White(),
			TypeLine:  creature(5, 4, card.Dragon),
			Abilities: []card.Ability{card.Flying, card.GainLifeN(5)},
		},
		Omen: &card.Face{
			Name:     CharringBite,
			ManaCost: cost("{1}{R}"),
			Color:    card.Red(),
			TypeLine: card.Sorcery{},
		},
	}

	furnaceSauna = card.Split{
		Left: &card.Face{
			Name:     RoaringFurnace,
			ManaCost: cost("{1}{R}"),
			Color:    card.Red(),
			TypeLine: room(),
		},
		Right: &card.Face{
			Name:      SteamingSauna,
			ManaCost:  cost("{3}{U}{U}"),
			Color:     card.Blue(),
			TypeLine:  room(),
			Abilities: []card.Ability{card.EndStep{Effect: effects.SteamingSaunaID}},
		},
	}

	virtue = card.Adventure{
		Primary: &card.Face{
			Name:     VirtueOfPersistence,
			ManaCost: cost("{5}{B}{B}"),
			Color:    card.Black(),
			TypeLine: card.Enchantment{},
		},
		Adventure: &card.Face{
			Name:     LocthwainScorn,
			ManaCost: cost("{1}{B}"),
			Color:    card.Black(),
			TypeLine: card.Sorcery{},
		},
	}

	carnosaur = card.Single{Face: &card.Face{
		Name:      TrumpetingCarnosaur,
		ManaCost:  cost("{4}{R}{R}"),
		Color:     card.Red(),
		TypeLine:  creature(7, 6, card.Dinosaur),
		Abilities: []card.Ability{card.Trample, card.DiscoverN(5)},
	}}

	worksYard = card.Split{
		Left: &card.Face{
			Name:     Glassworks,
			ManaCost: cost("{2}{R}"),
			Color:    card.Red(),
			TypeLine: room(),
		},
		Right: &card.Face{
			Name:      ShatteredYard,
			ManaCost:  cost("{4}{R}"),
			Color:     card.Red(),
			TypeLine:  room(),
			Abilities: []card.Ability{card.EndStep{Effect: effects.ShatteredYardID}},
		},
	}

	appraiser = card.Single{Face: &card.Face{
		Name:      GeologicalAppraiser,
		ManaCost:  cost("{2}{R}{R}"),
		Color:     card.Red(),
		TypeLine:  creature(3, 2, card.Human, card.Artificer),
		Abilities: []card.Ability{card.DiscoverN(3)},
	}}

	annexChamber = card.Split{
		Left: &card.Face{
			Name:     UnholyAnnex,
			ManaCost: cost("{2}{B}"),
			Color:    card.Black(),
			TypeLine: room(),
		},
		Right: &card.Face{
			Name:     RitualChamber,
			ManaCost: cost("{3}{B}{B}"),
			Color:    card.Black(),
			TypeLine: room(),
		},
	}

	claim = card.Single{Face: &card.Face{
		Name:      DuskmournsClaim,
		ManaCost:  cost("{2}{B}"),
		Color:     card.Black(),
		TypeLine:  card.Enchantment{},
		Abilities: []card.Ability{card.EndStep{Effect: effects.DuskmournsClaimID}},
	}}

	mountain = card.Single{Face: &card.Face{
		Name:      Mountain,
		Color:     card.Colorless(),
		TypeLine:  land(true, card.Mountain),
		Abilities: []card.Ability{free(mana.RedProduction())},
	}}

	swamp = card.Single{Face: &card.Face{
		Name:      Swamp,
		Color:     card.Colorless(),
		TypeLine:  land(true, card.Swamp),
		Abilities: []card.Ability{free(mana.BlackProduction())},
	}}

	conduitPylons = card.Single{Face: &card.Face{
		Name:      ConduitPylons,
		Color:     card.Colorless(),
		TypeLine:  land(false, card.Desert),
		Abilities: append([]card.Ability{card.SurveilN(1)}, filtered()...),
	}}

	crystalGrotto = card.Single{Face: &card.Face{
		Name:      CrystalGrotto,
		Color:     card.Colorless(),
		TypeLine:  land(false),
		Abilities: append([]card.Ability{card.ScryN(1)}, filtered()...),
	}}

	hiddenGrotto = card.Single{Face: &card.Face{
		Name:      HiddenGrotto,
		Color:     card.Colorless(),
		TypeLine:  land(false),
		Abilities: append([]card.Ability{card.SurveilN(1)}, filtered()...),
	}}

	templeOfMalice = card.Single{Face: &card.Face{
		Name:      TempleOfMalice,
		Color:     card.Colorless(),
		TypeLine:  land(false),
		Abilities: []card.Ability{card.Tapped(), card.ScryN(1), free(mana.RakdosProduction())},
	}}

	raucousTheater = card.Single{Face: &card.Face{
		Name:      RaucousTheater,
		Color:     card.Colorless(),
		TypeLine:  land(false, card.Mountain, card.Swamp),
		Abilities: []card.Ability{card.Tapped(), card.SurveilN(1), free(mana.RakdosProduction())},
	}}

	// The red ability only works with a Swamp or Mountain in play; that
	// restriction is not modelled.
	blazemireVerge = card.Single{Face: &card.Face{
		Name:      BlazemireVerge,
		Color:     card.Colorless(),
		TypeLine:  land(false),
		Abilities: []card.Ability{free(mana.BlackProduction()), free(mana.RedProduction())},
	}}
)

// Entry is a card with its number of copies.
type Entry struct {
	Card   card.Card
	Copies int
}

// ClaimList is the decklist in printed order.
func ClaimList() []Entry {
	return []Entry{
		{ceaseDesist, 4},
		{mountain, 3},
		{stormbrood, 4},
		{virtue, 4},
		{furnaceSauna, 4},
		{swamp, 1},
		{carnosaur, 4},
		{annexChamber, 2},
		{worksYard, 4},
		{claim, 4},
		{appraiser, 4},
		{conduitPylons, 4},
		{crystalGrotto, 3},
		{hiddenGrotto, 4},
		{templeOfMalice, 4},
		{raucousTheater, 4},
		{blazemireVerge, 3},
	}
}

// Expand turns a decklist into one card value per copy.
func Expand(list []Entry) []card.Card {
	var out []card.Card
	for _, e := range list {
		for i := 0; i < e.Copies; i++ {
			out = append(out, e.Card)
		}
	}
	return out
}

// Claim returns the 60 cards of the Duskmourn's Claim deck.
func Claim() []card.Card {
	return Expand(ClaimList())
}

// Goldfish returns the opponent's deck: 60 Mountains.
func Goldfish() []card.Card {
	return Expand([]Entry{{mountain, Size}})
}

// Lookup returns the catalog card with the given name. Split cards match on
// either face.
func Lookup(name string) (card.Card, bool) {
	for _, e := range ClaimList() {
		if card.HasFaceNamed(e.Card, name) {
			return e.Card, true
		}
	}
	return nil, false
}

// Validate checks deck size and the copy limit for non-basic cards.
func Validate(cards []card.Card) error {
	if len(cards) != Size {
		return fmt.Errorf("deck has %d cards, want %d", len(cards), Size)
	}
	counts := make(map[string]int)
	for _, c := range cards {
		if isBasic(c) {
			continue
		}
		name := card.Name(c)
		counts[name]++
		if counts[name] > MaxCopies {
			return fmt.Errorf("deck has more than %d copies of %q", MaxCopies, name)
		}
	}
	return nil
}

func isBasic(c card.Card) bool {
	s, ok := c.(card.Single)
	if !ok {
		return false
	}
	l, ok := s.Face.TypeLine.(card.Land)
	return ok && l.IsBasic
}
