package card

import (
	"fmt"

	"github.com/magefree/goldfish-go/internal/game/mana"
)

// EffectID names a bespoke effect implementation. Cards reference effects by
// ID; the battlefield resolves the ID through its effect registry.
type EffectID string

// Ability is one of the capability classes a card face can carry. The set of
// implementations is closed.
type Ability interface {
	isAbility()
}

// Keyword is a static keyword ability with no associated data.
type Keyword string

const (
	Flying       Keyword = "Flying"
	Trample      Keyword = "Trample"
	Menace       Keyword = "Menace"
	Lifelink     Keyword = "Lifelink"
	FirstStrike  Keyword = "First strike"
	DoubleStrike Keyword = "Double strike"
)

// Enters is a triggered ability that resolves as the permanent enters play.
type Enters struct {
	Trigger EnterTrigger
}

// EndStep is a triggered ability resolved at the controller's end step.
type EndStep struct {
	Effect EffectID
}

// ManaAbility produces one mana from Produce after paying Cost.
type ManaAbility struct {
	Cost    AbilityCost
	Produce mana.Production
}

// AbilityCost is the activation cost of an ability. ManaCost is the zero
// Cost when no additional mana is required.
type AbilityCost struct {
	Tap      bool
	ManaCost mana.Cost
}

// Other is the escape hatch for text not otherwise modelled.
type Other struct {
	Effect EffectID
}

func (Keyword) isAbility()     {}
func (Enters) isAbility()      {}
func (EndStep) isAbility()     {}
func (ManaAbility) isAbility() {}
func (Other) isAbility()       {}

// EnterTriggerKind enumerates the enter-play triggers the engine understands.
type EnterTriggerKind int

const (
	TappedTrigger EnterTriggerKind = iota
	Scry
	Surveil
	Discover
	GainLife
)

var enterTriggerNames = map[EnterTriggerKind]string{
	TappedTrigger: "ENTERS_TAPPED",
	Scry:          "SCRY",
	Surveil:       "SURVEIL",
	Discover:      "DISCOVER",
	GainLife:      "GAIN_LIFE",
}

func (k EnterTriggerKind) String() string {
	if name, ok := enterTriggerNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ENTER_TRIGGER_%d", int(k))
}

// EnterTrigger is an enter-play trigger. Amount is unused for TappedTrigger.
type EnterTrigger struct {
	Kind   EnterTriggerKind
	Amount int
}

func (t EnterTrigger) String() string {
	return fmt.Sprintf("%s %d", t.Kind, t.Amount)
}

func Tapped() Enters         { return Enters{Trigger: EnterTrigger{Kind: TappedTrigger}} }
func ScryN(n int) Enters     { return Enters{Trigger: EnterTrigger{Kind: Scry, Amount: n}} }
func SurveilN(n int) Enters  { return Enters{Trigger: EnterTrigger{Kind: Surveil, Amount: n}} }
func DiscoverN(n int) Enters { return Enters{Trigger: EnterTrigger{Kind: Discover, Amount: n}} }
func GainLifeN(n int) Enters { return Enters{Trigger: EnterTrigger{Kind: GainLife, Amount: n}} }

// TapFor returns a mana ability that taps for one of the produced types,
// optionally paying extra mana.
func TapFor(produce mana.Production, extra mana.Cost) ManaAbility {
	return ManaAbility{
		Cost:    AbilityCost{Tap: true, ManaCost: extra},
		Produce: produce,
	}
}
