// Package card is the immutable card model: faces, costs, types and abilities,
// plus the derived queries the rules engine needs.
package card

import (
	"fmt"

	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Face is one castable half of a physical card.
type Face struct {
	Name        string
	ManaCost    *mana.Cost
	Color       Color
	IsLegendary bool
	TypeLine    Type
	Abilities   []Ability
}

// ManaValue is zero for faces without a mana cost (lands).
func (f *Face) ManaValue() int {
	if f.ManaCost == nil {
		return 0
	}
	return f.ManaCost.ManaValue()
}

func (f *Face) IsLand() bool {
	_, ok := f.TypeLine.(Land)
	return ok
}

// EntersTapped scans the face for the enters-tapped marker.
func (f *Face) EntersTapped() bool {
	for _, a := range f.Abilities {
		if e, ok := a.(Enters); ok && e.Trigger.Kind == TappedTrigger {
			return true
		}
	}
	return false
}

// EnterTriggers returns the face's enter-play triggers in printed order.
func (f *Face) EnterTriggers() []EnterTrigger {
	var out []EnterTrigger
	for _, a := range f.Abilities {
		if e, ok := a.(Enters); ok {
			out = append(out, e.Trigger)
		}
	}
	return out
}

// EndStepEffects returns the effects of the face's end-step triggers.
func (f *Face) EndStepEffects() []EffectID {
	var out []EffectID
	for _, a := range f.Abilities {
		if e, ok := a.(EndStep); ok {
			out = append(out, e.Effect)
		}
	}
	return out
}

// ManaAbilities returns the face's mana abilities in printed order.
func (f *Face) ManaAbilities() []ManaAbility {
	var out []ManaAbility
	for _, a := range f.Abilities {
		if m, ok := a.(ManaAbility); ok {
			out = append(out, m)
		}
	}
	return out
}

// Card is a physical card. Implementations: Single, Split, Adventure, Omen.
type Card interface {
	isCard()
}

// Single is a card with one face.
type Single struct {
	Face *Face
}

// Split has two independently castable faces.
type Split struct {
	Left  *Face
	Right *Face
}

// Adventure has a primary face and an adventure face sharing one object.
type Adventure struct {
	Primary   *Face
	Adventure *Face
}

// Omen has a primary face and an omen face sharing one object.
type Omen struct {
	Primary *Face
	Omen    *Face
}

func (Single) isCard()    {}
func (Split) isCard()     {}
func (Adventure) isCard() {}
func (Omen) isCard()      {}

func unknown(c Card) string {
	return fmt.Sprintf("card: unknown arrangement %T", c)
}

// PrimaryName returns the card's single name. Split cards have none.
func PrimaryName(c Card) (string, bool) {
	switch c := c.(type) {
	case Single:
		return c.Face.Name, true
	case Adventure:
		return c.Primary.Name, true
	case Omen:
		return c.Primary.Name, true
	case Split:
		return "", false
	default:
		panic(unknown(c))
	}
}

// Name returns the primary name, or "Left // Right" for split cards.
func Name(c Card) string {
	if s, ok := c.(Split); ok {
		return s.Left.Name + " // " + s.Right.Name
	}
	name, _ := PrimaryName(c)
	return name
}

// ManaValue of a split card is the sum of both faces; adventurers and omens
// use their primary face only.
func ManaValue(c Card) int {
	switch c := c.(type) {
	case Single:
		return c.Face.ManaValue()
	case Split:
		return c.Left.ManaValue() + c.Right.ManaValue()
	case Adventure:
		return c.Primary.ManaValue()
	case Omen:
		return c.Primary.ManaValue()
	default:
		panic(unknown(c))
	}
}

func IsLand(c Card) bool {
	switch c := c.(type) {
	case Single:
		return c.Face.IsLand()
	case Adventure:
		return c.Primary.IsLand()
	case Split, Omen:
		return false
	default:
		panic(unknown(c))
	}
}

func EntersTapped(c Card) bool {
	switch c := c.(type) {
	case Single:
		return c.Face.EntersTapped()
	case Adventure:
		return c.Primary.EntersTapped()
	case Omen:
		return c.Primary.EntersTapped()
	case Split:
		return false
	default:
		panic(unknown(c))
	}
}

// PermanentFace returns the face that is on the battlefield when the card is a
// permanent. Split cards have no single permanent face.
func PermanentFace(c Card) (*Face, bool) {
	switch c := c.(type) {
	case Single:
		return c.Face, true
	case Adventure:
		return c.Primary, true
	case Omen:
		return c.Primary, true
	case Split:
		return nil, false
	default:
		panic(unknown(c))
	}
}

// Faces returns every face of the card in printed order.
func Faces(c Card) []*Face {
	switch c := c.(type) {
	case Single:
		return []*Face{c.Face}
	case Split:
		return []*Face{c.Left, c.Right}
	case Adventure:
		return []*Face{c.Primary, c.Adventure}
	case Omen:
		return []*Face{c.Primary, c.Omen}
	default:
		panic(unknown(c))
	}
}

// HasFaceNamed reports whether any face of the card is called name.
func HasFaceNamed(c Card, name string) bool {
	for _, f := range Faces(c) {
		if f.Name == name {
			return true
		}
	}
	return false
}

// SameCard compares printed identity: same arrangement and same face names.
func SameCard(a, b Card) bool {
	fa, fb := Faces(a), Faces(b)
	if arrangement(a) != arrangement(b) || len(fa) != len(fb) {
		return false
	}
	for i := range fa {
		if fa[i].Name != fb[i].Name {
			return false
		}
	}
	return true
}

func arrangement(c Card) string {
	switch c.(type) {
	case Single:
		return "single"
	case Split:
		return "split"
	case Adventure:
		return "adventure"
	case Omen:
		return "omen"
	default:
		panic(unknown(c))
	}
}
