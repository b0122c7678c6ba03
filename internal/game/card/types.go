package card

import "fmt"

// Type is a card's type line. The set of implementations is closed; every
// consumer switches over all of them.
type Type interface {
	isType()
	String() string
}

type LandSubtype string

const (
	Plains   LandSubtype = "Plains"
	Island   LandSubtype = "Island"
	Swamp    LandSubtype = "Swamp"
	Mountain LandSubtype = "Mountain"
	Forest   LandSubtype = "Forest"
	Town     LandSubtype = "Town"
	Cave     LandSubtype = "Cave"
	Desert   LandSubtype = "Desert"
)

type EnchantmentSubtype string

const Room EnchantmentSubtype = "Room"

type ArtifactSubtype string

const Food ArtifactSubtype = "Food"

type CreatureSubtype string

const (
	Artificer CreatureSubtype = "Artificer"
	Demon     CreatureSubtype = "Demon"
	Dinosaur  CreatureSubtype = "Dinosaur"
	Dragon    CreatureSubtype = "Dragon"
	Human     CreatureSubtype = "Human"
)

// Stat is a power or toughness value. Dynamic stats ("*" or "*+1") are
// computed by rules this engine does not model.
type Stat struct {
	Value   int
	Dynamic bool
	PlusOne bool
}

// Fixed returns a printed numeric stat.
func Fixed(v int) Stat {
	return Stat{Value: v}
}

func (s Stat) String() string {
	switch {
	case s.Dynamic && s.PlusOne:
		return "*+1"
	case s.Dynamic:
		return "*"
	default:
		return fmt.Sprint(s.Value)
	}
}

type CreatureProperties struct {
	Subtypes  []CreatureSubtype
	Power     Stat
	Toughness Stat
}

type ArtifactProperties struct {
	Subtypes []ArtifactSubtype
}

type EnchantmentProperties struct {
	Subtypes []EnchantmentSubtype
}

type LandProperties struct {
	IsBasic  bool
	Subtypes []LandSubtype
}

// HasSubtype reports whether the land has the given subtype.
func (p LandProperties) HasSubtype(st LandSubtype) bool {
	for _, s := range p.Subtypes {
		if s == st {
			return true
		}
	}
	return false
}

type Creature struct{ CreatureProperties }

type Artifact struct{ ArtifactProperties }

type Enchantment struct{ EnchantmentProperties }

type ArtifactCreature struct {
	Artifact ArtifactProperties
	Creature CreatureProperties
}

type EnchantmentCreature struct {
	Enchantment EnchantmentProperties
	Creature    CreatureProperties
}

type Land struct{ LandProperties }

type Instant struct{}

type Sorcery struct{}

func (Creature) isType()            {}
func (Artifact) isType()            {}
func (Enchantment) isType()         {}
func (ArtifactCreature) isType()    {}
func (EnchantmentCreature) isType() {}
func (Land) isType()                {}
func (Instant) isType()             {}
func (Sorcery) isType()             {}

func (t Creature) String() string {
	return fmt.Sprintf("Creature %s/%s", t.Power, t.Toughness)
}
func (Artifact) String() string            { return "Artifact" }
func (Enchantment) String() string         { return "Enchantment" }
func (ArtifactCreature) String() string    { return "Artifact Creature" }
func (EnchantmentCreature) String() string { return "Enchantment Creature" }
func (Land) String() string                { return "Land" }
func (Instant) String() string             { return "Instant" }
func (Sorcery) String() string             { return "Sorcery" }

// IsPermanentType reports whether a spell of this type stays on the battlefield.
func IsPermanentType(t Type) bool {
	switch t.(type) {
	case Creature, Artifact, Enchantment, ArtifactCreature, EnchantmentCreature, Land:
		return true
	case Instant, Sorcery:
		return false
	default:
		panic(fmt.Sprintf("card: unknown type %T", t))
	}
}
