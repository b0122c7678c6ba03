package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ManaType represents a type of mana a pip can ask for.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
	ManaGeneric   ManaType = "GENERIC" // Generic mana can be paid with any type
	ManaX         ManaType = "X"
)

var symbols = map[ManaType]string{
	ManaWhite:     "W",
	ManaBlue:      "U",
	ManaBlack:     "B",
	ManaRed:       "R",
	ManaGreen:     "G",
	ManaColorless: "C",
	ManaX:         "X",
}

// Unit is a single mana requirement. Amount is only meaningful for generic mana.
type Unit struct {
	Type   ManaType
	Amount int
}

var (
	White     = Unit{Type: ManaWhite}
	Blue      = Unit{Type: ManaBlue}
	Black     = Unit{Type: ManaBlack}
	Red       = Unit{Type: ManaRed}
	Green     = Unit{Type: ManaGreen}
	Colorless = Unit{Type: ManaColorless}
	X         = Unit{Type: ManaX}
)

// Generic returns a generic requirement of the given amount.
func Generic(amount int) Unit {
	return Unit{Type: ManaGeneric, Amount: amount}
}

// ManaValue returns the unit's contribution to a mana value. X counts as zero
// outside of a casting context.
func (u Unit) ManaValue() int {
	switch u.Type {
	case ManaGeneric:
		return u.Amount
	case ManaX:
		return 0
	case ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen, ManaColorless:
		return 1
	default:
		panic(fmt.Sprintf("mana: unknown unit type %q", u.Type))
	}
}

func (u Unit) symbol() string {
	if u.Type == ManaGeneric {
		return strconv.Itoa(u.Amount)
	}
	return symbols[u.Type]
}

// Pip is one discrete unit of a mana cost: either a single unit or a hybrid
// choice between two units.
type Pip struct {
	Unit   Unit
	Alt    Unit
	hybrid bool
}

// Single returns a pip requiring exactly u.
func Single(u Unit) Pip {
	return Pip{Unit: u}
}

// Hybrid returns a pip satisfied by either a or b.
func Hybrid(a, b Unit) Pip {
	return Pip{Unit: a, Alt: b, hybrid: true}
}

// IsHybrid reports whether the pip offers a choice between two units.
func (p Pip) IsHybrid() bool {
	return p.hybrid
}

// IsGeneric reports whether the pip is a plain generic requirement.
func (p Pip) IsGeneric() bool {
	return !p.hybrid && p.Unit.Type == ManaGeneric
}

// ManaValue of a hybrid pip is the larger of its two halves.
func (p Pip) ManaValue() int {
	if !p.hybrid {
		return p.Unit.ManaValue()
	}
	return max(p.Unit.ManaValue(), p.Alt.ManaValue())
}

func (p Pip) String() string {
	if p.hybrid {
		return "{" + p.Unit.symbol() + "/" + p.Alt.symbol() + "}"
	}
	return "{" + p.Unit.symbol() + "}"
}

// Cost is an ordered sequence of pips.
type Cost struct {
	Pips []Pip
}

// NewCost builds a cost from pips in printed order.
func NewCost(pips ...Pip) Cost {
	return Cost{Pips: pips}
}

// ManaValue returns the sum of the per-pip mana values.
func (c Cost) ManaValue() int {
	total := 0
	for _, p := range c.Pips {
		total += p.ManaValue()
	}
	return total
}

// Generic returns the total generic amount of the cost.
func (c Cost) Generic() int {
	total := 0
	for _, p := range c.Pips {
		if p.IsGeneric() {
			total += p.Unit.Amount
		}
	}
	return total
}

// IsZero reports whether the cost has no pips.
func (c Cost) IsZero() bool {
	return len(c.Pips) == 0
}

// Equal compares two costs pip by pip.
func (c Cost) Equal(other Cost) bool {
	if len(c.Pips) != len(other.Pips) {
		return false
	}
	for i := range c.Pips {
		if c.Pips[i] != other.Pips[i] {
			return false
		}
	}
	return true
}

// String returns the printed form of the cost, e.g. "{2}{B}".
func (c Cost) String() string {
	var b strings.Builder
	for _, p := range c.Pips {
		b.WriteString(p.String())
	}
	return b.String()
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}", "{X}{R}", "{1}{B/G}").
// Consecutive generic symbols are kept as separate pips in printed order.
func ParseCost(costStr string) (Cost, error) {
	cost := Cost{}
	if strings.TrimSpace(costStr) == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return Cost{}, fmt.Errorf("no mana symbols in %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		if strings.Contains(symbol, "/") {
			pip, err := parseHybrid(symbol)
			if err != nil {
				return Cost{}, err
			}
			cost.Pips = append(cost.Pips, pip)
			continue
		}
		unit, err := parseUnit(symbol)
		if err != nil {
			return Cost{}, err
		}
		cost.Pips = append(cost.Pips, Single(unit))
	}

	return cost, nil
}

// MustParseCost is ParseCost for static card data; it panics on malformed input.
func MustParseCost(costStr string) Cost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

func parseHybrid(symbol string) (Pip, error) {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 {
		return Pip{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
	}
	left, err := parseUnit(strings.TrimSpace(parts[0]))
	if err != nil {
		return Pip{}, err
	}
	right, err := parseUnit(strings.TrimSpace(parts[1]))
	if err != nil {
		return Pip{}, err
	}
	return Hybrid(left, right), nil
}

func parseUnit(symbol string) (Unit, error) {
	switch symbol {
	case "W":
		return White, nil
	case "U":
		return Blue, nil
	case "B":
		return Black, nil
	case "R":
		return Red, nil
	case "G":
		return Green, nil
	case "C":
		return Colorless, nil
	case "X":
		return X, nil
	}
	if num, err := strconv.Atoi(symbol); err == nil && num >= 0 {
		return Generic(num), nil
	}
	return Unit{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
}
