package mana

// Production is the set of mana types a single activation may produce; any one
// of them can be chosen.
type Production struct {
	Possible []ManaType
}

func ColorlessProduction() Production { return Production{Possible: []ManaType{ManaColorless}} }
func WhiteProduction() Production     { return Production{Possible: []ManaType{ManaWhite}} }
func BlueProduction() Production      { return Production{Possible: []ManaType{ManaBlue}} }
func BlackProduction() Production     { return Production{Possible: []ManaType{ManaBlack}} }
func RedProduction() Production       { return Production{Possible: []ManaType{ManaRed}} }
func GreenProduction() Production     { return Production{Possible: []ManaType{ManaGreen}} }

// RakdosProduction produces black or red.
func RakdosProduction() Production {
	return Production{Possible: []ManaType{ManaBlack, ManaRed}}
}

// AnyColorProduction produces one mana of any color.
func AnyColorProduction() Production {
	return Production{Possible: []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen}}
}

// Contains reports whether the production can yield mana of type mt.
func (p Production) Contains(mt ManaType) bool {
	for _, candidate := range p.Possible {
		if candidate == mt {
			return true
		}
	}
	return false
}
