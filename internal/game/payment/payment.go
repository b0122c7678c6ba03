// Package payment decides which lands to tap for a spell and taps them.
package payment

import (
	"fmt"

	"github.com/magefree/goldfish-go/internal/game/battlefield"
	"github.com/magefree/goldfish-go/internal/game/card"
	"github.com/magefree/goldfish-go/internal/game/mana"
)

// Result represents the result of a payment attempt.
type Result struct {
	Paid   bool
	Tapped []*battlefield.InPlayObject
	Reason string
}

func failed(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Pay pays cost with the untapped lands on the battlefield.
//
// Colored pips are assigned first, in cost order, each to the uncommitted land
// whose matching mana ability needs the least extra mana (earliest land on
// ties). The generic part plus that extra mana is then covered by further
// uncommitted lands in battlefield order. Only when everything is covered are
// the committed lands tapped; a failed payment leaves the battlefield as it
// was.
//
// Hybrid pips are satisfied by their first half only. This is a
// simplification that holds for {B/G} in the Claim deck.
func Pay(bf *battlefield.Battlefield, cost mana.Cost) Result {
	lands := bf.UntappedLands()
	if mv := cost.ManaValue(); len(lands) < mv {
		return failed("insufficient lands (need %d, have %d)", mv, len(lands))
	}

	committed := make([]bool, len(lands))
	generic := cost.Generic()
	for _, pip := range cost.Pips {
		if pip.IsGeneric() {
			continue
		}
		need := pip.Unit.Type
		if need == mana.ManaX {
			continue
		}

		best, bestExtra := -1, 0
		for i, land := range lands {
			if committed[i] {
				continue
			}
			extra, ok := ProducesFor(land, need)
			if !ok {
				continue
			}
			if best < 0 || extra.ManaValue() < bestExtra {
				best, bestExtra = i, extra.ManaValue()
			}
		}
		if best < 0 {
			return failed("no source for %s", pip)
		}
		committed[best] = true
		generic += bestExtra
	}

	for i := range lands {
		if generic == 0 {
			break
		}
		if !committed[i] {
			committed[i] = true
			generic--
		}
	}
	if generic > 0 {
		return failed("insufficient lands for generic mana (short %d)", generic)
	}

	result := Result{Paid: true}
	for i, land := range lands {
		if committed[i] {
			bf.Tap(land)
			result.Tapped = append(result.Tapped, land)
		}
	}
	return result
}

// ProducesFor reports whether the object can tap for mana of type mt and, if
// so, the extra mana its cheapest such ability costs to activate.
func ProducesFor(o *battlefield.InPlayObject, mt mana.ManaType) (mana.Cost, bool) {
	face, ok := card.PermanentFace(o.Card.Card)
	if !ok {
		return mana.Cost{}, false
	}
	var (
		best  mana.Cost
		found bool
	)
	for _, ability := range face.ManaAbilities() {
		if !ability.Produce.Contains(mt) {
			continue
		}
		if !found || ability.Cost.ManaCost.ManaValue() < best.ManaValue() {
			best, found = ability.Cost.ManaCost, true
		}
	}
	return best, found
}
