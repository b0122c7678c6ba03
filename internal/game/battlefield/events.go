package battlefield

import (
	"fmt"
	"strings"

	"github.com/magefree/goldfish-go/internal/game/card"
)

// EventType indicates the category of a game log entry.
type EventType string

const (
	// Turn events
	EventStartTurn EventType = "START_TURN"
	EventEndTurn   EventType = "END_TURN"

	// Zone events
	EventEnteredPlay  EventType = "ENTERED_PLAY"
	EventDraw         EventType = "DRAW"
	EventToHand       EventType = "TO_HAND"
	EventDiscoverInto EventType = "DISCOVER_INTO"
	EventToGraveyard  EventType = "TO_GRAVEYARD"

	// Tap/Untap events
	EventTap   EventType = "TAP"
	EventUntap EventType = "UNTAP"

	// Life events
	EventLostLife   EventType = "LOST_LIFE"
	EventGainedLife EventType = "GAINED_LIFE"

	// Scry/Surveil events
	EventScryTop     EventType = "SCRY_TOP"
	EventScryBottom  EventType = "SCRY_BOTTOM"
	EventSurveilTop  EventType = "SURVEIL_TOP"
	EventSurveilYard EventType = "SURVEIL_YARD"

	// Mulligan events
	EventMulligan    EventType = "MULLIGAN"
	EventPutOnBottom EventType = "PUT_ON_BOTTOM"
)

// Event is one entry of the game log. Fields irrelevant to a type are left at
// their zero value; Card is nil for a discover that found nothing.
type Event struct {
	Type     EventType
	Player   PlayerID
	ObjectID int
	Card     card.Card
	Amount   int
}

func (e Event) String() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	fmt.Fprintf(&b, " %s", e.Player)
	if e.ObjectID != 0 {
		fmt.Fprintf(&b, " #%d", e.ObjectID)
	}
	if e.Card != nil {
		fmt.Fprintf(&b, " %q", card.Name(e.Card))
	}
	if e.Amount != 0 {
		fmt.Fprintf(&b, " %d", e.Amount)
	}
	return b.String()
}

// Log is the append-only record of a game.
type Log []Event

// OfType returns the entries of the given type in order.
func (l Log) OfType(t EventType) []Event {
	var out []Event
	for _, e := range l {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries have the given type.
func (l Log) Count(t EventType) int {
	n := 0
	for _, e := range l {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent entry.
func (l Log) Last() (Event, bool) {
	if len(l) == 0 {
		return Event{}, false
	}
	return l[len(l)-1], true
}
