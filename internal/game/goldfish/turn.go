package goldfish

import "fmt"

// Step is one step of a goldfish turn.
type Step int

const (
	StepUntap Step = iota
	StepDraw
	StepMain
	StepEnd
)

var stepNames = map[Step]string{
	StepUntap: "UNTAP",
	StepDraw:  "DRAW",
	StepMain:  "MAIN",
	StepEnd:   "END",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

// turnSequence is the order steps happen in every turn.
var turnSequence = []Step{StepUntap, StepDraw, StepMain, StepEnd}

// TurnTracker tracks the turn number and the step in progress.
type TurnTracker struct {
	orderIndex int
	turnNumber int
}

// NewTurnTracker creates a tracker before the first turn has started.
func NewTurnTracker() *TurnTracker {
	return &TurnTracker{}
}

// BeginTurn starts the next turn at its untap step and returns its number.
func (tt *TurnTracker) BeginTurn() int {
	tt.turnNumber++
	tt.orderIndex = 0
	return tt.turnNumber
}

// CurrentStep returns the step currently in progress.
func (tt *TurnTracker) CurrentStep() Step {
	return turnSequence[tt.orderIndex]
}

// TurnNumber returns the current turn number (1-based, 0 before the first
// turn).
func (tt *TurnTracker) TurnNumber() int {
	return tt.turnNumber
}

// AdvanceStep moves to the next step of the current turn. Advancing past the
// end step is a caller bug.
func (tt *TurnTracker) AdvanceStep() Step {
	if tt.orderIndex+1 >= len(turnSequence) {
		panic(fmt.Sprintf("goldfish: turn %d has no step after %s", tt.turnNumber, tt.CurrentStep()))
	}
	tt.orderIndex++
	return tt.CurrentStep()
}
