package views

import (
	"github.com/rendis/mealee/internal/engine/flow"
	"github.com/rendis/mealee/internal/engine/game"
)

// AdvanceMsg stores one or two form fields and moves to the next step.
type AdvanceMsg struct {
	Assignments []flow.Assignment
}

// GoBackMsg clears Field, which sends the flow back to that step.
type GoBackMsg struct {
	Field flow.Field
}

// StartFetchMsg asks the app to fetch a pool of Limit businesses.
type StartFetchMsg struct {
	Limit int
}

// PickMsg keeps Winner; its opponent is eliminated.
type PickMsg struct {
	Winner game.Slot
}

// DismissMsg eliminates the last remaining contender, ending the round.
type DismissMsg struct{}

// ResetMsg clears the game and the form.
type ResetMsg struct{}
