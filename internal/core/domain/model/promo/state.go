package promo

import "time"

// State is the persisted singleton controlled from the back office.
type State struct {
	ManualOverrideEnabled bool       `json:"manualOverrideEnabled"`
	UpdatedAt             *time.Time `json:"updatedAt"`
}

// DefaultState is used when nothing, or nothing readable, is stored.
func DefaultState() State {
	return State{}
}

// NewState records an operator decision taken at now.
func NewState(enabled bool, now time.Time) State {
	return State{ManualOverrideEnabled: enabled, UpdatedAt: &now}
}
