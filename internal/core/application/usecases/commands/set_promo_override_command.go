package commands

import (
	"errors"

	"kitchenpos/internal/pkg/guard"
)

var ErrSetPromoOverrideCommandIsNotConstructed = errors.New(
	"SetPromoOverrideCommand must be created via NewSetPromoOverrideCommand constructor",
)

// SetPromoOverrideCommand turns the manual promotion override on or off.
// confirmText must match the configured confirmation phrase for the change to apply.
type SetPromoOverrideCommand struct { //nolint:recvcheck //using for validation
	enabled     bool
	confirmText string

	guard guard.ConstructorGuard
}

func NewSetPromoOverrideCommand(enabled bool, confirmText string) SetPromoOverrideCommand {
	return SetPromoOverrideCommand{
		enabled:     enabled,
		confirmText: confirmText,
		guard:       guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SetPromoOverrideCommand) Validate() error {
	return c.guard.Validate(ErrSetPromoOverrideCommandIsNotConstructed)
}

func (c SetPromoOverrideCommand) Enabled() bool {
	return c.enabled
}

func (c SetPromoOverrideCommand) ConfirmText() string {
	return c.confirmText
}
