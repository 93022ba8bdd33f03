package guard_test

import (
	"errors"
	"testing"

	"kitchenpos/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command must be created via its constructor")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(errNotConstructed)

		// Then
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type cancelCommand struct {
		reason string
		guard  guard.ConstructorGuard
	}

	errCancelNotConstructed := errors.New("cancelCommand must be created via newCancelCommand")
	newCancelCommand := func(reason string) cancelCommand {
		return cancelCommand{reason: reason, guard: guard.NewConstructorGuard()}
	}

	t.Run("built_through_constructor", func(t *testing.T) {
		cmd := newCancelCommand("customer left")

		require.NoError(t, cmd.guard.Validate(errCancelNotConstructed))
		assert.Equal(t, "customer left", cmd.reason)
	})

	t.Run("zero_value_is_rejected", func(t *testing.T) {
		var cmd cancelCommand

		assert.Equal(t, errCancelNotConstructed, cmd.guard.Validate(errCancelNotConstructed))
	})
}
