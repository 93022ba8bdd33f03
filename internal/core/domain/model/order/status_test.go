package order_test

import (
	"encoding/json"
	"testing"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Preparing, order.Cancelled},
		order.Preparing: {order.Ready, order.Cancelled},
		order.Ready:     {order.Delivered, order.Cancelled},
		order.Delivered: {order.Paid, order.Cancelled},
		order.Paid:      {},
		order.Cancelled: {},
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			expected := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expected = true
				}
			}
			assert.Equal(t, expected, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Paid.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		for _, status := range order.AllStatuses() {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "READY", "served"} {
			_, err := order.ParseStatus(name)

			require.Error(t, err, name)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Ready.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_JSON(t *testing.T) {
	t.Run("should encode as lowercase name", func(t *testing.T) {
		data, err := json.Marshal(order.Preparing)

		require.NoError(t, err)
		assert.JSONEq(t, `"preparing"`, string(data))
	})

	t.Run("should decode from name", func(t *testing.T) {
		var status order.Status

		require.NoError(t, json.Unmarshal([]byte(`"delivered"`), &status))
		assert.Equal(t, order.Delivered, status)
	})

	t.Run("should fail to encode unknown", func(t *testing.T) {
		_, err := json.Marshal(order.Unknown)

		require.Error(t, err)
	})
}
