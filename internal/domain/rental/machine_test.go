package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

func TestConfirmRequiresResolvedTransport(t *testing.T) {
	order := newPendingOrder(true)

	require.ErrorIs(t, Confirm(order), domainErrors.ErrTransportNotResolved)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	require.NoError(t, ProposeAsUser(order, dec("180"), testNow))
	require.ErrorIs(t, Confirm(order), domainErrors.ErrTransportNotResolved)

	require.NoError(t, Accept(order, model.PartyAdmin))
	require.NoError(t, Confirm(order))

	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
	assert.True(t, order.Total.Equal(dec("300")))
	assert.Equal(t, "150.00", order.Payment.DepositAmount.StringFixed(2))
	assert.Equal(t, "150.00", order.Payment.BalanceAmount.StringFixed(2))
}

func TestConfirmWithoutTransport(t *testing.T) {
	order := newPendingOrder(false)

	require.NoError(t, Confirm(order))
	assert.Equal(t, "60.00", order.Payment.DepositAmount.StringFixed(2))
	assert.Equal(t, model.LegStatusPending, order.Payment.DepositStatus)
}

func TestLinearLifecycle(t *testing.T) {
	order := newPendingOrder(false)

	require.NoError(t, Confirm(order))
	require.NoError(t, Start(order))
	assert.Equal(t, model.OrderStatusInProgress, order.Status)
	require.NoError(t, Complete(order))
	assert.Equal(t, model.OrderStatusCompleted, order.Status)

	require.ErrorIs(t, Cancel(order, model.PartyAdmin), domainErrors.ErrInvalidTransition)
	require.ErrorIs(t, Confirm(order), domainErrors.ErrInvalidTransition)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)
}

func TestStartRequiresStartDate(t *testing.T) {
	order := newPendingOrder(false)
	require.NoError(t, Confirm(order))
	order.StartDate = nil

	require.ErrorIs(t, Start(order), domainErrors.ErrInvalidTransition)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
}

func TestIllegalTransitionsLeaveOrderUnchanged(t *testing.T) {
	tests := []struct {
		name string
		run  func(*model.RentalOrder) error
	}{
		{"start pending", Start},
		{"complete pending", Complete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newPendingOrder(true)
			before := order.Clone()

			require.ErrorIs(t, tt.run(order), domainErrors.ErrInvalidTransition)
			assert.Equal(t, before, order)
		})
	}
}

func TestCancelRules(t *testing.T) {
	order := newPendingOrder(false)
	require.NoError(t, Cancel(order, model.PartyUser))
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
	require.ErrorIs(t, Cancel(order, model.PartyAdmin), domainErrors.ErrInvalidTransition)

	order = newPendingOrder(false)
	require.NoError(t, Confirm(order))
	require.ErrorIs(t, Cancel(order, model.PartyUser), domainErrors.ErrInvalidTransition)
	require.NoError(t, Cancel(order, model.PartyAdmin))

	order = newPendingOrder(false)
	require.NoError(t, Confirm(order))
	require.NoError(t, Start(order))
	require.ErrorIs(t, Cancel(order, model.PartyAdmin), domainErrors.ErrInvalidTransition)

	require.ErrorIs(t, Cancel(newPendingOrder(false), model.Party("")), domainErrors.ErrInvalidParty)
}

func TestReplaceLines(t *testing.T) {
	order := newPendingOrder(true)
	require.NoError(t, ProposeAsUser(order, dec("10"), testNow))
	require.NoError(t, Accept(order, model.PartyAdmin))

	lines := []model.CartLine{
		{ProductID: "table", UnitPrice: dec("15"), Quantity: 1, RentalDays: 4},
		{ProductID: "chair", UnitPrice: dec("2.5"), Quantity: 4, RentalDays: 4},
	}
	require.NoError(t, ReplaceLines(order, lines))

	assert.True(t, order.Lines[1].Subtotal.Equal(dec("40")))
	assert.True(t, order.Total.Equal(dec("110")))
	lines[0].Quantity = 99
	assert.Equal(t, 1, order.Lines[0].Quantity)
}

func TestReplaceLinesValidation(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.CartLine
		want  error
	}{
		{"empty", nil, domainErrors.ErrEmptyCart},
		{"missing product", []model.CartLine{{Quantity: 1, RentalDays: 1}}, domainErrors.ErrInvalidLine},
		{"zero quantity", []model.CartLine{{ProductID: "p", Quantity: 0, RentalDays: 1}}, domainErrors.ErrInvalidLine},
		{"zero days", []model.CartLine{{ProductID: "p", Quantity: 1, RentalDays: 0}}, domainErrors.ErrInvalidLine},
		{"negative price", []model.CartLine{{ProductID: "p", Quantity: 1, RentalDays: 1, UnitPrice: dec("-1")}}, domainErrors.ErrInvalidLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newPendingOrder(false)
			before := order.Clone()
			require.ErrorIs(t, ReplaceLines(order, tt.lines), tt.want)
			assert.Equal(t, before, order)
		})
	}

	order := newPendingOrder(false)
	require.NoError(t, Confirm(order))
	err := ReplaceLines(order, []model.CartLine{{ProductID: "p", Quantity: 1, RentalDays: 1}})
	require.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
}

func TestReschedule(t *testing.T) {
	order := newPendingOrder(false)
	start := testNow.AddDate(0, 1, 0)
	end := start.AddDate(0, 0, 2)

	require.ErrorIs(t, Reschedule(order, end, start), domainErrors.ErrInvalidDates)
	require.NoError(t, Reschedule(order, start, end))
	assert.True(t, order.StartDate.Equal(start))
	assert.True(t, order.EndDate.Equal(end))

	require.NoError(t, Confirm(order))
	require.NoError(t, Reschedule(order, start, start))
	require.NoError(t, Start(order))
	require.ErrorIs(t, Reschedule(order, start, end), domainErrors.ErrInvalidTransition)
}

func TestRentalDays(t *testing.T) {
	start := testNow
	assert.Equal(t, 1, RentalDays(start, start))
	assert.Equal(t, 1, RentalDays(start, start.Add(-48*time.Hour)))
	assert.Equal(t, 3, RentalDays(start, start.AddDate(0, 0, 3)))
}
