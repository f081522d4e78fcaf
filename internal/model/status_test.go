package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"processing to confirmed", StatusProcessing, StatusConfirmed, true},
		{"processing to cancelled", StatusProcessing, StatusCancelled, true},
		{"processing to shipped skips confirmation", StatusProcessing, StatusShipped, false},
		{"processing to delivered skips everything", StatusProcessing, StatusDelivered, false},
		{"confirmed to shipped", StatusConfirmed, StatusShipped, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed back to processing", StatusConfirmed, StatusProcessing, false},
		{"shipped to out for delivery", StatusShipped, StatusOutForDelivery, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, true},
		{"shipped to delivered skips out for delivery", StatusShipped, StatusDelivered, false},
		{"out for delivery to delivered", StatusOutForDelivery, StatusDelivered, true},
		{"out for delivery cannot be cancelled", StatusOutForDelivery, StatusCancelled, false},
		{"delivered to refunded", StatusDelivered, StatusRefunded, true},
		{"delivered cannot be cancelled", StatusDelivered, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusProcessing, false},
		{"cancelled cannot be refunded", StatusCancelled, StatusRefunded, false},
		{"refunded is terminal", StatusRefunded, StatusProcessing, false},
		{"self transition rejected", StatusProcessing, StatusProcessing, false},
		{"unknown source rejected", OrderStatus("Pending"), StatusConfirmed, false},
		{"unknown target rejected", StatusProcessing, OrderStatus("Lost"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestOrderStatusIsFinal(t *testing.T) {
	assert.True(t, StatusDelivered.IsFinal())
	assert.True(t, StatusCancelled.IsFinal())
	assert.True(t, StatusRefunded.IsFinal())

	assert.False(t, StatusProcessing.IsFinal())
	assert.False(t, StatusConfirmed.IsFinal())
	assert.False(t, StatusShipped.IsFinal())
	assert.False(t, StatusOutForDelivery.IsFinal())
}

func TestOrderStatusIsCancellable(t *testing.T) {
	assert.True(t, StatusProcessing.IsCancellable())
	assert.True(t, StatusConfirmed.IsCancellable())
	assert.True(t, StatusShipped.IsCancellable())

	assert.False(t, StatusOutForDelivery.IsCancellable())
	assert.False(t, StatusDelivered.IsCancellable())
	assert.False(t, StatusCancelled.IsCancellable())
	assert.False(t, StatusRefunded.IsCancellable())
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("Out for Delivery")
	assert.True(t, ok)
	assert.Equal(t, StatusOutForDelivery, s)

	_, ok = ParseOrderStatus("out for delivery")
	assert.False(t, ok, "labels are case sensitive")

	_, ok = ParseOrderStatus("Archived")
	assert.False(t, ok)
}
