package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []OrderItem {
	return []OrderItem{
		{Product: "p1", Name: "Keyboard", Price: decimal.RequireFromString("49.99"), Quantity: 2},
		{Product: "p2", Name: "Mouse", Price: decimal.RequireFromString("19.50"), Quantity: 1},
	}
}

func TestNewOrderComputesTotals(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{City: "Lagos"}, testItems(),
		decimal.RequireFromString("10.00"), decimal.RequireFromString("5.00"), nil)

	// 2*49.99 + 19.50 = 119.48
	assert.True(t, o.ItemsPrice.Equal(decimal.RequireFromString("119.48")), "items price %s", o.ItemsPrice)
	assert.True(t, o.TotalPrice.Equal(decimal.RequireFromString("134.48")), "total price %s", o.TotalPrice)

	assert.Equal(t, StatusProcessing, o.OrderStatus)
	assert.Nil(t, o.PaidAt)
	assert.Nil(t, o.DeliveredAt)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestNewOrderStampsPaidAtOnSucceededPayment(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(),
		decimal.Zero, decimal.Zero, &PaymentInfo{ID: "pi_1", Status: PaymentSucceeded})

	require.NotNil(t, o.PaidAt)
	assert.True(t, o.IsPaid())
}

func TestNewOrderPendingPaymentIsNotPaid(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(),
		decimal.Zero, decimal.Zero, &PaymentInfo{ID: "pi_1", Status: "requires_payment_method"})

	assert.Nil(t, o.PaidAt)
	assert.False(t, o.IsPaid())
}

func TestOrderUpdateStatus(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(), decimal.Zero, decimal.Zero, nil)

	require.NoError(t, o.UpdateStatus(StatusConfirmed))
	require.NoError(t, o.UpdateStatus(StatusShipped))
	require.NoError(t, o.UpdateStatus(StatusOutForDelivery))
	assert.Nil(t, o.DeliveredAt)

	require.NoError(t, o.UpdateStatus(StatusDelivered))
	require.NotNil(t, o.DeliveredAt)
	assert.True(t, o.IsDelivered())
}

func TestOrderUpdateStatusRejectsIllegalTransition(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(), decimal.Zero, decimal.Zero, nil)

	err := o.UpdateStatus(StatusDelivered)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// the failed transition must not mutate the order
	assert.Equal(t, StatusProcessing, o.OrderStatus)
	assert.Nil(t, o.DeliveredAt)
}

func TestOrderMarkPaid(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(), decimal.Zero, decimal.Zero, nil)
	assert.False(t, o.IsPaid())

	o.MarkPaid("pi_42", PaymentSucceeded)

	require.NotNil(t, o.PaymentInfo)
	assert.Equal(t, "pi_42", o.PaymentInfo.ID)
	assert.True(t, o.IsPaid())
	assert.NotNil(t, o.PaidAt)
	assert.Equal(t, StatusProcessing, o.OrderStatus, "payment does not advance the lifecycle")
}

func TestOrderCanCancel(t *testing.T) {
	o := NewOrder("u1", ShippingInfo{}, testItems(), decimal.Zero, decimal.Zero, nil)
	assert.True(t, o.CanCancel())

	o.OrderStatus = StatusOutForDelivery
	assert.False(t, o.CanCancel())

	o.OrderStatus = StatusDelivered
	assert.False(t, o.CanCancel())
}
