// order.go
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSucceeded is the gateway status that marks an order as paid.
const PaymentSucceeded = "succeeded"

var ErrInvalidTransition = errors.New("invalid order status transition")

// ShippingInfo is the address snapshot embedded in an order. Immutable after
// creation.
type ShippingInfo struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	Country    string `bson:"country" json:"country"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	PhoneNo    string `bson:"phone_no" json:"phoneNo"`
}

// PaymentInfo stores the gateway response attached to an order. A nil
// PaymentInfo means unpaid.
type PaymentInfo struct {
	ID     string `bson:"id" json:"id"`
	Status string `bson:"status" json:"status"`
}

// OrderItem is a snapshot of a product at order-creation time. It is never
// re-derived from current product state, so later product edits don't alter
// historical orders.
type OrderItem struct {
	Product  string          `json:"product"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// Subtotal is price * quantity for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the central purchase record. Fields other than status and the
// paid/delivered timestamps are fixed at creation; callers mutate it only
// through UpdateStatus and MarkPaid.
type Order struct {
	ID            string
	User          string
	ShippingInfo  ShippingInfo
	OrderItems    []OrderItem
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
	PaymentInfo   *PaymentInfo
	PaidAt        *time.Time
	DeliveredAt   *time.Time
	OrderStatus   OrderStatus
	CreatedAt     time.Time
}

// NewOrder builds an order in Processing state and computes its totals.
// PaidAt is stamped when the gateway already reported success.
func NewOrder(user string, shipping ShippingInfo, items []OrderItem, tax, shippingPrice decimal.Decimal, payment *PaymentInfo) *Order {
	o := &Order{
		User:          user,
		ShippingInfo:  shipping,
		OrderItems:    items,
		TaxPrice:      tax,
		ShippingPrice: shippingPrice,
		PaymentInfo:   payment,
		OrderStatus:   StatusProcessing,
		CreatedAt:     time.Now().UTC(),
	}
	o.ComputeTotals()

	if payment != nil && payment.Status == PaymentSucceeded {
		now := time.Now().UTC()
		o.PaidAt = &now
	}
	return o
}

// ComputeTotals recomputes ItemsPrice from the line items and TotalPrice from
// items + tax + shipping. Items are immutable post-creation, so this runs
// once at construction.
func (o *Order) ComputeTotals() {
	items := decimal.Zero
	for _, it := range o.OrderItems {
		items = items.Add(it.Subtotal())
	}
	o.ItemsPrice = items
	o.TotalPrice = items.Add(o.TaxPrice).Add(o.ShippingPrice)
}

// UpdateStatus applies a status transition, rejecting anything outside the
// transition table. Moving to Delivered stamps DeliveredAt.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !CanTransition(o.OrderStatus, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.OrderStatus, next)
	}

	o.OrderStatus = next

	if next == StatusDelivered {
		now := time.Now().UTC()
		o.DeliveredAt = &now
	}
	return nil
}

// MarkPaid records the gateway transaction and stamps PaidAt. It does not
// touch the order status.
func (o *Order) MarkPaid(paymentID, paymentStatus string) {
	o.PaymentInfo = &PaymentInfo{ID: paymentID, Status: paymentStatus}
	now := time.Now().UTC()
	o.PaidAt = &now
}

// IsPaid reports whether the gateway confirmed payment.
func (o *Order) IsPaid() bool {
	return o.PaymentInfo != nil && o.PaymentInfo.Status == PaymentSucceeded
}

// IsDelivered reports whether the order reached Delivered.
func (o *Order) IsDelivered() bool {
	return o.OrderStatus == StatusDelivered
}

// CanCancel reports whether the customer may still cancel.
func (o *Order) CanCancel() bool {
	return o.OrderStatus.IsCancellable()
}
