// validation.go
package dto

import (
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations wires struct-level checks into gin's binding engine.
// Called once from main. The `min=0` tag doesn't apply to decimal.Decimal,
// so non-negativity of money fields is enforced here.
func RegisterValidations(v *validatorv10.Validate) {
	v.RegisterStructValidation(createOrderStructValidation, CreateOrderRequest{})
	v.RegisterStructValidation(productStructValidation, ProductRequest{})
}

// createOrderStructValidation rejects negative money amounts and verifies
// the client's itemsPrice reconciles with the sum of price*quantity over the
// line items, so totals can't be forged.
func createOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateOrderRequest)

	if req.ItemsPrice.IsNegative() {
		sl.ReportError(req.ItemsPrice, "itemsPrice", "ItemsPrice", "non_negative", "")
	}
	if req.TaxPrice.IsNegative() {
		sl.ReportError(req.TaxPrice, "taxPrice", "TaxPrice", "non_negative", "")
	}
	if req.ShippingPrice.IsNegative() {
		sl.ReportError(req.ShippingPrice, "shippingPrice", "ShippingPrice", "non_negative", "")
	}

	sum := decimal.Zero
	for _, it := range req.OrderItems {
		if it.Price.IsNegative() {
			sl.ReportError(it.Price, "orderItems", "OrderItems", "non_negative", "")
		}
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if !sum.Equal(req.ItemsPrice) {
		sl.ReportError(req.ItemsPrice, "itemsPrice", "ItemsPrice", "items_price_match", "")
	}
}

func productStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(ProductRequest)

	if req.Price.IsNegative() {
		sl.ReportError(req.Price, "price", "Price", "non_negative", "")
	}
}
