// validation_test.go
package dto

import (
	"testing"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newValidator mirrors gin's binding engine, which validates the
// `binding` tag.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

func validCreateOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		ShippingInfo: ShippingInfoDTO{
			Address:    "1 Main St",
			City:       "Lagos",
			Country:    "NG",
			PostalCode: "100001",
			PhoneNo:    "+2348000000000",
		},
		OrderItems: []OrderItemDTO{
			{Product: "p1", Name: "Keyboard", Price: decimal.RequireFromString("49.99"), Quantity: 2},
			{Product: "p2", Name: "Mouse", Price: decimal.RequireFromString("19.50"), Quantity: 1},
		},
		ItemsPrice:    decimal.RequireFromString("119.48"),
		TaxPrice:      decimal.RequireFromString("5.00"),
		ShippingPrice: decimal.RequireFromString("3.00"),
		PaymentInfo:   PaymentInfoDTO{ID: "pi_1", Status: "succeeded"},
	}
}

func TestCreateOrderRequestValid(t *testing.T) {
	require.NoError(t, newValidator().Struct(validCreateOrderRequest()))
}

func TestCreateOrderRequestItemsPriceMismatch(t *testing.T) {
	req := validCreateOrderRequest()
	req.ItemsPrice = decimal.RequireFromString("99.99")

	err := newValidator().Struct(req)
	require.Error(t, err)

	errs, ok := err.(validatorv10.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "items_price_match", errs[0].Tag())
}

func TestCreateOrderRequestNegativeCharges(t *testing.T) {
	req := validCreateOrderRequest()
	req.TaxPrice = decimal.RequireFromString("-100.00")
	req.ShippingPrice = decimal.RequireFromString("-50.00")

	err := newValidator().Struct(req)
	require.Error(t, err)

	tags := validationTags(t, err)
	assert.Contains(t, tags, "non_negative")
}

func TestCreateOrderRequestNegativeItemPrice(t *testing.T) {
	req := validCreateOrderRequest()
	req.OrderItems = []OrderItemDTO{
		{Product: "p1", Name: "Keyboard", Price: decimal.RequireFromString("-49.99"), Quantity: 2},
	}
	// a matching negative total must not make it legal
	req.ItemsPrice = decimal.RequireFromString("-99.98")

	err := newValidator().Struct(req)
	require.Error(t, err)
	assert.Contains(t, validationTags(t, err), "non_negative")
}

func TestProductRequestNegativePrice(t *testing.T) {
	req := ProductRequest{
		Name:        "Keyboard",
		Price:       decimal.RequireFromString("-49.99"),
		Description: "mechanical",
		Category:    "electronics",
		Seller:      "acme",
		Stock:       5,
	}

	err := newValidator().Struct(req)
	require.Error(t, err)
	assert.Contains(t, validationTags(t, err), "non_negative")
}

func validationTags(t *testing.T, err error) []string {
	t.Helper()
	errs, ok := err.(validatorv10.ValidationErrors)
	require.True(t, ok)

	tags := make([]string, len(errs))
	for i, fe := range errs {
		tags[i] = fe.Tag()
	}
	return tags
}

func TestCreateOrderRequestZeroQuantity(t *testing.T) {
	req := validCreateOrderRequest()
	req.OrderItems[0].Quantity = 0

	require.Error(t, newValidator().Struct(req))
}

func TestCreateOrderRequestNoItems(t *testing.T) {
	req := validCreateOrderRequest()
	req.OrderItems = nil

	require.Error(t, newValidator().Struct(req))
}

func TestPages(t *testing.T) {
	assert.Equal(t, int64(1), pages(0, 10))
	assert.Equal(t, int64(1), pages(10, 10))
	assert.Equal(t, int64(2), pages(11, 10))
	assert.Equal(t, int64(5), pages(42, 10))
}
