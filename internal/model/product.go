package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductImage is an image URL embedded in a product.
type ProductImage struct {
	Image string `bson:"image" json:"image"`
}

// ProductReview is a customer review embedded in a product. One review per
// user; a second submission replaces the first.
type ProductReview struct {
	User      string    `bson:"user" json:"user"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Product is a catalog entry. Stock is the shared counter the order workflow
// adjusts; it must never go negative.
type Product struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Description  string
	Ratings      float64
	Images       []ProductImage
	Category     string
	Seller       string
	Stock        int
	NumOfReviews int
	Reviews      []ProductReview
	User         string
	CreatedAt    time.Time
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// CanFulfill reports whether the requested quantity is available. Advisory
// only: the authoritative check is the guarded decrement at the storage
// layer.
func (p *Product) CanFulfill(quantity int) bool {
	return p.Stock >= quantity
}
