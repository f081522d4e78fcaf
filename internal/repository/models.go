package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skycart-api/internal/model"
)

// Money is stored as Decimal128 so Mongo aggregation ($sum, $avg) stays
// exact. Domain code works in shopspring decimals; conversion happens only
// here.

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, _ := primitive.ParseDecimal128(d.String())
	return v
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, _ := decimal.NewFromString(v.String())
	return d
}

type orderItemDocument struct {
	Product  string               `bson:"product"`
	Name     string               `bson:"name"`
	Price    primitive.Decimal128 `bson:"price"`
	Quantity int                  `bson:"quantity"`
	Image    string               `bson:"image"`
}

type orderDocument struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	User          string               `bson:"user"`
	ShippingInfo  model.ShippingInfo   `bson:"shipping_info"`
	OrderItems    []orderItemDocument  `bson:"order_items"`
	ItemsPrice    primitive.Decimal128 `bson:"items_price"`
	TaxPrice      primitive.Decimal128 `bson:"tax_price"`
	ShippingPrice primitive.Decimal128 `bson:"shipping_price"`
	TotalPrice    primitive.Decimal128 `bson:"total_price"`
	PaymentInfo   *model.PaymentInfo   `bson:"payment_info,omitempty"`
	PaidAt        *time.Time           `bson:"paid_at,omitempty"`
	DeliveredAt   *time.Time           `bson:"delivered_at,omitempty"`
	OrderStatus   string               `bson:"order_status"`
	CreatedAt     time.Time            `bson:"created_at"`
}

func toOrderDocument(o *model.Order) *orderDocument {
	doc := &orderDocument{
		User:          o.User,
		ShippingInfo:  o.ShippingInfo,
		OrderItems:    make([]orderItemDocument, len(o.OrderItems)),
		ItemsPrice:    toDecimal128(o.ItemsPrice),
		TaxPrice:      toDecimal128(o.TaxPrice),
		ShippingPrice: toDecimal128(o.ShippingPrice),
		TotalPrice:    toDecimal128(o.TotalPrice),
		PaymentInfo:   o.PaymentInfo,
		PaidAt:        o.PaidAt,
		DeliveredAt:   o.DeliveredAt,
		OrderStatus:   string(o.OrderStatus),
		CreatedAt:     o.CreatedAt,
	}
	for i, it := range o.OrderItems {
		doc.OrderItems[i] = orderItemDocument{
			Product:  it.Product,
			Name:     it.Name,
			Price:    toDecimal128(it.Price),
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}
	return doc
}

func toOrderEntity(doc *orderDocument) *model.Order {
	items := make([]model.OrderItem, len(doc.OrderItems))
	for i, it := range doc.OrderItems {
		items[i] = model.OrderItem{
			Product:  it.Product,
			Name:     it.Name,
			Price:    fromDecimal128(it.Price),
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}

	return &model.Order{
		ID:            doc.ID.Hex(),
		User:          doc.User,
		ShippingInfo:  doc.ShippingInfo,
		OrderItems:    items,
		ItemsPrice:    fromDecimal128(doc.ItemsPrice),
		TaxPrice:      fromDecimal128(doc.TaxPrice),
		ShippingPrice: fromDecimal128(doc.ShippingPrice),
		TotalPrice:    fromDecimal128(doc.TotalPrice),
		PaymentInfo:   doc.PaymentInfo,
		PaidAt:        doc.PaidAt,
		DeliveredAt:   doc.DeliveredAt,
		OrderStatus:   model.OrderStatus(doc.OrderStatus),
		CreatedAt:     doc.CreatedAt,
	}
}

type productDocument struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Name         string                `bson:"name"`
	Price        primitive.Decimal128  `bson:"price"`
	Description  string                `bson:"description"`
	Ratings      float64               `bson:"ratings"`
	Images       []model.ProductImage  `bson:"images"`
	Category     string                `bson:"category"`
	Seller       string                `bson:"seller"`
	Stock        int                   `bson:"stock"`
	NumOfReviews int                   `bson:"num_of_reviews"`
	Reviews      []model.ProductReview `bson:"reviews"`
	User         string                `bson:"user,omitempty"`
	CreatedAt    time.Time             `bson:"created_at"`
}

func toProductDocument(p *model.Product) *productDocument {
	return &productDocument{
		Name:         p.Name,
		Price:        toDecimal128(p.Price),
		Description:  p.Description,
		Ratings:      p.Ratings,
		Images:       p.Images,
		Category:     p.Category,
		Seller:       p.Seller,
		Stock:        p.Stock,
		NumOfReviews: p.NumOfReviews,
		Reviews:      p.Reviews,
		User:         p.User,
		CreatedAt:    p.CreatedAt,
	}
}

func toProductEntity(doc *productDocument) *model.Product {
	return &model.Product{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Price:        fromDecimal128(doc.Price),
		Description:  doc.Description,
		Ratings:      doc.Ratings,
		Images:       doc.Images,
		Category:     doc.Category,
		Seller:       doc.Seller,
		Stock:        doc.Stock,
		NumOfReviews: doc.NumOfReviews,
		Reviews:      doc.Reviews,
		User:         doc.User,
		CreatedAt:    doc.CreatedAt,
	}
}

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Email              string             `bson:"email"`
	Password           string             `bson:"password"`
	Avatar             string             `bson:"avatar,omitempty"`
	Role               string             `bson:"role"`
	ResetToken         string             `bson:"reset_password_token,omitempty"`
	ResetTokenExpireAt *time.Time         `bson:"reset_password_token_expire,omitempty"`
	CreatedAt          time.Time          `bson:"created_at"`
}

func toUserDocument(u *model.User) *userDocument {
	return &userDocument{
		Name:               u.Name,
		Email:              u.Email,
		Password:           u.Password,
		Avatar:             u.Avatar,
		Role:               string(u.Role),
		ResetToken:         u.ResetToken,
		ResetTokenExpireAt: u.ResetTokenExpireAt,
		CreatedAt:          u.CreatedAt,
	}
}

func toUserEntity(doc *userDocument) *model.User {
	return &model.User{
		ID:                 doc.ID.Hex(),
		Name:               doc.Name,
		Email:              doc.Email,
		Password:           doc.Password,
		Avatar:             doc.Avatar,
		Role:               model.Role(doc.Role),
		ResetToken:         doc.ResetToken,
		ResetTokenExpireAt: doc.ResetTokenExpireAt,
		CreatedAt:          doc.CreatedAt,
	}
}
