// products.go
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"skycart-api/internal/model"
)

type ProductImageDTO struct {
	Image string `json:"image" binding:"required"`
}

type ProductRequest struct {
	Name        string            `json:"name" binding:"required,max=100"`
	Price       decimal.Decimal   `json:"price"`
	Description string            `json:"description" binding:"required"`
	Images      []ProductImageDTO `json:"images" binding:"dive"`
	Category    string            `json:"category" binding:"required"`
	Seller      string            `json:"seller" binding:"required"`
	Stock       int               `json:"stock" binding:"min=0"`
}

type ReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required,min=0,max=5"`
	Comment string  `json:"comment" binding:"required"`
}

type ProductReviewDTO struct {
	User      string    `json:"user"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type ProductResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Price        decimal.Decimal    `json:"price"`
	Description  string             `json:"description"`
	Ratings      float64            `json:"ratings"`
	Images       []ProductImageDTO  `json:"images"`
	Category     string             `json:"category"`
	Seller       string             `json:"seller"`
	Stock        int                `json:"stock"`
	NumOfReviews int                `json:"numOfReviews"`
	Reviews      []ProductReviewDTO `json:"reviews"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type ProductListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Total    int64             `json:"total"`
	Page     int64             `json:"page"`
	Pages    int64             `json:"pages"`
	Products []ProductResponse `json:"products"`
}

func (r ProductRequest) Model() *model.Product {
	images := make([]model.ProductImage, len(r.Images))
	for i, img := range r.Images {
		images[i] = model.ProductImage{Image: img.Image}
	}
	return &model.Product{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Images:      images,
		Category:    r.Category,
		Seller:      r.Seller,
		Stock:       r.Stock,
	}
}

func NewProductResponse(p *model.Product) ProductResponse {
	images := make([]ProductImageDTO, len(p.Images))
	for i, img := range p.Images {
		images[i] = ProductImageDTO{Image: img.Image}
	}
	reviews := make([]ProductReviewDTO, len(p.Reviews))
	for i, r := range p.Reviews {
		reviews[i] = ProductReviewDTO{
			User:      r.User,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Ratings:      p.Ratings,
		Images:       images,
		Category:     p.Category,
		Seller:       p.Seller,
		Stock:        p.Stock,
		NumOfReviews: p.NumOfReviews,
		Reviews:      reviews,
		CreatedAt:    p.CreatedAt,
	}
}

func NewProductListResponse(products []*model.Product, total, page, limit int64) ProductListResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p)
	}
	return ProductListResponse{
		Success:  true,
		Count:    len(out),
		Total:    total,
		Page:     page,
		Pages:    pages(total, limit),
		Products: out,
	}
}
