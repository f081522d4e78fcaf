package service

import (
	"context"
	"time"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
)

type ProductRepository interface {
	ProductStore
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, productID string) error
	Find(ctx context.Context, filter repository.ProductFilter, skip, limit int64) ([]*model.Product, int64, error)
	UpsertReview(ctx context.Context, productID string, review model.ProductReview) error
	RemoveReview(ctx context.Context, productID, userID string) error
}

type ProductService struct {
	products ProductRepository
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Get(ctx context.Context, productID string) (*model.Product, error) {
	return s.products.GetByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, page, limit int64) ([]*model.Product, int64, error) {
	return s.products.Find(ctx, filter, (page-1)*limit, limit)
}

// Create adds a catalog entry; creatorID records which admin added it.
func (s *ProductService) Create(ctx context.Context, p *model.Product, creatorID string) (*model.Product, error) {
	p.User = creatorID
	p.CreatedAt = time.Now().UTC()
	return s.products.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, p.ID)
}

func (s *ProductService) Delete(ctx context.Context, productID string) error {
	return s.products.Delete(ctx, productID)
}

// AddReview adds or replaces the user's review and returns the product with
// its recalculated rating.
func (s *ProductService) AddReview(ctx context.Context, productID, userID string, rating float64, comment string) (*model.Product, error) {
	review := model.ProductReview{
		User:    userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.products.UpsertReview(ctx, productID, review); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, productID)
}

func (s *ProductService) DeleteReview(ctx context.Context, productID, userID string) (*model.Product, error) {
	if err := s.products.RemoveReview(ctx, productID, userID); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, productID)
}
