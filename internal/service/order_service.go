package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
)

// Interfaces the workflow needs from its collaborators. Implemented by the
// repository package and internal/rabbit.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	MarkDelivered(ctx context.Context, orderID string, deliveredAt time.Time) error
	FindByUser(ctx context.Context, userID string, skip, limit int64) ([]*model.Order, int64, error)
	FindAll(ctx context.Context, skip, limit int64) ([]*model.Order, int64, error)
	SalesStats(ctx context.Context, start, end *time.Time) (*repository.SalesStats, error)
	DailySales(ctx context.Context, days int) ([]repository.DailySales, error)
}

// ProductStore is the slice of product persistence the order workflow uses:
// reads for the advisory stock check, atomic guarded deltas for the real
// reservation.
type ProductStore interface {
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	AdjustStock(ctx context.Context, productID string, delta int) (bool, error)
}

// EventPublisher fans order lifecycle events out to other services. May be
// nil; publish failures never fail the request.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o *model.Order) error
	OrderCancelled(ctx context.Context, o *model.Order) error
}

// Business errors exported for the controllers.
var (
	ErrForbidden         = errors.New("access denied")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotCancellable    = errors.New("order cannot be cancelled")
)

type OrderService struct {
	orders   OrderRepository
	products ProductStore
	events   EventPublisher
}

func NewOrderService(orders OrderRepository, products ProductStore, events EventPublisher) *OrderService {
	return &OrderService{orders: orders, products: products, events: events}
}

// CreateOrderInput carries everything needed to place an order. Items are
// snapshots supplied by the caller; prices are reconciled at the DTO layer.
type CreateOrderInput struct {
	Shipping      model.ShippingInfo
	Items         []model.OrderItem
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	Payment       *model.PaymentInfo
}

// Create places an order. Stock is reserved with guarded atomic decrements
// before the order is persisted; if any reservation or the persist itself
// fails, previously reserved stock is released. The upfront validation pass
// only gives a fast rejection, the decrement guard is what actually prevents
// overselling.
func (s *OrderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*model.Order, error) {
	for _, it := range in.Items {
		p, err := s.products.GetByID(ctx, it.Product)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", it.Product, err)
		}
		if err != nil {
			return nil, err
		}
		if !p.CanFulfill(it.Quantity) {
			return nil, fmt.Errorf("%w for %s: available %d", ErrInsufficientStock, p.Name, p.Stock)
		}
	}

	var reserved []model.OrderItem
	for _, it := range in.Items {
		ok, err := s.products.AdjustStock(ctx, it.Product, -it.Quantity)
		if err != nil {
			s.releaseStock(ctx, reserved)
			return nil, err
		}
		if !ok {
			// lost the race since the validation pass
			s.releaseStock(ctx, reserved)
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, it.Name)
		}
		reserved = append(reserved, it)
	}

	order := model.NewOrder(userID, in.Shipping, in.Items, in.TaxPrice, in.ShippingPrice, in.Payment)

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.releaseStock(ctx, reserved)
		return nil, err
	}

	log.Printf("order %s created for user %s, total %s", created.ID, userID, created.TotalPrice)
	s.publishPlaced(ctx, created)

	return created, nil
}

// releaseStock compensates reserved quantities. Increments cannot trip the
// non-negativity guard; failures here are logged, not returned, because the
// original request error is what the caller needs.
func (s *OrderService) releaseStock(ctx context.Context, items []model.OrderItem) {
	for _, it := range items {
		if _, err := s.products.AdjustStock(ctx, it.Product, it.Quantity); err != nil {
			log.Printf("release stock for product %s failed: %v", it.Product, err)
		}
	}
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// GetForUser loads an order and enforces ownership.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.User != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

// Cancel restores stock for every line item and moves the order to
// Cancelled. Only the owner may cancel, and only while the status is still
// cancellable.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := s.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if !order.CanCancel() {
		return nil, fmt.Errorf("%w: status %s", ErrNotCancellable, order.OrderStatus)
	}

	for _, it := range order.OrderItems {
		if _, err := s.products.AdjustStock(ctx, it.Product, it.Quantity); err != nil {
			return nil, fmt.Errorf("restore stock for product %s: %w", it.Product, err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, model.StatusCancelled); err != nil {
		return nil, err
	}

	order.OrderStatus = model.StatusCancelled
	log.Printf("order %s cancelled", orderID)
	s.publishCancelled(ctx, order)

	return order, nil
}

// UpdateStatus applies an administrative status transition. Inventory is
// untouched; stock only moves at creation and cancellation.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next model.OrderStatus) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(next); err != nil {
		return nil, err
	}

	// Delivered goes through MarkDelivered so the persisted delivered_at is
	// the same stamp the response carries.
	if next == model.StatusDelivered {
		err = s.orders.MarkDelivered(ctx, orderID, *order.DeliveredAt)
	} else {
		err = s.orders.UpdateStatus(ctx, orderID, next)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("order %s status -> %s", orderID, next)
	return order, nil
}

// MarkDelivered is the named convenience for the Delivered transition.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateStatus(model.StatusDelivered); err != nil {
		return nil, err
	}

	if err := s.orders.MarkDelivered(ctx, orderID, *order.DeliveredAt); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string, page, limit int64) ([]*model.Order, int64, error) {
	return s.orders.FindByUser(ctx, userID, (page-1)*limit, limit)
}

func (s *OrderService) ListAll(ctx context.Context, page, limit int64) ([]*model.Order, int64, error) {
	return s.orders.FindAll(ctx, (page-1)*limit, limit)
}

func (s *OrderService) SalesStats(ctx context.Context, start, end *time.Time) (*repository.SalesStats, error) {
	return s.orders.SalesStats(ctx, start, end)
}

func (s *OrderService) DailySales(ctx context.Context, days int) ([]repository.DailySales, error) {
	return s.orders.DailySales(ctx, days)
}

func (s *OrderService) publishPlaced(ctx context.Context, o *model.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.OrderPlaced(ctx, o); err != nil {
		log.Printf("order %s: publish order_placed failed: %v", o.ID, err)
	}
}

func (s *OrderService) publishCancelled(ctx context.Context, o *model.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.OrderCancelled(ctx, o); err != nil {
		log.Printf("order %s: publish order_cancelled failed: %v", o.ID, err)
	}
}
