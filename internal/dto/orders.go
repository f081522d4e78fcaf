// orders.go
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"skycart-api/internal/model"
	"skycart-api/internal/repository"
)

type ShippingInfoDTO struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	PhoneNo    string `json:"phoneNo" binding:"required"`
}

type PaymentInfoDTO struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type OrderItemDTO struct {
	Product  string          `json:"product" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Image    string          `json:"image"`
}

type CreateOrderRequest struct {
	ShippingInfo  ShippingInfoDTO `json:"shippingInfo" binding:"required"`
	OrderItems    []OrderItemDTO  `json:"orderItems" binding:"required,min=1,dive"`
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	PaymentInfo   PaymentInfoDTO  `json:"paymentInfo" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID            string          `json:"id"`
	User          string          `json:"user"`
	ShippingInfo  ShippingInfoDTO `json:"shippingInfo"`
	OrderItems    []OrderItemDTO  `json:"orderItems"`
	ItemsPrice    decimal.Decimal `json:"itemsPrice"`
	TaxPrice      decimal.Decimal `json:"taxPrice"`
	ShippingPrice decimal.Decimal `json:"shippingPrice"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	PaymentInfo   *PaymentInfoDTO `json:"paymentInfo,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	OrderStatus   string          `json:"orderStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type OrderListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Total   int64           `json:"total"`
	Page    int64           `json:"page"`
	Pages   int64           `json:"pages"`
	Orders  []OrderResponse `json:"orders"`
}

type SalesStatsResponse struct {
	TotalOrders       int64           `json:"totalOrders"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	DeliveredOrders   int64           `json:"deliveredOrders"`
	ProcessingOrders  int64           `json:"processingOrders"`
	CancelledOrders   int64           `json:"cancelledOrders"`
}

type DailySalesRow struct {
	Date   string          `json:"date"`
	Orders int64           `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

func (r CreateOrderRequest) ShippingModel() model.ShippingInfo {
	return model.ShippingInfo{
		Address:    r.ShippingInfo.Address,
		City:       r.ShippingInfo.City,
		Country:    r.ShippingInfo.Country,
		PostalCode: r.ShippingInfo.PostalCode,
		PhoneNo:    r.ShippingInfo.PhoneNo,
	}
}

func (r CreateOrderRequest) ItemModels() []model.OrderItem {
	items := make([]model.OrderItem, len(r.OrderItems))
	for i, it := range r.OrderItems {
		items[i] = model.OrderItem{
			Product:  it.Product,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}
	return items
}

func NewOrderResponse(o *model.Order) OrderResponse {
	items := make([]OrderItemDTO, len(o.OrderItems))
	for i, it := range o.OrderItems {
		items[i] = OrderItemDTO{
			Product:  it.Product,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}

	var payment *PaymentInfoDTO
	if o.PaymentInfo != nil {
		payment = &PaymentInfoDTO{ID: o.PaymentInfo.ID, Status: o.PaymentInfo.Status}
	}

	return OrderResponse{
		ID:   o.ID,
		User: o.User,
		ShippingInfo: ShippingInfoDTO{
			Address:    o.ShippingInfo.Address,
			City:       o.ShippingInfo.City,
			Country:    o.ShippingInfo.Country,
			PostalCode: o.ShippingInfo.PostalCode,
			PhoneNo:    o.ShippingInfo.PhoneNo,
		},
		OrderItems:    items,
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		PaymentInfo:   payment,
		PaidAt:        o.PaidAt,
		DeliveredAt:   o.DeliveredAt,
		OrderStatus:   string(o.OrderStatus),
		CreatedAt:     o.CreatedAt,
	}
}

func NewOrderListResponse(orders []*model.Order, total, page, limit int64) OrderListResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return OrderListResponse{
		Success: true,
		Count:   len(out),
		Total:   total,
		Page:    page,
		Pages:   pages(total, limit),
		Orders:  out,
	}
}

func NewSalesStatsResponse(s *repository.SalesStats) SalesStatsResponse {
	return SalesStatsResponse{
		TotalOrders:       s.TotalOrders,
		TotalSales:        s.TotalSales,
		AverageOrderValue: s.AverageOrderValue,
		DeliveredOrders:   s.DeliveredOrders,
		ProcessingOrders:  s.ProcessingOrders,
		CancelledOrders:   s.CancelledOrders,
	}
}

func NewDailySalesRows(rows []repository.DailySales) []DailySalesRow {
	out := make([]DailySalesRow, len(rows))
	for i, r := range rows {
		out[i] = DailySalesRow{Date: r.Date, Orders: r.Orders, Sales: r.Sales}
	}
	return out
}

func pages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}
