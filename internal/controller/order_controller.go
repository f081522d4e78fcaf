package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skycart-api/internal/dto"
	"skycart-api/internal/model"
	"skycart-api/internal/service"
)

type OrderController struct {
	orders          *service.OrderService
	defaultPageSize int
	maxPageSize     int
}

func NewOrderController(orders *service.OrderService, defaultPageSize, maxPageSize int) *OrderController {
	return &OrderController{
		orders:          orders,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// POST /api/v1/orders/new
func (ctl *OrderController) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment := model.PaymentInfo{ID: req.PaymentInfo.ID, Status: req.PaymentInfo.Status}

	order, err := ctl.orders.Create(c.Request.Context(), c.GetString("userID"), service.CreateOrderInput{
		Shipping:      req.ShippingModel(),
		Items:         req.ItemModels(),
		TaxPrice:      req.TaxPrice,
		ShippingPrice: req.ShippingPrice,
		Payment:       &payment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// GET /api/v1/orders/me
func (ctl *OrderController) GetMine(c *gin.Context) {
	page, limit := pageParams(c, ctl.defaultPageSize, ctl.maxPageSize)

	orders, total, err := ctl.orders.ListForUser(c.Request.Context(), c.GetString("userID"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders, total, page, limit))
}

// GET /api/v1/orders/:orderId — owner-scoped
func (ctl *OrderController) Get(c *gin.Context) {
	order, err := ctl.orders.GetForUser(c.Request.Context(), c.Param("orderId"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// DELETE /api/v1/orders/:orderId/cancel
func (ctl *OrderController) Cancel(c *gin.Context) {
	order, err := ctl.orders.Cancel(c.Request.Context(), c.Param("orderId"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// GET /api/v1/admin/orders
func (ctl *OrderController) GetAll(c *gin.Context) {
	page, limit := pageParams(c, ctl.defaultPageSize, ctl.maxPageSize)

	orders, total, err := ctl.orders.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders, total, page, limit))
}

// GET /api/v1/admin/orders/:orderId
func (ctl *OrderController) AdminGet(c *gin.Context) {
	order, err := ctl.orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// PUT /api/v1/admin/orders/:orderId
func (ctl *OrderController) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status: " + req.Status})
		return
	}

	order, err := ctl.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// PUT /api/v1/admin/orders/:orderId/deliver
func (ctl *OrderController) MarkDelivered(c *gin.Context) {
	order, err := ctl.orders.MarkDelivered(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// GET /api/v1/admin/stats?start_date=&end_date=
func (ctl *OrderController) SalesStats(c *gin.Context) {
	start, err := parseDateQuery(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := parseDateQuery(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	stats, err := ctl.orders.SalesStats(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSalesStatsResponse(stats))
}

// GET /api/v1/admin/stats/daily?days=30
func (ctl *OrderController) DailySales(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}

	rows, err := ctl.orders.DailySales(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sales": dto.NewDailySalesRows(rows)})
}

// parseDateQuery accepts RFC 3339 timestamps or plain dates.
func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
