package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skycart-api/internal/service"
)

type PaymentController struct {
	payments *service.PaymentService
}

func NewPaymentController(payments *service.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

type paymentIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required,min=1"` // cents
	Currency string `json:"currency"`
}

// POST /api/v1/payments/process
func (ctl *PaymentController) CreateIntent(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := ctl.payments.CreateIntent(c.Request.Context(), c.GetString("userID"), req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}
