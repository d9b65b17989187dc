package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crewpay/internal/model"
	"crewpay/internal/service"
	"crewpay/pkg/util"
)

// IntentHandler handles payment-intent HTTP requests
type IntentHandler struct {
	intents *service.IntentService
}

// NewIntentHandler creates a new intent handler
func NewIntentHandler(intents *service.IntentService) *IntentHandler {
	return &IntentHandler{intents: intents}
}

// Create handles POST /create-payment-intent (Admin). The gateway's failure
// message is surfaced verbatim.
func (h *IntentHandler) Create(c *gin.Context) {
	var req model.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	amount, ok := util.CoerceInt(req.Amount)
	if !ok || amount <= 0 {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Amount must be a positive integer", ""))
		return
	}

	secret, err := h.intents.CreateIntent(c.Request.Context(), int64(amount))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Payment intent failed", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
