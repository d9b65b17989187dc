package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crewpay/internal/config"
	"crewpay/internal/middleware"
	"crewpay/internal/model"
	"crewpay/internal/service"
	"crewpay/pkg/util"
)

// PaymentHandler handles salary payment HTTP requests
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Record handles POST /payment (Admin). Month and year are normalized before
// the duplicate check so the idempotency triple is always the stored form.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req model.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse(err.Error(), ""))
		return
	}

	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if req.EmployeeID == "" {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("employeeId is required", ""))
		return
	}

	month, err := util.NormalizeMonth(req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid month", err.Error()))
		return
	}
	year, err := util.NormalizeYear(req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.NewErrorResponse("Invalid year", err.Error()))
		return
	}
	salary, _ := util.CoerceInt(req.Salary)

	payment := &model.Payment{
		EmployeeID:    req.EmployeeID,
		Email:         strings.TrimSpace(strings.ToLower(req.Email)),
		Month:         month,
		Year:          year,
		Salary:        salary,
		TransactionID: req.TransactionID,
	}

	created, err := h.payments.Record(c.Request.Context(), payment)
	if err != nil {
		if errors.Is(err, service.ErrDuplicatePayment) {
			c.JSON(http.StatusConflict, model.NewErrorResponse(err.Error(), ""))
			return
		}
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to record payment", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, model.NewSuccessResponse("Payment recorded", created))
}

// History handles GET /payments (Employee). Page is 1-based.
func (h *PaymentHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(config.DefaultPageSize)))

	user := middleware.UserFrom(c)
	result, err := h.payments.History(c.Request.Context(), user.Email, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Failed to load payment history", err.Error()))
		return
	}
	c.JSON(http.StatusOK, result)
}
