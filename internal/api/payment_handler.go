package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
	"studiodesk/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	receiptRepo    *repository.ReceiptRepository
}

func NewPaymentHandler(paymentService *service.PaymentService, receiptRepo *repository.ReceiptRepository) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		receiptRepo:    receiptRepo,
	}
}

// Pay handles POST /installments/:id/pay
func (h *PaymentHandler) Pay(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		PaidAt model.Date `json:"paid_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	receipt, err := h.paymentService.RecordPayment(c.Request.Context(), id, req.PaidAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Receipt handles GET /receipts/:id
func (h *PaymentHandler) Receipt(c *gin.Context) {
	receipt, err := h.receiptRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// ContractReceipts handles GET /contracts/:id/receipts
func (h *PaymentHandler) ContractReceipts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	receipts, err := h.receiptRepo.ListByContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}
