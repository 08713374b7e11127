package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
	"studiodesk/internal/service"
)

type ContractHandler struct {
	contractService *service.ContractService
	scheduleService *service.ScheduleService
	paymentService  *service.PaymentService
	documentService *service.DocumentService
	scheduleRepo    *repository.ScheduleRepository
}

func NewContractHandler(
	contractService *service.ContractService,
	scheduleService *service.ScheduleService,
	paymentService *service.PaymentService,
	documentService *service.DocumentService,
	scheduleRepo *repository.ScheduleRepository,
) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		scheduleService: scheduleService,
		paymentService:  paymentService,
		documentService: documentService,
		scheduleRepo:    scheduleRepo,
	}
}

// Create handles POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var in service.ContractInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if in.SigningDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signing_date is required"})
		return
	}

	contract, err := h.contractService.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// Update handles PUT /contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in service.ContractInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if in.SigningDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signing_date is required"})
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Cancel handles POST /contracts/:id/cancel
func (h *ContractHandler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.contractService.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get handles GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	contract, err := h.contractService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// Installments handles GET /contracts/:id/installments
func (h *ContractHandler) Installments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	installments, err := h.paymentService.ListByContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, installments)
}

// Schedule handles GET /contracts/:id/schedule
func (h *ContractHandler) Schedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	view, err := h.scheduleService.GetByContract(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ScheduleReport handles GET /contracts/:id/schedule/report
func (h *ContractHandler) ScheduleReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sched, err := h.scheduleRepo.FindByContractID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.documentService.BuildScheduleReport(*sched, model.Today()))
}
