package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
)

// TemplateHandler exposes the studio's stage-template settings.
// Template edits only affect schedules generated afterwards.
type TemplateHandler struct {
	templateRepo *repository.TemplateRepository
}

func NewTemplateHandler(templateRepo *repository.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templateRepo: templateRepo}
}

type templateRequest struct {
	Name             string `json:"name" binding:"required"`
	DurationWorkDays int    `json:"duration_work_days" binding:"gte=0"`
	Sequence         int    `json:"sequence" binding:"required"`
}

// List handles GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// Create handles POST /templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	t := &model.StageTemplate{
		Name:             req.Name,
		DurationWorkDays: req.DurationWorkDays,
		Sequence:         req.Sequence,
	}
	id, err := h.templateRepo.Create(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

// Update handles PUT /templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	t := &model.StageTemplate{
		ID:               id,
		Name:             req.Name,
		DurationWorkDays: req.DurationWorkDays,
		Sequence:         req.Sequence,
	}
	if err := h.templateRepo.Update(c.Request.Context(), t); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /templates/:id
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.templateRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
