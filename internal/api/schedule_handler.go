package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiodesk/internal/model"
	"studiodesk/internal/service"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Get handles GET /schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	view, err := h.scheduleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// EditStage handles PUT /schedules/:id/stages/:stageID
func (h *ScheduleHandler) EditStage(c *gin.Context) {
	scheduleID, stageID, ok := scheduleStageParams(c)
	if !ok {
		return
	}

	var req struct {
		DurationWorkDays int `json:"duration_work_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	view, err := h.scheduleService.EditStageDuration(c.Request.Context(), scheduleID, stageID, req.DurationWorkDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Complete handles POST /schedules/:id/stages/:stageID/complete
func (h *ScheduleHandler) Complete(c *gin.Context) {
	scheduleID, stageID, ok := scheduleStageParams(c)
	if !ok {
		return
	}

	var req struct {
		CompletionDate model.Date `json:"completion_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.CompletionDate.IsZero() {
		req.CompletionDate = model.Today()
	}

	view, err := h.scheduleService.SetCompletion(c.Request.Context(), scheduleID, stageID, req.CompletionDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Reopen handles DELETE /schedules/:id/stages/:stageID/complete
func (h *ScheduleHandler) Reopen(c *gin.Context) {
	scheduleID, stageID, ok := scheduleStageParams(c)
	if !ok {
		return
	}

	view, err := h.scheduleService.ClearCompletion(c.Request.Context(), scheduleID, stageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetStartDate handles PUT /schedules/:id/start-date
func (h *ScheduleHandler) SetStartDate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		StartDate model.Date `json:"start_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.StartDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date is required"})
		return
	}

	view, err := h.scheduleService.SetStartDate(c.Request.Context(), id, req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func scheduleStageParams(c *gin.Context) (scheduleID, stageID int, ok bool) {
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return 0, 0, false
	}
	stageID, err = strconv.Atoi(c.Param("stageID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stage id"})
		return 0, 0, false
	}
	return scheduleID, stageID, true
}
