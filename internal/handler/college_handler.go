package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// CollegeHandler handles college endpoints.
type CollegeHandler struct {
	collegeService *service.CollegeService
	statsService   *service.StatsService
}

// NewCollegeHandler creates a new CollegeHandler.
func NewCollegeHandler(collegeService *service.CollegeService, statsService *service.StatsService) *CollegeHandler {
	return &CollegeHandler{collegeService: collegeService, statsService: statsService}
}

// List godoc
// GET /api/admin/colleges?search=
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.collegeService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, colleges, len(colleges), nil)
}

// Get godoc
// GET /api/admin/colleges/:id
func (h *CollegeHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	college, err := h.collegeService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, college)
}

// Create godoc
// POST /api/admin/colleges
func (h *CollegeHandler) Create(c *gin.Context) {
	var req model.CollegeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	college, err := h.collegeService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "College created successfully", college)
}

// Update godoc
// PUT /api/admin/colleges/:id
func (h *CollegeHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.CollegeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	college, err := h.collegeService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "College updated successfully", college)
}

// Delete godoc
// DELETE /api/admin/colleges/:id
func (h *CollegeHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.collegeService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.statsService.Forget(c.Request.Context(), id)
	response.SuccessMessage(c, http.StatusOK, "College deleted successfully", nil)
}

// Stats godoc
// GET /api/admin/colleges/:id/stats
// Returns record counts for the college dashboard. ?refresh=true skips the cache.
func (h *CollegeHandler) Stats(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if c.Query("refresh") == "true" {
		h.statsService.Forget(c.Request.Context(), id)
	}
	stats, err := h.statsService.CollegeStats(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
