package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// FacultyHandler handles faculty endpoints.
type FacultyHandler struct {
	facultyService *service.FacultyService
	stats          *service.StatsService
}

// NewFacultyHandler creates a new FacultyHandler.
func NewFacultyHandler(facultyService *service.FacultyService, stats *service.StatsService) *FacultyHandler {
	return &FacultyHandler{facultyService: facultyService, stats: stats}
}

// ListByDepartment godoc
// GET /api/admin/departments/:id/faculties?search=
func (h *FacultyHandler) ListByDepartment(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, faculties, err := h.facultyService.ListByDepartment(c.Request.Context(), deptID, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, faculties, len(faculties), dept)
}

// Options godoc
// GET /api/admin/departments/:id/subject-options/faculties
// Lists the active faculty a subject can be assigned to.
func (h *FacultyHandler) Options(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	opts, err := h.facultyService.Options(c.Request.Context(), deptID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// Create godoc
// POST /api/admin/departments/:id/faculties
func (h *FacultyHandler) Create(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty, err := h.facultyService.Create(c.Request.Context(), deptID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), faculty.CollegeID)
	response.SuccessMessage(c, http.StatusCreated, "Faculty created successfully", faculty)
}

// Get godoc
// GET /api/admin/faculties/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	faculty, err := h.facultyService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, faculty)
}

// Update godoc
// PUT /api/admin/faculties/:id
func (h *FacultyHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.FacultyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	faculty, err := h.facultyService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Faculty updated successfully", faculty)
}

// ToggleStatus godoc
// PATCH /api/admin/faculties/:id/toggle-status
func (h *FacultyHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	faculty, msg, err := h.facultyService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, msg, faculty)
}

// Delete godoc
// DELETE /api/admin/faculties/:id
func (h *FacultyHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	faculty, err := h.facultyService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.facultyService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), faculty.CollegeID)
	response.SuccessMessage(c, http.StatusOK, "Faculty deleted successfully", nil)
}
