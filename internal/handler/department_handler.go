package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// DepartmentHandler handles department endpoints.
type DepartmentHandler struct {
	deptService *service.DepartmentService
	stats       *service.StatsService
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(deptService *service.DepartmentService, stats *service.StatsService) *DepartmentHandler {
	return &DepartmentHandler{deptService: deptService, stats: stats}
}

// ListByCollege godoc
// GET /api/admin/colleges/:id/departments?search=
func (h *DepartmentHandler) ListByCollege(c *gin.Context) {
	collegeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	college, depts, err := h.deptService.ListByCollege(c.Request.Context(), collegeID, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, depts, len(depts), college)
}

// Create godoc
// POST /api/admin/colleges/:id/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	collegeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.DepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	dept, err := h.deptService.Create(c.Request.Context(), collegeID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), dept.CollegeID)
	response.SuccessMessage(c, http.StatusCreated, "Department created successfully", dept)
}

// Get godoc
// GET /api/admin/departments/:id
func (h *DepartmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, err := h.deptService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, dept)
}

// Update godoc
// PUT /api/admin/departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.DepartmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	dept, err := h.deptService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Department updated successfully", dept)
}

// ToggleStatus godoc
// PATCH /api/admin/departments/:id/toggle-status
func (h *DepartmentHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, msg, err := h.deptService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, msg, dept)
}

// Delete godoc
// DELETE /api/admin/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, err := h.deptService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.deptService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), dept.CollegeID)
	response.SuccessMessage(c, http.StatusOK, "Department deleted successfully", nil)
}
