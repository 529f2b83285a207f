package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student endpoints.
type StudentHandler struct {
	studentService *service.StudentService
	stats          *service.StatsService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, stats *service.StatsService) *StudentHandler {
	return &StudentHandler{studentService: studentService, stats: stats}
}

// ListByDepartment godoc
// GET /api/admin/departments/:id/students?search=
func (h *StudentHandler) ListByDepartment(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, students, err := h.studentService.ListByDepartment(c.Request.Context(), deptID, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, students, len(students), dept)
}

// Create godoc
// POST /api/admin/departments/:id/students
func (h *StudentHandler) Create(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), deptID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), student.CollegeID)
	response.SuccessMessage(c, http.StatusCreated, "Student created successfully", student)
}

// Get godoc
// GET /api/admin/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}

// Update godoc
// PUT /api/admin/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Student updated successfully", student)
}

// ToggleStatus godoc
// PATCH /api/admin/students/:id/toggle-status
func (h *StudentHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	student, msg, err := h.studentService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, msg, student)
}

// Delete godoc
// DELETE /api/admin/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), student.CollegeID)
	response.SuccessMessage(c, http.StatusOK, "Student deleted successfully", nil)
}
