package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	subjectService *service.SubjectService
	stats          *service.StatsService
}

func NewSubjectHandler(subjectService *service.SubjectService, stats *service.StatsService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService, stats: stats}
}

func (h *SubjectHandler) ListByDepartment(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	dept, subjects, err := h.subjectService.ListByDepartment(c.Request.Context(), deptID, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, subjects, len(subjects), dept)
}

// PrerequisiteOptions lists the active subjects of a department for the prerequisite picker.
func (h *SubjectHandler) PrerequisiteOptions(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	opts, err := h.subjectService.PrerequisiteOptions(c.Request.Context(), deptID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	deptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.SubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.subjectService.Create(c.Request.Context(), deptID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), subject.CollegeID)
	response.SuccessMessage(c, http.StatusCreated, "Subject created successfully", subject)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subject, err := h.subjectService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, subject)
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.SubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subject, err := h.subjectService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Subject updated successfully", subject)
}

func (h *SubjectHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subject, msg, err := h.subjectService.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, msg, subject)
}

// Delete refuses with 409 while another subject lists this one as a prerequisite.
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	subject, err := h.subjectService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), subject.CollegeID)
	response.SuccessMessage(c, http.StatusOK, "Subject deleted successfully", nil)
}
