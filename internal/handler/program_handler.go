package handler

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	programService *service.ProgramService
	stats          *service.StatsService
}

func NewProgramHandler(programService *service.ProgramService, stats *service.StatsService) *ProgramHandler {
	return &ProgramHandler{programService: programService, stats: stats}
}

func (h *ProgramHandler) ListByCollege(c *gin.Context) {
	collegeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	college, programs, err := h.programService.ListByCollege(c.Request.Context(), collegeID, c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessList(c, programs, len(programs), college)
}

func (h *ProgramHandler) Create(c *gin.Context) {
	collegeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.ProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	program, err := h.programService.Create(c.Request.Context(), collegeID, req)
	if err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), program.CollegeID)
	response.SuccessMessage(c, http.StatusCreated, "Program created successfully", program)
}

func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	program, err := h.programService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, program)
}

func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.ProgramRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	program, err := h.programService.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Program updated successfully", program)
}

func (h *ProgramHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	program, err := h.programService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.programService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	h.stats.Forget(c.Request.Context(), program.CollegeID)
	response.SuccessMessage(c, http.StatusOK, "Program deleted successfully", nil)
}
