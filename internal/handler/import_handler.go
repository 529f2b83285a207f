package handler

import (
	"errors"
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ImportHandler handles spreadsheet uploads that create accounts in bulk.
type ImportHandler struct {
	importService *service.ImportService
	maxBytes      int64
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{importService: importService, maxBytes: maxBytes}
}

// BulkRegister godoc
// POST /api/auth/bulk-register
// Accepts multipart form: file (.xlsx or .csv) and an optional role (student or faculty).
// Responds 201 when at least one account was created, 200 otherwise.
func (h *ImportHandler) BulkRegister(c *gin.Context) {
	// Slack above the file limit for multipart framing and the role field.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	role := model.Role(c.DefaultPostForm("role", string(model.RoleStudent)))

	file, err := fileHeader.Open()
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Failed to open uploaded file")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	result, err := h.importService.ImportUsers(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file, role)
	switch {
	case errors.Is(err, service.ErrUnsupportedRole):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, err.Error(),
			map[string]string{"role": "Role must be student or faculty"})
		return
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		return
	case errors.Is(err, service.ErrMissingColumns), errors.Is(err, service.ErrUnreadableFile):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrValidation, err.Error(), nil)
		return
	case err != nil:
		fail(c, err)
		return
	}

	status := http.StatusOK
	if result.Count > 0 {
		status = http.StatusCreated
	}
	response.SuccessMessage(c, status, "Bulk import completed", result)
}
