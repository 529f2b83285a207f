package handler

import (
	"errors"
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// fail writes the envelope for err. Service errors keep their message;
// anything else is logged and hidden behind a generic 500.
func fail(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		status, code := classify(se.Kind)
		var fields map[string]string
		if se.Field != "" {
			fields = map[string]string{se.Field: se.Message}
		}
		response.FailWithMessage(c, status, code, se.Message, fields)
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("route", c.FullPath()).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

func classify(kind service.ErrorKind) (int, response.ErrCode) {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest, response.ErrValidation
	case service.KindConflict:
		return http.StatusBadRequest, response.ErrConflict
	case service.KindNotFound:
		return http.StatusNotFound, response.ErrNotFound
	case service.KindReferenced:
		return http.StatusConflict, response.ErrDependencyExists
	case service.KindUnauthorized:
		return http.StatusUnauthorized, response.ErrInvalidCredentials
	}
	return http.StatusInternalServerError, response.ErrInternal
}

// paramID parses a path UUID, writing a 400 and returning false when malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
