package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response is the standardized API response envelope.
type Response struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Total    *int        `json:"total,omitempty"`
	Parent   interface{} `json:"parent,omitempty"`
	Error    *ErrorBody  `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorBody represents a structured error response.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Metadata includes request tracing and timing.
type Metadata struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends a successful JSON response with the given status code and data.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success:  true,
		Data:     data,
		Metadata: buildMetadata(c),
	})
}

// SuccessMessage sends a successful response carrying a user-facing message.
// data may be nil (e.g. after a delete).
func SuccessMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success:  true,
		Message:  message,
		Data:     data,
		Metadata: buildMetadata(c),
	})
}

// SuccessList sends a list together with its count and the parent record it
// was listed under.
func SuccessList(c *gin.Context, data interface{}, total int, parent interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:  true,
		Data:     data,
		Total:    &total,
		Parent:   parent,
		Metadata: buildMetadata(c),
	})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	FailWithMessage(c, statusCode, code, GetMessage(code), nil)
}

// FailWithMessage sends an error response whose message is shown to the user as is.
// fields may be nil.
func FailWithMessage(c *gin.Context, statusCode int, code ErrCode, message string, fields map[string]string) {
	c.JSON(statusCode, Response{
		Success:  false,
		Message:  message,
		Error:    &ErrorBody{Code: code, Message: message, Fields: fields},
		Metadata: buildMetadata(c),
	})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	msg := GetMessage(code)
	c.JSON(statusCode, Response{
		Success:  false,
		Message:  msg,
		Error:    &ErrorBody{Code: code, Message: msg, Fields: fields},
		Metadata: buildMetadata(c),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	msg := GetMessage(code)
	c.AbortWithStatusJSON(statusCode, Response{
		Success:  false,
		Message:  msg,
		Error:    &ErrorBody{Code: code, Message: msg},
		Metadata: buildMetadata(c),
	})
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func buildMetadata(c *gin.Context) Metadata {
	id := RequestID(c)
	if id == "" {
		id = uuid.NewString() // middleware not applied
	}
	return Metadata{
		RequestID: id,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
