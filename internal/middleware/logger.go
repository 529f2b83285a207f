package middleware

import (
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a logger carrying the request id to the request
// context and logs one line per completed request. Must run after
// response.RequestIDMiddleware.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With().Str("request_id", response.RequestID(c)).Logger()
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		evt := reqLog.Info()
		switch {
		case status >= 500:
			evt = reqLog.Error()
		case status >= 400:
			evt = reqLog.Warn()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
