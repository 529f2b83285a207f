package middleware

import (
	"errors"
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CheckRevokedToken rejects tokens whose jti was revoked by logout.
// Must run after RequireAuth.
func CheckRevokedToken(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		err := authService.CheckRevoked(c.Request.Context(), claims)
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRevoked)
			return
		case err != nil:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Token revocation lookup failed")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Next()
	}
}
