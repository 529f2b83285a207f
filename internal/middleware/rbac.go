package middleware

import (
	"net/http"

	"github.com/cpc-orbit/orbit-backend/internal/model"
	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireRole checks that the token carries one of the given roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}

		code := response.ErrForbidden
		if len(roles) == 1 && roles[0] == model.RoleAdmin {
			code = response.ErrAdminAccessOnly
		}
		response.AbortFail(c, http.StatusForbidden, code)
	}
}
