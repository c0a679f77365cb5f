package middleware

import (
	"net/http"
	"strconv"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/policy"

	"github.com/gin-gonic/gin"
)

// Authorize consults the policy engine with the request's path shape:
// the HTTP method, the resource kind, and any user or booking id named
// in the path.
func Authorize(engine *policy.Engine, resource policy.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}

		req := policy.Request{Method: c.Request.Method, Resource: resource}

		if p := c.Param("userId"); p != "" {
			id, err := strconv.Atoi(p)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
				return
			}
			req.TargetUserID = &id
		}
		if p := c.Param("bookingId"); p != "" {
			id, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid booking ID"})
				return
			}
			req.TargetBookingID = &id
		}

		if err := engine.Authorize(c.Request.Context(), claims, req); err != nil {
			status := http.StatusForbidden
			if apperr.KindOf(err) == apperr.KindInternal {
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, gin.H{"success": false, "message": apperr.MessageOf(err)})
			return
		}
		c.Next()
	}
}
