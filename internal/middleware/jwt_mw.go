package middleware

import (
	"net/http"
	"strings"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/policy"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthClaimsKey is the gin context key holding the verified caller claims.
const AuthClaimsKey = "authClaims"

// JWTAuthMiddleware creates a middleware for JWT authentication. A
// missing, malformed, or expired token denies with an
// authentication-required signal, distinct from authorization denial.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		tokenString := authHeader
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenString = parts[1]
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(AuthClaimsKey, policy.Claims{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// GetClaims extracts the verified caller claims set by JWTAuthMiddleware.
func GetClaims(c *gin.Context) (policy.Claims, bool) {
	val, exists := c.Get(AuthClaimsKey)
	if !exists {
		return policy.Claims{}, false
	}
	claims, ok := val.(policy.Claims)
	return claims, ok
}
