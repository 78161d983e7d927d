package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"huduma/models"
)

// RequireRole rejects authenticated requests whose account role does not
// match. It must run after JWTAuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This endpoint requires the '" + string(role) + "' role",
			})
			return
		}
		c.Next()
	}
}
