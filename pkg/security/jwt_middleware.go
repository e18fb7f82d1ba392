package security

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware rejects console requests while no token is stored, before any upstream call.
func SessionMiddleware(session Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := session.Token(); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication token not found. Please log in.",
				"code":  "unauthenticated",
			})
			return
		}

		c.Next()
	}
}
