package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS answers browser preflights with permissive headers. The checkout flow
// is called straight from the booking web app, which may be served from any
// of the platform's frontend origins.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
