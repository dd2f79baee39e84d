package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORSOptions define los origenes permitidos. AllowAll se usa en desarrollo.
type CORSOptions struct {
	AllowedOrigins []string
	AllowAll       bool
}

func (o CORSOptions) allows(origin string) bool {
	if o.AllowAll {
		return true
	}
	for _, allowed := range o.AllowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}

// corsMiddleware lets requests without Origin (curl, server to server)
// through untouched and rejects unknown browser origins with 403.
func corsMiddleware(opts CORSOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if !opts.allows(origin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Not allowed by CORS",
			})
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
