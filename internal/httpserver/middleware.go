package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	headerSessionID = "X-Session-Id"
	ctxSessionID    = "sessionID"
)

// sessionMiddleware requires the storefront's session header on every
// session-scoped route.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerSessionID))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + headerSessionID + " header"})
			return
		}
		c.Set(ctxSessionID, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
