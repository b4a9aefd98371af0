package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXClientID = "X-Client-ID"
	ContextClientID = "client_id"
)

// ClientID scopes notices to one browser. A missing or malformed header
// gets a fresh ID, echoed back so the client can keep sending it.
func ClientID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXClientID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		c.Set(ContextClientID, id)
		c.Header(HeaderXClientID, id)
		c.Next()
	}
}

// GetClientID returns the client ID set by ClientID.
func GetClientID(c *gin.Context) string {
	return c.GetString(ContextClientID)
}
