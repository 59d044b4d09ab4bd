// Package response is the single place where outcomes are shaped for
// the wire. Success payloads carry {"success": true, ...}; failures
// carry {"status": <code>, "message": <text>} at that HTTP status.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const internalMessage = "Internal server error occurred."

// Formatter writes API responses. In production mode the message of
// any 500 is replaced with a fixed string so raw internal error text
// never reaches a client.
type Formatter struct {
	production bool
}

func NewFormatter(production bool) *Formatter {
	return &Formatter{production: production}
}

func (f *Formatter) Success(c *gin.Context, data gin.H) {
	payload := gin.H{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

func (f *Formatter) Error(c *gin.Context, status int, message string) {
	if status == http.StatusInternalServerError && f.production {
		message = internalMessage
	}
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
	})
}
