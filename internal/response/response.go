package response

import (
	"github.com/gin-gonic/gin"
)

// Body is the envelope every status-bearing response uses.
type Body struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Status sends a response carrying only a status string
func Status(c *gin.Context, code int, status string) {
	c.JSON(code, Body{Status: status})
}

// StatusWithError sends a status plus a human-readable error message. No
// internal details beyond the message text are exposed.
func StatusWithError(c *gin.Context, code int, status string, err error) {
	body := Body{Status: status}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(code, body)
}
