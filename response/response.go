package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body returned by every endpoint.
type Envelope struct {
	Status      string      `json:"status"` // "OK" or "KO"
	Code        int         `json:"code"`
	Description string      `json:"description"`
	Data        interface{} `json:"data"`
}

func OK(c *gin.Context, code int, description string, data interface{}) {
	c.JSON(code, Envelope{Status: "OK", Code: code, Description: description, Data: data})
}

func KO(c *gin.Context, code int, description string) {
	c.JSON(code, Envelope{Status: "KO", Code: code, Description: description, Data: nil})
}

// AbortKO is KO for middleware, stopping the handler chain.
func AbortKO(c *gin.Context, code int, description string) {
	c.AbortWithStatusJSON(code, Envelope{Status: "KO", Code: code, Description: description, Data: nil})
}

// Common descriptions shared across controllers.
const (
	DescNotConnected = "You are not connected"
	DescNotAllowed   = "You are not allowed to access this resource"
	DescServerError  = "Internal server error"
)

// Convenience wrappers for the three failure shapes every controller emits.
func NotConnected(c *gin.Context)  { KO(c, http.StatusUnauthorized, DescNotConnected) }
func NotAllowed(c *gin.Context)    { KO(c, http.StatusForbidden, DescNotAllowed) }
func InternalError(c *gin.Context) { KO(c, http.StatusInternalServerError, DescServerError) }
