package response

import (
	"github.com/gin-gonic/gin"
)

// The API keeps the flat wire format clients already depend on:
// errors are {"message": ...} and successes embed their payload directly
// (e.g. {"recipes": [...]}, {"message": ..., "recipe": {...}}).

// Message writes a bare {"message": ...} body with the given status.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// JSON writes an arbitrary payload with the given status.
func JSON(c *gin.Context, status int, body gin.H) {
	c.JSON(status, body)
}

// AbortMessage writes {"message": ...} and aborts the handler chain.
// Used by middleware.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
