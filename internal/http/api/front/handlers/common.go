package handlers

import "github.com/gin-gonic/gin"

// getMemberID extracts the member ID from gin context.
func getMemberID(c *gin.Context) uint64 {
	val, exists := c.Get("memberID")
	if !exists {
		return 0
	}
	id, ok := val.(uint64)
	if !ok {
		return 0
	}
	return id
}

// getMemberName extracts the member display name from gin context.
func getMemberName(c *gin.Context) string {
	val, exists := c.Get("memberName")
	if !exists {
		return ""
	}
	name, _ := val.(string)
	return name
}
