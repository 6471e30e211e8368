// Package response renders the API's JSON envelope: {success, data} on
// success, {success, error{code, message, details?}} on failure.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errBody(code, message, nil),
	})
}

// ErrorWithDetails carries a structured payload alongside the error, e.g.
// the equipment counters behind an insufficient-stock rejection.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errBody(code, message, details),
	})
}

func errBody(code, message string, details any) gin.H {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return body
}
