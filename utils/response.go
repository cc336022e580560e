package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes the JSON error shape and aborts the request.
func ErrorResponse(c *gin.Context, statusCode int, kind, message string) {
	AppErrorResponse(c, NewAppError(statusCode, kind, message))
}

// AppErrorResponse writes an AppError as the response body. The AppError's
// json tags produce the {"error", "details", "raw"} shape directly.
func AppErrorResponse(c *gin.Context, err *AppError) {
	c.AbortWithStatusJSON(err.StatusCode, err)
}
