package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siucheung0524/ThaiLingo/utils"
)

// ErrorHandlerMiddleware converts errors attached to the context into the
// JSON error shape. Handlers that already wrote a response are left alone.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.AppErrorResponse(c, appErr)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.KindProcessing,
			"translation processing failed: "+err.Error())
	}
}

// PanicHandler surfaces recovered panics as the generic processing failure
// instead of gin's empty 500.
func PanicHandler(c *gin.Context, recovered any) {
	utils.ErrorResponse(c, http.StatusInternalServerError, utils.KindProcessing,
		fmt.Sprintf("translation processing failed: %v", recovered))
}
