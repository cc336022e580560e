package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siucheung0524/ThaiLingo/controllers"
)

// RegisterTranslateRoutes sets up the translation routes
func RegisterTranslateRoutes(router *gin.RouterGroup, translateController *controllers.TranslateController) {
	translateGroup := router.Group("/translate")
	{
		// Routes with and without trailing slash (to prevent redirects)
		translateGroup.POST("/", translateController.Translate)
		translateGroup.POST("", translateController.Translate)

		// Browsers preflight the cross-origin POST
		translateGroup.OPTIONS("/", preflight)
		translateGroup.OPTIONS("", preflight)
	}
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
