package route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/controllers"
	"github.com/siucheung0524/ThaiLingo/handlers"
	"github.com/siucheung0524/ThaiLingo/middleware"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// NewRouter builds the engine with middleware, CORS and every route wired,
// ready to run.
func NewRouter(cfg *environment.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(middleware.PanicHandler))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"}, // Allow all origins
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Wrong verbs and unknown paths still answer JSON
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusMethodNotAllowed, utils.KindBadMethod, "only POST is supported on this endpoint")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, "NotFound", "unknown route: "+c.Request.URL.Path)
	})

	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, cfg *environment.Config) {
	translateController := controllers.NewTranslateController(cfg)

	v1Routes := router.Group("/v1")
	{
		handlers.RegisterTranslateRoutes(v1Routes, translateController)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"providers": translateController.TranslateService.ProviderNames(),
		})
	})
}
