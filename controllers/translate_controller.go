package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	"github.com/siucheung0524/ThaiLingo/models"
	"github.com/siucheung0524/ThaiLingo/services"
	"github.com/siucheung0524/ThaiLingo/utils"
)

// TranslateController handles the translation endpoint.
type TranslateController struct {
	Config           *environment.Config
	TranslateService *services.TranslateService
}

// NewTranslateController initializes TranslateController with the provider chain
func NewTranslateController(cfg *environment.Config) *TranslateController {
	return &TranslateController{
		Config:           cfg,
		TranslateService: services.NewTranslateService(cfg),
	}
}

// Translate handles one translation request end to end: bind, validate,
// check the primary credential, then walk the provider chain.
func (ctrl *TranslateController) Translate(c *gin.Context) {
	var req models.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.KindBadInput, "invalid request body: "+err.Error())
		return
	}
	req.Normalize()

	if !req.HasImage() && !req.HasText() {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.KindBadInput, "either image or text is required")
		return
	}
	if ctrl.Config.GeminiAPIKey == "" {
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.KindConfiguration, "GEMINI_API_KEY is not configured")
		return
	}

	items, err := ctrl.TranslateService.Translate(c.Request.Context(), &req)
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.AppErrorResponse(c, appErr)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.KindProvider, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.TranslateResponse{Items: items})
}
