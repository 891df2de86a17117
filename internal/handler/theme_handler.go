package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/response"
)

// ThemeHandler exposes the card theme configuration.
type ThemeHandler struct {
	themes *service.ThemeService
}

// NewThemeHandler constructs ThemeHandler.
func NewThemeHandler(themes *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

// Get godoc
// @Summary Get card theme
// @Description Returns the pass/card rendering configuration
// @Tags Theme
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /theme [get]
func (h *ThemeHandler) Get(c *gin.Context) {
	theme, err := h.themes.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme, nil)
}

// Update godoc
// @Summary Update card theme
// @Tags Theme
// @Accept json
// @Produce json
// @Param payload body service.UpdateThemeRequest true "Theme patch"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /theme [put]
func (h *ThemeHandler) Update(c *gin.Context) {
	var req service.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	theme, err := h.themes.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme, nil)
}
