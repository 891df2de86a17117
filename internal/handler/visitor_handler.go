package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/response"
)

// VisitorHandler exposes visitor lifecycle endpoints.
type VisitorHandler struct {
	visitors *service.VisitorService
}

// NewVisitorHandler constructs VisitorHandler.
func NewVisitorHandler(visitors *service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitors: visitors}
}

// CheckIn godoc
// @Summary Check in a visitor
// @Description Admit a visitor and issue pass ID, QR payload, and daily token
// @Tags Visitors
// @Accept json
// @Produce json
// @Param payload body service.CheckInRequest true "Visitor payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /visitors/check-in [post]
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	var req service.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	visitor, err := h.visitors.CheckIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, visitor)
}

// CheckOut godoc
// @Summary Check out a visitor
// @Tags Visitors
// @Produce json
// @Param id path string true "Visitor ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /visitors/{id}/check-out [post]
func (h *VisitorHandler) CheckOut(c *gin.Context) {
	visitor, err := h.visitors.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitor, nil)
}

// Active godoc
// @Summary List active visitors
// @Description Visitors currently inside, latest check-in first
// @Tags Visitors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /visitors/active [get]
func (h *VisitorHandler) Active(c *gin.Context) {
	visitors, err := h.visitors.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitors, nil)
}

// List godoc
// @Summary List visitors
// @Tags Visitors
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param search query string false "Search by name or CNIC"
// @Success 200 {object} response.Envelope
// @Router /visitors [get]
func (h *VisitorHandler) List(c *gin.Context) {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD"))
		return
	}
	filter := models.VisitorFilter{From: from, To: to, Search: strings.TrimSpace(c.Query("search"))}
	visitors, err := h.visitors.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitors, nil)
}

// Update godoc
// @Summary Update a visit record
// @Tags Visitors
// @Accept json
// @Produce json
// @Param id path string true "Visitor ID"
// @Param payload body service.UpdateVisitorRequest true "Visitor payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /visitors/{id} [put]
func (h *VisitorHandler) Update(c *gin.Context) {
	var req service.UpdateVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	visitor, err := h.visitors.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, visitor, nil)
}

// Delete godoc
// @Summary Delete a visit record
// @Tags Visitors
// @Produce json
// @Param id path string true "Visitor ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /visitors/{id} [delete]
func (h *VisitorHandler) Delete(c *gin.Context) {
	if err := h.visitors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Types godoc
// @Summary List visitor types
// @Tags Visitors
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /visitors/types [get]
func (h *VisitorHandler) Types(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.VisitorTypes, nil)
}
