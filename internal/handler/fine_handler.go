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

// FineHandler exposes the fine ledger endpoints.
type FineHandler struct {
	fines *service.FineService
}

// NewFineHandler constructs FineHandler.
func NewFineHandler(fines *service.FineService) *FineHandler {
	return &FineHandler{fines: fines}
}

// Add godoc
// @Summary Add a fine
// @Description Record a manually entered fine with a student snapshot
// @Tags Fines
// @Accept json
// @Produce json
// @Param payload body service.AddFineRequest true "Fine payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /fines [post]
func (h *FineHandler) Add(c *gin.Context) {
	var req service.AddFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && strings.TrimSpace(req.AddedBy) == "" {
		req.AddedBy = claims.Username
	}
	fine, err := h.fines.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fine)
}

// AddFromScan godoc
// @Summary Add a fine from a scan
// @Description Resolve the scanned code and record a fine with the student snapshot
// @Tags Fines
// @Accept json
// @Produce json
// @Param payload body service.ScanFineRequest true "Scan fine payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fines/scan [post]
func (h *FineHandler) AddFromScan(c *gin.Context) {
	var req service.ScanFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && strings.TrimSpace(req.AddedBy) == "" {
		req.AddedBy = claims.Username
	}
	fine, err := h.fines.AddFromScan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fine)
}

// List godoc
// @Summary List fines
// @Tags Fines
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param department query string false "Filter by department"
// @Param studentId query string false "Student ID substring"
// @Success 200 {object} response.Envelope
// @Router /fines [get]
func (h *FineHandler) List(c *gin.Context) {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD"))
		return
	}
	filter := models.FineFilter{
		From:       from,
		To:         to,
		Department: strings.TrimSpace(c.Query("department")),
		StudentID:  strings.TrimSpace(c.Query("studentId")),
	}
	fines, err := h.fines.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fines, nil)
}

// Types godoc
// @Summary List fine types
// @Tags Fines
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /fines/types [get]
func (h *FineHandler) Types(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.fines.FineTypes(), nil)
}
