package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/response"
)

// ReportHandler exposes dashboard and report endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Today godoc
// @Summary Today's dashboard snapshot
// @Description Visitor, student entry, and active visitor counts for the current day
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/today [get]
func (h *ReportHandler) Today(c *gin.Context) {
	stats, err := h.reports.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Daily godoc
// @Summary Daily report
// @Tags Reports
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/daily [get]
func (h *ReportHandler) Daily(c *gin.Context) {
	stats, err := h.reports.Daily(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Chart godoc
// @Summary Entry chart series
// @Description One point per day for the last N days, oldest first
// @Tags Reports
// @Produce json
// @Param days query int false "Number of days"
// @Success 200 {object} response.Envelope
// @Router /reports/chart [get]
func (h *ReportHandler) Chart(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}
	points, err := h.reports.Chart(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points, nil)
}
