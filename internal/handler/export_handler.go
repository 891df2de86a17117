package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/response"
)

// ExportHandler serves CSV and PDF downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// exportRange resolves the window for an export. A single date query
// parameter covers that whole local day, otherwise from/to apply.
func exportRange(c *gin.Context) (*time.Time, *time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, err
		}
		start, end := service.DayFilter(day)
		return &start, &end, nil
	}
	return dateRangeFromQuery(c)
}

// Visitors godoc
// @Summary Export visitors as CSV
// @Tags Exports
// @Produce text/csv
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /exports/visitors [get]
func (h *ExportHandler) Visitors(c *gin.Context) {
	from, to, err := exportRange(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD"))
		return
	}
	filter := models.VisitorFilter{From: from, To: to, Search: strings.TrimSpace(c.Query("search"))}
	file, err := h.exports.VisitorsCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// Fines godoc
// @Summary Export fines as CSV
// @Tags Exports
// @Produce text/csv
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param department query string false "Filter by department"
// @Success 200 {file} file
// @Router /exports/fines [get]
func (h *ExportHandler) Fines(c *gin.Context) {
	from, to, err := exportRange(c)
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
	file, err := h.exports.FinesCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// DailyReport godoc
// @Summary Export the daily report as PDF
// @Tags Exports
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} file
// @Router /exports/daily-report [get]
func (h *ExportHandler) DailyReport(c *gin.Context) {
	file, err := h.exports.DailyReportPDF(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
