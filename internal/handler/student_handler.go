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

// StudentHandler exposes student directory endpoints.
type StudentHandler struct {
	students *service.StudentService
	scans    *service.ScanService
	logs     *service.EntryLogService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, scans *service.ScanService, logs *service.EntryLogService) *StudentHandler {
	return &StudentHandler{students: students, scans: scans, logs: logs}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by ID, name, or department"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{Search: strings.TrimSpace(c.Query("search"))}
	students, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Register godoc
// @Summary Register student
// @Description Register a student with an auto-generated ID
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// BulkImport godoc
// @Summary Bulk import students
// @Description Import students best-effort; bad rows are skipped with reasons
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body object true "Students array"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/bulk [post]
func (h *StudentHandler) BulkImport(c *gin.Context) {
	var payload struct {
		Students []map[string]interface{} `json:"students"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.students.BulkImport(c.Request.Context(), payload.Students)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Departments godoc
// @Summary List departments
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/departments [get]
func (h *StudentHandler) Departments(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.students.Departments(), nil)
}

// Scan godoc
// @Summary Record a student scan
// @Description Admit a student by scanned ID or QR payload; at most one entry per day
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body object true "Scan code"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/scan [post]
func (h *StudentHandler) Scan(c *gin.Context) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.scans.RecordScan(c.Request.Context(), payload.Code)
	if err != nil {
		if result != nil && result.Duplicate {
			response.ErrorWithData(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Logs godoc
// @Summary List entry logs
// @Tags Students
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param studentId query string false "Filter by student ID"
// @Param department query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /students/logs [get]
func (h *StudentHandler) Logs(c *gin.Context) {
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "dates must be YYYY-MM-DD"))
		return
	}
	filter := models.EntryLogFilter{
		From:       from,
		To:         to,
		StudentID:  strings.TrimSpace(c.Query("studentId")),
		Department: strings.TrimSpace(c.Query("department")),
	}
	records, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
