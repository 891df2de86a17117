package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
)

type fakeDirectory struct {
	student *models.Student
}

func (f *fakeDirectory) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	if f.student != nil && f.student.StudentID == studentID {
		return f.student, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeDirectory) FindByQRCode(ctx context.Context, code string) (*models.Student, error) {
	if f.student != nil && f.student.QRCodeValue == code {
		return f.student, nil
	}
	return nil, sql.ErrNoRows
}

type fakeLedger struct {
	existing *models.EntryLog
}

func (f *fakeLedger) FindByStudentBetween(ctx context.Context, studentID string, from, to time.Time) (*models.EntryLog, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLedger) Create(ctx context.Context, log *models.EntryLog) error {
	log.ID = "log-1"
	return nil
}

func scanHandler(directory *fakeDirectory, ledger *fakeLedger) *StudentHandler {
	scans := service.NewScanService(directory, ledger, nil, nil, zap.NewNop())
	return NewStudentHandler(nil, scans, nil)
}

func performScan(t *testing.T, h *StudentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/students/scan", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Scan(c)
	return rec
}

func TestStudentHandlerScanCreated(t *testing.T) {
	directory := &fakeDirectory{student: &models.Student{ID: "u1", StudentID: "IHS-CAR-001", QRCodeValue: "IHS-CAR-001"}}
	h := scanHandler(directory, &fakeLedger{})

	rec := performScan(t, h, `{"code":"IHS-CAR-001"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data struct {
			Log *models.EntryLog `json:"log"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data.Log)
	assert.Equal(t, "log-1", envelope.Data.Log.ID)
}

func TestStudentHandlerScanDuplicateKeepsPayload(t *testing.T) {
	directory := &fakeDirectory{student: &models.Student{ID: "u1", StudentID: "IHS-CAR-001", QRCodeValue: "IHS-CAR-001"}}
	ledger := &fakeLedger{existing: &models.EntryLog{ID: "log-0", StudentID: "u1"}}
	h := scanHandler(directory, ledger)

	rec := performScan(t, h, `{"code":"IHS-CAR-001"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope struct {
		Data struct {
			Duplicate bool             `json:"duplicate"`
			Existing  *models.EntryLog `json:"existingLog"`
		} `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "DUPLICATE_SCAN", envelope.Error.Code)
	assert.True(t, envelope.Data.Duplicate)
	require.NotNil(t, envelope.Data.Existing)
	assert.Equal(t, "log-0", envelope.Data.Existing.ID)
}

func TestStudentHandlerScanUnknownStudent(t *testing.T) {
	h := scanHandler(&fakeDirectory{}, &fakeLedger{})

	rec := performScan(t, h, `{"code":"IHS-RAD-404"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerScanBadPayload(t *testing.T) {
	h := scanHandler(&fakeDirectory{}, &fakeLedger{})

	rec := performScan(t, h, `{"code":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
