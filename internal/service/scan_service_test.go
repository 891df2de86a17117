package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type mockScanDirectory struct {
	byStudentID map[string]*models.Student
	byQRCode    map[string]*models.Student
}

func (m *mockScanDirectory) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	if s, ok := m.byStudentID[studentID]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScanDirectory) FindByQRCode(ctx context.Context, code string) (*models.Student, error) {
	if s, ok := m.byQRCode[code]; ok {
		return s, nil
	}
	return nil, sql.ErrNoRows
}

type mockScanLedger struct {
	existing    map[string]*models.EntryLog
	created     []*models.EntryLog
	createErr   error
	createCalls int
}

func (m *mockScanLedger) FindByStudentBetween(ctx context.Context, studentID string, from, to time.Time) (*models.EntryLog, error) {
	if e, ok := m.existing[studentID]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockScanLedger) Create(ctx context.Context, log *models.EntryLog) error {
	m.createCalls++
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		if m.existing == nil {
			m.existing = make(map[string]*models.EntryLog)
		}
		m.existing[log.StudentID] = &models.EntryLog{ID: "raced", StudentID: log.StudentID}
		return err
	}
	log.ID = "log-1"
	m.created = append(m.created, log)
	return nil
}

func scanStudent() *models.Student {
	return &models.Student{ID: "uuid-1", StudentID: "IHS-CAR-001", Name: "Aisha Khan", Department: "Cardiology", QRCodeValue: "QR-123-abcdefgh"}
}

func TestScanServiceRecordScanByStudentID(t *testing.T) {
	student := scanStudent()
	directory := &mockScanDirectory{byStudentID: map[string]*models.Student{student.StudentID: student}}
	ledger := &mockScanLedger{}
	svc := NewScanService(directory, ledger, nil, nil, zap.NewNop())

	result, err := svc.RecordScan(context.Background(), " IHS-CAR-001 ")
	require.NoError(t, err)
	require.NotNil(t, result.Log)
	assert.Equal(t, student.ID, result.Log.StudentID)
	assert.False(t, result.Duplicate)
	assert.Len(t, ledger.created, 1)
}

func TestScanServiceRecordScanByQRCode(t *testing.T) {
	student := scanStudent()
	directory := &mockScanDirectory{byQRCode: map[string]*models.Student{student.QRCodeValue: student}}
	ledger := &mockScanLedger{}
	svc := NewScanService(directory, ledger, nil, nil, zap.NewNop())

	result, err := svc.RecordScan(context.Background(), student.QRCodeValue)
	require.NoError(t, err)
	assert.Equal(t, student, result.Student)
}

func TestScanServiceRecordScanDuplicate(t *testing.T) {
	student := scanStudent()
	prior := &models.EntryLog{ID: "log-0", StudentID: student.ID}
	directory := &mockScanDirectory{byStudentID: map[string]*models.Student{student.StudentID: student}}
	ledger := &mockScanLedger{existing: map[string]*models.EntryLog{student.ID: prior}}
	svc := NewScanService(directory, ledger, nil, nil, zap.NewNop())

	result, err := svc.RecordScan(context.Background(), student.StudentID)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDuplicateScan))
	require.NotNil(t, result)
	assert.True(t, result.Duplicate)
	assert.Equal(t, prior, result.Existing)
	assert.Equal(t, 0, ledger.createCalls)
}

func TestScanServiceRecordScanNotRegistered(t *testing.T) {
	svc := NewScanService(&mockScanDirectory{}, &mockScanLedger{}, nil, nil, zap.NewNop())

	result, err := svc.RecordScan(context.Background(), "IHS-RAD-999")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotRegistered))
	assert.Nil(t, result)
}

func TestScanServiceRecordScanEmptyCode(t *testing.T) {
	svc := NewScanService(&mockScanDirectory{}, &mockScanLedger{}, nil, nil, zap.NewNop())

	_, err := svc.RecordScan(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestScanServiceRecordScanRacedInsert(t *testing.T) {
	student := scanStudent()
	directory := &mockScanDirectory{byStudentID: map[string]*models.Student{student.StudentID: student}}
	ledger := &mockScanLedger{createErr: &pq.Error{Code: "23505", Constraint: "entry_logs_student_id_entry_date_key"}}
	svc := NewScanService(directory, ledger, nil, nil, zap.NewNop())

	result, err := svc.RecordScan(context.Background(), student.StudentID)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrDuplicateScan))
	require.NotNil(t, result)
	assert.True(t, result.Duplicate)
	require.NotNil(t, result.Existing)
	assert.Equal(t, "raced", result.Existing.ID)
}
