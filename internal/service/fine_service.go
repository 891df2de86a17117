package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type fineLedger interface {
	Create(ctx context.Context, fine *models.Fine) error
	List(ctx context.Context, filter models.FineFilter) ([]models.Fine, error)
}

type fineDirectory interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	FindByQRCode(ctx context.Context, code string) (*models.Student, error)
}

// AddFineRequest holds a manually entered fine. Name and department are
// supplied by the caller and snapshotted as-is. An absent date means
// the fine is stamped with the current time.
type AddFineRequest struct {
	StudentID  string     `json:"studentId"`
	Name       string     `json:"name"`
	Department string     `json:"department"`
	FineType   string     `json:"fineType"`
	Amount     *float64   `json:"amount"`
	Reason     string     `json:"reason"`
	Date       *time.Time `json:"date"`
	AddedBy    string     `json:"addedBy"`
}

// ScanFineRequest holds a fine raised from a card scan. The student
// snapshot is resolved from the scanned code.
type ScanFineRequest struct {
	Code     string   `json:"code"`
	FineType string   `json:"fineType"`
	Amount   *float64 `json:"amount"`
	Reason   string   `json:"reason"`
	AddedBy  string   `json:"addedBy"`
}

// FineService owns the append-only fine ledger. Records carry a
// snapshot of the student at fine time and are never edited.
type FineService struct {
	ledger    fineLedger
	directory fineDirectory
	logger    *zap.Logger
	now       func() time.Time
}

// NewFineService constructs the fine service.
func NewFineService(ledger fineLedger, directory fineDirectory, logger *zap.Logger) *FineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FineService{ledger: ledger, directory: directory, logger: logger, now: time.Now}
}

// FineTypes returns the fixed fine categories.
func (s *FineService) FineTypes() []string {
	return models.FineTypes
}

// Add appends a manually entered fine.
func (s *FineService) Add(ctx context.Context, req AddFineRequest) (*models.Fine, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)
	if req.StudentID == "" || req.Name == "" || req.Department == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId, name, and department are required")
	}
	return s.append(ctx, req.StudentID, req.Name, req.Department, req.FineType, req.Amount, req.Reason, req.AddedBy, req.Date)
}

// AddFromScan resolves the scanned code against the directory and
// appends a fine carrying the resolved student snapshot.
func (s *FineService) AddFromScan(ctx context.Context, req ScanFineRequest) (*models.Fine, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scan code is required")
	}

	student, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.append(ctx, student.StudentID, student.Name, student.Department, req.FineType, req.Amount, req.Reason, req.AddedBy, nil)
}

// List returns fines matching the filter, newest first.
func (s *FineService) List(ctx context.Context, filter models.FineFilter) ([]models.Fine, error) {
	fines, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list fines")
	}
	return fines, nil
}

func (s *FineService) append(ctx context.Context, studentID, name, department, fineType string, amount *float64, reason, addedBy string, date *time.Time) (*models.Fine, error) {
	fineType = strings.TrimSpace(fineType)
	if fineType == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fineType is required")
	}
	if !models.ValidFineType(fineType) {
		return nil, appErrors.Clone(appErrors.ErrInvalidFineType, "unknown fine type")
	}
	if amount == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "amount is required")
	}
	if *amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidAmount, "amount must be greater than zero")
	}
	if addedBy = strings.TrimSpace(addedBy); addedBy == "" {
		addedBy = "Admin"
	}
	when := s.now()
	if date != nil && !date.IsZero() {
		when = *date
	}

	fine := &models.Fine{
		StudentID:  studentID,
		Name:       name,
		Department: department,
		FineType:   fineType,
		Amount:     *amount,
		Reason:     strings.TrimSpace(reason),
		Date:       when,
		AddedBy:    addedBy,
	}
	if err := s.ledger.Create(ctx, fine); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record fine")
	}
	return fine, nil
}

func (s *FineService) resolve(ctx context.Context, code string) (*models.Student, error) {
	student, err := s.directory.FindByStudentID(ctx, code)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}
	student, err = s.directory.FindByQRCode(ctx, code)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}
	return nil, appErrors.Clone(appErrors.ErrNotRegistered, "student not registered")
}
