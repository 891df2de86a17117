package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/idgen"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/repository"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
	IDsByDeptCode(ctx context.Context, deptCode string) ([]string, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) (bool, error)
}

// RegisterStudentRequest holds the payload for registering a student.
type RegisterStudentRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
}

// UpdateStudentRequest holds the payload for administrative edits.
type UpdateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Department  string `json:"department" validate:"required"`
	QRCodeValue string `json:"qrCodeValue"`
}

// StudentService owns the student directory: registration with
// generated IHS identifiers, bulk import, and admin maintenance.
type StudentService struct {
	repo       studentRepository
	validator  *validator.Validate
	logger     *zap.Logger
	retryLimit int
}

// NewStudentService constructs the student service. retryLimit bounds
// how often a raced identifier is recomputed before giving up.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger, retryLimit int) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if retryLimit <= 0 {
		retryLimit = 3
	}
	return &StudentService{repo: repo, validator: validate, logger: logger, retryLimit: retryLimit}
}

// Departments returns the configured department list.
func (s *StudentService) Departments() []string {
	return models.Departments
}

// List returns directory entries matching the search filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Register creates a student with a freshly generated IHS identifier.
// The identifier is derived from the highest sequence in use for the
// department code; a write-time collision recomputes it, bounded by the
// retry limit.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Department = strings.TrimSpace(req.Department)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and department are required")
	}

	deptCode := idgen.DeptCode(req.Department)
	var lastErr error
	for attempt := 0; attempt < s.retryLimit; attempt++ {
		ids, err := s.repo.IDsByDeptCode(ctx, deptCode)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to derive student ID")
		}
		studentID := idgen.StudentID(deptCode, idgen.MaxSequence(ids, deptCode))

		student := &models.Student{
			StudentID:   studentID,
			Name:        req.Name,
			Department:  req.Department,
			QRCodeValue: studentID,
		}
		err = s.repo.Create(ctx, student)
		if err == nil {
			return student, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
		}
		lastErr = err
		s.logger.Warn("student ID collision, recomputing",
			zap.String("student_id", studentID),
			zap.Int("attempt", attempt+1))
	}
	return nil, appErrors.Wrap(lastErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "could not allocate a unique student ID")
}

// NormalizeImportRow folds the loosely-shaped keys accepted by the bulk
// import (JSON, CSV and spreadsheet exports use different casings) into
// the fixed import row shape. Format quirks stop here; the admission
// path only ever sees normalized rows.
func NormalizeImportRow(raw map[string]interface{}) models.StudentImportRow {
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := raw[k]; ok && v != nil {
				return strings.TrimSpace(fmt.Sprintf("%v", v))
			}
		}
		return ""
	}
	row := models.StudentImportRow{
		StudentID:  pick("studentId", "StudentID", "student_id"),
		Name:       pick("name", "Name"),
		Department: pick("department", "Department"),
	}
	row.QRCodeValue = pick("qrCodeValue", "qr_code_value", "QRCodeValue")
	if row.QRCodeValue == "" {
		row.QRCodeValue = row.StudentID
	}
	return row
}

// BulkImport registers many students best-effort. Rows missing a name
// or department, or colliding with an existing student ID, are skipped
// with a reason; the import never fails wholesale.
func (s *StudentService) BulkImport(ctx context.Context, rows []map[string]interface{}) (*models.BulkImportResult, error) {
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide a students array with name and department (studentId is auto-generated if omitted)")
	}

	result := &models.BulkImportResult{Total: len(rows)}
	for _, raw := range rows {
		row := NormalizeImportRow(raw)
		if row.Name == "" || row.Department == "" {
			result.Skipped++
			result.SkippedDetails = append(result.SkippedDetails, models.SkippedImportRow{StudentImportRow: row, Reason: "Missing name or department"})
			continue
		}

		studentID := row.StudentID
		if studentID == "" {
			deptCode := idgen.DeptCode(row.Department)
			ids, err := s.repo.IDsByDeptCode(ctx, deptCode)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to derive student ID")
			}
			studentID = idgen.StudentID(deptCode, idgen.MaxSequence(ids, deptCode))
		}

		exists, err := s.repo.ExistsByStudentID(ctx, studentID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate student ID")
		}
		if exists {
			result.Skipped++
			result.SkippedDetails = append(result.SkippedDetails, models.SkippedImportRow{StudentImportRow: row, Reason: "Student ID already exists"})
			continue
		}

		qr := row.QRCodeValue
		if qr == "" {
			qr = studentID
		}
		student := &models.Student{
			StudentID:   studentID,
			Name:        row.Name,
			Department:  row.Department,
			QRCodeValue: qr,
		}
		if err := s.repo.Create(ctx, student); err != nil {
			if repository.IsUniqueViolation(err) {
				result.Skipped++
				result.SkippedDetails = append(result.SkippedDetails, models.SkippedImportRow{StudentImportRow: row, Reason: "Student ID already exists"})
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
		}
		result.Created++
		result.CreatedIDs = append(result.CreatedIDs, student.StudentID)
	}
	return result, nil
}

// Update applies an administrative edit to a directory entry.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	student.Name = strings.TrimSpace(req.Name)
	student.Department = strings.TrimSpace(req.Department)
	if req.QRCodeValue != "" {
		student.QRCodeValue = strings.TrimSpace(req.QRCodeValue)
	}
	if err := s.repo.Update(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "qr code value already in use")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student permanently. Entry logs referencing the
// student are left in place with a dangling reference.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}
