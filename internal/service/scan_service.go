package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/idgen"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/repository"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type scanDirectory interface {
	FindByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	FindByQRCode(ctx context.Context, code string) (*models.Student, error)
}

type scanLedger interface {
	FindByStudentBetween(ctx context.Context, studentID string, from, to time.Time) (*models.EntryLog, error)
	Create(ctx context.Context, log *models.EntryLog) error
}

// ScanResult is the outcome of a card scan. On a duplicate scan the
// student and the prior entry are returned so the desk can show when
// the student already came in.
type ScanResult struct {
	Student   *models.Student  `json:"student"`
	Log       *models.EntryLog `json:"log,omitempty"`
	Duplicate bool             `json:"duplicate,omitempty"`
	Existing  *models.EntryLog `json:"existingLog,omitempty"`
}

// ScanService admits student scans. A student transitions from
// no-entry-today to entered-today at most once per local calendar day;
// the check here is the fast path and the store's unique constraint on
// (student_id, entry_date) is the arbiter under concurrent scans.
type ScanService struct {
	directory scanDirectory
	ledger    scanLedger
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewScanService constructs the scan service.
func NewScanService(directory scanDirectory, ledger scanLedger, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanService{
		directory: directory,
		ledger:    ledger,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordScan resolves the scanned code against the directory and
// records today's entry. The scanned code may be the student ID or the
// QR payload printed on the card.
func (s *ScanService) RecordScan(ctx context.Context, code string) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "scan code is required")
	}

	student, err := s.resolve(ctx, code)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotRegistered) {
			s.metrics.RecordScan("rejected")
		}
		return nil, err
	}

	now := s.now()
	startOfDay := idgen.StartOfDay(now)
	endOfDay := startOfDay.Add(24 * time.Hour)

	existing, err := s.ledger.FindByStudentBetween(ctx, student.ID, startOfDay, endOfDay)
	if err == nil {
		s.metrics.RecordScan("duplicate")
		return &ScanResult{Student: student, Duplicate: true, Existing: existing},
			appErrors.ErrDuplicateScan
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check today's entry")
	}

	log := &models.EntryLog{
		StudentID: student.ID,
		EntryTime: now,
		EntryDate: startOfDay,
	}
	if err := s.ledger.Create(ctx, log); err != nil {
		// two scans racing inside the day window: the loser re-reads
		// and reports the same duplicate outcome
		if repository.IsUniqueViolation(err) {
			existing, readErr := s.ledger.FindByStudentBetween(ctx, student.ID, startOfDay, endOfDay)
			if readErr != nil {
				return nil, appErrors.Wrap(readErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duplicate entry")
			}
			s.metrics.RecordScan("duplicate")
			return &ScanResult{Student: student, Duplicate: true, Existing: existing},
				appErrors.ErrDuplicateScan
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record scan")
	}

	s.metrics.RecordScan("accepted")
	s.invalidateReports(ctx)
	return &ScanResult{Student: student, Log: log}, nil
}

func (s *ScanService) resolve(ctx context.Context, code string) (*models.Student, error) {
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

func (s *ScanService) invalidateReports(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "reports:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
