package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type entryLogLister interface {
	List(ctx context.Context, filter models.EntryLogFilter) ([]models.EntryLogRecord, error)
}

// EntryLogService serves the admin view of the student entry ledger.
type EntryLogService struct {
	repo   entryLogLister
	logger *zap.Logger
}

// NewEntryLogService constructs the entry log service.
func NewEntryLogService(repo entryLogLister, logger *zap.Logger) *EntryLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryLogService{repo: repo, logger: logger}
}

// List returns entry records joined with directory data, newest first.
// Entries whose student was deleted still appear with blank directory
// fields.
func (s *EntryLogService) List(ctx context.Context, filter models.EntryLogFilter) ([]models.EntryLogRecord, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list entry logs")
	}
	return records, nil
}
