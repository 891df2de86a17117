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

// activeCNICConstraint is the partial unique index enforcing a single
// active visit per CNIC. Its violation means "already checked in", not
// an identifier race.
const activeCNICConstraint = "visitors_active_cnic_key"

type visitorRepository interface {
	FindByID(ctx context.Context, id string) (*models.Visitor, error)
	FindActiveByCNIC(ctx context.Context, cnic string) (*models.Visitor, error)
	CountByVisitDate(ctx context.Context, day time.Time) (int, error)
	ListActive(ctx context.Context) ([]models.Visitor, error)
	List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, error)
	Create(ctx context.Context, visitor *models.Visitor) error
	Update(ctx context.Context, visitor *models.Visitor) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CheckInRequest holds the reception check-in payload.
type CheckInRequest struct {
	Name         string `json:"name"`
	CNIC         string `json:"cnic"`
	Phone        string `json:"phone"`
	Purpose      string `json:"purpose"`
	PersonToMeet string `json:"personToMeet"`
	VisitorType  string `json:"visitorType"`
}

// UpdateVisitorRequest holds optional admin edits to a visit record.
type UpdateVisitorRequest struct {
	Name         *string `json:"name"`
	CNIC         *string `json:"cnic"`
	Phone        *string `json:"phone"`
	Purpose      *string `json:"purpose"`
	PersonToMeet *string `json:"personToMeet"`
	VisitorType  *string `json:"visitorType"`
	CardPrinted  *bool   `json:"cardPrinted"`
}

// VisitorService owns the visit lifecycle: check-in admission with pass
// and token generation, single mutation at check-out, and admin
// maintenance. One CNIC may have at most one active visit at a time.
type VisitorService struct {
	repo       visitorRepository
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
	retryLimit int
}

// NewVisitorService constructs the visitor service.
func NewVisitorService(repo visitorRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, retryLimit int) *VisitorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if retryLimit <= 0 {
		retryLimit = 3
	}
	return &VisitorService{
		repo:       repo,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
		retryLimit: retryLimit,
	}
}

// CheckIn admits a visitor: validates the payload, rejects a second
// concurrent visit for the same CNIC, and allocates pass ID, QR payload
// and the daily token. The token sequence is derived from today's
// check-in count per request, not from a running counter.
func (s *VisitorService) CheckIn(ctx context.Context, req CheckInRequest) (*models.Visitor, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.CNIC = strings.TrimSpace(req.CNIC)
	req.Purpose = strings.TrimSpace(req.Purpose)
	if req.Name == "" || req.CNIC == "" || req.Purpose == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name, CNIC, and purpose are required")
	}
	visitorType := strings.TrimSpace(req.VisitorType)
	if visitorType == "" {
		visitorType = models.DefaultVisitorType
	}
	if !models.ValidVisitorType(visitorType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown visitor type")
	}

	if _, err := s.repo.FindActiveByCNIC(ctx, req.CNIC); err == nil {
		return nil, appErrors.ErrAlreadyActive
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check active visit")
	}

	now := s.now()
	visitDate := idgen.StartOfDay(now)

	var lastErr error
	for attempt := 0; attempt < s.retryLimit; attempt++ {
		count, err := s.repo.CountByVisitDate(ctx, visitDate)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to derive daily token")
		}

		visitor := &models.Visitor{
			Name:         req.Name,
			CNIC:         req.CNIC,
			Phone:        strings.TrimSpace(req.Phone),
			Purpose:      req.Purpose,
			PersonToMeet: strings.TrimSpace(req.PersonToMeet),
			VisitorType:  visitorType,
			CheckInTime:  now,
			PassID:       idgen.PassID(),
			QRCodeValue:  idgen.QRValue(),
			TokenNumber:  idgen.DailyToken(count),
			VisitDate:    visitDate,
		}
		err = s.repo.Create(ctx, visitor)
		if err == nil {
			s.metrics.RecordCheckIn()
			s.invalidateReports(ctx)
			return visitor, nil
		}
		if repository.UniqueConstraint(err) == activeCNICConstraint {
			return nil, appErrors.ErrAlreadyActive
		}
		if !repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check in visitor")
		}
		lastErr = err
		s.logger.Warn("visitor identifier collision, recomputing",
			zap.String("token", visitor.TokenNumber),
			zap.Int("attempt", attempt+1))
	}
	return nil, appErrors.Wrap(lastErr, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "could not allocate a unique visitor pass")
}

// CheckOut closes an active visit. It is the only mutation path for the
// check-out state and cannot fire twice for the same record.
func (s *VisitorService) CheckOut(ctx context.Context, id string) (*models.Visitor, error) {
	visitor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "visitor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visitor")
	}
	if visitor.CheckOutTime != nil {
		return nil, appErrors.ErrAlreadyCheckedOut
	}

	ts := s.now()
	visitor.CheckOutTime = &ts
	if err := s.repo.Update(ctx, visitor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check out visitor")
	}
	s.metrics.RecordCheckOut()
	s.invalidateReports(ctx)
	return visitor, nil
}

// ListActive returns visitors currently inside, latest check-in first.
func (s *VisitorService) ListActive(ctx context.Context) ([]models.Visitor, error) {
	visitors, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list active visitors")
	}
	return visitors, nil
}

// List returns visitors matching the admin filter.
func (s *VisitorService) List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, error) {
	visitors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list visitors")
	}
	return visitors, nil
}

// Update applies an administrative edit to a visit record.
func (s *VisitorService) Update(ctx context.Context, id string, req UpdateVisitorRequest) (*models.Visitor, error) {
	visitor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "visitor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load visitor")
	}
	if req.Name != nil {
		visitor.Name = strings.TrimSpace(*req.Name)
	}
	if req.CNIC != nil {
		visitor.CNIC = strings.TrimSpace(*req.CNIC)
	}
	if req.Phone != nil {
		visitor.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Purpose != nil {
		visitor.Purpose = strings.TrimSpace(*req.Purpose)
	}
	if req.PersonToMeet != nil {
		visitor.PersonToMeet = strings.TrimSpace(*req.PersonToMeet)
	}
	if req.VisitorType != nil {
		if !models.ValidVisitorType(*req.VisitorType) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown visitor type")
		}
		visitor.VisitorType = *req.VisitorType
	}
	if req.CardPrinted != nil {
		visitor.CardPrinted = *req.CardPrinted
	}
	if err := s.repo.Update(ctx, visitor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update visitor")
	}
	return visitor, nil
}

// Delete removes a visit record.
func (s *VisitorService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete visitor")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "visitor not found")
	}
	return nil
}

func (s *VisitorService) invalidateReports(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "reports:*"); err != nil {
		s.logger.Warn("failed to invalidate report cache", zap.Error(err))
	}
}
