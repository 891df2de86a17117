package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/idgen"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type visitorCounter interface {
	CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error)
	CountActive(ctx context.Context) (int, error)
}

type entryCounter interface {
	CountBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ReportService aggregates visitor and student entry counts into the
// dashboard snapshot, the daily report, and the chart series. Counts
// are derived from the stores on every call; only the today snapshot
// is cached, behind a short TTL.
type ReportService struct {
	visitors  visitorCounter
	entries   entryCounter
	cache     *CacheService
	logger    *zap.Logger
	now       func() time.Time
	chartDays int
}

// NewReportService constructs the report service.
func NewReportService(visitors visitorCounter, entries entryCounter, cache *CacheService, logger *zap.Logger, chartDays int) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if chartDays <= 0 {
		chartDays = 7
	}
	return &ReportService{
		visitors:  visitors,
		entries:   entries,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
		chartDays: chartDays,
	}
}

// Today returns the dashboard snapshot for the current local day.
func (s *ReportService) Today(ctx context.Context) (*models.TodayStats, error) {
	start := idgen.StartOfDay(s.now())
	key := "reports:today:" + start.Format(dateLayout)

	var cached models.TodayStats
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	visitors, students, err := s.countsFor(ctx, start)
	if err != nil {
		return nil, err
	}
	active, err := s.visitors.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active visitors")
	}

	stats := &models.TodayStats{
		Date:              start.Format(dateLayout),
		VisitorCount:      visitors,
		StudentEntryCount: students,
		ActiveVisitors:    active,
	}
	if err := s.cache.Set(ctx, key, stats, 0); err != nil {
		s.logger.Warn("failed to cache today snapshot", zap.Error(err))
	}
	return stats, nil
}

// Daily returns the report for a specific calendar day. The date is
// interpreted in local time; an empty date means today.
func (s *ReportService) Daily(ctx context.Context, date string) (*models.DailyStats, error) {
	start := idgen.StartOfDay(s.now())
	if date != "" {
		parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
		start = parsed
	}

	visitors, students, err := s.countsFor(ctx, start)
	if err != nil {
		return nil, err
	}
	return &models.DailyStats{
		Date:              start.Format(dateLayout),
		VisitorCount:      visitors,
		StudentEntryCount: students,
	}, nil
}

// Chart returns one point per day for the last N days, oldest first.
// Days without entries appear as zero points so the series has no gaps.
func (s *ReportService) Chart(ctx context.Context, days int) ([]models.ChartPoint, error) {
	if days <= 0 {
		days = s.chartDays
	}

	today := idgen.StartOfDay(s.now())
	points := make([]models.ChartPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		visitors, students, err := s.countsFor(ctx, day)
		if err != nil {
			return nil, err
		}
		points = append(points, models.ChartPoint{
			Date:     day.Format(dateLayout),
			Label:    day.Format("Mon Jan 2"),
			Visitors: visitors,
			Students: students,
		})
	}
	return points, nil
}

func (s *ReportService) countsFor(ctx context.Context, start time.Time) (int, int, error) {
	end := start.Add(24*time.Hour - time.Nanosecond)

	visitors, err := s.visitors.CountCheckInsBetween(ctx, start, end)
	if err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count visitors")
	}
	students, err := s.entries.CountBetween(ctx, start, end)
	if err != nil {
		return 0, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count student entries")
	}
	return visitors, students, nil
}
