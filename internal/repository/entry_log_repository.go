package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

// EntryLogRepository persists student scan events. The entry_logs table
// carries UNIQUE (student_id, entry_date) as the final arbiter of the
// one-entry-per-day invariant.
type EntryLogRepository struct {
	db *sqlx.DB
}

// NewEntryLogRepository constructs an EntryLogRepository.
func NewEntryLogRepository(db *sqlx.DB) *EntryLogRepository {
	return &EntryLogRepository{db: db}
}

// FindByStudentBetween returns the student's entry log inside the
// window, if any. Used as the duplicate-scan fast path.
func (r *EntryLogRepository) FindByStudentBetween(ctx context.Context, studentID string, from, to time.Time) (*models.EntryLog, error) {
	const query = `SELECT id, student_id, entry_time, entry_date, created_at FROM entry_logs
        WHERE student_id = $1 AND entry_time >= $2 AND entry_time < $3 LIMIT 1`
	var log models.EntryLog
	if err := r.db.GetContext(ctx, &log, query, studentID, from, to); err != nil {
		return nil, err
	}
	return &log, nil
}

// Create inserts a scan event. A unique violation on (student_id,
// entry_date) surfaces with its cause intact so the service can convert
// it into the duplicate-scan outcome.
func (r *EntryLogRepository) Create(ctx context.Context, log *models.EntryLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO entry_logs (id, student_id, entry_time, entry_date, created_at)
        VALUES (:id, :student_id, :entry_time, :entry_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create entry log: %w", err)
	}
	return nil
}

// CountBetween counts scan events inside the window.
func (r *EntryLogRepository) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM entry_logs WHERE entry_time >= $1 AND entry_time <= $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("count entry logs: %w", err)
	}
	return count, nil
}

// List returns scan events joined with directory data, newest first.
// Deleted students leave the join empty rather than hiding the log.
func (r *EntryLogRepository) List(ctx context.Context, filter models.EntryLogFilter) ([]models.EntryLogRecord, error) {
	base := `SELECT l.id, l.student_id, l.entry_time, l.entry_date, l.created_at,
        COALESCE(s.student_id, '') AS student_code, COALESCE(s.name, '') AS student_name, COALESCE(s.department, '') AS department
        FROM entry_logs l LEFT JOIN students s ON s.id = l.student_id`
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("l.entry_time >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("l.entry_time <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.StudentID != "" {
		where = append(where, fmt.Sprintf("s.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("s.department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY l.entry_time DESC", base, strings.Join(where, " AND "))
	var records []models.EntryLogRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list entry logs: %w", err)
	}
	return records, nil
}
