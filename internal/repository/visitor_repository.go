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

const visitorColumns = `id, name, cnic, phone, purpose, person_to_meet, visitor_type,
        check_in_time, check_out_time, pass_id, qr_code_value, card_printed, token_number, visit_date,
        created_at, updated_at`

// VisitorRepository persists visit records.
type VisitorRepository struct {
	db *sqlx.DB
}

// NewVisitorRepository constructs a VisitorRepository.
func NewVisitorRepository(db *sqlx.DB) *VisitorRepository {
	return &VisitorRepository{db: db}
}

// FindByID fetches a visitor by primary key.
func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*models.Visitor, error) {
	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE id = $1`, visitorColumns)
	var visitor models.Visitor
	if err := r.db.GetContext(ctx, &visitor, query, id); err != nil {
		return nil, err
	}
	return &visitor, nil
}

// FindActiveByCNIC returns the visitor with this CNIC who is still
// inside, if any.
func (r *VisitorRepository) FindActiveByCNIC(ctx context.Context, cnic string) (*models.Visitor, error) {
	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE cnic = $1 AND check_out_time IS NULL LIMIT 1`, visitorColumns)
	var visitor models.Visitor
	if err := r.db.GetContext(ctx, &visitor, query, cnic); err != nil {
		return nil, err
	}
	return &visitor, nil
}

// CountByVisitDate counts check-ins recorded for the given visit day.
// The daily token sequence derives from this count.
func (r *VisitorRepository) CountByVisitDate(ctx context.Context, day time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM visitors WHERE visit_date = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, day); err != nil {
		return 0, fmt.Errorf("count visitors by visit date: %w", err)
	}
	return count, nil
}

// CountCheckInsBetween counts visitors checked in inside the window.
func (r *VisitorRepository) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM visitors WHERE check_in_time >= $1 AND check_in_time <= $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("count visitor check-ins: %w", err)
	}
	return count, nil
}

// CountActive counts visitors currently inside, unbounded by date.
func (r *VisitorRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM visitors WHERE check_out_time IS NULL`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active visitors: %w", err)
	}
	return count, nil
}

// ListActive returns visitors still inside, latest check-in first.
func (r *VisitorRepository) ListActive(ctx context.Context) ([]models.Visitor, error) {
	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE check_out_time IS NULL ORDER BY check_in_time DESC`, visitorColumns)
	var visitors []models.Visitor
	if err := r.db.SelectContext(ctx, &visitors, query); err != nil {
		return nil, fmt.Errorf("list active visitors: %w", err)
	}
	return visitors, nil
}

// List returns visitors matching the admin filter, latest first.
func (r *VisitorRepository) List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("check_in_time >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("check_in_time <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(cnic) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	query := fmt.Sprintf(`SELECT %s FROM visitors WHERE %s ORDER BY check_in_time DESC`, visitorColumns, strings.Join(where, " AND "))
	var visitors []models.Visitor
	if err := r.db.SelectContext(ctx, &visitors, query, args...); err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	return visitors, nil
}

// Create inserts a new visit record.
func (r *VisitorRepository) Create(ctx context.Context, visitor *models.Visitor) error {
	if visitor.ID == "" {
		visitor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if visitor.CreatedAt.IsZero() {
		visitor.CreatedAt = now
	}
	visitor.UpdatedAt = now
	const query = `INSERT INTO visitors (id, name, cnic, phone, purpose, person_to_meet, visitor_type,
        check_in_time, check_out_time, pass_id, qr_code_value, card_printed, token_number, visit_date, created_at, updated_at)
        VALUES (:id, :name, :cnic, :phone, :purpose, :person_to_meet, :visitor_type,
        :check_in_time, :check_out_time, :pass_id, :qr_code_value, :card_printed, :token_number, :visit_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, visitor); err != nil {
		return fmt.Errorf("create visitor: %w", err)
	}
	return nil
}

// Update rewrites a visit record (admin edits and check-out).
func (r *VisitorRepository) Update(ctx context.Context, visitor *models.Visitor) error {
	visitor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE visitors SET name = :name, cnic = :cnic, phone = :phone, purpose = :purpose,
        person_to_meet = :person_to_meet, visitor_type = :visitor_type, check_in_time = :check_in_time,
        check_out_time = :check_out_time, card_printed = :card_printed, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, visitor); err != nil {
		return fmt.Errorf("update visitor: %w", err)
	}
	return nil
}

// Delete removes a visit record.
func (r *VisitorRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM visitors WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete visitor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete visitor rows: %w", err)
	}
	return affected > 0, nil
}
