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

// FineRepository persists the append-only fine ledger.
type FineRepository struct {
	db *sqlx.DB
}

// NewFineRepository constructs a FineRepository.
func NewFineRepository(db *sqlx.DB) *FineRepository {
	return &FineRepository{db: db}
}

// Create appends a fine record. Fines are never updated afterwards.
func (r *FineRepository) Create(ctx context.Context, fine *models.Fine) error {
	if fine.ID == "" {
		fine.ID = uuid.NewString()
	}
	if fine.CreatedAt.IsZero() {
		fine.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO fines (id, student_id, name, department, fine_type, amount, reason, date, added_by, created_at)
        VALUES (:id, :student_id, :name, :department, :fine_type, :amount, :reason, :date, :added_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fine); err != nil {
		return fmt.Errorf("create fine: %w", err)
	}
	return nil
}

// List returns fines matching the filter ordered by date descending.
// The student ID filter matches as a case-insensitive substring.
func (r *FineRepository) List(ctx context.Context, filter models.FineFilter) ([]models.Fine, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.To)
	}
	if filter.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.StudentID != "" {
		where = append(where, fmt.Sprintf("LOWER(student_id) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.StudentID)+"%")
	}

	query := fmt.Sprintf(`SELECT id, student_id, name, department, fine_type, amount, reason, date, added_by, created_at
        FROM fines WHERE %s ORDER BY date DESC`, strings.Join(where, " AND "))
	var fines []models.Fine
	if err := r.db.SelectContext(ctx, &fines, query, args...); err != nil {
		return nil, fmt.Errorf("list fines: %w", err)
	}
	return fines, nil
}
