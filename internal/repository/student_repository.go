package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

// StudentRepository manages persistence for the student directory.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the filter ordered by student ID.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := `SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students`
	args := []interface{}{}
	if filter.Search != "" {
		query += ` WHERE LOWER(student_id) LIKE $1 OR LOWER(name) LIKE $1 OR LOWER(department) LIKE $1`
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	query += ` ORDER BY student_id ASC`

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by primary key.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByStudentID fetches a student by the exact IHS identifier.
func (r *StudentRepository) FindByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	const query = `SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, studentID); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByQRCode fetches a student by the exact QR payload on their card.
func (r *StudentRepository) FindByQRCode(ctx context.Context, code string) (*models.Student, error) {
	const query = `SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students WHERE qr_code_value = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, code); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByStudentID checks whether an IHS identifier is already taken.
func (r *StudentRepository) ExistsByStudentID(ctx context.Context, studentID string) (bool, error) {
	const query = `SELECT 1 FROM students WHERE student_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student id: %w", err)
	}
	return true, nil
}

// IDsByDeptCode returns every student ID carrying the department code
// prefix. The generator scans these for the highest sequence in use.
func (r *StudentRepository) IDsByDeptCode(ctx context.Context, deptCode string) ([]string, error) {
	const query = `SELECT student_id FROM students WHERE student_id LIKE $1`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, "IHS-"+deptCode+"-%"); err != nil {
		return nil, fmt.Errorf("scan student ids: %w", err)
	}
	return ids, nil
}

// Create inserts a new student record. Unique-constraint violations are
// returned with their cause intact so callers can retry generation.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, student_id, name, department, qr_code_value, created_at, updated_at)
        VALUES (:id, :student_id, :name, :department, :qr_code_value, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET student_id = :student_id, name = :name, department = :department, qr_code_value = :qr_code_value, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student permanently. Entry logs keep their dangling
// student reference on purpose.
func (r *StudentRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM students WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student rows: %w", err)
	}
	return affected > 0, nil
}
