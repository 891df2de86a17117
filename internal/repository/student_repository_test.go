package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "name", "department", "qr_code_value", "created_at", "updated_at"}).
		AddRow("u1", "IHS-CAR-001", "Aisha Khan", "Cardiology", "IHS-CAR-001", time.Now(), time.Now())
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students ORDER BY student_id ASC")).
		WillReturnRows(studentRows())

	students, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(student_id) LIKE $1 OR LOWER(name) LIKE $1 OR LOWER(department) LIKE $1")).
		WithArgs("%aisha%").
		WillReturnRows(studentRows())

	students, err := repo.List(context.Background(), models.StudentFilter{Search: "Aisha"})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByStudentIDNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, student_id, name, department, qr_code_value, created_at, updated_at FROM students WHERE student_id").
		WithArgs("IHS-CAR-404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByStudentID(context.Background(), "IHS-CAR-404")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryIDsByDeptCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"student_id"}).AddRow("IHS-RAD-001").AddRow("IHS-RAD-002")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT student_id FROM students WHERE student_id LIKE $1")).
		WithArgs("IHS-RAD-%").
		WillReturnRows(rows)

	ids, err := repo.IDsByDeptCode(context.Background(), "RAD")
	require.NoError(t, err)
	assert.Equal(t, []string{"IHS-RAD-001", "IHS-RAD-002"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsByStudentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE student_id = $1 LIMIT 1")).
		WithArgs("IHS-CAR-001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE student_id = $1 LIMIT 1")).
		WithArgs("IHS-CAR-404").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByStudentID(context.Background(), "IHS-CAR-001")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByStudentID(context.Background(), "IHS-CAR-404")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{StudentID: "IHS-CAR-001", Name: "Aisha Khan", Department: "Cardiology", QRCodeValue: "IHS-CAR-001"}
	err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("DELETE FROM students").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM students").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
