package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

func TestEntryLogRepositoryFindByStudentBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	from := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	to := from.Add(24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "student_id", "entry_time", "entry_date", "created_at"}).
		AddRow("log-1", "u1", from.Add(9*time.Hour), from, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_id = $1 AND entry_time >= $2 AND entry_time < $3 LIMIT 1")).
		WithArgs("u1", from, to).
		WillReturnRows(rows)

	log, err := repo.FindByStudentBetween(context.Background(), "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, "log-1", log.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryLogRepositoryFindByStudentBetweenNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	mock.ExpectQuery("FROM entry_logs").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByStudentBetween(context.Background(), "u1", time.Now(), time.Now())
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestEntryLogRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	mock.ExpectExec("INSERT INTO entry_logs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	log := &models.EntryLog{StudentID: "u1", EntryTime: time.Now(), EntryDate: time.Now()}
	require.NoError(t, repo.Create(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryLogRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	mock.ExpectExec("INSERT INTO entry_logs").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "entry_logs_student_id_entry_date_key"})

	err := repo.Create(context.Background(), &models.EntryLog{StudentID: "u1", EntryTime: time.Now(), EntryDate: time.Now()})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Equal(t, "entry_logs_student_id_entry_date_key", UniqueConstraint(err))
}

func TestEntryLogRepositoryCountBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM entry_logs WHERE entry_time >= $1 AND entry_time <= $2")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountBetween(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestEntryLogRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntryLogRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "entry_time", "entry_date", "created_at", "student_code", "student_name", "department"}).
		AddRow("log-1", "u1", time.Now(), time.Now(), time.Now(), "IHS-CAR-001", "Aisha Khan", "Cardiology")
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN students s ON s.id = l.student_id WHERE 1=1 AND s.department = $1 ORDER BY l.entry_time DESC")).
		WithArgs("Cardiology").
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), models.EntryLogFilter{Department: "Cardiology"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "IHS-CAR-001", records[0].StudentCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
