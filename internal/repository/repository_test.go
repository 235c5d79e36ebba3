package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB opens a gorm session over a sqlmock connection so repository SQL
// can be asserted without a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return gdb, mock
}

func TestJobList_filterSQL(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewJobRepository(gdb)

	jobID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "jobs" WHERE title ILIKE \$1 AND location ILIKE \$2`).
		WithArgs("%engineer%", "%berlin%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT jobs\.\*, \(SELECT COUNT\(\*\) FROM applications WHERE applications\.job_id = jobs\.id\) AS application_count FROM "jobs" WHERE title ILIKE \$1 AND location ILIKE \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("%engineer%", "%berlin%", 10).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "description", "location", "company_id", "created_at", "application_count"}).
			AddRow(jobID, "Robotics Engineer", "Maintain the arms.", "Berlin", companyID, time.Now(), 3))

	mock.ExpectQuery(`SELECT \* FROM "companies" WHERE "companies"\."id" = \$1`).
		WithArgs(companyID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(companyID, "Acme Robotics"))

	jobs, total, err := repo.List(JobFilter{Title: "engineer", Location: "berlin"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, jobs, 1)
	assert.Equal(t, int64(3), jobs[0].ApplicationCount)
	assert.Equal(t, "Acme Robotics", jobs[0].Company.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobList_offsetOnLaterPages(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewJobRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "jobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`FROM "jobs" ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "description", "location", "company_id", "created_at", "application_count"}))

	_, total, err := repo.List(JobFilter{Page: PageQuery{Page: 2, Limit: 5}})
	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageQuery(t *testing.T) {
	q := PageQuery{}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.Offset())

	q = PageQuery{Page: 3, Limit: 5}.Normalize()
	assert.Equal(t, 10, q.Offset())

	q = PageQuery{Page: -4, Limit: -1}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(PageQuery{Page: 2, Limit: 5}, 12)
	assert.Equal(t, int64(12), p.Total)
	assert.Equal(t, int64(3), p.Pages)

	p = NewPagination(PageQuery{Page: 1, Limit: 10}, 0)
	assert.Equal(t, int64(0), p.Pages)
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)

	unique := &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, translate(unique), ErrConflict)

	fk := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, translate(fk), ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}
