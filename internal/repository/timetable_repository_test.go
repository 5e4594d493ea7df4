package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/timetable-api/internal/models"
)

func newTimetableRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func strPtr(s string) *string { return &s }

func TestTimetableRepositorySaveVersionDraft(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM timetables WHERE academic_year = $1 AND branch = $2 AND year = $3 AND semester = $4")).
		WithArgs("2024-25", "CSE", 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")).
		WithArgs(sqlmock.AnyArg(), "2024-25", 2, "CSE", "B.Tech", 3, "A-101", 5, 6, 3, string(models.TimetableStatusDraft), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 1, 1, "CLASS", "Mathematics", "F1", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payload := &models.Timetable{
		AcademicYear: "2024-25",
		Year:         2,
		Branch:       "CSE",
		CourseName:   "B.Tech",
		Semester:     3,
		RoomNumber:   "A-101",
		Days:         5,
		Periods:      6,
		Status:       models.TimetableStatusDraft,
		Meta:         types.JSONText(`{}`),
	}
	entries := []models.TimetableEntry{
		{DayOfWeek: 1, Period: 1, Kind: "CLASS", SubjectName: strPtr("Mathematics"), FacultyID: strPtr("F1")},
	}

	err := repo.SaveVersion(context.Background(), payload, entries)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Version)
	assert.NotEmpty(t, payload.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositorySaveVersionPublishArchivesOldVersions(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM timetables")).
		WithArgs("2024-25", "CSE", 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetables SET status = 'ARCHIVED'")).
		WithArgs("2024-25", "CSE", 2, 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payload := &models.Timetable{
		AcademicYear: "2024-25",
		Year:         2,
		Branch:       "CSE",
		CourseName:   "B.Tech",
		Semester:     3,
		Days:         5,
		Periods:      6,
		Status:       models.TimetableStatusPublished,
		Meta:         types.JSONText(`{}`),
	}

	require.NoError(t, repo.SaveVersion(context.Background(), payload, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryList(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "academic_year", "year", "branch", "course_name", "semester", "room_number", "days", "periods", "version", "status", "meta", "created_at", "updated_at"}).
		AddRow("tt-1", "2024-25", 2, "CSE", "B.Tech", 3, "A-101", 5, 6, 1, "PUBLISHED", types.JSONText(`{}`), now, now)
	mock.ExpectQuery("SELECT id, academic_year, .+ FROM timetables WHERE 1=1 AND academic_year = \\$1 AND status = \\$2 ORDER BY").
		WithArgs("2024-25", "PUBLISHED").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timetables WHERE 1=1 AND academic_year = $1 AND status = $2")).
		WithArgs("2024-25", "PUBLISHED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TimetableFilter{AcademicYear: "2024-25", Status: "PUBLISHED"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindEntries(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	rows := sqlmock.NewRows([]string{"id", "timetable_id", "day_of_week", "period", "kind", "subject_name", "faculty_id", "batch_label", "created_at"}).
		AddRow("e-1", "tt-1", 1, 1, "CLASS", "Mathematics", "F1", nil, time.Now()).
		AddRow("e-2", "tt-1", 1, 2, "LAB", "CS Lab", "F2", "R1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetable_entries WHERE timetable_id = $1 ORDER BY day_of_week ASC, period ASC")).
		WithArgs("tt-1").
		WillReturnRows(rows)

	entries, err := repo.FindEntries(context.Background(), "tt-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "LAB", entries[1].Kind)
	require.NotNil(t, entries[1].BatchLabel)
	assert.Equal(t, "R1", *entries[1].BatchLabel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE timetables SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("missing", string(models.TimetableStatusArchived), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), "missing", models.TimetableStatusArchived)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newTimetableRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetable_entries WHERE timetable_id = $1")).
		WithArgs("tt-1").
		WillReturnResult(sqlmock.NewResult(0, 30))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM timetables WHERE id = $1")).
		WithArgs("tt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "tt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
