package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/timetable-api/internal/models"
)

const timetableColumns = "id, academic_year, year, branch, course_name, semester, room_number, days, periods, version, status, meta, created_at, updated_at"

// TimetableRepository provides persistence for versioned timetables and
// their grid entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// List returns timetables with optional filtering and pagination.
func (r *TimetableRepository) List(ctx context.Context, filter models.TimetableFilter) ([]models.Timetable, int, error) {
	base := "FROM timetables WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("academic_year = $%d", len(args)+1))
		args = append(args, filter.AcademicYear)
	}
	if filter.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("branch = $%d", len(args)+1))
		args = append(args, filter.Branch)
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Semester != 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY academic_year DESC, branch ASC, year ASC, semester ASC, version DESC LIMIT %d OFFSET %d", timetableColumns, base, size, offset)
	var timetables []models.Timetable
	if err := r.db.SelectContext(ctx, &timetables, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list timetables: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count timetables: %w", err)
	}

	return timetables, total, nil
}

// FindByID loads a timetable by id.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	query := fmt.Sprintf("SELECT %s FROM timetables WHERE id = $1", timetableColumns)
	var t models.Timetable
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindEntries returns the grid cells of one timetable in canonical order.
func (r *TimetableRepository) FindEntries(ctx context.Context, timetableID string) ([]models.TimetableEntry, error) {
	const query = `SELECT id, timetable_id, day_of_week, period, kind, subject_name, faculty_id, batch_label, created_at FROM timetable_entries WHERE timetable_id = $1 ORDER BY day_of_week ASC, period ASC`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, timetableID); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return entries, nil
}

// FindEntriesByFaculty returns one faculty member's cells across every
// timetable sharing the given timetable's academic scope.
func (r *TimetableRepository) FindEntriesByFaculty(ctx context.Context, timetableID, facultyID string) ([]models.TimetableEntry, error) {
	const query = `SELECT e.id, e.timetable_id, e.day_of_week, e.period, e.kind, e.subject_name, e.faculty_id, e.batch_label, e.created_at
		FROM timetable_entries e
		JOIN timetables t ON t.id = e.timetable_id
		JOIN timetables scope ON scope.id = $1
		WHERE e.faculty_id = $2
		  AND t.academic_year = scope.academic_year
		  AND t.status = 'PUBLISHED'
		ORDER BY e.day_of_week ASC, e.period ASC`
	var entries []models.TimetableEntry
	if err := r.db.SelectContext(ctx, &entries, query, timetableID, facultyID); err != nil {
		return nil, fmt.Errorf("list entries by faculty: %w", err)
	}
	return entries, nil
}

// FindTimetablesByIDs loads the parent rows for a set of entries.
func (r *TimetableRepository) FindTimetablesByIDs(ctx context.Context, ids []string) ([]models.Timetable, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT %s FROM timetables WHERE id IN (?)", timetableColumns), ids)
	if err != nil {
		return nil, fmt.Errorf("build timetable id query: %w", err)
	}
	query = r.db.Rebind(query)
	var timetables []models.Timetable
	if err := r.db.SelectContext(ctx, &timetables, query, args...); err != nil {
		return nil, fmt.Errorf("list timetables by ids: %w", err)
	}
	return timetables, nil
}

// SaveVersion stores a timetable and its entries atomically, assigning
// the next version for its section. Publishing archives every older
// version of the same section within the same transaction.
func (r *TimetableRepository) SaveVersion(ctx context.Context, t *models.Timetable, entries []models.TimetableEntry) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save timetable: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const versionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM timetables WHERE academic_year = $1 AND branch = $2 AND year = $3 AND semester = $4`
	if err = tx.GetContext(ctx, &t.Version, versionQuery, t.AcademicYear, t.Branch, t.Year, t.Semester); err != nil {
		return fmt.Errorf("next timetable version: %w", err)
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if t.Status == models.TimetableStatusPublished {
		const archiveQuery = `UPDATE timetables SET status = 'ARCHIVED', updated_at = $5 WHERE academic_year = $1 AND branch = $2 AND year = $3 AND semester = $4 AND status = 'PUBLISHED'`
		if _, err = tx.ExecContext(ctx, archiveQuery, t.AcademicYear, t.Branch, t.Year, t.Semester, now); err != nil {
			return fmt.Errorf("archive published timetables: %w", err)
		}
	}

	const insertQuery = `INSERT INTO timetables (id, academic_year, year, branch, course_name, semester, room_number, days, periods, version, status, meta, created_at, updated_at) VALUES (:id, :academic_year, :year, :branch, :course_name, :semester, :room_number, :days, :periods, :version, :status, :meta, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, t); err != nil {
		return fmt.Errorf("insert timetable: %w", err)
	}

	if err = r.bulkInsertEntries(ctx, tx, t.ID, entries); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save timetable: %w", err)
	}
	return nil
}

func (r *TimetableRepository) bulkInsertEntries(ctx context.Context, exec sqlx.ExtContext, timetableID string, entries []models.TimetableEntry) error {
	const query = `INSERT INTO timetable_entries (id, timetable_id, day_of_week, period, kind, subject_name, faculty_id, batch_label, created_at) VALUES (:id, :timetable_id, :day_of_week, :period, :kind, :subject_name, :faculty_id, :batch_label, :created_at)`
	now := time.Now().UTC()
	for i := range entries {
		payload := entries[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		payload.TimetableID = timetableID
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, exec, query, payload); err != nil {
			return fmt.Errorf("insert timetable entry (%d,%d): %w", payload.DayOfWeek, payload.Period, err)
		}
	}
	return nil
}

// UpdateStatus moves one version between lifecycle states. Publishing
// archives the section's currently published version first.
func (r *TimetableRepository) UpdateStatus(ctx context.Context, id string, status models.TimetableStatus) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update timetable status: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if status == models.TimetableStatusPublished {
		const archiveQuery = `UPDATE timetables SET status = 'ARCHIVED', updated_at = $2
			WHERE status = 'PUBLISHED' AND id <> $1
			  AND (academic_year, branch, year, semester) = (SELECT academic_year, branch, year, semester FROM timetables WHERE id = $1)`
		if _, err = tx.ExecContext(ctx, archiveQuery, id, now); err != nil {
			return fmt.Errorf("archive published timetables: %w", err)
		}
	}

	const query = `UPDATE timetables SET status = $2, updated_at = $3 WHERE id = $1`
	res, execErr := tx.ExecContext(ctx, query, id, status, now)
	if execErr != nil {
		err = fmt.Errorf("update timetable status: %w", execErr)
		return err
	}
	rows, raErr := res.RowsAffected()
	if raErr == nil && rows == 0 {
		err = fmt.Errorf("timetable %s not found", id)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update timetable status: %w", err)
	}
	return nil
}

// Delete removes a timetable and its entries.
func (r *TimetableRepository) Delete(ctx context.Context, id string) error {
	const entriesQuery = `DELETE FROM timetable_entries WHERE timetable_id = $1`
	if _, err := r.db.ExecContext(ctx, entriesQuery, id); err != nil {
		return fmt.Errorf("delete timetable entries: %w", err)
	}
	const query = `DELETE FROM timetables WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete timetable: %w", err)
	}
	return nil
}
