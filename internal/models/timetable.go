package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TimetableStatus represents lifecycle phases for committed timetables.
type TimetableStatus string

const (
	TimetableStatusDraft     TimetableStatus = "DRAFT"
	TimetableStatusPublished TimetableStatus = "PUBLISHED"
	TimetableStatusArchived  TimetableStatus = "ARCHIVED"
)

// Timetable captures a versioned, fully validated weekly grid for one section.
type Timetable struct {
	ID           string          `db:"id" json:"id"`
	AcademicYear string          `db:"academic_year" json:"academic_year"`
	Year         int             `db:"year" json:"year"`
	Branch       string          `db:"branch" json:"branch"`
	CourseName   string          `db:"course_name" json:"course_name"`
	Semester     int             `db:"semester" json:"semester"`
	RoomNumber   string          `db:"room_number" json:"room_number"`
	Days         int             `db:"days" json:"days"`
	Periods      int             `db:"periods" json:"periods"`
	Version      int             `db:"version" json:"version"`
	Status       TimetableStatus `db:"status" json:"status"`
	Meta         types.JSONText  `db:"meta" json:"meta"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Section rebuilds the section identity embedded in the row.
func (t Timetable) Section() Section {
	return Section{
		AcademicYear: t.AcademicYear,
		Year:         t.Year,
		Branch:       t.Branch,
		CourseName:   t.CourseName,
		Semester:     t.Semester,
		RoomNumber:   t.RoomNumber,
	}
}

// TimetableEntry is one grid cell of a committed timetable. Break and
// lunch cells carry no faculty; class and lab cells always do.
type TimetableEntry struct {
	ID          string    `db:"id" json:"id"`
	TimetableID string    `db:"timetable_id" json:"timetable_id"`
	DayOfWeek   int       `db:"day_of_week" json:"day_of_week"`
	Period      int       `db:"period" json:"period"`
	Kind        string    `db:"kind" json:"kind"`
	SubjectName *string   `db:"subject_name" json:"subject_name,omitempty"`
	FacultyID   *string   `db:"faculty_id" json:"faculty_id,omitempty"`
	BatchLabel  *string   `db:"batch_label" json:"batch_label,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TimetableFilter describes query params for listing timetables.
type TimetableFilter struct {
	AcademicYear string
	Branch       string
	Year         int
	Semester     int
	Status       string
	Page         int
	PageSize     int
}
