package models

import "fmt"

// Section identifies one scheduled unit: a branch/year/semester cohort
// occupying a fixed room for the academic year.
type Section struct {
	AcademicYear string `json:"academic_year"`
	Year         int    `json:"year"`
	Branch       string `json:"branch"`
	CourseName   string `json:"course_name"`
	Semester     int    `json:"semester"`
	RoomNumber   string `json:"room_number"`
}

// Key returns the canonical identity used to track the section across a
// generation run and in persisted timetables.
func (s Section) Key() string {
	return fmt.Sprintf("%s/%s/%d/%d", s.AcademicYear, s.Branch, s.Year, s.Semester)
}

// Requirement is one subject's weekly teaching-hour obligation for a
// section, tied to a single faculty member.
type Requirement struct {
	SubjectName  string `json:"subject_name"`
	FacultyID    string `json:"faculty_id"`
	WeeklyHours  int    `json:"weekly_hours"`
	IsLab        bool   `json:"is_lab"`
	BatchCount   int    `json:"batch_count,omitempty"`
	StationCount int    `json:"station_count,omitempty"`
}
