package dto

import "time"

// TimetableQuery filters stored timetables.
type TimetableQuery struct {
	AcademicYear string `form:"academicYear" json:"academicYear"`
	Branch       string `form:"branch" json:"branch"`
	Year         int    `form:"year" json:"year"`
	Semester     int    `form:"semester" json:"semester"`
	Status       string `form:"status" json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Page         int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize     int    `form:"pageSize" json:"pageSize" validate:"omitempty,min=1,max=100"`
}

// TimetableResponse is one stored timetable version with its grid.
type TimetableResponse struct {
	ID           string          `json:"id"`
	AcademicYear string          `json:"academicYear"`
	Year         int             `json:"year"`
	Branch       string          `json:"branch"`
	CourseName   string          `json:"courseName"`
	Semester     int             `json:"semester"`
	RoomNumber   string          `json:"roomNumber,omitempty"`
	Days         int             `json:"days"`
	Periods      int             `json:"periods"`
	Version      int             `json:"version"`
	Status       string          `json:"status"`
	Cells        []TimetableCell `json:"cells,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TimetableSummary omits the grid for list endpoints.
type TimetableSummary struct {
	ID           string    `json:"id"`
	AcademicYear string    `json:"academicYear"`
	Year         int       `json:"year"`
	Branch       string    `json:"branch"`
	CourseName   string    `json:"courseName"`
	Semester     int       `json:"semester"`
	Version      int       `json:"version"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UpdateTimetableStatusRequest moves a version between lifecycle states.
type UpdateTimetableStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// FacultyScheduleCell is one commitment on a faculty member's week.
type FacultyScheduleCell struct {
	TimetableID string `json:"timetableId"`
	SectionKey  string `json:"sectionKey"`
	DayOfWeek   int    `json:"dayOfWeek"`
	Period      int    `json:"period"`
	Kind        string `json:"kind"`
	SubjectName string `json:"subjectName"`
	BatchLabel  string `json:"batchLabel,omitempty"`
}

// FacultyScheduleResponse is the cross-section view for one faculty
// member within one timetable's academic scope.
type FacultyScheduleResponse struct {
	FacultyID string                `json:"facultyId"`
	Cells     []FacultyScheduleCell `json:"cells"`
}
