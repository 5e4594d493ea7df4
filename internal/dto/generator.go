package dto

// RequirementRequest captures weekly demand for one subject-faculty pair.
type RequirementRequest struct {
	SubjectName  string `json:"subjectName" validate:"required"`
	FacultyID    string `json:"facultyId" validate:"required"`
	WeeklyHours  int    `json:"weeklyHours" validate:"required,min=1"`
	IsLab        bool   `json:"isLab"`
	BatchCount   int    `json:"batchCount" validate:"omitempty,min=1,max=12"`
	StationCount int    `json:"stationCount" validate:"omitempty,min=0,max=32"`
}

// SectionRequest describes one section and its weekly requirements.
type SectionRequest struct {
	AcademicYear string               `json:"academicYear" validate:"required"`
	Year         int                  `json:"year" validate:"required,min=1,max=6"`
	Branch       string               `json:"branch" validate:"required"`
	CourseName   string               `json:"courseName" validate:"required"`
	Semester     int                  `json:"semester" validate:"required,min=1,max=12"`
	RoomNumber   string               `json:"roomNumber"`
	Requirements []RequirementRequest `json:"requirements" validate:"required,min=1,dive"`
}

// GenerateTimetableRequest instructs the engine to build a proposal for
// one or more sections scheduled together. Grid dimensions default to
// the configured institution week when omitted; an explicit empty
// breakPeriods list or lunchPeriod of 0 disables them instead.
type GenerateTimetableRequest struct {
	Days          int              `json:"days" validate:"omitempty,min=1,max=7"`
	PeriodsPerDay int              `json:"periodsPerDay" validate:"omitempty,min=1,max=16"`
	BreakPeriods  []int            `json:"breakPeriods" validate:"omitempty,dive,min=1,max=16"`
	LunchPeriod   *int             `json:"lunchPeriod" validate:"omitempty,min=0,max=16"`
	Sections      []SectionRequest `json:"sections" validate:"required,min=1,dive"`
	Meta          map[string]any   `json:"meta"`
}

// TimetableCell is one rendered grid cell.
type TimetableCell struct {
	DayOfWeek   int     `json:"dayOfWeek"`
	Period      int     `json:"period"`
	Kind        string  `json:"kind"`
	SubjectName *string `json:"subjectName,omitempty"`
	FacultyID   *string `json:"facultyId,omitempty"`
	BatchLabel  *string `json:"batchLabel,omitempty"`
}

// RotationPairingResponse maps a lab batch to its station for one cycle.
type RotationPairingResponse struct {
	Batch   string `json:"batch"`
	Station string `json:"station"`
}

// RotationCycle is the full batch-to-station pairing for one cycle label.
type RotationCycle struct {
	Label    string                    `json:"label"`
	Pairings []RotationPairingResponse `json:"pairings"`
}

// SectionProposal is the generated grid for one section.
type SectionProposal struct {
	SectionKey string                     `json:"sectionKey"`
	Cells      []TimetableCell            `json:"cells"`
	Rotations  map[string][]RotationCycle `json:"rotations,omitempty"`
}

// GenerationStats summarises the search effort behind a proposal.
type GenerationStats struct {
	Nodes      int64 `json:"nodes"`
	Backtracks int64 `json:"backtracks"`
	MaxDepth   int   `json:"maxDepth"`
}

// GenerateTimetableResponse returns the built proposal. Proposals live
// in memory until saved or expired.
type GenerateTimetableResponse struct {
	ProposalID string            `json:"proposalId"`
	Sections   []SectionProposal `json:"sections"`
	Stats      GenerationStats   `json:"stats"`
}

// GenerateJobResponse acknowledges an asynchronous generation request.
type GenerateJobResponse struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// GenerateJobStatusResponse reports the state of an asynchronous run.
type GenerateJobStatusResponse struct {
	JobID  string                     `json:"jobId"`
	Status string                     `json:"status"`
	Error  string                     `json:"error,omitempty"`
	Result *GenerateTimetableResponse `json:"result,omitempty"`
}

// SaveTimetableRequest persists a proposal as a new timetable version.
type SaveTimetableRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
	Publish    bool   `json:"publish"`
}

// SaveTimetableResponse reports the persisted versions per section.
type SaveTimetableResponse struct {
	Timetables []TimetableResponse `json:"timetables"`
}

// ValidateSectionRequest pairs declared requirements with a hand-edited
// or stored grid for post-hoc validation.
type ValidateSectionRequest struct {
	Section SectionRequest  `json:"section" validate:"required"`
	Cells   []TimetableCell `json:"cells" validate:"required,min=1,dive"`
}

// ValidateTimetableRequest checks a set of grids without generating.
// Shape fields follow the same defaulting rules as generation requests.
type ValidateTimetableRequest struct {
	Days          int                      `json:"days" validate:"omitempty,min=1,max=7"`
	PeriodsPerDay int                      `json:"periodsPerDay" validate:"omitempty,min=1,max=16"`
	BreakPeriods  []int                    `json:"breakPeriods" validate:"omitempty,dive,min=1,max=16"`
	LunchPeriod   *int                     `json:"lunchPeriod" validate:"omitempty,min=0,max=16"`
	Sections      []ValidateSectionRequest `json:"sections" validate:"required,min=1,dive"`
}

// ConflictResponse is one double-booking found by validation.
type ConflictResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Period    int    `json:"period"`
	FacultyID string `json:"facultyId"`
	SectionA  string `json:"sectionA"`
	SectionB  string `json:"sectionB"`
}

// ValidateTimetableResponse reports the validation verdict.
type ValidateTimetableResponse struct {
	Valid     bool               `json:"valid"`
	Conflicts []ConflictResponse `json:"conflicts,omitempty"`
	Message   string             `json:"message,omitempty"`
}
