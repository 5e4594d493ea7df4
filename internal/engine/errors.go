package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors recovered internally by the search; they never surface
// past the engine boundary during generation.
var (
	ErrCellOccupied      = errors.New("cell already occupied")
	ErrNoSuchReservation = errors.New("no reservation held for faculty at slot")
)

// InvalidSlotError reports a placement aimed at a break, lunch or
// out-of-range slot.
type InvalidSlotError struct {
	Day    int
	Period int
}

func (e *InvalidSlotError) Error() string {
	return fmt.Sprintf("slot (%d,%d) is not assignable", e.Day, e.Period)
}

// CellNotAssignableError reports a removal aimed at a cell that holds no
// class or lab entry.
type CellNotAssignableError struct {
	Day    int
	Period int
}

func (e *CellNotAssignableError) Error() string {
	return fmt.Sprintf("cell (%d,%d) holds no removable entry", e.Day, e.Period)
}

// FacultyConflictError reports a reservation attempt against a slot the
// faculty member already holds for another section.
type FacultyConflictError struct {
	Day       int
	Period    int
	FacultyID string
	HeldBy    string
}

func (e *FacultyConflictError) Error() string {
	return fmt.Sprintf("faculty %s already committed to %s at (%d,%d)", e.FacultyID, e.HeldBy, e.Day, e.Period)
}

// InvalidRequirementError reports a requirement that violates its own
// invariants before any search work begins.
type InvalidRequirementError struct {
	Section string
	Subject string
	Reason  string
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("requirement %s/%s: %s", e.Section, e.Subject, e.Reason)
}

// InsufficientStationsError reports a lab requirement with more batches
// than configured stations. Raised before any grid mutation.
type InsufficientStationsError struct {
	Section  string
	Subject  string
	Batches  int
	Stations int
}

func (e *InsufficientStationsError) Error() string {
	return fmt.Sprintf("lab %s/%s has %d batches but only %d stations", e.Section, e.Subject, e.Batches, e.Stations)
}

// CapacityError reports weekly hours that cannot fit the open slots of a
// section grid. Subject is empty when the aggregate demand overflows.
type CapacityError struct {
	Section  string
	Subject  string
	Required int
	Open     int
}

func (e *CapacityError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("section %s requires %d hours but has %d open slots", e.Section, e.Required, e.Open)
	}
	return fmt.Sprintf("requirement %s/%s needs %d hours but section has %d open slots", e.Section, e.Subject, e.Required, e.Open)
}

// InfeasibleError is the terminal outcome of an exhausted search: no
// candidate ordering satisfies every requirement.
type InfeasibleError struct {
	Section   string
	Subject   string
	FacultyID string
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("no conflict-free assignment exists; first unsatisfiable requirement: %s/%s (faculty %s)", e.Section, e.Subject, e.FacultyID)
}

// SearchAbortedError distinguishes "gave up" from "proven impossible".
type SearchAbortedError struct {
	Nodes int64
	Cause string
}

func (e *SearchAbortedError) Error() string {
	return fmt.Sprintf("search aborted after %d nodes: %s", e.Nodes, e.Cause)
}

// SlotConflict is one double-booking found by the validator.
type SlotConflict struct {
	Day       int    `json:"day"`
	Period    int    `json:"period"`
	FacultyID string `json:"faculty_id"`
	SectionA  string `json:"section_a"`
	SectionB  string `json:"section_b"`
}

// ValidationError carries the full conflict set of an invalid grid batch.
type ValidationError struct {
	Conflicts []SlotConflict
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d faculty conflicts", len(e.Conflicts))
}

// RequirementUnmetError reports a placed-hours mismatch. HoursShort is
// negative when a subject-faculty pair is over-placed or unknown to the
// section.
type RequirementUnmetError struct {
	Section    string
	Subject    string
	FacultyID  string
	HoursShort int
}

func (e *RequirementUnmetError) Error() string {
	return fmt.Sprintf("requirement %s/%s (faculty %s) is short %d hours", e.Section, e.Subject, e.FacultyID, e.HoursShort)
}
