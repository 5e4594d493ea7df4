package engine

import (
	"errors"
	"fmt"
)

// Validator checks finished grids independently of the search that
// produced them. It shares no state with a generation run, so it also
// covers grids edited by hand or loaded from storage.
type Validator struct{}

// NewValidator returns a stateless validator.
func NewValidator() *Validator {
	return &Validator{}
}

// requirementKey is the identity a grid entry can carry: sections may
// declare the same subject under different faculty, so hours are counted
// per pair, never per subject name alone.
type requirementKey struct {
	Subject   string
	FacultyID string
}

// Validate replays every class and lab entry of every grid through a
// fresh conflict index and recounts placed hours per subject-faculty
// pair against the declared requirements. Double-bookings are collected
// exhaustively into one ValidationError; hour mismatches surface as the
// first RequirementUnmetError in canonical order.
func (v *Validator) Validate(sections []SectionInput, results []SectionResult) error {
	inputs := make(map[string]SectionInput, len(sections))
	for _, s := range sections {
		inputs[s.Key] = s
	}

	index := NewConflictIndex()
	var conflicts []SlotConflict
	placed := make(map[string]map[requirementKey]int, len(results))

	for _, r := range results {
		if r.Grid == nil {
			return fmt.Errorf("section %s has no grid", r.Key)
		}
		hours := make(map[requirementKey]int)
		placed[r.Key] = hours
		r.Grid.ForEach(func(day, period int, e Entry) {
			if e.Kind != EntryClass && e.Kind != EntryLab {
				return
			}
			hours[requirementKey{Subject: e.Subject, FacultyID: e.FacultyID}]++
			if err := index.Reserve(day, period, e.FacultyID, r.Key); err != nil {
				var fc *FacultyConflictError
				if errors.As(err, &fc) {
					conflicts = append(conflicts, SlotConflict{
						Day:       day,
						Period:    period,
						FacultyID: e.FacultyID,
						SectionA:  fc.HeldBy,
						SectionB:  r.Key,
					})
				}
			}
		})
	}
	if len(conflicts) > 0 {
		return &ValidationError{Conflicts: conflicts}
	}

	for _, r := range results {
		input, ok := inputs[r.Key]
		if !ok {
			return fmt.Errorf("section %s has no declared requirements", r.Key)
		}
		hours := placed[r.Key]
		required := make(map[requirementKey]int, len(input.Requirements))
		for _, req := range input.Requirements {
			required[requirementKey{Subject: req.Subject, FacultyID: req.FacultyID}] += req.WeeklyHours
		}
		checked := make(map[requirementKey]bool, len(required))
		for _, req := range input.Requirements {
			key := requirementKey{Subject: req.Subject, FacultyID: req.FacultyID}
			if checked[key] {
				continue
			}
			checked[key] = true
			if got := hours[key]; got != required[key] {
				return &RequirementUnmetError{Section: r.Key, Subject: req.Subject, FacultyID: req.FacultyID, HoursShort: required[key] - got}
			}
		}
		for day := 1; day <= input.Shape.Days; day++ {
			for period := 1; period <= input.Shape.Periods; period++ {
				e := r.Grid.At(day, period)
				if e.Kind != EntryClass && e.Kind != EntryLab {
					continue
				}
				key := requirementKey{Subject: e.Subject, FacultyID: e.FacultyID}
				if _, ok := required[key]; !ok {
					return &RequirementUnmetError{Section: r.Key, Subject: e.Subject, FacultyID: e.FacultyID, HoursShort: -hours[key]}
				}
			}
		}
	}
	return nil
}
