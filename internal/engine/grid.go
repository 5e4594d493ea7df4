package engine

import "fmt"

// EntryKind discriminates the closed set of cell variants.
type EntryKind uint8

const (
	EntryEmpty EntryKind = iota
	EntryBreak
	EntryLunch
	EntryClass
	EntryLab
)

// String returns the persisted name of the kind.
func (k EntryKind) String() string {
	switch k {
	case EntryEmpty:
		return "EMPTY"
	case EntryBreak:
		return "BREAK"
	case EntryLunch:
		return "LUNCH"
	case EntryClass:
		return "CLASS"
	case EntryLab:
		return "LAB"
	default:
		return "UNKNOWN"
	}
}

// Entry is one grid cell. Construct class and lab entries through
// ClassEntry/LabEntry so break and lunch cells can never carry a faculty.
type Entry struct {
	Kind      EntryKind
	Subject   string
	FacultyID string
	Batch     string
}

// ClassEntry builds a theory-hour cell.
func ClassEntry(subject, facultyID string) Entry {
	return Entry{Kind: EntryClass, Subject: subject, FacultyID: facultyID}
}

// LabEntry builds a lab-hour cell stamped with its rotation cycle label.
func LabEntry(subject, facultyID, batch string) Entry {
	return Entry{Kind: EntryLab, Subject: subject, FacultyID: facultyID, Batch: batch}
}

// Shape fixes the day/period dimensions of a section grid and the
// immutable break and lunch periods.
type Shape struct {
	Days         int
	Periods      int
	BreakPeriods []int
	LunchPeriod  int
}

// Validate checks the shape invariants.
func (s Shape) Validate() error {
	if s.Days < 1 || s.Periods < 1 {
		return fmt.Errorf("grid shape must have positive days and periods, got %dx%d", s.Days, s.Periods)
	}
	for _, p := range s.BreakPeriods {
		if p < 1 || p > s.Periods {
			return fmt.Errorf("break period %d outside 1..%d", p, s.Periods)
		}
		if p == s.LunchPeriod {
			return fmt.Errorf("period %d cannot be both break and lunch", p)
		}
	}
	if s.LunchPeriod != 0 && (s.LunchPeriod < 1 || s.LunchPeriod > s.Periods) {
		return fmt.Errorf("lunch period %d outside 1..%d", s.LunchPeriod, s.Periods)
	}
	return nil
}

// OpenPeriodsPerDay counts assignable periods in one day.
func (s Shape) OpenPeriodsPerDay() int {
	open := s.Periods - len(s.BreakPeriods)
	if s.LunchPeriod != 0 {
		open--
	}
	return open
}

// OpenSlots counts assignable cells across the week.
func (s Shape) OpenSlots() int {
	return s.Days * s.OpenPeriodsPerDay()
}

// Grid is the day-by-period cell matrix for one section. Days and
// periods are 1-based.
type Grid struct {
	shape Shape
	cells []Entry
}

// NewGrid returns a grid with break and lunch cells pre-marked and every
// other cell empty.
func NewGrid(shape Shape) (*Grid, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{shape: shape, cells: make([]Entry, shape.Days*shape.Periods)}
	for day := 1; day <= shape.Days; day++ {
		for _, p := range shape.BreakPeriods {
			g.cells[g.index(day, p)] = Entry{Kind: EntryBreak}
		}
		if shape.LunchPeriod != 0 {
			g.cells[g.index(day, shape.LunchPeriod)] = Entry{Kind: EntryLunch}
		}
	}
	return g, nil
}

// Shape returns the grid dimensions.
func (g *Grid) Shape() Shape {
	return g.shape
}

func (g *Grid) index(day, period int) int {
	return (day-1)*g.shape.Periods + (period - 1)
}

func (g *Grid) inRange(day, period int) bool {
	return day >= 1 && day <= g.shape.Days && period >= 1 && period <= g.shape.Periods
}

// At returns the entry at (day, period); out-of-range reads yield an
// empty entry.
func (g *Grid) At(day, period int) Entry {
	if !g.inRange(day, period) {
		return Entry{}
	}
	return g.cells[g.index(day, period)]
}

// IsOpen reports whether the cell is empty and assignable.
func (g *Grid) IsOpen(day, period int) bool {
	return g.inRange(day, period) && g.cells[g.index(day, period)].Kind == EntryEmpty
}

// Place writes a class or lab entry into an open cell. It touches only
// the single cell addressed.
func (g *Grid) Place(day, period int, e Entry) error {
	if e.Kind != EntryClass && e.Kind != EntryLab {
		return fmt.Errorf("only class and lab entries are placeable, got %s", e.Kind)
	}
	if !g.inRange(day, period) {
		return &InvalidSlotError{Day: day, Period: period}
	}
	switch g.cells[g.index(day, period)].Kind {
	case EntryBreak, EntryLunch:
		return &InvalidSlotError{Day: day, Period: period}
	case EntryClass, EntryLab:
		return ErrCellOccupied
	}
	g.cells[g.index(day, period)] = e
	return nil
}

// Remove resets a class or lab cell to empty; break, lunch and empty
// cells are untouchable.
func (g *Grid) Remove(day, period int) error {
	if !g.inRange(day, period) {
		return &CellNotAssignableError{Day: day, Period: period}
	}
	switch g.cells[g.index(day, period)].Kind {
	case EntryClass, EntryLab:
		g.cells[g.index(day, period)] = Entry{}
		return nil
	default:
		return &CellNotAssignableError{Day: day, Period: period}
	}
}

// ForEach visits every cell in canonical (day, period) order.
func (g *Grid) ForEach(fn func(day, period int, e Entry)) {
	for day := 1; day <= g.shape.Days; day++ {
		for period := 1; period <= g.shape.Periods; period++ {
			fn(day, period, g.cells[g.index(day, period)])
		}
	}
}
