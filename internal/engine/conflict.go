package engine

// slotKey identifies one faculty commitment at one weekly slot.
type slotKey struct {
	Day       int
	Period    int
	FacultyID string
}

// ConflictIndex records which section holds each faculty member at each
// (day, period) across one generation run. It is the single source of
// truth for the no-double-booking invariant and is owned exclusively by
// the in-flight run.
type ConflictIndex struct {
	held map[slotKey]string
}

// NewConflictIndex returns an empty index scoped to one run.
func NewConflictIndex() *ConflictIndex {
	return &ConflictIndex{held: make(map[slotKey]string)}
}

// Reserve claims (day, period) for the faculty on behalf of section.
// Callers must pair Reserve with Grid.Place and roll both back together.
func (c *ConflictIndex) Reserve(day, period int, facultyID, section string) error {
	key := slotKey{Day: day, Period: period, FacultyID: facultyID}
	if holder, ok := c.held[key]; ok {
		return &FacultyConflictError{Day: day, Period: period, FacultyID: facultyID, HeldBy: holder}
	}
	c.held[key] = section
	return nil
}

// Release clears a reservation during backtracking.
func (c *ConflictIndex) Release(day, period int, facultyID string) error {
	key := slotKey{Day: day, Period: period, FacultyID: facultyID}
	if _, ok := c.held[key]; !ok {
		return ErrNoSuchReservation
	}
	delete(c.held, key)
	return nil
}

// Holder reports which section, if any, holds the faculty at the slot.
func (c *ConflictIndex) Holder(day, period int, facultyID string) (string, bool) {
	section, ok := c.held[slotKey{Day: day, Period: period, FacultyID: facultyID}]
	return section, ok
}

// Len returns the number of live reservations.
func (c *ConflictIndex) Len() int {
	return len(c.held)
}
