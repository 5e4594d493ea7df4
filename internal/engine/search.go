package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DefaultNodeBudget bounds placement attempts per run when the caller
// does not supply a budget.
const DefaultNodeBudget = 2_000_000

// Requirement is the engine-local view of one subject's weekly demand.
type Requirement struct {
	Subject      string
	FacultyID    string
	WeeklyHours  int
	IsLab        bool
	BatchCount   int
	StationCount int
}

// SectionInput bundles one section's grid shape and requirements for a
// generation run. Inputs are read-only during the run.
type SectionInput struct {
	Key          string
	Shape        Shape
	Requirements []Requirement
}

// SearchConfig governs search behaviour.
type SearchConfig struct {
	NodeBudget int64
	Logger     *zap.Logger
}

// SearchStats summarises one run for diagnostics.
type SearchStats struct {
	Nodes      int64 `json:"nodes"`
	Backtracks int64 `json:"backtracks"`
	MaxDepth   int   `json:"max_depth"`
}

// SectionResult pairs a section key with its completed grid.
type SectionResult struct {
	Key  string
	Grid *Grid
}

// Result is a complete, conflict-free assignment for every section
// submitted together. Partial grids are never returned.
type Result struct {
	Sections  []SectionResult
	Rotations map[string]*RotationPlan
	Stats     SearchStats
}

// Generate assigns every requirement's weekly hours across the submitted
// sections, or explains why it cannot. All sections of one call share a
// single fresh ConflictIndex, so faculty can never be double-booked
// within the run. Cancellation is honoured between transactions.
func Generate(ctx context.Context, sections []SectionInput, cfg SearchConfig) (*Result, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.NodeBudget <= 0 {
		cfg.NodeBudget = DefaultNodeBudget
	}

	s, err := newSearcher(sections, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.run(ctx); err != nil {
		return nil, err
	}

	result := &Result{
		Sections:  make([]SectionResult, 0, len(sections)),
		Rotations: make(map[string]*RotationPlan),
		Stats:     s.stats,
	}
	for i, section := range sections {
		result.Sections = append(result.Sections, SectionResult{Key: section.Key, Grid: s.grids[i]})
	}
	for i, plan := range s.plans {
		if plan == nil {
			continue
		}
		it := s.items[i]
		req := sections[it.section].Requirements[it.req]
		result.Rotations[rotationKey(sections[it.section].Key, req.Subject)] = plan
	}

	cfg.Logger.Debug("generation complete",
		zap.Int("sections", len(sections)),
		zap.Int64("nodes", s.stats.Nodes),
		zap.Int64("backtracks", s.stats.Backtracks),
		zap.Int("max_depth", s.stats.MaxDepth),
	)
	return result, nil
}

func rotationKey(section, subject string) string {
	return fmt.Sprintf("%s/%s", section, subject)
}

// workItem tracks unplaced hours for one requirement.
type workItem struct {
	section   int
	req       int
	remaining int
}

// cell addresses one grid slot.
type cell struct {
	day    int
	period int
}

// frame is one explicit backtracking step: which item it schedules,
// which candidates remain, and the cell currently held (when placed).
// An explicit stack keeps budget accounting and depth diagnostics away
// from the call stack.
type frame struct {
	item    int
	candIdx int
	cands   []cell
	day     int
	period  int
	placed  bool
}

type searcher struct {
	sections []SectionInput
	grids    []*Grid
	index    *ConflictIndex
	items    []workItem
	plans    []*RotationPlan
	cfg      SearchConfig

	remainingTotal int
	stats          SearchStats
}

// newSearcher runs all fail-fast preconditions and sets up run-scoped
// state. Nothing is mutated once an error is returned.
func newSearcher(sections []SectionInput, cfg SearchConfig) (*searcher, error) {
	s := &searcher{sections: sections, cfg: cfg, index: NewConflictIndex()}

	for si, section := range sections {
		if section.Key == "" {
			return nil, fmt.Errorf("section %d has no key", si)
		}
		if err := section.Shape.Validate(); err != nil {
			return nil, err
		}

		open := section.Shape.OpenSlots()
		total := 0
		pairs := make(map[requirementKey]bool, len(section.Requirements))
		for ri, req := range section.Requirements {
			if req.WeeklyHours < 1 {
				return nil, &InvalidRequirementError{Section: section.Key, Subject: req.Subject, Reason: "weekly hours must be positive"}
			}
			if req.Subject == "" || req.FacultyID == "" {
				return nil, &InvalidRequirementError{Section: section.Key, Subject: req.Subject, Reason: "subject and faculty are required"}
			}
			// Grid entries carry only subject and faculty, so two
			// requirements sharing both would be indistinguishable on
			// replay.
			pair := requirementKey{Subject: req.Subject, FacultyID: req.FacultyID}
			if pairs[pair] {
				return nil, &InvalidRequirementError{Section: section.Key, Subject: req.Subject, Reason: "duplicate requirement for faculty " + req.FacultyID}
			}
			pairs[pair] = true
			if req.WeeklyHours > open {
				return nil, &CapacityError{Section: section.Key, Subject: req.Subject, Required: req.WeeklyHours, Open: open}
			}
			total += req.WeeklyHours

			var plan *RotationPlan
			if req.IsLab {
				var err error
				plan, err = PlanRotation(section.Key, req.Subject, req.BatchCount, req.StationCount)
				if err != nil {
					return nil, err
				}
			}
			s.plans = append(s.plans, plan)
			s.items = append(s.items, workItem{section: si, req: ri, remaining: req.WeeklyHours})
			s.remainingTotal += req.WeeklyHours
		}
		if total > open {
			return nil, &CapacityError{Section: section.Key, Required: total, Open: open}
		}
	}

	for _, section := range sections {
		grid, err := NewGrid(section.Shape)
		if err != nil {
			return nil, err
		}
		s.grids = append(s.grids, grid)
	}
	return s, nil
}

// run is the depth-first assignment loop. The minimum-remaining-values
// heuristic picks the next requirement; candidates are tried in
// canonical (day, period) order so identical inputs always produce
// identical output.
func (s *searcher) run(ctx context.Context) error {
	stack := make([]frame, 0, s.remainingTotal)

	for {
		if err := ctx.Err(); err != nil {
			s.unwind(stack)
			return &SearchAbortedError{Nodes: s.stats.Nodes, Cause: err.Error()}
		}
		if s.remainingTotal == 0 {
			return nil
		}

		if len(stack) == 0 || stack[len(stack)-1].placed {
			item := s.selectItem()
			stack = append(stack, frame{item: item, cands: s.candidates(item)})
			if len(stack) > s.stats.MaxDepth {
				s.stats.MaxDepth = len(stack)
			}
		}

		f := &stack[len(stack)-1]
		placed := false
		for f.candIdx < len(f.cands) {
			c := f.cands[f.candIdx]
			f.candIdx++
			s.stats.Nodes++
			if s.stats.Nodes > s.cfg.NodeBudget {
				s.unwind(stack)
				return &SearchAbortedError{Nodes: s.stats.Nodes, Cause: "node budget exhausted"}
			}
			if s.tryPlace(f.item, c.day, c.period) {
				f.day, f.period, f.placed = c.day, c.period, true
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		exhausted := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.stats.Backtracks++
		if len(stack) == 0 {
			it := s.items[exhausted.item]
			req := s.sections[it.section].Requirements[it.req]
			return &InfeasibleError{Section: s.sections[it.section].Key, Subject: req.Subject, FacultyID: req.FacultyID}
		}
		s.undo(&stack[len(stack)-1])
	}
}

// selectItem returns the unfinished requirement with the fewest open,
// faculty-compatible cells; ties break on work-list order.
func (s *searcher) selectItem() int {
	best := -1
	bestCount := int(^uint(0) >> 1)
	for i := range s.items {
		if s.items[i].remaining == 0 {
			continue
		}
		n := s.candidateCount(i)
		if n < bestCount {
			best, bestCount = i, n
		}
	}
	return best
}

func (s *searcher) candidateCount(item int) int {
	it := s.items[item]
	req := s.sections[it.section].Requirements[it.req]
	grid := s.grids[it.section]
	shape := grid.Shape()
	count := 0
	for day := 1; day <= shape.Days; day++ {
		for period := 1; period <= shape.Periods; period++ {
			if !grid.IsOpen(day, period) {
				continue
			}
			if _, busy := s.index.Holder(day, period, req.FacultyID); busy {
				continue
			}
			count++
		}
	}
	return count
}

func (s *searcher) candidates(item int) []cell {
	it := s.items[item]
	req := s.sections[it.section].Requirements[it.req]
	grid := s.grids[it.section]
	shape := grid.Shape()
	var cands []cell
	for day := 1; day <= shape.Days; day++ {
		for period := 1; period <= shape.Periods; period++ {
			if !grid.IsOpen(day, period) {
				continue
			}
			if _, busy := s.index.Holder(day, period, req.FacultyID); busy {
				continue
			}
			cands = append(cands, cell{day: day, period: period})
		}
	}
	return cands
}

// tryPlace runs the place+reserve transaction; both succeed or neither.
func (s *searcher) tryPlace(item, day, period int) bool {
	it := &s.items[item]
	section := s.sections[it.section]
	req := section.Requirements[it.req]

	if err := s.index.Reserve(day, period, req.FacultyID, section.Key); err != nil {
		return false
	}

	var entry Entry
	if req.IsLab {
		plan := s.plans[item]
		offset := (req.WeeklyHours - it.remaining) % plan.Batches()
		entry = LabEntry(req.Subject, req.FacultyID, plan.CycleLabel(offset))
	} else {
		entry = ClassEntry(req.Subject, req.FacultyID)
	}

	if err := s.grids[it.section].Place(day, period, entry); err != nil {
		_ = s.index.Release(day, period, req.FacultyID)
		return false
	}

	it.remaining--
	s.remainingTotal--
	return true
}

// undo rolls back the frame's transaction so its next candidate can be
// tried.
func (s *searcher) undo(f *frame) {
	it := &s.items[f.item]
	req := s.sections[it.section].Requirements[it.req]
	_ = s.grids[it.section].Remove(f.day, f.period)
	_ = s.index.Release(f.day, f.period, req.FacultyID)
	it.remaining++
	s.remainingTotal++
	f.placed = false
}

// unwind rolls back every committed frame before an abort so no
// half-committed state escapes, even though aborted grids are discarded.
func (s *searcher) unwind(stack []frame) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].placed {
			s.undo(&stack[i])
		}
	}
}
