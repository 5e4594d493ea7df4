package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/engine"
	"github.com/campuskit/timetable-api/internal/models"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
	"github.com/campuskit/timetable-api/pkg/jobs"
)

type timetableWriter interface {
	SaveVersion(ctx context.Context, t *models.Timetable, entries []models.TimetableEntry) error
}

type facultyRoster interface {
	FindActiveByIDs(ctx context.Context, ids []string) ([]models.Faculty, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type generationEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// Async job lifecycle states.
const (
	JobStatusPending = "PENDING"
	JobStatusRunning = "RUNNING"
	JobStatusReady   = "READY"
	JobStatusFailed  = "FAILED"
)

const generateJobType = "timetable.generate"

// GeneratorService runs the constraint engine, parks proposals in memory
// until they are saved or expire, and persists accepted proposals as new
// timetable versions.
type GeneratorService struct {
	timetables timetableWriter
	roster     facultyRoster
	cache      cacheInvalidator
	queue      generationEnqueuer
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	cfg        GeneratorConfig

	store *proposalStore
	jobs  *jobStore
}

// GeneratorConfig governs engine defaults and proposal retention.
type GeneratorConfig struct {
	Days          int
	PeriodsPerDay int
	BreakPeriods  []int
	LunchPeriod   int
	NodeBudget    int64
	RunTimeout    time.Duration
	ProposalTTL   time.Duration
}

// NewGeneratorService wires generator dependencies.
func NewGeneratorService(
	timetables timetableWriter,
	roster facultyRoster,
	cache cacheInvalidator,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg GeneratorConfig,
) *GeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Days <= 0 {
		cfg.Days = 6
	}
	if cfg.PeriodsPerDay <= 0 {
		cfg.PeriodsPerDay = 8
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Second
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	return &GeneratorService{
		timetables: timetables,
		roster:     roster,
		cache:      cache,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		cfg:        cfg,
		store:      newProposalStore(cfg.ProposalTTL),
		jobs:       newJobStore(cfg.ProposalTTL),
	}
}

// AttachQueue connects the background queue used by GenerateAsync. The
// queue's handler must be HandleGenerateJob.
func (s *GeneratorService) AttachQueue(queue generationEnqueuer) {
	s.queue = queue
}

// Generate runs a synchronous generation and parks the proposal.
func (s *GeneratorService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	return s.generate(ctx, req)
}

func (s *GeneratorService) generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	shape := s.shapeFromRequest(req.Days, req.PeriodsPerDay, req.BreakPeriods, req.LunchPeriod)
	if err := shape.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grid shape")
	}

	sections, inputs, err := buildSectionInputs(req.Sections, shape)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFacultyActive(ctx, inputs); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	result, err := engine.Generate(runCtx, inputs, engine.SearchConfig{NodeBudget: s.cfg.NodeBudget, Logger: s.logger})
	if err != nil {
		s.logger.Warn("generation failed",
			zap.Int("sections", len(inputs)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		s.metrics.ObserveGenerationRun(runOutcome(err), abortedNodes(err), time.Since(start))
		return nil, mapEngineError(err)
	}
	s.metrics.ObserveGenerationRun(RunOutcomeSuccess, result.Stats.Nodes, time.Since(start))

	proposal := timetableProposal{
		ProposalID:  uuid.NewString(),
		Shape:       shape,
		Sections:    sections,
		Inputs:      inputs,
		Result:      result,
		RequestedAt: time.Now().UTC(),
		Meta:        req.Meta,
	}
	s.store.Save(proposal)

	s.logger.Info("generation complete",
		zap.String("proposal_id", proposal.ProposalID),
		zap.Int("sections", len(inputs)),
		zap.Int64("nodes", result.Stats.Nodes),
		zap.Duration("duration", time.Since(start)),
	)
	return proposalResponse(proposal), nil
}

// GenerateAsync enqueues a generation run and returns a pollable job id.
func (s *GeneratorService) GenerateAsync(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "generation queue unavailable")
	}

	jobID := uuid.NewString()
	s.jobs.Set(jobID, jobState{Status: JobStatusPending})

	if err := s.queue.Enqueue(jobs.Job{ID: jobID, Type: generateJobType, Payload: req}); err != nil {
		s.jobs.Delete(jobID)
		return nil, appErrors.Wrap(err, "QUEUE_FULL", http.StatusServiceUnavailable, "generation queue is full")
	}
	return &dto.GenerateJobResponse{JobID: jobID, Status: JobStatusPending}, nil
}

// HandleGenerateJob is the queue handler behind GenerateAsync.
func (s *GeneratorService) HandleGenerateJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(dto.GenerateTimetableRequest)
	if !ok {
		s.jobs.Set(job.ID, jobState{Status: JobStatusFailed, Error: "malformed job payload"})
		return fmt.Errorf("job %s: unexpected payload type %T", job.ID, job.Payload)
	}

	s.jobs.Set(job.ID, jobState{Status: JobStatusRunning})
	resp, err := s.generate(ctx, req)
	if err != nil {
		s.jobs.Set(job.ID, jobState{Status: JobStatusFailed, Error: appErrors.FromError(err).Message})
		return err
	}
	s.jobs.Set(job.ID, jobState{Status: JobStatusReady, Result: resp})
	return nil
}

// HandleDroppedJob records a terminal state for a job the queue
// abandoned at shutdown, so pollers are not left on PENDING until the
// store expires it.
func (s *GeneratorService) HandleDroppedJob(job jobs.Job) {
	s.jobs.Set(job.ID, jobState{Status: JobStatusFailed, Error: "generation queue stopped before the job ran"})
}

// JobStatus reports the state of an asynchronous generation run.
func (s *GeneratorService) JobStatus(jobID string) (*dto.GenerateJobStatusResponse, error) {
	state, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found or expired")
	}
	return &dto.GenerateJobStatusResponse{
		JobID:  jobID,
		Status: state.Status,
		Error:  state.Error,
		Result: state.Result,
	}, nil
}

// Save persists a parked proposal as new timetable versions, one per
// section, and invalidates cached reads.
func (s *GeneratorService) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if s.timetables == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "timetable store unavailable")
	}

	status := models.TimetableStatusDraft
	if req.Publish {
		status = models.TimetableStatusPublished
	}

	meta, err := proposalMeta(proposal)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode timetable metadata")
	}

	resp := &dto.SaveTimetableResponse{}
	for i, sectionResult := range proposal.Result.Sections {
		section := proposal.Sections[i]
		record := &models.Timetable{
			AcademicYear: section.AcademicYear,
			Year:         section.Year,
			Branch:       section.Branch,
			CourseName:   section.CourseName,
			Semester:     section.Semester,
			RoomNumber:   section.RoomNumber,
			Days:         proposal.Shape.Days,
			Periods:      proposal.Shape.Periods,
			Status:       status,
			Meta:         meta,
		}
		entries := entriesFromGrid(sectionResult.Grid)
		if err := s.timetables.SaveVersion(ctx, record, entries); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable")
		}
		resp.Timetables = append(resp.Timetables, timetableResponse(*record, entries))
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "timetables:*"); err != nil {
			s.logger.Warn("failed to invalidate timetable cache", zap.Error(err))
		}
	}
	s.store.Delete(req.ProposalID)
	s.metrics.RecordTimetablesSaved(len(resp.Timetables))
	return resp, nil
}

func runOutcome(err error) string {
	var (
		infeasible *engine.InfeasibleError
		aborted    *engine.SearchAbortedError
	)
	switch {
	case errors.As(err, &infeasible):
		return RunOutcomeInfeasible
	case errors.As(err, &aborted):
		return RunOutcomeAborted
	default:
		return RunOutcomeRejected
	}
}

func abortedNodes(err error) int64 {
	var aborted *engine.SearchAbortedError
	if errors.As(err, &aborted) {
		return aborted.Nodes
	}
	return 0
}

// Validate checks hand-edited or externally stored grids without
// generating anything.
func (s *GeneratorService) Validate(ctx context.Context, req dto.ValidateTimetableRequest) (*dto.ValidateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}

	shape := s.shapeFromRequest(req.Days, req.PeriodsPerDay, req.BreakPeriods, req.LunchPeriod)
	if err := shape.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grid shape")
	}

	sectionReqs := make([]dto.SectionRequest, 0, len(req.Sections))
	for _, sec := range req.Sections {
		sectionReqs = append(sectionReqs, sec.Section)
	}
	_, inputs, err := buildSectionInputs(sectionReqs, shape)
	if err != nil {
		return nil, err
	}

	results := make([]engine.SectionResult, 0, len(req.Sections))
	for i, sec := range req.Sections {
		grid, err := gridFromCells(shape, sec.Cells)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("section %s has an invalid grid", inputs[i].Key))
		}
		results = append(results, engine.SectionResult{Key: inputs[i].Key, Grid: grid})
	}

	err = engine.NewValidator().Validate(inputs, results)
	if err == nil {
		return &dto.ValidateTimetableResponse{Valid: true}, nil
	}

	var validation *engine.ValidationError
	if errors.As(err, &validation) {
		resp := &dto.ValidateTimetableResponse{Valid: false, Message: validation.Error()}
		for _, c := range validation.Conflicts {
			resp.Conflicts = append(resp.Conflicts, dto.ConflictResponse{
				DayOfWeek: c.Day,
				Period:    c.Period,
				FacultyID: c.FacultyID,
				SectionA:  c.SectionA,
				SectionB:  c.SectionB,
			})
		}
		return resp, nil
	}
	var unmet *engine.RequirementUnmetError
	if errors.As(err, &unmet) {
		return &dto.ValidateTimetableResponse{Valid: false, Message: unmet.Error()}, nil
	}
	return nil, mapEngineError(err)
}

// shapeFromRequest overlays request fields on the configured week. A
// non-nil empty breaks slice and a lunch of 0 are deliberate "none"
// values, distinct from omitting the field.
func (s *GeneratorService) shapeFromRequest(days, periods int, breaks []int, lunch *int) engine.Shape {
	shape := engine.Shape{
		Days:         s.cfg.Days,
		Periods:      s.cfg.PeriodsPerDay,
		BreakPeriods: s.cfg.BreakPeriods,
		LunchPeriod:  s.cfg.LunchPeriod,
	}
	if days > 0 {
		shape.Days = days
	}
	if periods > 0 {
		shape.Periods = periods
	}
	if breaks != nil {
		shape.BreakPeriods = breaks
	}
	if lunch != nil {
		shape.LunchPeriod = *lunch
	}
	return shape
}

func (s *GeneratorService) ensureFacultyActive(ctx context.Context, inputs []engine.SectionInput) error {
	if s.roster == nil {
		return nil
	}

	idSet := make(map[string]bool)
	for _, input := range inputs {
		for _, req := range input.Requirements {
			idSet[req.FacultyID] = true
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	active, err := s.roster.FindActiveByIDs(ctx, ids)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty roster")
	}
	for _, f := range active {
		delete(idSet, f.ID)
	}
	if len(idSet) > 0 {
		missing := make([]string, 0, len(idSet))
		for id := range idSet {
			missing = append(missing, id)
		}
		sort.Strings(missing)
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "unknown or inactive faculty: "+strings.Join(missing, ", "))
	}
	return nil
}

// mapEngineError translates engine outcomes into the API error taxonomy.
func mapEngineError(err error) error {
	var (
		invalidReq   *engine.InvalidRequirementError
		invalidSlot  *engine.InvalidSlotError
		insufficient *engine.InsufficientStationsError
		capacity     *engine.CapacityError
		infeasible   *engine.InfeasibleError
		aborted      *engine.SearchAbortedError
		validation   *engine.ValidationError
		unmet        *engine.RequirementUnmetError
	)
	switch {
	case errors.As(err, &invalidReq):
		return appErrors.Clone(appErrors.ErrValidation, invalidReq.Error())
	case errors.As(err, &invalidSlot):
		return appErrors.Clone(appErrors.ErrValidation, invalidSlot.Error())
	case errors.As(err, &insufficient):
		return appErrors.Clone(appErrors.ErrInsufficientStations, insufficient.Error())
	case errors.As(err, &capacity):
		return appErrors.Clone(appErrors.ErrRequirementExceedsCapacity, capacity.Error())
	case errors.As(err, &infeasible):
		return appErrors.Clone(appErrors.ErrInfeasible, infeasible.Error())
	case errors.As(err, &aborted):
		return appErrors.Clone(appErrors.ErrSearchAborted, aborted.Error())
	case errors.As(err, &validation):
		return appErrors.Clone(appErrors.ErrValidationFailed, validation.Error())
	case errors.As(err, &unmet):
		return appErrors.Clone(appErrors.ErrRequirementUnmet, unmet.Error())
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "generation failed")
	}
}

func buildSectionInputs(sections []dto.SectionRequest, shape engine.Shape) ([]models.Section, []engine.SectionInput, error) {
	modelSections := make([]models.Section, 0, len(sections))
	inputs := make([]engine.SectionInput, 0, len(sections))
	seen := make(map[string]bool)

	for _, sec := range sections {
		section := models.Section{
			AcademicYear: sec.AcademicYear,
			Year:         sec.Year,
			Branch:       sec.Branch,
			CourseName:   sec.CourseName,
			Semester:     sec.Semester,
			RoomNumber:   sec.RoomNumber,
		}
		key := section.Key()
		if seen[key] {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "duplicate section "+key)
		}
		seen[key] = true

		reqs := make([]engine.Requirement, 0, len(sec.Requirements))
		for _, r := range sec.Requirements {
			reqs = append(reqs, engine.Requirement{
				Subject:      r.SubjectName,
				FacultyID:    r.FacultyID,
				WeeklyHours:  r.WeeklyHours,
				IsLab:        r.IsLab,
				BatchCount:   r.BatchCount,
				StationCount: r.StationCount,
			})
		}
		modelSections = append(modelSections, section)
		inputs = append(inputs, engine.SectionInput{Key: key, Shape: shape, Requirements: reqs})
	}
	return modelSections, inputs, nil
}

func gridFromCells(shape engine.Shape, cells []dto.TimetableCell) (*engine.Grid, error) {
	grid, err := engine.NewGrid(shape)
	if err != nil {
		return nil, err
	}
	for _, cell := range cells {
		switch cell.Kind {
		case engine.EntryClass.String(), engine.EntryLab.String():
		default:
			continue
		}
		if cell.SubjectName == nil || cell.FacultyID == nil {
			return nil, fmt.Errorf("cell (%d,%d) is missing subject or faculty", cell.DayOfWeek, cell.Period)
		}
		entry := engine.ClassEntry(*cell.SubjectName, *cell.FacultyID)
		if cell.Kind == engine.EntryLab.String() {
			batch := ""
			if cell.BatchLabel != nil {
				batch = *cell.BatchLabel
			}
			entry = engine.LabEntry(*cell.SubjectName, *cell.FacultyID, batch)
		}
		if err := grid.Place(cell.DayOfWeek, cell.Period, entry); err != nil {
			return nil, err
		}
	}
	return grid, nil
}

func proposalResponse(p timetableProposal) *dto.GenerateTimetableResponse {
	resp := &dto.GenerateTimetableResponse{
		ProposalID: p.ProposalID,
		Stats: dto.GenerationStats{
			Nodes:      p.Result.Stats.Nodes,
			Backtracks: p.Result.Stats.Backtracks,
			MaxDepth:   p.Result.Stats.MaxDepth,
		},
	}
	for i, sectionResult := range p.Result.Sections {
		proposal := dto.SectionProposal{
			SectionKey: sectionResult.Key,
			Cells:      cellsFromGrid(sectionResult.Grid),
		}
		for _, req := range p.Inputs[i].Requirements {
			plan, ok := p.Result.Rotations[sectionResult.Key+"/"+req.Subject]
			if !ok {
				continue
			}
			if proposal.Rotations == nil {
				proposal.Rotations = make(map[string][]dto.RotationCycle)
			}
			proposal.Rotations[req.Subject] = rotationCycles(plan)
		}
		resp.Sections = append(resp.Sections, proposal)
	}
	return resp
}

func rotationCycles(plan *engine.RotationPlan) []dto.RotationCycle {
	cycles := make([]dto.RotationCycle, 0, plan.Batches())
	for week := 0; week < plan.Batches(); week++ {
		cycle := dto.RotationCycle{Label: plan.CycleLabel(week)}
		for _, pairing := range plan.Assignments(week) {
			cycle.Pairings = append(cycle.Pairings, dto.RotationPairingResponse{Batch: pairing.Batch, Station: pairing.Station})
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

func cellsFromGrid(grid *engine.Grid) []dto.TimetableCell {
	var cells []dto.TimetableCell
	grid.ForEach(func(day, period int, e engine.Entry) {
		cell := dto.TimetableCell{DayOfWeek: day, Period: period, Kind: e.Kind.String()}
		if e.Kind == engine.EntryClass || e.Kind == engine.EntryLab {
			subject, faculty := e.Subject, e.FacultyID
			cell.SubjectName = &subject
			cell.FacultyID = &faculty
			if e.Batch != "" {
				batch := e.Batch
				cell.BatchLabel = &batch
			}
		}
		cells = append(cells, cell)
	})
	return cells
}

// entriesFromGrid renders every non-empty cell, break and lunch included,
// so stored grids replay without the generating shape at hand.
func entriesFromGrid(grid *engine.Grid) []models.TimetableEntry {
	var entries []models.TimetableEntry
	grid.ForEach(func(day, period int, e engine.Entry) {
		if e.Kind == engine.EntryEmpty {
			return
		}
		entry := models.TimetableEntry{DayOfWeek: day, Period: period, Kind: e.Kind.String()}
		if e.Kind == engine.EntryClass || e.Kind == engine.EntryLab {
			subject, faculty := e.Subject, e.FacultyID
			entry.SubjectName = &subject
			entry.FacultyID = &faculty
			if e.Batch != "" {
				batch := e.Batch
				entry.BatchLabel = &batch
			}
		}
		entries = append(entries, entry)
	})
	return entries
}

func proposalMeta(p timetableProposal) (types.JSONText, error) {
	rotations := make(map[string][]dto.RotationCycle)
	for key, plan := range p.Result.Rotations {
		rotations[key] = rotationCycles(plan)
	}
	payload := map[string]any{
		"generatedAt":  p.RequestedAt,
		"breakPeriods": p.Shape.BreakPeriods,
		"lunchPeriod":  p.Shape.LunchPeriod,
		"stats":        p.Result.Stats,
		"rotations":    rotations,
		"request":      p.Meta,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

// timetableProposal is a parked generation result awaiting save.
type timetableProposal struct {
	ProposalID  string
	Shape       engine.Shape
	Sections    []models.Section
	Inputs      []engine.SectionInput
	Result      *engine.Result
	RequestedAt time.Time
	Meta        map[string]any
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]timetableProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]timetableProposal),
	}
}

func (s *proposalStore) Save(proposal timetableProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (timetableProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return timetableProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return timetableProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

type jobState struct {
	Status    string
	Error     string
	Result    *dto.GenerateTimetableResponse
	UpdatedAt time.Time
}

type jobStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]jobState
}

func newJobStore(ttl time.Duration) *jobStore {
	return &jobStore{ttl: ttl, items: make(map[string]jobState)}
}

func (s *jobStore) Set(id string, state jobState) {
	state.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.items[id] = state
	s.mu.Unlock()
}

func (s *jobStore) Get(id string) (jobState, bool) {
	s.mu.RLock()
	state, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return jobState{}, false
	}
	if time.Since(state.UpdatedAt) > s.ttl {
		s.Delete(id)
		return jobState{}, false
	}
	return state, true
}

func (s *jobStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
