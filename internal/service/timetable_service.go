package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/models"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
	"github.com/campuskit/timetable-api/pkg/export"
)

type timetableReader interface {
	List(ctx context.Context, filter models.TimetableFilter) ([]models.Timetable, int, error)
	FindByID(ctx context.Context, id string) (*models.Timetable, error)
	FindEntries(ctx context.Context, timetableID string) ([]models.TimetableEntry, error)
	FindEntriesByFaculty(ctx context.Context, timetableID, facultyID string) ([]models.TimetableEntry, error)
	FindTimetablesByIDs(ctx context.Context, ids []string) ([]models.Timetable, error)
	UpdateStatus(ctx context.Context, id string, status models.TimetableStatus) error
	Delete(ctx context.Context, id string) error
}

type timetableCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type gridRenderer interface {
	Render(doc export.GridDocument) ([]byte, error)
}

// Export formats accepted by the export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// TimetableService serves committed timetables: listing, grids, faculty
// views, lifecycle changes and file export.
type TimetableService struct {
	timetables timetableReader
	cache      timetableCache
	exporters  map[string]gridRenderer
	validator  *validator.Validate
	logger     *zap.Logger
	cacheTTL   time.Duration
}

// TimetableServiceConfig tunes read-side caching.
type TimetableServiceConfig struct {
	CacheTTL time.Duration
}

// NewTimetableService wires timetable read dependencies.
func NewTimetableService(
	timetables timetableReader,
	cache timetableCache,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &TimetableService{
		timetables: timetables,
		cache:      cache,
		exporters: map[string]gridRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		validator: validate,
		logger:    logger,
		cacheTTL:  cfg.CacheTTL,
	}
}

// List returns timetable summaries matching the query.
func (s *TimetableService) List(ctx context.Context, query dto.TimetableQuery) ([]dto.TimetableSummary, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable query")
	}

	filter := models.TimetableFilter{
		AcademicYear: query.AcademicYear,
		Branch:       query.Branch,
		Year:         query.Year,
		Semester:     query.Semester,
		Status:       query.Status,
		Page:         query.Page,
		PageSize:     query.PageSize,
	}
	timetables, total, err := s.timetables.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timetables")
	}

	summaries := make([]dto.TimetableSummary, 0, len(timetables))
	for _, t := range timetables {
		summaries = append(summaries, dto.TimetableSummary{
			ID:           t.ID,
			AcademicYear: t.AcademicYear,
			Year:         t.Year,
			Branch:       t.Branch,
			CourseName:   t.CourseName,
			Semester:     t.Semester,
			Version:      t.Version,
			Status:       string(t.Status),
			CreatedAt:    t.CreatedAt,
		})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	pagination := &models.Pagination{
		Page:      page,
		PageSize:  size,
		Total:     total,
		TotalPage: int(math.Ceil(float64(total) / float64(size))),
	}
	return summaries, pagination, nil
}

// Get returns one timetable with its full grid, cached when enabled.
func (s *TimetableService) Get(ctx context.Context, id string) (*dto.TimetableResponse, error) {
	cacheKey := "timetables:grid:" + id
	if s.cache != nil {
		var cached dto.TimetableResponse
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("timetable cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	t, err := s.timetables.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	entries, err := s.timetables.FindEntries(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable entries")
	}

	resp := timetableResponse(*t, entries)
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("timetable cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return &resp, nil
}

// FacultySchedule returns one faculty member's published commitments
// within the academic scope of the given timetable.
func (s *TimetableService) FacultySchedule(ctx context.Context, timetableID, facultyID string) (*dto.FacultyScheduleResponse, error) {
	if _, err := s.timetables.FindByID(ctx, timetableID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}

	entries, err := s.timetables.FindEntriesByFaculty(ctx, timetableID, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty schedule")
	}

	ids := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.TimetableID] {
			seen[e.TimetableID] = true
			ids = append(ids, e.TimetableID)
		}
	}
	parents, err := s.timetables.FindTimetablesByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetables for schedule")
	}
	sectionKeys := make(map[string]string, len(parents))
	for _, p := range parents {
		sectionKeys[p.ID] = p.Section().Key()
	}

	resp := &dto.FacultyScheduleResponse{FacultyID: facultyID, Cells: []dto.FacultyScheduleCell{}}
	for _, e := range entries {
		cell := dto.FacultyScheduleCell{
			TimetableID: e.TimetableID,
			SectionKey:  sectionKeys[e.TimetableID],
			DayOfWeek:   e.DayOfWeek,
			Period:      e.Period,
			Kind:        e.Kind,
		}
		if e.SubjectName != nil {
			cell.SubjectName = *e.SubjectName
		}
		if e.BatchLabel != nil {
			cell.BatchLabel = *e.BatchLabel
		}
		resp.Cells = append(resp.Cells, cell)
	}
	return resp, nil
}

// UpdateStatus moves one timetable version between lifecycle states and
// drops cached grids.
func (s *TimetableService) UpdateStatus(ctx context.Context, id string, req dto.UpdateTimetableStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if err := s.timetables.UpdateStatus(ctx, id, models.TimetableStatus(req.Status)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update timetable status")
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes one timetable version and drops cached grids.
func (s *TimetableService) Delete(ctx context.Context, id string) error {
	if _, err := s.timetables.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	if err := s.timetables.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete timetable")
	}
	s.invalidate(ctx)
	return nil
}

// ExportResult carries the rendered file and response headers.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Export renders one timetable grid to CSV or PDF.
func (s *TimetableService) Export(ctx context.Context, id, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	resp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(gridDocument(resp))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}

	contentType := "text/csv"
	if format == ExportFormatPDF {
		contentType = "application/pdf"
	}
	fileName := fmt.Sprintf("timetable_%s_%s_sem%d_v%d.%s", resp.AcademicYear, resp.Branch, resp.Semester, resp.Version, format)
	fileName = strings.ReplaceAll(fileName, "/", "-")
	return &ExportResult{FileName: fileName, ContentType: contentType, Data: data}, nil
}

func (s *TimetableService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "timetables:*"); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.Error(err))
	}
}

// gridDocument formats a timetable for file export.
func gridDocument(t *dto.TimetableResponse) export.GridDocument {
	doc := export.GridDocument{
		Title: fmt.Sprintf("%s %s Year %d Semester %d (v%d)", t.AcademicYear, t.Branch, t.Year, t.Semester, t.Version),
	}
	for p := 1; p <= t.Periods; p++ {
		doc.PeriodHead = append(doc.PeriodHead, fmt.Sprintf("P%d", p))
	}

	cells := make(map[[2]int]dto.TimetableCell, len(t.Cells))
	for _, cell := range t.Cells {
		cells[[2]int{cell.DayOfWeek, cell.Period}] = cell
	}
	for day := 1; day <= t.Days; day++ {
		label := fmt.Sprintf("Day %d", day)
		if day <= len(dayNames) {
			label = dayNames[day-1]
		}
		doc.DayLabels = append(doc.DayLabels, label)

		row := make([]string, 0, t.Periods)
		for period := 1; period <= t.Periods; period++ {
			row = append(row, formatCell(cells[[2]int{day, period}]))
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

func formatCell(cell dto.TimetableCell) string {
	switch cell.Kind {
	case "BREAK":
		return "Break"
	case "LUNCH":
		return "Lunch"
	case "CLASS", "LAB":
		if cell.SubjectName == nil {
			return ""
		}
		label := *cell.SubjectName
		if cell.Kind == "LAB" && cell.BatchLabel != nil {
			label = fmt.Sprintf("%s [%s]", label, *cell.BatchLabel)
		}
		if cell.FacultyID != nil {
			label = fmt.Sprintf("%s (%s)", label, *cell.FacultyID)
		}
		return label
	default:
		return ""
	}
}

// timetableResponse renders a stored timetable row plus entries.
func timetableResponse(t models.Timetable, entries []models.TimetableEntry) dto.TimetableResponse {
	resp := dto.TimetableResponse{
		ID:           t.ID,
		AcademicYear: t.AcademicYear,
		Year:         t.Year,
		Branch:       t.Branch,
		CourseName:   t.CourseName,
		Semester:     t.Semester,
		RoomNumber:   t.RoomNumber,
		Days:         t.Days,
		Periods:      t.Periods,
		Version:      t.Version,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	for _, e := range entries {
		resp.Cells = append(resp.Cells, dto.TimetableCell{
			DayOfWeek:   e.DayOfWeek,
			Period:      e.Period,
			Kind:        e.Kind,
			SubjectName: e.SubjectName,
			FacultyID:   e.FacultyID,
			BatchLabel:  e.BatchLabel,
		})
	}
	return resp
}
