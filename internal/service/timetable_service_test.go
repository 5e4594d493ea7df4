package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/models"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
)

type stubTimetableReader struct {
	timetables map[string]*models.Timetable
	entries    map[string][]models.TimetableEntry
	statuses   map[string]models.TimetableStatus
	deleted    []string
}

func (s *stubTimetableReader) List(_ context.Context, filter models.TimetableFilter) ([]models.Timetable, int, error) {
	var out []models.Timetable
	for _, t := range s.timetables {
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (s *stubTimetableReader) FindByID(_ context.Context, id string) (*models.Timetable, error) {
	t, ok := s.timetables[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (s *stubTimetableReader) FindEntries(_ context.Context, id string) ([]models.TimetableEntry, error) {
	return s.entries[id], nil
}

func (s *stubTimetableReader) FindEntriesByFaculty(_ context.Context, timetableID, facultyID string) ([]models.TimetableEntry, error) {
	var out []models.TimetableEntry
	for _, entries := range s.entries {
		for _, e := range entries {
			if e.FacultyID != nil && *e.FacultyID == facultyID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (s *stubTimetableReader) FindTimetablesByIDs(_ context.Context, ids []string) ([]models.Timetable, error) {
	var out []models.Timetable
	for _, id := range ids {
		if t, ok := s.timetables[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTimetableReader) UpdateStatus(_ context.Context, id string, status models.TimetableStatus) error {
	if s.statuses == nil {
		s.statuses = map[string]models.TimetableStatus{}
	}
	s.statuses[id] = status
	return nil
}

func (s *stubTimetableReader) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type memoryCache struct {
	values map[string][]byte
	hits   int
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.values == nil {
		c.values = map[string][]byte{}
	}
	c.values[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.values {
		if strings.HasPrefix(key, prefix) {
			delete(c.values, key)
		}
	}
	return nil
}

func timetableFixture() (*stubTimetableReader, string) {
	subject, faculty := "Mathematics", "F1"
	reader := &stubTimetableReader{
		timetables: map[string]*models.Timetable{
			"tt-1": {
				ID: "tt-1", AcademicYear: "2024-25", Year: 2, Branch: "CSE", CourseName: "B.Tech",
				Semester: 3, RoomNumber: "A-101", Days: 5, Periods: 6, Version: 1,
				Status: models.TimetableStatusPublished,
			},
		},
		entries: map[string][]models.TimetableEntry{
			"tt-1": {
				{TimetableID: "tt-1", DayOfWeek: 1, Period: 1, Kind: "CLASS", SubjectName: &subject, FacultyID: &faculty},
				{TimetableID: "tt-1", DayOfWeek: 1, Period: 3, Kind: "BREAK"},
				{TimetableID: "tt-1", DayOfWeek: 1, Period: 5, Kind: "LUNCH"},
			},
		},
	}
	return reader, "tt-1"
}

func TestTimetableServiceGetCachesGrid(t *testing.T) {
	reader, id := timetableFixture()
	cache := &memoryCache{}
	service := NewTimetableService(reader, cache, nil, nil, TimetableServiceConfig{CacheTTL: time.Minute})

	first, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2024-25", first.AcademicYear)
	assert.Len(t, first.Cells, 3)
	assert.Equal(t, 0, cache.hits)

	second, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, cache.hits)
}

func TestTimetableServiceGetNotFound(t *testing.T) {
	reader, _ := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	_, err := service.Get(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceList(t *testing.T) {
	reader, _ := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	summaries, pagination, err := service.List(context.Background(), dto.TimetableQuery{Status: "PUBLISHED"})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "tt-1", summaries[0].ID)
	assert.Equal(t, 1, pagination.Total)

	summaries, _, err = service.List(context.Background(), dto.TimetableQuery{Status: "ARCHIVED"})
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, _, err = service.List(context.Background(), dto.TimetableQuery{Status: "NOPE"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceFacultySchedule(t *testing.T) {
	reader, id := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	resp, err := service.FacultySchedule(context.Background(), id, "F1")
	require.NoError(t, err)
	assert.Equal(t, "F1", resp.FacultyID)
	require.Len(t, resp.Cells, 1)
	assert.Equal(t, "2024-25/CSE/2/3", resp.Cells[0].SectionKey)
	assert.Equal(t, "Mathematics", resp.Cells[0].SubjectName)

	resp, err = service.FacultySchedule(context.Background(), id, "F9")
	require.NoError(t, err)
	assert.Empty(t, resp.Cells)
}

func TestTimetableServiceUpdateStatusInvalidatesCache(t *testing.T) {
	reader, id := timetableFixture()
	cache := &memoryCache{}
	service := NewTimetableService(reader, cache, nil, nil, TimetableServiceConfig{})

	_, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotEmpty(t, cache.values)

	require.NoError(t, service.UpdateStatus(context.Background(), id, dto.UpdateTimetableStatusRequest{Status: "ARCHIVED"}))
	assert.Equal(t, models.TimetableStatusArchived, reader.statuses[id])
	assert.Empty(t, cache.values)

	err = service.UpdateStatus(context.Background(), id, dto.UpdateTimetableStatusRequest{Status: "BROKEN"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceExportCSV(t *testing.T) {
	reader, id := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	result, err := service.Export(context.Background(), id, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.FileName, ".csv")

	body := string(result.Data)
	assert.Contains(t, body, "Day,P1,P2,P3,P4,P5,P6")
	assert.Contains(t, body, "Monday")
	assert.Contains(t, body, "Mathematics (F1)")
	assert.Contains(t, body, "Lunch")
}

func TestTimetableServiceExportPDF(t *testing.T) {
	reader, id := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	result, err := service.Export(context.Background(), id, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestTimetableServiceExportUnknownFormat(t *testing.T) {
	reader, id := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	_, err := service.Export(context.Background(), id, "xlsx")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTimetableServiceDelete(t *testing.T) {
	reader, id := timetableFixture()
	service := NewTimetableService(reader, nil, nil, nil, TimetableServiceConfig{})

	require.NoError(t, service.Delete(context.Background(), id))
	assert.Equal(t, []string{id}, reader.deleted)

	err := service.Delete(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
