package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/models"
	"github.com/campuskit/timetable-api/internal/service"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
)

type timetableMock struct {
	query    dto.TimetableQuery
	statusID string
	status   string
	deleted  []string
}

func (m *timetableMock) List(_ context.Context, query dto.TimetableQuery) ([]dto.TimetableSummary, *models.Pagination, error) {
	m.query = query
	summaries := []dto.TimetableSummary{{ID: "tt-1", AcademicYear: "2024-25", Branch: "CSE", Version: 2, Status: "PUBLISHED"}}
	return summaries, &models.Pagination{Page: 1, PageSize: 20, Total: 1, TotalPage: 1}, nil
}

func (m *timetableMock) Get(_ context.Context, id string) (*dto.TimetableResponse, error) {
	if id != "tt-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
	}
	return &dto.TimetableResponse{ID: id, AcademicYear: "2024-25", Branch: "CSE", Version: 2}, nil
}

func (m *timetableMock) FacultySchedule(_ context.Context, timetableID, facultyID string) (*dto.FacultyScheduleResponse, error) {
	return &dto.FacultyScheduleResponse{FacultyID: facultyID, Cells: []dto.FacultyScheduleCell{}}, nil
}

func (m *timetableMock) UpdateStatus(_ context.Context, id string, req dto.UpdateTimetableStatusRequest) error {
	m.statusID = id
	m.status = req.Status
	return nil
}

func (m *timetableMock) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *timetableMock) Export(_ context.Context, id, format string) (*service.ExportResult, error) {
	if format == "xml" {
		return nil, appErrors.Clone(appErrors.ErrValidation, `unsupported export format "xml"`)
	}
	return &service.ExportResult{
		FileName:    "timetable_2024-25_CSE_sem3_v2.csv",
		ContentType: "text/csv",
		Data:        []byte("Day,P1\nMonday,Math (F1)\n"),
	}, nil
}

func timetableRouter(mockSvc *timetableMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &TimetableHandler{service: mockSvc}
	router := gin.New()
	router.GET("/timetables", h.List)
	router.GET("/timetables/:id", h.Get)
	router.GET("/timetables/:id/faculty/:facultyId", h.FacultySchedule)
	router.GET("/timetables/:id/export", h.Export)
	router.PATCH("/timetables/:id/status", h.UpdateStatus)
	router.DELETE("/timetables/:id", h.Delete)
	return router
}

func TestTimetableHandlerList(t *testing.T) {
	mockSvc := &timetableMock{}
	router := timetableRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables?academicYear=2024-25&status=PUBLISHED&page=1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2024-25", mockSvc.query.AcademicYear)
	require.Equal(t, "PUBLISHED", mockSvc.query.Status)
	require.Contains(t, w.Body.String(), "tt-1")
	require.Contains(t, w.Body.String(), "pagination")
}

func TestTimetableHandlerGet(t *testing.T) {
	router := timetableRouter(&timetableMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "2024-25")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/timetables/missing", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestTimetableHandlerFacultySchedule(t *testing.T) {
	router := timetableRouter(&timetableMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/faculty/F1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"facultyId":"F1"`)
}

func TestTimetableHandlerUpdateStatus(t *testing.T) {
	mockSvc := &timetableMock{}
	router := timetableRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/timetables/tt-1/status", bytes.NewReader([]byte(`{"status":"PUBLISHED"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "tt-1", mockSvc.statusID)
	require.Equal(t, "PUBLISHED", mockSvc.status)
}

func TestTimetableHandlerUpdateStatusMalformedJSON(t *testing.T) {
	router := timetableRouter(&timetableMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/timetables/tt-1/status", bytes.NewReader([]byte(`{"status":`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerExport(t *testing.T) {
	router := timetableRouter(&timetableMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/export?format=csv", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), "timetable_2024-25_CSE_sem3_v2.csv")
	require.Contains(t, w.Body.String(), "Monday")
}

func TestTimetableHandlerExportUnknownFormat(t *testing.T) {
	router := timetableRouter(&timetableMock{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/timetables/tt-1/export?format=xml", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestTimetableHandlerDelete(t *testing.T) {
	mockSvc := &timetableMock{}
	router := timetableRouter(mockSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/timetables/tt-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, []string{"tt-1"}, mockSvc.deleted)
}
