package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/models"
	"github.com/campuskit/timetable-api/internal/service"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
	"github.com/campuskit/timetable-api/pkg/response"
)

type timetableProvider interface {
	List(ctx context.Context, query dto.TimetableQuery) ([]dto.TimetableSummary, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.TimetableResponse, error)
	FacultySchedule(ctx context.Context, timetableID, facultyID string) (*dto.FacultyScheduleResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateTimetableStatusRequest) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id, format string) (*service.ExportResult, error)
}

// TimetableHandler exposes committed timetable endpoints.
type TimetableHandler struct {
	service timetableProvider
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// List godoc
// @Summary List timetable versions
// @Tags Timetables
// @Produce json
// @Param academicYear query string false "Academic year"
// @Param branch query string false "Branch"
// @Param year query int false "Year of study"
// @Param semester query int false "Semester"
// @Param status query string false "Lifecycle status" Enums(DRAFT, PUBLISHED, ARCHIVED)
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /timetables [get]
func (h *TimetableHandler) List(c *gin.Context) {
	var query dto.TimetableQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable query"))
		return
	}
	summaries, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Get godoc
// @Summary Get one timetable with its full grid
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// FacultySchedule godoc
// @Summary Cross-section weekly view for one faculty member
// @Tags Timetables
// @Produce json
// @Param id path string true "Timetable ID"
// @Param facultyId path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/faculty/{facultyId} [get]
func (h *TimetableHandler) FacultySchedule(c *gin.Context) {
	resp, err := h.service.FacultySchedule(c.Request.Context(), c.Param("id"), c.Param("facultyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// UpdateStatus godoc
// @Summary Move a timetable version between lifecycle states
// @Tags Timetables
// @Accept json
// @Produce json
// @Param id path string true "Timetable ID"
// @Param payload body dto.UpdateTimetableStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/{id}/status [patch]
func (h *TimetableHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTimetableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status}, nil)
}

// Delete godoc
// @Summary Delete a timetable version
// @Tags Timetables
// @Param id path string true "Timetable ID"
// @Success 204
// @Router /timetables/{id} [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a timetable grid as CSV or PDF
// @Tags Timetables
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Timetable ID"
// @Param format query string false "Export format" Enums(csv, pdf) default(csv)
// @Success 200 {file} file
// @Router /timetables/{id}/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
