package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/service"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
	"github.com/campuskit/timetable-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	GenerateAsync(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateJobResponse, error)
	JobStatus(jobID string) (*dto.GenerateJobStatusResponse, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error)
	Validate(ctx context.Context, req dto.ValidateTimetableRequest) (*dto.ValidateTimetableResponse, error)
}

// GeneratorHandler exposes generation, validation and save endpoints.
type GeneratorHandler struct {
	service timetableGenerator
}

// NewGeneratorHandler constructs the handler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a conflict-free timetable proposal
// @Description Runs the constraint engine synchronously across all submitted sections and parks the proposal until saved or expired.
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *GeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// GenerateAsync godoc
// @Summary Enqueue a timetable generation run
// @Description Accepts the same payload as the synchronous endpoint and returns a job id to poll.
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 202 {object} response.Envelope
// @Router /timetables/generate/async [post]
func (h *GeneratorHandler) GenerateAsync(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	resp, err := h.service.GenerateAsync(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, resp, nil)
}

// JobStatus godoc
// @Summary Poll an asynchronous generation job
// @Tags Generator
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/generate/jobs/{jobId} [get]
func (h *GeneratorHandler) JobStatus(c *gin.Context) {
	resp, err := h.service.JobStatus(c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Persist a proposal as new timetable versions
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /timetables/save [post]
func (h *GeneratorHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	resp, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Validate godoc
// @Summary Validate hand-edited or stored grids
// @Description Returns a verdict with the exhaustive conflict list; a conflicting grid is a 200 with valid=false, not an error.
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body dto.ValidateTimetableRequest true "Validation payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/validate [post]
func (h *GeneratorHandler) Validate(c *gin.Context) {
	var req dto.ValidateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validation payload"))
		return
	}
	resp, err := h.service.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
