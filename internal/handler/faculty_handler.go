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

type facultyProvider interface {
	List(ctx context.Context, query dto.FacultyQuery) ([]dto.FacultyResponse, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.FacultyResponse, error)
	Create(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateFacultyRequest) (*dto.FacultyResponse, error)
}

// FacultyHandler exposes roster endpoints.
type FacultyHandler struct {
	service facultyProvider
}

// NewFacultyHandler constructs the handler.
func NewFacultyHandler(svc *service.FacultyService) *FacultyHandler {
	return &FacultyHandler{service: svc}
}

// List godoc
// @Summary List roster entries
// @Tags Faculty
// @Produce json
// @Param department query string false "Department"
// @Param search query string false "Name or email search"
// @Param active query bool false "Active flag"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	var query dto.FacultyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty query"))
		return
	}
	faculty, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, pagination)
}

// Get godoc
// @Summary Get one roster entry
// @Tags Faculty
// @Produce json
// @Param facultyId path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculty/{facultyId} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("facultyId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Create godoc
// @Summary Register a roster entry
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body dto.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Update godoc
// @Summary Rewrite a roster entry
// @Tags Faculty
// @Accept json
// @Produce json
// @Param facultyId path string true "Faculty ID"
// @Param payload body dto.UpdateFacultyRequest true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Router /faculty/{facultyId} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faculty payload"))
		return
	}
	resp, err := h.service.Update(c.Request.Context(), c.Param("facultyId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
