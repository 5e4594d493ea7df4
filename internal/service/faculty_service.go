package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/timetable-api/internal/dto"
	"github.com/campuskit/timetable-api/internal/models"
	appErrors "github.com/campuskit/timetable-api/pkg/errors"
)

type facultyStore interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	Create(ctx context.Context, f *models.Faculty) error
	Update(ctx context.Context, f *models.Faculty) error
}

// FacultyService manages the roster that anchors requirement faculty ids.
type FacultyService struct {
	faculty   facultyStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService wires roster dependencies.
func NewFacultyService(faculty facultyStore, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{faculty: faculty, validator: validate, logger: logger}
}

// List returns roster entries matching the query.
func (s *FacultyService) List(ctx context.Context, query dto.FacultyQuery) ([]dto.FacultyResponse, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty query")
	}

	filter := models.FacultyFilter{
		Department: query.Department,
		Search:     query.Search,
		Active:     query.Active,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	faculty, total, err := s.faculty.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty")
	}

	responses := make([]dto.FacultyResponse, 0, len(faculty))
	for _, f := range faculty {
		responses = append(responses, facultyResponse(f))
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
	return responses, pagination, nil
}

// Get returns one roster entry.
func (s *FacultyService) Get(ctx context.Context, id string) (*dto.FacultyResponse, error) {
	f, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	resp := facultyResponse(*f)
	return &resp, nil
}

// Create registers a roster entry. New entries start active.
func (s *FacultyService) Create(ctx context.Context, req dto.CreateFacultyRequest) (*dto.FacultyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	f := &models.Faculty{
		ID:         req.ID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Active:     true,
	}
	if err := s.faculty.Create(ctx, f); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	s.logger.Info("faculty created", zap.String("faculty_id", f.ID))
	resp := facultyResponse(*f)
	return &resp, nil
}

// Update rewrites a roster entry. Deactivating keeps history intact while
// blocking the id from new generation runs.
func (s *FacultyService) Update(ctx context.Context, id string, req dto.UpdateFacultyRequest) (*dto.FacultyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	current, err := s.faculty.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}

	current.FullName = req.FullName
	current.Email = req.Email
	current.Department = req.Department
	current.Active = *req.Active
	if err := s.faculty.Update(ctx, current); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faculty")
	}
	resp := facultyResponse(*current)
	return &resp, nil
}

func facultyResponse(f models.Faculty) dto.FacultyResponse {
	return dto.FacultyResponse{
		ID:         f.ID,
		FullName:   f.FullName,
		Email:      f.Email,
		Department: f.Department,
		Active:     f.Active,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
