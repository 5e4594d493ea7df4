package dto

import "time"

// FacultyQuery filters the roster listing.
type FacultyQuery struct {
	Department string `form:"department" json:"department"`
	Search     string `form:"search" json:"search"`
	Active     *bool  `form:"active" json:"active"`
	Page       int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" json:"pageSize" validate:"omitempty,min=1,max=100"`
}

// FacultyResponse is one roster entry.
type FacultyResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateFacultyRequest registers a roster entry. The id is the identity
// provider's subject so requirement faculty ids line up with tokens.
type CreateFacultyRequest struct {
	ID         string `json:"id" validate:"required"`
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
}

// UpdateFacultyRequest rewrites a roster entry.
type UpdateFacultyRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Active     *bool  `json:"active" validate:"required"`
}
