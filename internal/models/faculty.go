package models

import "time"

// Faculty is one roster entry. Accounts and credentials live in the
// identity service; this table only anchors requirement faculty ids.
type Faculty struct {
	ID         string    `db:"id" json:"id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Email      string    `db:"email" json:"email"`
	Department string    `db:"department" json:"department"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyFilter describes query params for listing faculty.
type FacultyFilter struct {
	Department string
	Search     string
	Active     *bool
	Page       int
	PageSize   int
}
