package contacts

import (
	"strings"
	"time"
)

// Conventional status values; the set is open and any non-empty value is stored as given.
const (
	StatusAvailable   = "available"
	StatusBusy        = "busy"
	StatusOutOfOffice = "out-of-office"
)

// Contact is an employee record in the directory
type Contact struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Fields are the mutable parts of a contact as supplied by a caller
type Fields struct {
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Department string  `json:"department"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes"`
}

// Filter narrows a contact listing. Empty values are ignored; set values combine with AND.
type Filter struct {
	Search     string // case-insensitive substring of name or role
	Department string // exact match
	Status     string // exact match
}

// Matches reports whether the contact satisfies every set filter value
func (f Filter) Matches(c Contact) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) && !strings.Contains(strings.ToLower(c.Role), needle) {
			return false
		}
	}
	if f.Department != "" && c.Department != f.Department {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	return true
}
