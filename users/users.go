package users

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents the directory role bound to a user
type RoleType string

const (
	RoleAdmin  RoleType = "admin"  // Can create, update and delete contacts and change passwords
	RoleViewer RoleType = "viewer" // Read-only access to contacts and departments
)

// passwordCost is the bcrypt work factor applied to every stored hash
const passwordCost = 10

type User struct {
	ID           int64     `json:"id"`         // Unique identifier for the user
	Username     string    `json:"username"`   // Unique username used to log in
	PasswordHash string    `json:"-"`          // Salted bcrypt hash - never serialize
	Role         RoleType  `json:"role"`       // admin or viewer
	CreatedAt    time.Time `json:"created_at"` // When the user was created
}

// Identity is the {id, username, role} snapshot bound to an authenticated session
type Identity struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Role     RoleType `json:"role"`
}

// ParseRole maps a stored role onto a known RoleType, defaulting to viewer
func ParseRole(role string) RoleType {
	switch RoleType(strings.ToLower(strings.TrimSpace(role))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleViewer
	}
}

// Identity returns the identity snapshot of the user
func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsZero reports whether the identity is unset
func (i Identity) IsZero() bool {
	return i.ID == 0 && i.Username == ""
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
