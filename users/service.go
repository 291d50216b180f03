package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
)

// dummyHash is compared against when the username is unknown so both failure paths cost one bcrypt run
var dummyHash, _ = HashPassword("staff-directory-unknown-user")

// Service is the credential store: it verifies passwords and manages password changes.
type Service struct {
	repo    UserRepo
	nowTime func() time.Time
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repo UserRepo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[users NewService] user repo is required")
	}
	s := &Service{
		repo:    repo,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Verify looks up the user by exact username and checks the password against the stored hash.
// It returns ErrUserNotFound or ErrPasswordMismatch on failure.
func (s *Service) Verify(ctx context.Context, username, password string) (Identity, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if direrrors.Is(err, direrrors.ErrUserNotFound) {
			CheckPasswordHash(password, dummyHash)
		}
		return Identity{}, fmt.Errorf("[users Verify] %w", err)
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return Identity{}, fmt.Errorf("[users Verify] %w", direrrors.ErrPasswordMismatch)
	}

	return user.Identity(), nil
}

// ChangePassword re-verifies the current password before storing a freshly salted hash of the new one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return direrrors.Validationf("Current password and new password are required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("[users ChangePassword] %w", err)
	}

	if !CheckPasswordHash(currentPassword, user.PasswordHash) {
		return fmt.Errorf("[users ChangePassword] %w", direrrors.ErrPasswordMismatch)
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("[users ChangePassword] failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("[users ChangePassword] %w", err)
	}
	return nil
}

// EnsureUser creates the user if no user with that username exists.
// It reports whether a new user was created.
func (s *Service) EnsureUser(ctx context.Context, username, password string, role RoleType) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, direrrors.Validationf("username and password are required")
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !direrrors.Is(err, direrrors.ErrUserNotFound) {
		return false, fmt.Errorf("[users EnsureUser] %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("[users EnsureUser] failed to hash password: %w", err)
	}

	if role == "" {
		role = RoleViewer
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.nowTime().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("[users EnsureUser] %w", err)
	}
	return true, nil
}
