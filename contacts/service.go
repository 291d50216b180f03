package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/internal/utils"
)

const requiredFieldsMessage = "Name, role, and department are required"

// Service implements the directory operations over a contact Repo.
type Service struct {
	repo    Repo
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

func NewService(repo Repo, options ...ServiceOption) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[contacts NewService] contact repo is required")
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

func (s *Service) List(ctx context.Context, filter Filter) ([]Contact, error) {
	filter = Filter{
		Search:     strings.TrimSpace(filter.Search),
		Department: strings.TrimSpace(filter.Department),
		Status:     strings.TrimSpace(filter.Status),
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("[contacts List] %w", err)
	}
	if list == nil {
		list = []Contact{}
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Contact, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("[contacts Get] contact %d: %w", id, err)
	}
	return c, nil
}

// Create validates the fields and stores a new contact, defaulting the status to available.
func (s *Service) Create(ctx context.Context, fields Fields) (int64, error) {
	fields = normalise(fields)
	if err := validate(fields); err != nil {
		return 0, err
	}
	if fields.Status == "" {
		fields.Status = StatusAvailable
	}

	now := s.nowTime().UTC()
	c := fields.toContact()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, &c); err != nil {
		return 0, fmt.Errorf("[contacts Create] %w", err)
	}
	return c.ID, nil
}

// Update replaces every mutable field of the contact; absent optional fields are cleared.
func (s *Service) Update(ctx context.Context, id int64, fields Fields) error {
	fields = normalise(fields)
	if err := validate(fields); err != nil {
		return err
	}

	c := fields.toContact()
	c.ID = id
	c.UpdatedAt = s.nowTime().UTC()

	if err := s.repo.Update(ctx, &c); err != nil {
		return fmt.Errorf("[contacts Update] contact %d: %w", id, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("[contacts Delete] contact %d: %w", id, err)
	}
	return nil
}

func (s *Service) Departments(ctx context.Context) ([]string, error) {
	departments, err := s.repo.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("[contacts Departments] %w", err)
	}
	if departments == nil {
		departments = []string{}
	}
	return departments, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("[contacts Count] %w", err)
	}
	return n, nil
}

func normalise(f Fields) Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Role = strings.TrimSpace(f.Role)
	f.Department = strings.TrimSpace(f.Department)
	f.Status = strings.TrimSpace(f.Status)
	f.Phone = utils.NilIfEmpty(f.Phone)
	f.Email = utils.NilIfEmpty(f.Email)
	f.Notes = utils.NilIfEmpty(f.Notes)
	return f
}

func validate(f Fields) error {
	if f.Name == "" || f.Role == "" || f.Department == "" {
		return direrrors.Validationf(requiredFieldsMessage)
	}
	return nil
}

func (f Fields) toContact() Contact {
	return Contact{
		Name:       f.Name,
		Role:       f.Role,
		Department: f.Department,
		Phone:      f.Phone,
		Email:      f.Email,
		Status:     f.Status,
		Notes:      f.Notes,
	}
}
