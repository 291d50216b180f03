package gormcontactrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrsteele09/staff-directory/contacts"
	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"gorm.io/gorm"
)

var _ contacts.Repo = (*GormContactRepo)(nil)

// ContactRecord is the contacts table row
type ContactRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"size:255;not null;index"`
	Role       string    `gorm:"size:255;not null"`
	Department string    `gorm:"size:255;not null;index"`
	Phone      *string   `gorm:"size:64"`
	Email      *string   `gorm:"size:255"`
	Status     string    `gorm:"size:32;not null"`
	Notes      *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (ContactRecord) TableName() string {
	return "contacts"
}

// likeEscaper escapes LIKE wildcards so search terms match literally
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type GormContactRepo struct {
	db *gorm.DB
}

func NewGormContactRepo(db *gorm.DB) *GormContactRepo {
	return &GormContactRepo{db: db}
}

func (cr *GormContactRepo) List(ctx context.Context, filter contacts.Filter) ([]contacts.Contact, error) {
	q := cr.db.WithContext(ctx).Model(&ContactRecord{})
	if filter.Search != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		q = q.Where("(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(role) LIKE ? ESCAPE '!')", like, like)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var records []ContactRecord
	if err := q.Order("name ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, storeError("List", err)
	}

	list := make([]contacts.Contact, 0, len(records))
	for _, rec := range records {
		list = append(list, rec.toContact())
	}
	return list, nil
}

func (cr *GormContactRepo) Get(ctx context.Context, id int64) (*contacts.Contact, error) {
	var rec ContactRecord
	if err := cr.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, direrrors.ErrNotFound
		}
		return nil, storeError("Get", err)
	}
	c := rec.toContact()
	return &c, nil
}

func (cr *GormContactRepo) Create(ctx context.Context, contact *contacts.Contact) error {
	rec := fromContact(contact)
	rec.ID = 0
	if err := cr.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return storeError("Create", err)
	}
	contact.ID = rec.ID
	return nil
}

// Update writes every mutable column, including NULLs for cleared optional fields.
func (cr *GormContactRepo) Update(ctx context.Context, contact *contacts.Contact) error {
	res := cr.db.WithContext(ctx).Model(&ContactRecord{}).Where("id = ?", contact.ID).Updates(map[string]interface{}{
		"name":       contact.Name,
		"role":       contact.Role,
		"department": contact.Department,
		"phone":      contact.Phone,
		"email":      contact.Email,
		"status":     contact.Status,
		"notes":      contact.Notes,
		"updated_at": contact.UpdatedAt,
	})
	if res.Error != nil {
		return storeError("Update", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when nothing changed, so confirm the row is really absent
	var n int64
	if err := cr.db.WithContext(ctx).Model(&ContactRecord{}).Where("id = ?", contact.ID).Count(&n).Error; err != nil {
		return storeError("Update", err)
	}
	if n == 0 {
		return direrrors.ErrNotFound
	}
	return nil
}

func (cr *GormContactRepo) Delete(ctx context.Context, id int64) error {
	res := cr.db.WithContext(ctx).Delete(&ContactRecord{}, id)
	if res.Error != nil {
		return storeError("Delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return direrrors.ErrNotFound
	}
	return nil
}

func (cr *GormContactRepo) Departments(ctx context.Context) ([]string, error) {
	departments := make([]string, 0)
	err := cr.db.WithContext(ctx).Model(&ContactRecord{}).
		Distinct("department").
		Order("department ASC").
		Pluck("department", &departments).Error
	if err != nil {
		return nil, storeError("Departments", err)
	}
	return departments, nil
}

func (cr *GormContactRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := cr.db.WithContext(ctx).Model(&ContactRecord{}).Count(&n).Error; err != nil {
		return 0, storeError("Count", err)
	}
	return n, nil
}

func fromContact(c *contacts.Contact) ContactRecord {
	return ContactRecord{
		ID:         c.ID,
		Name:       c.Name,
		Role:       c.Role,
		Department: c.Department,
		Phone:      c.Phone,
		Email:      c.Email,
		Status:     c.Status,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (rec ContactRecord) toContact() contacts.Contact {
	return contacts.Contact{
		ID:         rec.ID,
		Name:       rec.Name,
		Role:       rec.Role,
		Department: rec.Department,
		Phone:      rec.Phone,
		Email:      rec.Email,
		Status:     rec.Status,
		Notes:      rec.Notes,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func storeError(op string, err error) error {
	return fmt.Errorf("[gormcontactrepo %s] %w: %v", op, direrrors.ErrStore, err)
}
