package gormuserrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/users"
	"gorm.io/gorm"
)

var _ users.UserRepo = (*GormUserRepo)(nil)

// UserRecord is the users table row
type UserRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:32;not null;default:viewer"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserRecord) TableName() string {
	return "users"
}

type GormUserRepo struct {
	db *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{db: db}
}

func (ur *GormUserRepo) Create(ctx context.Context, user *users.User) error {
	rec := UserRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
	if err := ur.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("[gormuserrepo Create] username %q: %w", user.Username, direrrors.ErrAlreadyExists)
		}
		return storeError("Create", err)
	}
	user.ID = rec.ID
	return nil
}

func (ur *GormUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	var rec UserRecord
	if err := ur.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, direrrors.ErrUserNotFound
		}
		return nil, storeError("GetByUsername", err)
	}
	return rec.toUser(), nil
}

func (ur *GormUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	var rec UserRecord
	if err := ur.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, direrrors.ErrUserNotFound
		}
		return nil, storeError("GetByID", err)
	}
	return rec.toUser(), nil
}

func (ur *GormUserRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	res := ur.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return storeError("UpdatePasswordHash", res.Error)
	}
	if res.RowsAffected == 0 {
		return direrrors.ErrUserNotFound
	}
	return nil
}

func (rec UserRecord) toUser() *users.User {
	return &users.User{
		ID:           rec.ID,
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Role:         users.ParseRole(rec.Role),
		CreatedAt:    rec.CreatedAt,
	}
}

func storeError(op string, err error) error {
	return fmt.Errorf("[gormuserrepo %s] %w: %v", op, direrrors.ErrStore, err)
}
