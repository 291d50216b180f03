package gormsessionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	direrrors "github.com/jrsteele09/staff-directory/internal/errors"
	"github.com/jrsteele09/staff-directory/sessions"
	"github.com/jrsteele09/staff-directory/users"
	"gorm.io/gorm"
)

var _ sessions.Repo = (*GormSessionRepo)(nil)

// SessionRecord is the sessions table row. The identity columns are the snapshot taken at login.
type SessionRecord struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    int64     `gorm:"not null;index"`
	Username  string    `gorm:"size:191;not null"`
	Role      string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (SessionRecord) TableName() string {
	return "sessions"
}

type GormSessionRepo struct {
	db *gorm.DB
}

func NewGormSessionRepo(db *gorm.DB) *GormSessionRepo {
	return &GormSessionRepo{db: db}
}

func (sr *GormSessionRepo) Upsert(ctx context.Context, session *sessions.Session) error {
	rec := SessionRecord{
		Token:     session.Token,
		UserID:    session.Identity.ID,
		Username:  session.Identity.Username,
		Role:      string(session.Identity.Role),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if err := sr.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return storeError("Upsert", err)
	}
	return nil
}

func (sr *GormSessionRepo) Get(ctx context.Context, token string) (*sessions.Session, error) {
	var rec SessionRecord
	if err := sr.db.WithContext(ctx).Where("token = ?", token).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, direrrors.ErrSessionNotFound
		}
		return nil, storeError("Get", err)
	}
	return &sessions.Session{
		Token: rec.Token,
		Identity: users.Identity{
			ID:       rec.UserID,
			Username: rec.Username,
			Role:     users.ParseRole(rec.Role),
		},
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (sr *GormSessionRepo) Delete(ctx context.Context, token string) error {
	if err := sr.db.WithContext(ctx).Where("token = ?", token).Delete(&SessionRecord{}).Error; err != nil {
		return storeError("Delete", err)
	}
	return nil
}

func (sr *GormSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := sr.db.WithContext(ctx).Where("expires_at <= ?", before).Delete(&SessionRecord{})
	if res.Error != nil {
		return 0, storeError("DeleteExpired", res.Error)
	}
	return res.RowsAffected, nil
}

func storeError(op string, err error) error {
	return fmt.Errorf("[gormsessionrepo %s] %w: %v", op, direrrors.ErrStore, err)
}
