package repositories

import (
	"context"
	"errors"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sessionRepository implements SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create creates a new session
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
}

// GetByID gets a session that has not been revoked
func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Revoke revokes a session. Revoking twice is a no-op.
func (r *sessionRepository) Revoke(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Where("revoked_at IS NULL").
		Update("revoked_at", &now).Error
}

// DeleteExpired deletes expired and revoked sessions (cleanup job)
func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", now.UTC()).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
