package repositories_test

import (
	"context"
	"testing"
	"time"

	"bookshelf/internal/adapters/persistence/models"
	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewSessionRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	now := time.Now().UTC()

	live := &models.Session{ID: uuid.NewString(), UserID: alice.ID, ExpiresAt: now.Add(time.Hour)}
	expired := &models.Session{ID: uuid.NewString(), UserID: alice.ID, ExpiresAt: now.Add(-time.Hour)}
	revoked := &models.Session{ID: uuid.NewString(), UserID: alice.ID, ExpiresAt: now.Add(time.Hour)}
	for _, s := range []*models.Session{live, expired, revoked} {
		require.NoError(t, repo.Create(ctx, s))
	}

	require.NoError(t, repo.Revoke(ctx, revoked.ID))
	require.NoError(t, repo.Revoke(ctx, revoked.ID))

	_, err := repo.GetByID(ctx, revoked.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.GetByID(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)

	deleted, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.GetByID(ctx, live.ID)
	assert.NoError(t, err)
}
