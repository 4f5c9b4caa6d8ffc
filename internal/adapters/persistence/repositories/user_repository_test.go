package repositories_test

import (
	"context"
	"testing"

	"bookshelf/internal/adapters/persistence/repositories"
	"bookshelf/internal/core/domain"
	"bookshelf/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", domain.RoleMember)
	testutil.CreateUser(t, db, "admin", domain.RoleAdmin)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, domain.RoleMember, got.ToDomain().Role)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	exists, err := repo.ExistsByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, exists)

	users, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}
