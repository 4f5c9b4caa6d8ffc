package services_test

import (
	"context"
	"testing"

	"bookshelf/internal/core/domain"
	"bookshelf/internal/core/services"
	"bookshelf/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Create(ctx, &services.CreateUserInput{Username: " carol ", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.True(t, password.Verify("longenough", user.PasswordHash))

	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	_, err = f.users.Create(ctx, &services.CreateUserInput{Username: "carol", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)
}

func TestUserServiceCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, &services.CreateUserInput{Username: "ab", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.users.Create(ctx, &services.CreateUserInput{Username: "carol", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.users.Create(ctx, &services.CreateUserInput{Username: "carol", Password: "longenough", Role: "librarian"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserServiceList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t, "librarian")
	member := f.member(t, "alice")

	users, total, err := f.users.List(ctx, admin, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	_, _, err = f.users.List(ctx, member, 1, 20)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
