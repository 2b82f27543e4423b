package pg

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/padel-tracker/padel/shared/domain"
	internal_errors "github.com/padel-tracker/padel/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) domain.User {
	t.Helper()
	user, err := storage.SaveUser(context.Background(), domain.User{Email: email, PassHash: "hash", Name: "Tester"})
	require.NoError(t, err)
	return user
}

func TestSaveUser(t *testing.T) {
	ctx := context.Background()

	user, err := storage.SaveUser(ctx, domain.User{Email: "save@example.com", PassHash: "hash", Name: "Save"})
	require.NoError(t, err, "SaveUser should not return an error")
	assert.NotEqual(t, uuid.Nil, user.Id)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = storage.SaveUser(ctx, domain.User{Email: "save@example.com", PassHash: "other", Name: "Dup"})
	assert.True(t, internal_errors.HasStatusCode(err, http.StatusConflict), "duplicate email should be a conflict, got %v", err)
}

func TestUser(t *testing.T) {
	ctx := context.Background()
	saved := createTestUser(t, "lookup@example.com")

	user, err := storage.User(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, saved.Id, user.Id)
	assert.Equal(t, "hash", user.PassHash)
	assert.Equal(t, "Tester", user.Name)
	assert.False(t, user.Admin)

	byId, err := storage.UserById(ctx, saved.Id)
	require.NoError(t, err)
	assert.Equal(t, "lookup@example.com", byId.Email)

	_, err = storage.User(ctx, "nonexistent@example.com")
	assert.True(t, internal_errors.IsNotFound(err))
	_, err = storage.UserById(ctx, uuid.New())
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestSetAdmin(t *testing.T) {
	ctx := context.Background()
	saved := createTestUser(t, "promote@example.com")

	require.NoError(t, storage.SetAdmin(ctx, saved.Id, true))
	user, err := storage.UserById(ctx, saved.Id)
	require.NoError(t, err)
	assert.True(t, user.Admin)

	assert.True(t, internal_errors.IsNotFound(storage.SetAdmin(ctx, uuid.New(), true)))
}
