package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewUserService(repository.NewUserRepository(db), nil, &config.Config{}), db
}

func TestUserService_GetProfile(t *testing.T) {
	svc, db := setupUserService(t)
	user := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	info, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)

	_, err = svc.GetProfile(99999)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db := setupUserService(t)
	user := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	username := "alice_new"
	avatar := "https://cdn.example.com/a.png"
	info, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{
		Username:  &username,
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_new", info.Username)
	assert.Equal(t, avatar, info.AvatarURL)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	svc, db := setupUserService(t)
	testutil.TestUser(t, db, testutil.WithUsername("bob"))
	user := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	username := "bob"
	_, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Username: &username})
	assert.True(t, errors.Is(err, ErrUsernameExists))
}

func TestUserService_UpdateProfile_SameUsernameAllowed(t *testing.T) {
	svc, db := setupUserService(t)
	user := testutil.TestUser(t, db, testutil.WithUsername("alice"))

	username := "alice"
	info, err := svc.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
}
