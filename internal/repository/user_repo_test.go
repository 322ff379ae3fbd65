package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	email := "alice@example.com"
	hash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456"
	user := &model.User{
		Username:     "alice",
		Email:        &email,
		PasswordHash: &hash,
	}

	err := repo.Create(user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleUser, mustGetUser(t, repo, user.ID).Role)
}

func mustGetUser(t *testing.T, repo *UserRepository, id int64) *model.User {
	t.Helper()
	user, err := repo.GetByID(id)
	require.NoError(t, err)
	return user
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithUsername("alice"))

	err := repo.Create(&model.User{Username: "alice"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithEmail("bob@example.com"))

	user, err := repo.GetByEmail("bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.Email)
	assert.Equal(t, "bob@example.com", *user.Email)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_GetByGithubID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	githubID := "12345"
	user := testutil.TestUser(t, db, func(u *model.User) {
		u.GithubID = &githubID
	})

	got, err := repo.GetByGithubID("12345")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	exists, err := repo.ExistsByUsername("carol")
	require.NoError(t, err)
	assert.False(t, exists)

	testutil.TestUser(t, db, testutil.WithUsername("carol"))

	exists, err = repo.ExistsByUsername("carol")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db)

	err := repo.UpdateFields(user.ID, map[string]interface{}{
		"avatar_url": "https://cdn.example.com/avatar.png",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", got.AvatarURL)
}
