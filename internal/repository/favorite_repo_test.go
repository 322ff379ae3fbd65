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

func TestFavoriteRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewFavoriteRepository(db)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	err := repo.Create(&model.Favorite{UserID: user.ID, MovieID: movie.ID})
	require.NoError(t, err)

	exists, err := repo.Exists(user.ID, movie.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFavoriteRepository_Create_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewFavoriteRepository(db)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	err := repo.Create(&model.Favorite{UserID: user.ID, MovieID: movie.ID})
	require.NoError(t, err)

	// 重复收藏触发唯一索引冲突
	err = repo.Create(&model.Favorite{UserID: user.ID, MovieID: movie.ID})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestFavoriteRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewFavoriteRepository(db)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	err := repo.Create(&model.Favorite{UserID: user.ID, MovieID: movie.ID})
	require.NoError(t, err)

	err = repo.Delete(user.ID, movie.ID)
	require.NoError(t, err)

	exists, err := repo.Exists(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteRepository_ListMovieIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewFavoriteRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	movies := make([]*model.Movie, 3)
	for i := range movies {
		movies[i] = testutil.TestMovie(t, db)
		err := repo.Create(&model.Favorite{UserID: user.ID, MovieID: movies[i].ID})
		require.NoError(t, err)
	}

	// 其他用户的收藏不应出现
	err := repo.Create(&model.Favorite{UserID: other.ID, MovieID: movies[0].ID})
	require.NoError(t, err)

	ids, total, err := repo.ListMovieIDs(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, ids, 3)

	// 分页
	ids, total, err = repo.ListMovieIDs(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, ids, 2)
}
