package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func setupFavoriteService(t *testing.T) (*FavoriteService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewMovieRepository(db),
	), db
}

func TestFavoriteService_Add(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	info, err := svc.Add(user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.ID, info.MovieID)
	assert.Equal(t, movie.Title, info.MovieTitle)
	assert.NotZero(t, info.ID)
}

func TestFavoriteService_Add_MovieNotFound(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)

	_, err := svc.Add(user.ID, 99999)
	assert.True(t, errors.Is(err, ErrMovieNotFound))
}

func TestFavoriteService_Add_Duplicate(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	_, err := svc.Add(user.ID, movie.ID)
	require.NoError(t, err)

	_, err = svc.Add(user.ID, movie.ID)
	assert.True(t, errors.Is(err, ErrAlreadyFavorited))
}

func TestFavoriteService_Add_DuplicateRace(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	// 乐观检查通过后、插入前在同一事务里抢先收藏，唯一索引兜底判重
	err := db.Callback().Create().Before("gorm:create").Register("take_favorite_pair", func(tx *gorm.DB) {
		favorite, ok := tx.Statement.Dest.(*model.Favorite)
		if !ok {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO favorites (user_id, movie_id) VALUES (?, ?)", favorite.UserID, favorite.MovieID)
	})
	require.NoError(t, err)

	_, err = svc.Add(user.ID, movie.ID)
	assert.True(t, errors.Is(err, ErrAlreadyFavorited))
}

func TestFavoriteService_Remove(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	// 未收藏时取消收藏报错
	err := svc.Remove(user.ID, movie.ID)
	assert.True(t, errors.Is(err, ErrNotFavorited))

	_, err = svc.Add(user.ID, movie.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(user.ID, movie.ID))

	ok, err := svc.IsFavorite(user.ID, movie.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFavoriteService_List(t *testing.T) {
	svc, db := setupFavoriteService(t)
	user := testutil.TestUser(t, db)

	m1 := testutil.TestMovie(t, db)
	m2 := testutil.TestMovie(t, db)
	testutil.TestMovie(t, db) // 未收藏

	_, err := svc.Add(user.ID, m1.ID)
	require.NoError(t, err)
	_, err = svc.Add(user.ID, m2.ID)
	require.NoError(t, err)

	resp, err := svc.List(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Movies, 2)
}

func TestFavoriteService_List_PerUser(t *testing.T) {
	svc, db := setupFavoriteService(t)
	alice := testutil.TestUser(t, db)
	bob := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	// 同一影片可被不同用户各自收藏
	_, err := svc.Add(alice.ID, movie.ID)
	require.NoError(t, err)
	_, err = svc.Add(bob.ID, movie.ID)
	require.NoError(t, err)

	resp, err := svc.List(alice.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}
