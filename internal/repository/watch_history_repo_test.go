package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func TestWatchHistoryRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewWatchHistoryRepository(db)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	err := repo.Upsert(&model.WatchHistory{
		UserID:          user.ID,
		MovieID:         movie.ID,
		PositionSeconds: 120,
		WatchedAt:       time.Now(),
	})
	require.NoError(t, err)

	got, err := repo.GetByUserAndMovie(user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.PositionSeconds)
	assert.False(t, got.Completed)

	// 再次观看只更新进度，不产生新记录
	err = repo.Upsert(&model.WatchHistory{
		UserID:          user.ID,
		MovieID:         movie.ID,
		PositionSeconds: 3600,
		Completed:       true,
		WatchedAt:       time.Now(),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.WatchHistory{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err = repo.GetByUserAndMovie(user.ID, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 3600, got.PositionSeconds)
	assert.True(t, got.Completed)
}

func TestWatchHistoryRepository_ListByUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewWatchHistoryRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	for i := 0; i < 3; i++ {
		movie := testutil.TestMovie(t, db)
		err := repo.Upsert(&model.WatchHistory{
			UserID:    user.ID,
			MovieID:   movie.ID,
			WatchedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	otherMovie := testutil.TestMovie(t, db)
	require.NoError(t, repo.Upsert(&model.WatchHistory{
		UserID:    other.ID,
		MovieID:   otherMovie.ID,
		WatchedAt: time.Now(),
	}))

	histories, total, err := repo.ListByUserID(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, histories, 3)

	histories, _, err = repo.ListByUserID(user.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, histories, 2)
}

func TestWatchHistoryRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewWatchHistoryRepository(db)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	require.NoError(t, repo.Upsert(&model.WatchHistory{
		UserID:    user.ID,
		MovieID:   movie.ID,
		WatchedAt: time.Now(),
	}))

	err := repo.Delete(user.ID, movie.ID)
	require.NoError(t, err)

	_, err = repo.GetByUserAndMovie(user.ID, movie.ID)
	assert.Error(t, err)
}
