package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func setupWatchHistoryService(t *testing.T) (*WatchHistoryService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewWatchHistoryService(
		repository.NewWatchHistoryRepository(db),
		repository.NewMovieRepository(db),
	), db
}

func TestWatchHistoryService_Record(t *testing.T) {
	svc, db := setupWatchHistoryService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	err := svc.Record(user.ID, &dto.RecordWatchRequest{
		MovieID:         movie.ID,
		PositionSeconds: 300,
	})
	require.NoError(t, err)

	items, total, err := svc.List(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, movie.Title, items[0].MovieTitle)
	assert.Equal(t, 300, items[0].PositionSeconds)
}

func TestWatchHistoryService_Record_MovieNotFound(t *testing.T) {
	svc, db := setupWatchHistoryService(t)
	user := testutil.TestUser(t, db)

	err := svc.Record(user.ID, &dto.RecordWatchRequest{MovieID: 99999})
	assert.True(t, errors.Is(err, ErrMovieNotFound))
}

func TestWatchHistoryService_Record_UpdatesProgress(t *testing.T) {
	svc, db := setupWatchHistoryService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	require.NoError(t, svc.Record(user.ID, &dto.RecordWatchRequest{
		MovieID:         movie.ID,
		PositionSeconds: 300,
	}))
	require.NoError(t, svc.Record(user.ID, &dto.RecordWatchRequest{
		MovieID:         movie.ID,
		PositionSeconds: 5400,
		Completed:       true,
	}))

	items, total, err := svc.List(user.ID, 1, 10)
	require.NoError(t, err)
	// 重复观看不产生新记录
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 5400, items[0].PositionSeconds)
	assert.True(t, items[0].Completed)
}

func TestWatchHistoryService_Delete(t *testing.T) {
	svc, db := setupWatchHistoryService(t)
	user := testutil.TestUser(t, db)
	movie := testutil.TestMovie(t, db)

	require.NoError(t, svc.Record(user.ID, &dto.RecordWatchRequest{MovieID: movie.ID}))
	require.NoError(t, svc.Delete(user.ID, movie.ID))

	_, total, err := svc.List(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
