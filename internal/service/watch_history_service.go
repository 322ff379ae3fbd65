package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
)

type WatchHistoryService struct {
	historyRepo *repository.WatchHistoryRepository
	movieRepo   *repository.MovieRepository
}

func NewWatchHistoryService(
	historyRepo *repository.WatchHistoryRepository,
	movieRepo *repository.MovieRepository,
) *WatchHistoryService {
	return &WatchHistoryService{
		historyRepo: historyRepo,
		movieRepo:   movieRepo,
	}
}

// Record 记录观看进度，同一影片重复观看只更新进度
func (s *WatchHistoryService) Record(userID int64, req *dto.RecordWatchRequest) error {
	_, err := s.movieRepo.GetByID(req.MovieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	return s.historyRepo.Upsert(&model.WatchHistory{
		UserID:          userID,
		MovieID:         req.MovieID,
		PositionSeconds: req.PositionSeconds,
		Completed:       req.Completed,
		WatchedAt:       time.Now(),
	})
}

// List 用户观看记录，按观看时间倒序
func (s *WatchHistoryService) List(userID int64, page, pageSize int) ([]*dto.WatchHistoryItem, int64, error) {
	histories, total, err := s.historyRepo.ListByUserID(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(histories))
	for i, h := range histories {
		ids[i] = h.MovieID
	}

	movies, err := s.movieRepo.ListByIDs(ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]*model.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	items := make([]*dto.WatchHistoryItem, 0, len(histories))
	for _, h := range histories {
		item := &dto.WatchHistoryItem{
			MovieID:         h.MovieID,
			PositionSeconds: h.PositionSeconds,
			Completed:       h.Completed,
			WatchedAt:       h.WatchedAt.Format(time.RFC3339),
		}
		if m, ok := byID[h.MovieID]; ok {
			item.MovieTitle = m.Title
			item.MovieSlug = m.Slug
			item.PosterURL = m.PosterURL
		}
		items = append(items, item)
	}

	return items, total, nil
}

// Delete 删除观看记录
func (s *WatchHistoryService) Delete(userID, movieID int64) error {
	return s.historyRepo.Delete(userID, movieID)
}
