package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
)

var (
	ErrAlreadyFavorited = errors.New("影片已在收藏列表中")
	ErrNotFavorited     = errors.New("影片不在收藏列表中")
)

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	movieRepo    *repository.MovieRepository
}

func NewFavoriteService(
	favoriteRepo *repository.FavoriteRepository,
	movieRepo *repository.MovieRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		movieRepo:    movieRepo,
	}
}

// Add 添加收藏。先做乐观检查，并发下以唯一索引兜底判重。
func (s *FavoriteService) Add(userID, movieID int64) (*dto.FavoriteInfo, error) {
	movie, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(userID, movieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	favorite := &model.Favorite{UserID: userID, MovieID: movieID}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	return &dto.FavoriteInfo{
		ID:         favorite.ID,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		CreatedAt:  favorite.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Remove 取消收藏
func (s *FavoriteService) Remove(userID, movieID int64) error {
	exists, err := s.favoriteRepo.Exists(userID, movieID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFavorited
	}
	return s.favoriteRepo.Delete(userID, movieID)
}

// IsFavorite 查询收藏状态
func (s *FavoriteService) IsFavorite(userID, movieID int64) (bool, error) {
	return s.favoriteRepo.Exists(userID, movieID)
}

// List 收藏的影片列表，按收藏时间倒序
func (s *FavoriteService) List(userID int64, page, pageSize int) (*dto.FavoriteListResponse, error) {
	ids, total, err := s.favoriteRepo.ListMovieIDs(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	movies, err := s.movieRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}

	// Find 不保证顺序，按收藏顺序重排
	byID := make(map[int64]*model.Movie, len(movies))
	for _, m := range movies {
		byID[m.ID] = m
	}

	items := make([]dto.MovieListItem, 0, len(ids))
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			continue
		}
		item := dto.MovieListItem{
			ID:               m.ID,
			Title:            m.Title,
			Slug:             m.Slug,
			PosterURL:        m.PosterURL,
			ReleaseYear:      m.ReleaseYear,
			SubscriptionType: m.SubscriptionType,
			Categories:       categoryNames(m.Categories),
		}
		if m.Rating != nil {
			rating := m.Rating.StringFixed(1)
			item.Rating = &rating
		}
		items = append(items, item)
	}

	return &dto.FavoriteListResponse{
		Movies: items,
		Total:  int(total),
	}, nil
}
