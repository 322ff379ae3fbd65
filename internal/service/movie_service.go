package service

import (
	"errors"
	"io"
	"math"
	"path/filepath"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/pkg/oss"
	"github.com/qs3c/kino_go_server/internal/repository"
)

var (
	ErrMovieNotFound    = errors.New("影片不存在")
	ErrCategoryMissing  = errors.New("部分分类不存在")
	ErrInvalidMovieData = errors.New("影片数据无效")
)

type MovieService struct {
	movieRepo    *repository.MovieRepository
	favoriteRepo *repository.FavoriteRepository
	ossClient    *oss.Client
	cfg          *config.Config
}

func NewMovieService(
	movieRepo *repository.MovieRepository,
	favoriteRepo *repository.FavoriteRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *MovieService {
	return &MovieService{
		movieRepo:    movieRepo,
		favoriteRepo: favoriteRepo,
		ossClient:    ossClient,
		cfg:          cfg,
	}
}

// List 分页查询影片列表
func (s *MovieService) List(req *dto.MovieListRequest) ([]dto.MovieListItem, int64, error) {
	movies, total, err := s.movieRepo.List(req.Page, req.PageSize, req.Category, req.Search, req.SubscriptionType)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.MovieListItem, len(movies))
	for i, m := range movies {
		items[i] = s.buildListItem(m)
	}

	return items, total, nil
}

// GetBySlug 获取影片详情并累加观看次数
func (s *MovieService) GetBySlug(slug string, userID *int64) (*dto.MovieDetail, error) {
	movie, err := s.movieRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	// 观看计数失败不影响详情返回
	s.movieRepo.IncrementViewCount(movie.ID)

	return s.buildDetail(movie, userID)
}

// Create 创建影片，slug 由标题生成并保证唯一
func (s *MovieService) Create(req *dto.CreateMovieRequest, userID int64) (*dto.MovieDetail, error) {
	// 校验分类全部存在
	count, err := s.movieRepo.CountCategories(req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if count != int64(len(uniqueIDs(req.CategoryIDs))) {
		return nil, ErrCategoryMissing
	}

	base := resolveSlug("", req.Title)
	if base == "" {
		return nil, ErrInvalidMovieData
	}

	subType := req.SubscriptionType
	if subType == "" {
		subType = model.SubscriptionTypeFree
	}

	categories := make([]*model.Category, len(req.CategoryIDs))
	for i, id := range req.CategoryIDs {
		categories[i] = &model.Category{ID: id}
	}

	files := make([]*model.MovieFile, len(req.Files))
	for i, f := range req.Files {
		lang := f.Language
		if lang == "" {
			lang = "uz"
		}
		files[i] = &model.MovieFile{
			FileURL:  f.FileURL,
			Quality:  f.Quality,
			Language: lang,
		}
	}

	movie := &model.Movie{
		Title:            req.Title,
		Description:      req.Description,
		ReleaseYear:      req.ReleaseYear,
		DurationMinutes:  req.DurationMinutes,
		PosterURL:        req.PosterURL,
		SubscriptionType: subType,
		CreatedBy:        userID,
		Categories:       categories,
		Files:            files,
	}
	if req.Rating != nil {
		rating := decimal.NewFromFloat(*req.Rating).Round(1)
		movie.Rating = &rating
	}

	// 乐观探测 + 唯一索引兜底：并发撞车时换后缀重试
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate, err := nextAvailableSlug(base, s.movieRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		movie.Slug = candidate

		err = s.movieRepo.Create(movie)
		if err == nil {
			return s.buildDetail(movie, &userID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, ErrSlugConflict
}

// UploadPoster 上传影片海报到 OSS 并更新海报地址
func (s *MovieService) UploadPoster(movieID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	_, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMovieNotFound
		}
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	posterURL, err := s.ossClient.UploadPoster(movieID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.movieRepo.UpdateFields(movieID, map[string]interface{}{
		"poster_url": posterURL,
	}); err != nil {
		return "", err
	}

	return posterURL, nil
}

// Delete 删除影片
func (s *MovieService) Delete(movieID int64) error {
	_, err := s.movieRepo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}
	return s.movieRepo.Delete(movieID)
}

func (s *MovieService) buildListItem(m *model.Movie) dto.MovieListItem {
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
	return item
}

func (s *MovieService) buildDetail(m *model.Movie, userID *int64) (*dto.MovieDetail, error) {
	avg, count, err := s.movieRepo.ReviewSummary(m.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.MovieDetail{
		ID:               m.ID,
		Title:            m.Title,
		Slug:             m.Slug,
		Description:      m.Description,
		ReleaseYear:      m.ReleaseYear,
		DurationMinutes:  m.DurationMinutes,
		PosterURL:        m.PosterURL,
		SubscriptionType: m.SubscriptionType,
		ViewCount:        m.ViewCount,
		Categories:       categoryNames(m.Categories),
		Files:            make([]dto.MovieFileInfo, len(m.Files)),
		Reviews: dto.ReviewSummary{
			AverageRating: math.Round(avg*10) / 10,
			Count:         int(count),
		},
	}
	if m.Rating != nil {
		rating := m.Rating.StringFixed(1)
		detail.Rating = &rating
	}
	for i, f := range m.Files {
		detail.Files[i] = dto.MovieFileInfo{Quality: f.Quality, Language: f.Language}
	}

	if userID != nil {
		isFavorite, err := s.favoriteRepo.Exists(*userID, m.ID)
		if err != nil {
			return nil, err
		}
		detail.IsFavorite = isFavorite
	}

	return detail, nil
}

func categoryNames(categories []*model.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
