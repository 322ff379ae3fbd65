package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
)

var (
	ErrCategoryNotFound  = errors.New("分类不存在")
	ErrCategorySlugTaken = errors.New("分类 slug 已被占用")
	ErrInvalidCategory   = errors.New("分类数据无效")
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 分类列表，按名称升序
func (s *CategoryService) List() ([]*dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CategoryInfo, len(categories))
	for i, c := range categories {
		items[i] = buildCategoryInfo(c)
	}
	return items, nil
}

func (s *CategoryService) GetByID(id int64) (*dto.CategoryInfo, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	info := buildCategoryInfo(category)
	count, err := s.categoryRepo.CountMovies(id)
	if err != nil {
		return nil, err
	}
	info.MovieCount = &count
	return info, nil
}

// Create 创建分类，slug 优先取显式传入值，否则由名称生成
func (s *CategoryService) Create(req *dto.CreateCategoryRequest) (*dto.CategoryInfo, error) {
	base := resolveSlug(req.Slug, req.Name)
	if base == "" {
		return nil, ErrInvalidCategory
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		candidate, err := nextAvailableSlug(base, s.categoryRepo.ExistsBySlug)
		if err != nil {
			return nil, err
		}
		category.Slug = candidate

		err = s.categoryRepo.Create(category)
		if err == nil {
			return buildCategoryInfo(category), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, ErrSlugConflict
}

// Update 更新分类，仅显式传入 slug 时才变更
func (s *CategoryService) Update(id int64, req *dto.UpdateCategoryRequest) (*dto.CategoryInfo, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Slug != nil {
		newSlug := resolveSlug(*req.Slug, "")
		if newSlug == "" {
			return nil, ErrInvalidCategory
		}
		// 与其它分类撞车则拒绝，不自动加后缀
		existing, err := s.categoryRepo.GetBySlug(newSlug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategorySlugTaken
		}
		category.Slug = newSlug
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategorySlugTaken
		}
		return nil, err
	}

	return buildCategoryInfo(category), nil
}

// Delete 删除分类
func (s *CategoryService) Delete(id int64) error {
	_, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func buildCategoryInfo(c *model.Category) *dto.CategoryInfo {
	return &dto.CategoryInfo{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
