package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/kino_go_server/internal/model"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func setupCategoryService(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryService_Create_SlugFromName(t *testing.T) {
	svc, _ := setupCategoryService(t)

	info, err := svc.Create(&dto.CreateCategoryRequest{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", info.Slug)
}

func TestCategoryService_Create_ExplicitSlug(t *testing.T) {
	svc, _ := setupCategoryService(t)

	info, err := svc.Create(&dto.CreateCategoryRequest{Name: "Science Fiction", Slug: "Sci Fi"})
	require.NoError(t, err)
	// 显式 slug 同样归一化
	assert.Equal(t, "sci-fi", info.Slug)
}

func TestCategoryService_Create_SlugSuffix(t *testing.T) {
	svc, _ := setupCategoryService(t)

	first, err := svc.Create(&dto.CreateCategoryRequest{Name: "Action"})
	require.NoError(t, err)
	assert.Equal(t, "action", first.Slug)

	second, err := svc.Create(&dto.CreateCategoryRequest{Name: "Action"})
	require.NoError(t, err)
	assert.Equal(t, "action-1", second.Slug)
}

func TestCategoryService_Create_RetriesExhausted(t *testing.T) {
	svc, db := setupCategoryService(t)

	// 每次插入前在同一事务里抢占候选 slug，模拟持续撞车直到重试耗尽
	attempts := 0
	err := db.Callback().Create().Before("gorm:create").Register("take_candidate_slug", func(tx *gorm.DB) {
		category, ok := tx.Statement.Dest.(*model.Category)
		if !ok {
			return
		}
		attempts++
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("INSERT INTO categories (name, slug) VALUES (?, ?)", "Squatter", category.Slug)
	})
	require.NoError(t, err)

	_, err = svc.Create(&dto.CreateCategoryRequest{Name: "Action"})
	assert.True(t, errors.Is(err, ErrSlugConflict))
	assert.Equal(t, maxSlugRetries, attempts)
}

func TestCategoryService_Create_Invalid(t *testing.T) {
	svc, _ := setupCategoryService(t)

	_, err := svc.Create(&dto.CreateCategoryRequest{Name: "###"})
	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestCategoryService_GetByID(t *testing.T) {
	svc, db := setupCategoryService(t)
	category := testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))
	testutil.TestMovie(t, db, testutil.WithMovieCategories(category))
	testutil.TestMovie(t, db, testutil.WithMovieCategories(category))

	info, err := svc.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "action", info.Slug)
	// 详情附带影片数量
	require.NotNil(t, info.MovieCount)
	assert.Equal(t, int64(2), *info.MovieCount)

	_, err = svc.GetByID(99999)
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestCategoryService_Update(t *testing.T) {
	svc, db := setupCategoryService(t)
	category := testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))

	name := "Action Films"
	desc := "Explosions etc"
	info, err := svc.Update(category.ID, &dto.UpdateCategoryRequest{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Action Films", info.Name)
	// 未传 slug 时保持不变
	assert.Equal(t, "action", info.Slug)
}

func TestCategoryService_Update_SlugConflict(t *testing.T) {
	svc, db := setupCategoryService(t)
	testutil.TestCategory(t, db, testutil.WithCategorySlug("Drama", "drama"))
	category := testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))

	slug := "drama"
	_, err := svc.Update(category.ID, &dto.UpdateCategoryRequest{Slug: &slug})
	assert.True(t, errors.Is(err, ErrCategorySlugTaken))
}

func TestCategoryService_Update_SameSlugAllowed(t *testing.T) {
	svc, db := setupCategoryService(t)
	category := testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))

	// 提交自己当前的 slug 不算冲突
	slug := "action"
	info, err := svc.Update(category.ID, &dto.UpdateCategoryRequest{Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "action", info.Slug)
}

func TestCategoryService_Delete(t *testing.T) {
	svc, db := setupCategoryService(t)
	category := testutil.TestCategory(t, db)

	require.NoError(t, svc.Delete(category.ID))

	err := svc.Delete(category.ID)
	assert.True(t, errors.Is(err, ErrCategoryNotFound))
}

func TestCategoryService_List(t *testing.T) {
	svc, db := setupCategoryService(t)
	testutil.TestCategory(t, db, testutil.WithCategorySlug("Drama", "drama"))
	testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Action", items[0].Name)
}
