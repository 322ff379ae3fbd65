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

func TestCategoryRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)

	category := &model.Category{Name: "Action", Slug: "action"}
	err := repo.Create(category)
	require.NoError(t, err)
	assert.NotZero(t, category.ID)

	got, err := repo.GetBySlug("action")
	require.NoError(t, err)
	assert.Equal(t, "Action", got.Name)
}

func TestCategoryRepository_Create_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	require.NoError(t, repo.Create(&model.Category{Name: "Action", Slug: "action"}))

	err := repo.Create(&model.Category{Name: "Action Films", Slug: "action"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestCategoryRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	testutil.TestCategory(t, db, testutil.WithCategorySlug("Drama", "drama"))
	testutil.TestCategory(t, db, testutil.WithCategorySlug("Action", "action"))

	categories, err := repo.List()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// 按名称升序
	assert.Equal(t, "Action", categories[0].Name)
	assert.Equal(t, "Drama", categories[1].Name)
}

func TestCategoryRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	category := testutil.TestCategory(t, db)

	category.Description = "Updated description"
	err := repo.Update(category)
	require.NoError(t, err)

	got, err := repo.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated description", got.Description)
}

func TestCategoryRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	category := testutil.TestCategory(t, db)

	err := repo.Delete(category.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(category.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCategoryRepository_CountMovies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	category := testutil.TestCategory(t, db)

	count, err := repo.CountMovies(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	testutil.TestMovie(t, db, testutil.WithMovieCategories(category))
	testutil.TestMovie(t, db, testutil.WithMovieCategories(category))

	count, err = repo.CountMovies(category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
