package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/pkg/response"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/service"
	"github.com/qs3c/kino_go_server/internal/testutil"
)

func setupPlanHandler(t *testing.T) (*PlanHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	planRepo := repository.NewPlanRepository(db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.Plan.CacheTTLSeconds = 300

	planService := service.NewPlanService(planRepo, rdb, cfg)
	handler := NewPlanHandler(planService)

	ctx := &testContext{
		DB: db,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, ctx, cleanup
}

func TestPlanHandler_List_Success(t *testing.T) {
	handler, ctx, cleanup := setupPlanHandler(t)
	defer cleanup()

	testutil.TestPlan(t, ctx.DB, testutil.WithPrice("0"))
	testutil.TestPlan(t, ctx.DB, testutil.WithPrice("49.99"))
	testutil.TestPlan(t, ctx.DB, testutil.WithInactive())

	router := gin.New()
	router.GET("/plans", handler.List)

	req := httptest.NewRequest("GET", "/plans", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	// 下架套餐不出现在列表里
	data, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestPlanHandler_Create_Success(t *testing.T) {
	handler, _, cleanup := setupPlanHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/plans", handler.Create)

	req := dto.CreatePlanRequest{
		Name:         "Premium",
		Price:        "99.99",
		DurationDays: 30,
		Features:     []string{"4K", "No ads"},
	}

	w := performRequest(router, "POST", "/plans", req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "99.99", data["price"])
}

func TestPlanHandler_Create_InvalidPrice(t *testing.T) {
	handler, _, cleanup := setupPlanHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/plans", handler.Create)

	req := dto.CreatePlanRequest{
		Name:     "Broken",
		Price:    "not-a-number",
		Features: []string{},
	}

	w := performRequest(router, "POST", "/plans", req)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestPlanHandler_Delete_Success(t *testing.T) {
	handler, ctx, cleanup := setupPlanHandler(t)
	defer cleanup()

	plan := testutil.TestPlan(t, ctx.DB)

	router := gin.New()
	router.DELETE("/plans/:id", handler.Delete)

	w := performRequest(router, "DELETE", fmt.Sprintf("/plans/%d", plan.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestPlanHandler_Delete_WithActiveSubscribers(t *testing.T) {
	handler, ctx, cleanup := setupPlanHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, ctx.DB)
	plan := testutil.TestPlan(t, ctx.DB)
	testutil.TestSubscription(t, ctx.DB, user.ID, plan.ID)

	router := gin.New()
	router.DELETE("/plans/:id", handler.Delete)

	w := performRequest(router, "DELETE", fmt.Sprintf("/plans/%d", plan.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeConflict, resp.Code)
}

func TestPlanHandler_Delete_NotFound(t *testing.T) {
	handler, _, cleanup := setupPlanHandler(t)
	defer cleanup()

	router := gin.New()
	router.DELETE("/plans/:id", handler.Delete)

	w := performRequest(router, "DELETE", "/plans/99999", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}
