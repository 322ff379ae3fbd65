package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/kino_go_server/internal/api/middleware"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/pkg/response"
	"github.com/qs3c/kino_go_server/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// Add 添加收藏
// POST /api/v1/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.favoriteService.Add(userID, req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyFavorited):
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "收藏成功", info)
}

// Remove 取消收藏
// DELETE /api/v1/favorites/:movieId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的影片ID")
		return
	}

	if err := h.favoriteService.Remove(userID, movieID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFavorited):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已取消收藏", nil)
}

// List 获取收藏列表
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	resp, err := h.favoriteService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}
