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

type WatchHistoryHandler struct {
	watchHistoryService *service.WatchHistoryService
}

func NewWatchHistoryHandler(watchHistoryService *service.WatchHistoryService) *WatchHistoryHandler {
	return &WatchHistoryHandler{
		watchHistoryService: watchHistoryService,
	}
}

// Record 记录观看进度（同一影片重复上报只保留最新）
// POST /api/v1/watch-history
func (h *WatchHistoryHandler) Record(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.RecordWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.watchHistoryService.Record(userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "记录成功", nil)
}

// List 获取观看记录
// GET /api/v1/watch-history
func (h *WatchHistoryHandler) List(c *gin.Context) {
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

	items, total, err := h.watchHistoryService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Delete 删除观看记录
// DELETE /api/v1/watch-history/:movieId
func (h *WatchHistoryHandler) Delete(c *gin.Context) {
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

	if err := h.watchHistoryService.Delete(userID, movieID); err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
