package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/api/middleware"
	"github.com/qs3c/kino_go_server/internal/model/dto"
	"github.com/qs3c/kino_go_server/internal/pkg/response"
	"github.com/qs3c/kino_go_server/internal/service"
)

type MovieHandler struct {
	movieService *service.MovieService
	cfg          *config.Config
}

func NewMovieHandler(movieService *service.MovieService, cfg *config.Config) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
		cfg:          cfg,
	}
}

// List 获取影片列表
// GET /api/v1/movies
func (h *MovieHandler) List(c *gin.Context) {
	var req dto.MovieListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	items, total, err := h.movieService.List(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, req.Page, req.PageSize, items)
}

// Get 获取影片详情（命中即计一次浏览）
// GET /api/v1/movies/:slug
func (h *MovieHandler) Get(c *gin.Context) {
	// 登录用户附带收藏状态
	var userID *int64
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	detail, err := h.movieService.GetBySlug(c.Param("slug"), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Create 创建影片
// POST /api/v1/admin/movies
func (h *MovieHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.movieService.Create(&req, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryMissing):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrInvalidMovieData):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrSlugConflict):
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", detail)
}

// UploadPoster 上传影片海报
// POST /api/v1/admin/movies/:id/poster
func (h *MovieHandler) UploadPoster(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的影片ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxSize {
		response.ParamError(c, "文件过大")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range h.cfg.Upload.AllowedExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		response.ParamError(c, "不支持的图片格式")
		return
	}

	url, err := h.movieService.UploadPoster(movieID, file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", gin.H{"poster_url": url})
}

// Delete 删除影片
// DELETE /api/v1/admin/movies/:id
func (h *MovieHandler) Delete(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的影片ID")
		return
	}

	if err := h.movieService.Delete(movieID); err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}
