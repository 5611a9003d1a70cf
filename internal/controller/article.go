package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/middleware"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
	"go.uber.org/zap"
)

// ArticleApi 文章控制器
type ArticleApi struct {
	logger         *zap.SugaredLogger
	articleService *service.ArticleService
}

// NewArticleApi 创建文章控制器实例
func NewArticleApi(articleService *service.ArticleService) *ArticleApi {
	return &ArticleApi{
		logger:         logger.GetSugaredLogger(),
		articleService: articleService,
	}
}

// List 文章列表，支持 tag/author/favorited 筛选
func (api *ArticleApi) List(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Normalize()
	list, err := api.articleService.List(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		api.logger.Errorf("获取文章列表失败: %v", err)
		response.FromError(c, "获取文章列表失败", err)
		return
	}
	response.SuccessPage(c, "获取成功", list, req.Offset, req.Limit, list.ArticlesCount)
}

// Feed 关注作者的文章
func (api *ArticleApi) Feed(c *gin.Context) {
	var req dto.ArticleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	req.Normalize()
	list, err := api.articleService.Feed(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		response.FromError(c, "获取关注流失败", err)
		return
	}
	response.SuccessPage(c, "获取成功", list, req.Offset, req.Limit, list.ArticlesCount)
}

// Get 文章详情
func (api *ArticleApi) Get(c *gin.Context) {
	article, err := api.articleService.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, "获取文章失败", err)
		return
	}
	response.Success(c, "获取成功", gin.H{"article": article})
}

// Create 创建文章
func (api *ArticleApi) Create(c *gin.Context) {
	var req dto.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	article, err := api.articleService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		api.logger.Errorf("创建文章失败: %v", err)
		response.FromError(c, "创建文章失败", err)
		return
	}
	response.Created(c, "创建成功", gin.H{"article": article})
}

// Update 更新文章
func (api *ArticleApi) Update(c *gin.Context) {
	var req dto.ArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	article, err := api.articleService.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"), req)
	if err != nil {
		api.logger.Warnf("更新文章失败: %v", err)
		response.FromError(c, "更新文章失败", err)
		return
	}
	response.Success(c, "更新成功", gin.H{"article": article})
}

// Delete 删除文章
func (api *ArticleApi) Delete(c *gin.Context) {
	if err := api.articleService.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("slug")); err != nil {
		api.logger.Warnf("删除文章失败: %v", err)
		response.FromError(c, "删除文章失败", err)
		return
	}
	response.Success(c, "删除成功", nil)
}

// Favorite 收藏文章
func (api *ArticleApi) Favorite(c *gin.Context) {
	article, err := api.articleService.Favorite(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, "收藏失败", err)
		return
	}
	response.Success(c, "收藏成功", gin.H{"article": article})
}

// Unfavorite 取消收藏
func (api *ArticleApi) Unfavorite(c *gin.Context) {
	article, err := api.articleService.Unfavorite(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, "取消收藏失败", err)
		return
	}
	response.Success(c, "取消收藏成功", gin.H{"article": article})
}
