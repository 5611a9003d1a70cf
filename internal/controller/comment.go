package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/middleware"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
	"go.uber.org/zap"
)

// CommentApi 评论控制器
type CommentApi struct {
	logger         *zap.SugaredLogger
	commentService *service.CommentService
}

func NewCommentApi(commentService *service.CommentService) *CommentApi {
	return &CommentApi{
		logger:         logger.GetSugaredLogger(),
		commentService: commentService,
	}
}

// Create 发表评论
func (api *CommentApi) Create(c *gin.Context) {
	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := api.commentService.Create(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"), req)
	if err != nil {
		response.FromError(c, "发表评论失败", err)
		return
	}
	response.Created(c, "评论成功", gin.H{"comment": comment})
}

// List 文章评论列表
func (api *CommentApi) List(c *gin.Context) {
	comments, err := api.commentService.List(c.Request.Context(), middleware.GetUserID(c), c.Param("slug"))
	if err != nil {
		response.FromError(c, "获取评论失败", err)
		return
	}
	response.Success(c, "获取成功", gin.H{"comments": comments})
}

// Delete 删除评论
func (api *CommentApi) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的评论ID", err)
		return
	}

	if err := api.commentService.Delete(c.Request.Context(), middleware.GetUserID(c), uint(id)); err != nil {
		api.logger.Warnf("删除评论失败: %v", err)
		response.FromError(c, "删除评论失败", err)
		return
	}
	response.Success(c, "删除成功", nil)
}
