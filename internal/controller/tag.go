package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
)

// TagApi 标签控制器
type TagApi struct {
	tagService *service.TagService
}

func NewTagApi(tagService *service.TagService) *TagApi {
	return &TagApi{tagService: tagService}
}

// List 全部标签
func (api *TagApi) List(c *gin.Context) {
	names, err := api.tagService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "获取标签失败", err)
		return
	}
	response.Success(c, "获取成功", dto.TagList{Tags: names})
}
