package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/middleware"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/response"
)

// ProfileApi 用户资料控制器
type ProfileApi struct {
	profileService *service.ProfileService
}

func NewProfileApi(profileService *service.ProfileService) *ProfileApi {
	return &ProfileApi{profileService: profileService}
}

func (api *ProfileApi) Get(c *gin.Context) {
	profile, err := api.profileService.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		response.FromError(c, "获取用户资料失败", err)
		return
	}
	response.Success(c, "获取成功", gin.H{"profile": profile})
}

func (api *ProfileApi) Follow(c *gin.Context) {
	profile, err := api.profileService.Follow(c.Request.Context(), middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		response.FromError(c, "关注失败", err)
		return
	}
	response.Success(c, "关注成功", gin.H{"profile": profile})
}

func (api *ProfileApi) Unfollow(c *gin.Context) {
	profile, err := api.profileService.Unfollow(c.Request.Context(), middleware.GetUserID(c), c.Param("username"))
	if err != nil {
		response.FromError(c, "取消关注失败", err)
		return
	}
	response.Success(c, "取消关注成功", gin.H{"profile": profile})
}
