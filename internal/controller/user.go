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

// UserApi 用户控制器
type UserApi struct {
	logger      *zap.SugaredLogger
	userService *service.UserService
}

func NewUserApi(userService *service.UserService) *UserApi {
	return &UserApi{
		logger:      logger.GetSugaredLogger(),
		userService: userService,
	}
}

// Register 用户注册
func (api *UserApi) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := api.userService.Register(c.Request.Context(), req)
	if err != nil {
		api.logger.Warnf("注册失败: %v", err)
		response.FromError(c, "注册失败", err)
		return
	}
	response.Created(c, "注册成功", gin.H{"user": user})
}

// Login 用户登录
func (api *UserApi) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := api.userService.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, "登录失败", err)
		return
	}
	response.Success(c, "登录成功", gin.H{"user": user})
}

// Logout 注销当前令牌
func (api *UserApi) Logout(c *gin.Context) {
	if err := api.userService.Logout(c.Request.Context(), middleware.GetToken(c)); err != nil {
		api.logger.Errorf("注销令牌失败: %v", err)
		response.FromError(c, "退出登录失败", err)
		return
	}
	response.Success(c, "退出成功", nil)
}

// Current 当前用户信息
func (api *UserApi) Current(c *gin.Context) {
	user, err := api.userService.Current(c.Request.Context(), middleware.GetUserID(c), middleware.GetToken(c))
	if err != nil {
		response.FromError(c, "获取用户信息失败", err)
		return
	}
	response.Success(c, "获取成功", gin.H{"user": user})
}

// Update 更新当前用户信息
func (api *UserApi) Update(c *gin.Context) {
	var req dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := api.userService.Update(c.Request.Context(), middleware.GetUserID(c), middleware.GetToken(c), req)
	if err != nil {
		response.FromError(c, "更新用户信息失败", err)
		return
	}
	response.Success(c, "更新成功", gin.H{"user": user})
}
