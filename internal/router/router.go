package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/controller"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/metrics"
	"github.com/nsxzhou1114/realworld-api/internal/middleware"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"gorm.io/gorm"
)

// Deps 路由依赖
type Deps struct {
	DB      *gorm.DB
	Tokens  *auth.JWT
	Hasher  *auth.PasswordHasher
	Metrics bool // 是否暴露 /metrics
}

// New 创建带日志、恢复、跨域与指标中间件的引擎并注册路由
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinRecovery(), logger.GinLogger(), middleware.Cors())
	if deps.Metrics {
		if err := metrics.Register(nil); err != nil {
			logger.Warnf("注册指标失败: %v", err)
		}
		r.Use(metrics.GinMetrics())
		r.GET("/metrics", metrics.Handler())
	}
	Setup(r, deps)
	return r
}

// Setup 设置API路由
func Setup(r *gin.Engine, deps Deps) {
	api := r.Group("/api")

	required := middleware.JWTAuth(deps.Tokens)
	optional := middleware.OptionalAuth(deps.Tokens)

	// 用户相关路由
	setupUserRoutes(api, controller.NewUserApi(service.NewUserService(deps.DB, deps.Tokens, deps.Hasher)), required)

	// 用户资料相关路由
	setupProfileRoutes(api, controller.NewProfileApi(service.NewProfileService(deps.DB)), required, optional)

	// 文章与评论相关路由
	setupArticleRoutes(api,
		controller.NewArticleApi(service.NewArticleService(deps.DB)),
		controller.NewCommentApi(service.NewCommentService(deps.DB)),
		required, optional)

	// 标签相关路由
	api.GET("/tags", controller.NewTagApi(service.NewTagService(deps.DB)).List)
}

func setupUserRoutes(api *gin.RouterGroup, userApi *controller.UserApi, required gin.HandlerFunc) {
	userRoutes := api.Group("/users")
	{
		// 注册
		userRoutes.POST("", userApi.Register)
		// 登录
		userRoutes.POST("/login", userApi.Login)
		// 登出
		userRoutes.POST("/logout", required, userApi.Logout)
	}

	// 当前用户
	currentRoutes := api.Group("/user", required)
	{
		currentRoutes.GET("", userApi.Current)
		currentRoutes.PUT("", userApi.Update)
	}
}

func setupProfileRoutes(api *gin.RouterGroup, profileApi *controller.ProfileApi, required, optional gin.HandlerFunc) {
	profileRoutes := api.Group("/profiles/:username")
	{
		profileRoutes.GET("", optional, profileApi.Get)
		profileRoutes.POST("/follow", required, profileApi.Follow)
		profileRoutes.DELETE("/follow", required, profileApi.Unfollow)
	}
}

func setupArticleRoutes(api *gin.RouterGroup, articleApi *controller.ArticleApi, commentApi *controller.CommentApi, required, optional gin.HandlerFunc) {
	// 公开路由，登录后附带 favorited/following 信息
	publicRoutes := api.Group("/articles", optional)
	{
		publicRoutes.GET("", articleApi.List)
		publicRoutes.GET("/:slug", articleApi.Get)
		publicRoutes.GET("/:slug/comments", commentApi.List)
	}

	// 需要认证的路由
	authRoutes := api.Group("/articles", required)
	{
		authRoutes.GET("/feed", articleApi.Feed)
		authRoutes.POST("", articleApi.Create)
		authRoutes.PUT("/:slug", articleApi.Update)
		authRoutes.DELETE("/:slug", articleApi.Delete)
		authRoutes.POST("/:slug/favorite", articleApi.Favorite)
		authRoutes.DELETE("/:slug/favorite", articleApi.Unfavorite)
		authRoutes.POST("/:slug/comments", commentApi.Create)
		authRoutes.DELETE("/:slug/comments/:id", commentApi.Delete)
	}
}
