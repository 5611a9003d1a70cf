package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nsxzhou1114/realworld-api/internal/config"
	"github.com/nsxzhou1114/realworld-api/internal/database"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/router"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "realworld-api",
	Short: "RealWorld博客API服务",
	Long:  `RealWorld(Conduit)博客后端，支持用户、关注、文章、收藏、标签与评论`,
}

// serveCmd 启动服务命令
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	Long:  `启动博客API的HTTP服务器`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	// 添加全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")

	// 添加子命令
	rootCmd.AddCommand(serveCmd)
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化配置、日志与数据库
func initializeSystem() error {
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	db := database.GetDB()
	if db == nil {
		return errors.New("数据库连接失败")
	}

	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}
	return nil
}

// newTokens 按配置选择令牌黑名单实现
func newTokens(cfg *config.Config) (*auth.JWT, error) {
	var blacklist auth.Blacklist
	switch cfg.JWT.Blacklist {
	case auth.RedisBlacklist:
		blacklist = auth.NewRedisBlacklist(database.GetRedis())
	case auth.MemoryBlacklist, "":
		blacklist = auth.NewMemoryBlacklist()
	default:
		return nil, fmt.Errorf("不支持的黑名单类型: %s", cfg.JWT.Blacklist)
	}
	return auth.NewJWT(cfg.JWT, blacklist)
}

// startServer 启动HTTP服务
func startServer() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.GetConfig()
	gin.SetMode(cfg.App.Mode)

	tokens, err := newTokens(cfg)
	if err != nil {
		logger.Fatal("令牌组件初始化失败", zap.Error(err))
	}

	r := router.New(router.Deps{
		DB:      database.GetDB(),
		Tokens:  tokens,
		Hasher:  auth.NewPasswordHasher(0),
		Metrics: cfg.App.Metrics,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	// 优雅关闭
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	logger.Info("服务已启动", zap.String("addr", srv.Addr))

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务关闭异常", zap.Error(err))
	}

	logger.Info("服务已关闭")
}
