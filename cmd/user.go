package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nsxzhou1114/realworld-api/internal/config"
	"github.com/nsxzhou1114/realworld-api/internal/database"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/service"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/spf13/cobra"
)

var (
	userEmail    string
	userName     string
	userPassword string
)

// userCmd 用户管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "用户管理命令",
}

// createUserCmd 创建用户
// 示例：./realworld-api user create --email a@b.c --username jake --password secret123
var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "创建用户",
	Run: func(cmd *cobra.Command, args []string) {
		createUser(cmd.Context())
	},
}

func init() {
	createUserCmd.Flags().StringVar(&userEmail, "email", "", "邮箱")
	createUserCmd.Flags().StringVar(&userName, "username", "", "用户名")
	createUserCmd.Flags().StringVar(&userPassword, "password", "", "密码")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(userCmd)
}

func createUser(ctx context.Context) {
	mustInitialize()

	tokens, err := auth.NewJWT(config.GetConfig().JWT, auth.NewMemoryBlacklist())
	if err != nil {
		fmt.Printf("❌ 令牌组件初始化失败: %v\n", err)
		os.Exit(1)
	}
	users := service.NewUserService(database.GetDB(), tokens, auth.NewPasswordHasher(0))

	user, err := users.Register(ctx, dto.RegisterRequest{
		Email:    userEmail,
		Username: userName,
		Password: userPassword,
	})
	if err != nil {
		fmt.Printf("❌ 创建用户失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ 用户创建成功")
	fmt.Printf("  用户名: %s\n", user.Username)
	fmt.Printf("  邮箱: %s\n", user.Email)
	fmt.Printf("  令牌: %s\n", user.Token)
}
