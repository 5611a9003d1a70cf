package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nsxzhou1114/realworld-api/internal/database"
	"github.com/nsxzhou1114/realworld-api/internal/repository"
	"github.com/spf13/cobra"
)

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表迁移与关系一致性检查`,
}

// migrateCmd 建表迁移
// 示例：./realworld-api db migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "迁移数据库表结构",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()
		fmt.Println("✅ 数据库表结构已是最新")
	},
}

// checkRelationsCmd 检查悬空关系
// 示例：./realworld-api db check-relations
var checkRelationsCmd = &cobra.Command{
	Use:   "check-relations",
	Short: "检查关注、收藏、标签关系的一致性",
	Long:  `统计指向不存在用户、文章或标签的关系行，存在悬空关系时以非零状态退出`,
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()
		checkRelations(cmd.Context())
	},
}

func init() {
	databaseCmd.AddCommand(migrateCmd, checkRelationsCmd)
	rootCmd.AddCommand(databaseCmd)
}

// mustInitialize 初始化失败直接退出
func mustInitialize() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
}

func checkRelations(ctx context.Context) {
	report, err := repository.NewRelationRepository(database.GetDB()).Dangling(ctx, nil)
	if err != nil {
		fmt.Printf("❌ 检查失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📊 悬空关系统计")
	fmt.Printf("  关注: %d\n", report.Follows)
	fmt.Printf("  收藏: %d\n", report.Favorites)
	fmt.Printf("  标签: %d\n", report.Tags)

	if report.Total() > 0 {
		fmt.Printf("❌ 共发现 %d 条悬空关系\n", report.Total())
		os.Exit(1)
	}
	fmt.Println("✅ 关系数据一致")
}
