package cmd

import (
	"fmt"
	"os"

	"github.com/nsxzhou1114/realworld-api/internal/database"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/relation"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// statsCmd 统计命令
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "统计信息",
	Long:  `显示用户、文章、评论、标签及各类关系的数量和数据库连接状态`,
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()
		showStats(database.GetDB())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func showStats(db *gorm.DB) {
	counts := []struct {
		label string
		model any
	}{
		{"用户", &model.User{}},
		{"文章", &model.Article{}},
		{"评论", &model.Comment{}},
		{"标签", &model.Tag{}},
		{"关注关系", &relation.UserFollow{}},
		{"收藏关系", &relation.ArticleFavorite{}},
		{"文章标签", &relation.ArticleTag{}},
	}

	fmt.Println("=== 系统统计信息 ===")
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Count(&n).Error; err != nil {
			fmt.Printf("统计%s失败: %v\n", c.label, err)
			os.Exit(1)
		}
		fmt.Printf("%s总数: %d\n", c.label, n)
	}

	sqlDB, err := db.DB()
	if err != nil {
		fmt.Printf("获取数据库连接失败: %v\n", err)
		os.Exit(1)
	}
	s := sqlDB.Stats()
	fmt.Println("=== 数据库连接 ===")
	fmt.Printf("打开: %d, 使用中: %d, 空闲: %d, 等待: %d\n", s.OpenConnections, s.InUse, s.Idle, s.WaitCount)
}
