package model

import (
	"fmt"

	"github.com/nsxzhou1114/realworld-api/internal/relation"
	"gorm.io/gorm"
)

// 需要自动迁移的模型列表
var models = append([]any{
	&User{},
	&Article{},
	&Tag{},
	&Comment{},
}, relation.Rows()...)

// InitTables 初始化数据库表
func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %w", err)
	}
	return nil
}
