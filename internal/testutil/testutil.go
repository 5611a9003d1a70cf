// Package testutil 测试用的数据库与数据构造
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/config"
	"github.com/nsxzhou1114/realworld-api/internal/database"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB 在临时目录创建已迁移的sqlite数据库
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, model.InitTables(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser 直接写入一个用户
func CreateUser(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		ID:       uuid.New(),
		Email:    username + "@example.com",
		Username: username,
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}
