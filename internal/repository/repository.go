package repository

import (
	"context"

	"gorm.io/gorm"
)

// base 仓储公共部分：tx 为空时使用根连接
type base struct {
	db *gorm.DB
}

func (b base) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = b.db
	}
	return tx.WithContext(ctx)
}

// Page 分页参数
type Page struct {
	Offset int
	Limit  int
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset).Limit(p.Limit)
}
