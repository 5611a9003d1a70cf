package service

import (
	"context"

	"gorm.io/gorm"
)

// TagService 标签服务
type TagService struct {
	store
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{store: newStore(db)}
}

// List 全部标签名，按字典序
func (s *TagService) List(ctx context.Context) ([]string, error) {
	return s.tags.ListNames(ctx, nil)
}
