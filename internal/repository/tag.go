package repository

import (
	"context"

	"github.com/nsxzhou1114/realworld-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository 标签仓储
type TagRepository struct {
	base
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{base{db: db}}
}

// FindOrCreate 按名称解析标签，不存在的自动创建；返回顺序与去重后的 names 一致
func (r *TagRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, names []string) ([]*model.Tag, error) {
	names = distinct(names)
	if len(names) == 0 {
		return []*model.Tag{}, nil
	}
	conn := r.conn(ctx, tx)

	found, err := r.findByNames(conn, names)
	if err != nil {
		return nil, err
	}

	missing := make([]*model.Tag, 0)
	for _, name := range names {
		if _, ok := found[name]; !ok {
			missing = append(missing, &model.Tag{Name: name})
		}
	}
	if len(missing) > 0 {
		// 并发创建同名标签时以唯一索引为准
		if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&missing).Error; err != nil {
			return nil, err
		}
		if found, err = r.findByNames(conn, names); err != nil {
			return nil, err
		}
	}

	tags := make([]*model.Tag, 0, len(names))
	for _, name := range names {
		if tag, ok := found[name]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *TagRepository) findByNames(conn *gorm.DB, names []string) (map[string]*model.Tag, error) {
	var rows []*model.Tag
	if err := conn.Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]*model.Tag, len(rows))
	for _, t := range rows {
		byName[t.Name] = t
	}
	return byName, nil
}

// FindByIDs 批量查询标签
func (r *TagRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*model.Tag, error) {
	var tags []*model.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.conn(ctx, tx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListNames 全部标签名，按名称排序
func (r *TagRepository) ListNames(ctx context.Context, tx *gorm.DB) ([]string, error) {
	names := make([]string, 0)
	if err := r.conn(ctx, tx).Model(&model.Tag{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func distinct(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
