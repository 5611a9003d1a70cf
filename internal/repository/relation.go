package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/metrics"
	"github.com/nsxzhou1114/realworld-api/internal/relation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationRepository 关系图的加载与落库
type RelationRepository struct {
	base
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{base{db: db}}
}

// LoadFollowing 载入这些用户关注的人
func (r *RelationRepository) LoadFollowing(ctx context.Context, tx *gorm.DB, g *relation.Graph, followerIDs ...uuid.UUID) error {
	if len(followerIDs) == 0 {
		return nil
	}
	var rows []relation.UserFollow
	if err := r.conn(ctx, tx).Where("follower_id IN ?", followerIDs).Find(&rows).Error; err != nil {
		return fmt.Errorf("加载关注关系失败: %w", err)
	}
	for _, row := range rows {
		g.Follows.Seed(row.FollowerID, row.FollowingID)
	}
	return nil
}

// LoadFavorites 载入这些文章的全部收藏者
func (r *RelationRepository) LoadFavorites(ctx context.Context, tx *gorm.DB, g *relation.Graph, articleIDs ...uint) error {
	if len(articleIDs) == 0 {
		return nil
	}
	var rows []relation.ArticleFavorite
	if err := r.conn(ctx, tx).Where("article_id IN ?", articleIDs).Find(&rows).Error; err != nil {
		return fmt.Errorf("加载收藏关系失败: %w", err)
	}
	for _, row := range rows {
		g.Favorites.Seed(row.UserID, row.ArticleID)
	}
	return nil
}

// LoadTags 载入这些文章的标签关系
func (r *RelationRepository) LoadTags(ctx context.Context, tx *gorm.DB, g *relation.Graph, articleIDs ...uint) error {
	if len(articleIDs) == 0 {
		return nil
	}
	var rows []relation.ArticleTag
	if err := r.conn(ctx, tx).Where("article_id IN ?", articleIDs).Find(&rows).Error; err != nil {
		return fmt.Errorf("加载标签关系失败: %w", err)
	}
	for _, row := range rows {
		g.Tags.Seed(row.ArticleID, row.TagID)
	}
	return nil
}

// Changes 一次 Flush 实际写入存储的关系行数
type Changes []Change

// Change 单种关系的新增、删除行数
type Change struct {
	Kind     relation.Kind
	Linked   int64
	Unlinked int64
}

// Observe 记录到指标，应在事务提交后调用
func (c Changes) Observe() {
	for _, ch := range c {
		metrics.ObserveRelation(string(ch.Kind), "link", int(ch.Linked))
		metrics.ObserveRelation(string(ch.Kind), "unlink", int(ch.Unlinked))
	}
}

// Flush 把关系图的待提交变化写入存储，应在业务事务内调用
func (r *RelationRepository) Flush(ctx context.Context, tx *gorm.DB, g *relation.Graph) (Changes, error) {
	if !g.Dirty() {
		return nil, nil
	}
	conn := r.conn(ctx, tx)
	changes := make(Changes, 0, 3)

	ch, err := flush(conn, g.Follows, func(e relation.Edge[uuid.UUID, uuid.UUID]) *relation.UserFollow {
		return &relation.UserFollow{FollowerID: e.From, FollowingID: e.To}
	})
	if err != nil {
		return nil, err
	}
	changes = append(changes, ch)

	ch, err = flush(conn, g.Favorites, func(e relation.Edge[uuid.UUID, uint]) *relation.ArticleFavorite {
		return &relation.ArticleFavorite{UserID: e.From, ArticleID: e.To}
	})
	if err != nil {
		return nil, err
	}
	changes = append(changes, ch)

	ch, err = flush(conn, g.Tags, func(e relation.Edge[uint, uint]) *relation.ArticleTag {
		return &relation.ArticleTag{ArticleID: e.From, TagID: e.To}
	})
	if err != nil {
		return nil, err
	}
	changes = append(changes, ch)

	g.Commit()
	return changes, nil
}

// flush 新增用 ON CONFLICT DO NOTHING，删除按主键条件，重复提交不会出错；按 RowsAffected 计数
func flush[A comparable, B comparable, R any](conn *gorm.DB, rel *relation.Relation[A, B], toRow func(relation.Edge[A, B]) *R) (Change, error) {
	linked, unlinked := rel.Pending()
	ch := Change{Kind: rel.Kind()}

	for _, e := range linked {
		res := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(toRow(e))
		if res.Error != nil {
			return ch, fmt.Errorf("写入%s关系失败: %w", rel.Kind(), res.Error)
		}
		ch.Linked += res.RowsAffected
	}
	for _, e := range unlinked {
		res := conn.Where(toRow(e)).Delete(new(R))
		if res.Error != nil {
			return ch, fmt.Errorf("删除%s关系失败: %w", rel.Kind(), res.Error)
		}
		ch.Unlinked += res.RowsAffected
	}
	return ch, nil
}

// DanglingReport 指向不存在实体的关系行数量
type DanglingReport struct {
	Follows   int64
	Favorites int64
	Tags      int64
}

// Total 悬空关系总数
func (d DanglingReport) Total() int64 {
	return d.Follows + d.Favorites + d.Tags
}

// Dangling 统计悬空关系行
func (r *RelationRepository) Dangling(ctx context.Context, tx *gorm.DB) (DanglingReport, error) {
	var report DanglingReport
	conn := r.conn(ctx, tx)

	err := conn.Model(&relation.UserFollow{}).
		Joins("LEFT JOIN users a ON a.id = user_follows.follower_id").
		Joins("LEFT JOIN users b ON b.id = user_follows.following_id").
		Where("a.id IS NULL OR b.id IS NULL").
		Count(&report.Follows).Error
	if err != nil {
		return report, err
	}

	err = conn.Model(&relation.ArticleFavorite{}).
		Joins("LEFT JOIN users ON users.id = article_favorites.user_id").
		Joins("LEFT JOIN articles ON articles.id = article_favorites.article_id").
		Where("users.id IS NULL OR articles.id IS NULL").
		Count(&report.Favorites).Error
	if err != nil {
		return report, err
	}

	err = conn.Model(&relation.ArticleTag{}).
		Joins("LEFT JOIN tags ON tags.id = article_tags.tag_id").
		Joins("LEFT JOIN articles ON articles.id = article_tags.article_id").
		Where("tags.id IS NULL OR articles.id IS NULL").
		Count(&report.Tags).Error
	return report, err
}
