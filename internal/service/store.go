package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/domain"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/repository"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"gorm.io/gorm"
)

// store 各服务共用的仓储集合与加载逻辑
type store struct {
	db        *gorm.DB
	users     *repository.UserRepository
	articles  *repository.ArticleRepository
	tags      *repository.TagRepository
	comments  *repository.CommentRepository
	relations *repository.RelationRepository
}

func newStore(db *gorm.DB) store {
	return store{
		db:        db,
		users:     repository.NewUserRepository(db),
		articles:  repository.NewArticleRepository(db),
		tags:      repository.NewTagRepository(db),
		comments:  repository.NewCommentRepository(db),
		relations: repository.NewRelationRepository(db),
	}
}

// transaction 在单个事务中执行，fn 内的数据库访问都必须使用 tx
func (s store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// viewer 载入可选的查看者及其关注列表，匿名或用户不存在时返回 nil
func (s store) viewer(ctx context.Context, tx *gorm.DB, arena *domain.Arena, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	row, err := s.users.FindByID(ctx, tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.relations.LoadFollowing(ctx, tx, arena.Graph, id); err != nil {
		return nil, err
	}
	return arena.AddUser(row), nil
}

// actor 载入必须登录的操作者
func (s store) actor(ctx context.Context, tx *gorm.DB, arena *domain.Arena, id uuid.UUID) (*domain.User, error) {
	u, err := s.viewer(ctx, tx, arena, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errcode.Unauthenticated("Authentication required")
	}
	return u, nil
}

func (s store) userByName(ctx context.Context, tx *gorm.DB, arena *domain.Arena, username string) (*domain.User, error) {
	row, err := s.users.FindByUsername(ctx, tx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errcode.UserNotFound(username)
	}
	if err != nil {
		return nil, err
	}
	return arena.AddUser(row), nil
}

func (s store) articleBySlug(ctx context.Context, tx *gorm.DB, slug string) (*model.Article, error) {
	row, err := s.articles.FindBySlug(ctx, tx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errcode.ArticleNotFound(slug)
	}
	return row, err
}

// loadArticles 把文章连同作者、全部收藏者和标签放入arena
func (s store) loadArticles(ctx context.Context, tx *gorm.DB, arena *domain.Arena, rows ...*model.Article) ([]*domain.Article, error) {
	ids := make([]uint, 0, len(rows))
	authorIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		authorIDs = append(authorIDs, row.AuthorID)
	}

	if err := s.relations.LoadFavorites(ctx, tx, arena.Graph, ids...); err != nil {
		return nil, err
	}
	if err := s.relations.LoadTags(ctx, tx, arena.Graph, ids...); err != nil {
		return nil, err
	}
	if err := s.loadUsers(ctx, tx, arena, authorIDs); err != nil {
		return nil, err
	}

	var tagIDs []uint
	for _, id := range ids {
		tagIDs = append(tagIDs, arena.Graph.Tags.Forward(id)...)
	}
	tags, err := s.tags.FindByIDs(ctx, tx, tagIDs)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		arena.AddTag(tag)
	}

	articles := make([]*domain.Article, 0, len(rows))
	for _, row := range rows {
		articles = append(articles, arena.AddArticle(row))
	}
	return articles, nil
}

func (s store) loadUsers(ctx context.Context, tx *gorm.DB, arena *domain.Arena, ids []uuid.UUID) error {
	missing := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := arena.User(id); !ok {
			missing = append(missing, id)
		}
	}
	users, err := s.users.FindByIDs(ctx, tx, missing)
	if err != nil {
		return err
	}
	for _, u := range users {
		arena.AddUser(u)
	}
	return nil
}
