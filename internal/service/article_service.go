package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/domain"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/guard"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/repository"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArticleService 文章服务，负责文章生命周期及收藏、标签关系
type ArticleService struct {
	store
	log *zap.SugaredLogger
}

// NewArticleService 创建文章服务实例
func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{
		store: newStore(db),
		log:   logger.GetSugaredLogger(),
	}
}

// Get 按slug获取文章
func (s *ArticleService) Get(ctx context.Context, viewerID uuid.UUID, slug string) (*dto.Article, error) {
	arena := domain.NewArena()
	viewer, err := s.viewer(ctx, nil, arena, viewerID)
	if err != nil {
		return nil, err
	}
	row, err := s.articleBySlug(ctx, nil, slug)
	if err != nil {
		return nil, err
	}
	articles, err := s.loadArticles(ctx, nil, arena, row)
	if err != nil {
		return nil, err
	}

	view := articles[0].View(viewer)
	return &view, nil
}

// List 按筛选条件分页获取文章，无匹配时返回空列表
func (s *ArticleService) List(ctx context.Context, viewerID uuid.UUID, req dto.ArticleListRequest) (*dto.ArticleList, error) {
	req.Normalize()

	arena := domain.NewArena()
	viewer, err := s.viewer(ctx, nil, arena, viewerID)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.articles.FindByFacets(ctx, nil, repository.Facets{
		Tag:       req.Tag,
		Author:    req.Author,
		Favorited: req.Favorited,
		Page:      repository.Page{Offset: req.Offset, Limit: req.Limit},
	})
	if err != nil {
		return nil, fmt.Errorf("查询文章列表失败: %w", err)
	}
	return s.project(ctx, arena, viewer, rows, total)
}

// Feed 当前用户关注作者的文章
func (s *ArticleService) Feed(ctx context.Context, viewerID uuid.UUID, req dto.ArticleListRequest) (*dto.ArticleList, error) {
	req.Normalize()

	arena := domain.NewArena()
	viewer, err := s.actor(ctx, nil, arena, viewerID)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.articles.FindByAuthors(ctx, nil, viewer.Following(), repository.Page{Offset: req.Offset, Limit: req.Limit})
	if err != nil {
		return nil, fmt.Errorf("查询关注流失败: %w", err)
	}
	return s.project(ctx, arena, viewer, rows, total)
}

func (s *ArticleService) project(ctx context.Context, arena *domain.Arena, viewer *domain.User, rows []*model.Article, total int64) (*dto.ArticleList, error) {
	articles, err := s.loadArticles(ctx, nil, arena, rows...)
	if err != nil {
		return nil, err
	}
	list := &dto.ArticleList{
		Articles:      make([]dto.Article, 0, len(articles)),
		ArticlesCount: total,
	}
	for _, a := range articles {
		list.Articles = append(list.Articles, a.View(viewer))
	}
	return list, nil
}

// Create 创建文章并关联标签
func (s *ArticleService) Create(ctx context.Context, authorID uuid.UUID, req dto.ArticleCreateRequest) (*dto.Article, error) {
	var (
		view    dto.Article
		changes repository.Changes
	)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		author, err := s.actor(ctx, tx, arena, authorID)
		if err != nil {
			return err
		}

		row := model.NewArticle(author.ID(), req.Title, req.Description, req.Body)
		if err := s.assertSlugFree(ctx, tx, row.Slug); err != nil {
			return err
		}
		tags, err := s.tags.FindOrCreate(ctx, tx, req.TagList)
		if err != nil {
			return fmt.Errorf("处理标签失败: %w", err)
		}
		if err := s.articles.Create(ctx, tx, row); err != nil {
			return s.translate(err, row.Slug)
		}

		article := arena.AddArticle(row)
		for _, tag := range tags {
			article.AddTag(tag)
		}
		if changes, err = s.relations.Flush(ctx, tx, arena.Graph); err != nil {
			return err
		}
		view = article.View(author)
		return nil
	})
	if err != nil {
		return nil, err
	}

	changes.Observe()
	s.log.Infow("文章已创建", "slug", view.Slug, "author", view.Author.Username)
	return &view, nil
}

// Update 作者部分更新文章，标题变化时slug随之变化
func (s *ArticleService) Update(ctx context.Context, actorID uuid.UUID, slug string, req dto.ArticleUpdateRequest) (*dto.Article, error) {
	var view dto.Article
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		actor, err := s.actor(ctx, tx, arena, actorID)
		if err != nil {
			return err
		}
		row, err := s.articleBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		articles, err := s.loadArticles(ctx, tx, arena, row)
		if err != nil {
			return err
		}
		article := articles[0]

		if err := article.Update(actor, req.Title, req.Description, req.Body); err != nil {
			return err
		}
		if row.Slug != slug {
			if err := s.assertSlugFree(ctx, tx, row.Slug); err != nil {
				return err
			}
		}
		if err := s.articles.Save(ctx, tx, row); err != nil {
			return s.translate(err, row.Slug)
		}
		view = article.View(actor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("文章已更新", "slug", view.Slug, "from", slug)
	return &view, nil
}

// Delete 删除文章，同时解除收藏、标签关系并删除评论
func (s *ArticleService) Delete(ctx context.Context, actorID uuid.UUID, slug string) error {
	var changes repository.Changes
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		actor, err := s.actor(ctx, tx, arena, actorID)
		if err != nil {
			return err
		}
		row, err := s.articleBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		if err := guard.AssertOwner(actor.ID(), row.AuthorID, guard.Delete, guard.Articles); err != nil {
			return err
		}
		articles, err := s.loadArticles(ctx, tx, arena, row)
		if err != nil {
			return err
		}

		articles[0].Detach()
		if changes, err = s.relations.Flush(ctx, tx, arena.Graph); err != nil {
			return err
		}
		if err := s.comments.DeleteByArticle(ctx, tx, row.ID); err != nil {
			return fmt.Errorf("删除文章评论失败: %w", err)
		}
		return s.articles.Delete(ctx, tx, row)
	})
	if err != nil {
		return err
	}

	changes.Observe()
	s.log.Infow("文章已删除", "slug", slug)
	return nil
}

// Favorite 收藏文章，重复收藏无副作用
func (s *ArticleService) Favorite(ctx context.Context, actorID uuid.UUID, slug string) (*dto.Article, error) {
	return s.toggleFavorite(ctx, actorID, slug, (*domain.Article).FavoritedBy)
}

// Unfavorite 取消收藏
func (s *ArticleService) Unfavorite(ctx context.Context, actorID uuid.UUID, slug string) (*dto.Article, error) {
	return s.toggleFavorite(ctx, actorID, slug, (*domain.Article).UnfavoritedBy)
}

func (s *ArticleService) toggleFavorite(ctx context.Context, actorID uuid.UUID, slug string, apply func(*domain.Article, *domain.User) *domain.Article) (*dto.Article, error) {
	var (
		view    dto.Article
		changes repository.Changes
	)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		actor, err := s.actor(ctx, tx, arena, actorID)
		if err != nil {
			return err
		}
		row, err := s.articleBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}
		articles, err := s.loadArticles(ctx, tx, arena, row)
		if err != nil {
			return err
		}

		article := apply(articles[0], actor)
		if changes, err = s.relations.Flush(ctx, tx, arena.Graph); err != nil {
			return err
		}
		view = article.View(actor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	changes.Observe()
	s.log.Infow("收藏状态已更新", "slug", view.Slug, "user", actorID, "favorited", view.Favorited)
	return &view, nil
}

func (s *ArticleService) assertSlugFree(ctx context.Context, tx *gorm.DB, slug string) error {
	exists, err := s.articles.ExistsBySlug(ctx, tx, slug)
	if err != nil {
		return err
	}
	if exists {
		return slugConflict(slug)
	}
	return nil
}

// translate 并发写入时唯一索引冲突仍可能发生
func (s *ArticleService) translate(err error, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return slugConflict(slug)
	}
	return err
}

func slugConflict(slug string) error {
	return errcode.Conflict(fmt.Sprintf("Article with slug `%s` already exists", slug))
}
