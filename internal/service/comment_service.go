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
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService 评论服务
type CommentService struct {
	store
	logger *zap.SugaredLogger
}

// NewCommentService 创建评论服务实例
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		store:  newStore(db),
		logger: logger.GetSugaredLogger(),
	}
}

// Create 在文章下发表评论
func (s *CommentService) Create(ctx context.Context, authorID uuid.UUID, slug string, req dto.CommentCreateRequest) (*dto.Comment, error) {
	var view dto.Comment
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		author, err := s.actor(ctx, tx, arena, authorID)
		if err != nil {
			return err
		}
		article, err := s.articleBySlug(ctx, tx, slug)
		if err != nil {
			return err
		}

		comment := &model.Comment{
			ArticleID: article.ID,
			AuthorID:  author.ID(),
			Body:      req.Body,
		}
		if err := s.comments.Create(ctx, tx, comment); err != nil {
			return fmt.Errorf("保存评论失败: %w", err)
		}
		view = arena.CommentView(comment, author)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("评论已发表: id=%d article=%s", view.ID, slug)
	return &view, nil
}

// List 文章的全部评论，最新的在前
func (s *CommentService) List(ctx context.Context, viewerID uuid.UUID, slug string) ([]dto.Comment, error) {
	arena := domain.NewArena()
	viewer, err := s.viewer(ctx, nil, arena, viewerID)
	if err != nil {
		return nil, err
	}
	article, err := s.articleBySlug(ctx, nil, slug)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.FindByArticle(ctx, nil, article.ID)
	if err != nil {
		return nil, fmt.Errorf("查询评论失败: %w", err)
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	if err := s.loadUsers(ctx, nil, arena, authorIDs); err != nil {
		return nil, err
	}

	views := make([]dto.Comment, 0, len(comments))
	for _, c := range comments {
		views = append(views, arena.CommentView(c, viewer))
	}
	return views, nil
}

// Delete 作者删除自己的评论
func (s *CommentService) Delete(ctx context.Context, actorID uuid.UUID, id uint) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		actor, err := s.actor(ctx, tx, arena, actorID)
		if err != nil {
			return err
		}
		comment, err := s.comments.FindByID(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errcode.CommentNotFound(id)
		}
		if err != nil {
			return err
		}
		if err := guard.AssertOwner(actor.ID(), comment.AuthorID, guard.Delete, guard.Comments); err != nil {
			return err
		}
		if err := s.comments.Delete(ctx, tx, comment); err != nil {
			return fmt.Errorf("删除评论失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infof("评论已删除: id=%d", id)
	return nil
}
