package repository

import (
	"context"

	"github.com/nsxzhou1114/realworld-api/internal/model"
	"gorm.io/gorm"
)

// CommentRepository 评论仓储
type CommentRepository struct {
	base
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{base{db: db}}
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *CommentRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.conn(ctx, tx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByArticle 文章下的评论，最新的在前
func (r *CommentRepository) FindByArticle(ctx context.Context, tx *gorm.DB, articleID uint) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := r.conn(ctx, tx).
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, tx *gorm.DB, comment *model.Comment) error {
	return r.conn(ctx, tx).Create(comment).Error
}

func (r *CommentRepository) Delete(ctx context.Context, tx *gorm.DB, comment *model.Comment) error {
	return r.conn(ctx, tx).Delete(comment).Error
}

// DeleteByArticle 删除文章下的全部评论
func (r *CommentRepository) DeleteByArticle(ctx context.Context, tx *gorm.DB, articleID uint) error {
	return r.conn(ctx, tx).Where("article_id = ?", articleID).Delete(&model.Comment{}).Error
}
