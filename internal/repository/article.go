package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/relation"
	"gorm.io/gorm"
)

// Facets 文章筛选条件，空字符串表示不筛选
type Facets struct {
	Tag       string // 标签名
	Author    string // 作者用户名
	Favorited string // 收藏者用户名
	Page
}

// ArticleRepository 文章仓储
type ArticleRepository struct {
	base
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{base{db: db}}
}

// FindBySlug 不存在时返回 gorm.ErrRecordNotFound
func (r *ArticleRepository) FindBySlug(ctx context.Context, tx *gorm.DB, slug string) (*model.Article, error) {
	var article model.Article
	if err := r.conn(ctx, tx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ExistsBySlug slug 是否已被占用
func (r *ArticleRepository) ExistsBySlug(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
	var count int64
	if err := r.conn(ctx, tx).Model(&model.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByFacets 按标签、作者、收藏者筛选，按创建时间倒序分页，同时返回总数
func (r *ArticleRepository) FindByFacets(ctx context.Context, tx *gorm.DB, f Facets) ([]*model.Article, int64, error) {
	conn := r.conn(ctx, tx)

	filter := func(db *gorm.DB) *gorm.DB {
		if f.Tag != "" {
			db = db.Where("articles.id IN (?)", conn.Model(&relation.ArticleTag{}).
				Select("article_tags.article_id").
				Joins("JOIN tags ON tags.id = article_tags.tag_id").
				Where("tags.name = ?", f.Tag))
		}
		if f.Author != "" {
			db = db.Where("articles.author_id IN (?)", conn.Model(&model.User{}).
				Select("users.id").
				Where("users.username = ?", f.Author))
		}
		if f.Favorited != "" {
			db = db.Where("articles.id IN (?)", conn.Model(&relation.ArticleFavorite{}).
				Select("article_favorites.article_id").
				Joins("JOIN users ON users.id = article_favorites.user_id").
				Where("users.username = ?", f.Favorited))
		}
		return db
	}

	return r.page(conn, filter, f.Page)
}

// FindByAuthors 指定作者们的文章，用于关注流
func (r *ArticleRepository) FindByAuthors(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID, p Page) ([]*model.Article, int64, error) {
	if len(authorIDs) == 0 {
		return []*model.Article{}, 0, nil
	}
	filter := func(db *gorm.DB) *gorm.DB {
		return db.Where("articles.author_id IN ?", authorIDs)
	}
	return r.page(r.conn(ctx, tx), filter, p)
}

func (r *ArticleRepository) page(conn *gorm.DB, filter func(*gorm.DB) *gorm.DB, p Page) ([]*model.Article, int64, error) {
	var total int64
	if err := conn.Model(&model.Article{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := make([]*model.Article, 0)
	if total == 0 {
		return articles, 0, nil
	}
	err := conn.Model(&model.Article{}).
		Scopes(filter, p.scope).
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *ArticleRepository) Create(ctx context.Context, tx *gorm.DB, article *model.Article) error {
	return r.conn(ctx, tx).Create(article).Error
}

func (r *ArticleRepository) Save(ctx context.Context, tx *gorm.DB, article *model.Article) error {
	return r.conn(ctx, tx).Save(article).Error
}

func (r *ArticleRepository) Delete(ctx context.Context, tx *gorm.DB, article *model.Article) error {
	return r.conn(ctx, tx).Delete(article).Error
}
