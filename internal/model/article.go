package model

import (
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/guard"
	"github.com/nsxzhou1114/realworld-api/pkg/slug"
)

// Article 文章模型
type Article struct {
	Base
	AuthorID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Body        string    `gorm:"type:text" json:"body"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "articles"
}

// NewArticle 创建文章，slug 由标题生成
func NewArticle(authorID uuid.UUID, title, description, body string) *Article {
	a := &Article{
		AuthorID:    authorID,
		Description: description,
		Body:        body,
	}
	a.SetTitle(title)
	return a
}

// SetTitle 修改标题并同步slug，slug 不能单独设置
func (a *Article) SetTitle(title string) {
	a.Title = title
	a.Slug = slug.Make(title)
}

// IsAuthoredBy 是否为该用户所写
func (a *Article) IsAuthoredBy(userID uuid.UUID) bool {
	return a.AuthorID == userID
}

// Update 作者部分更新文章，空白字段视为不修改
func (a *Article) Update(actorID uuid.UUID, title, description, body string) error {
	if err := guard.AssertOwner(actorID, a.AuthorID, guard.Edit, guard.Articles); err != nil {
		return err
	}

	if notBlank(title) {
		a.SetTitle(title)
	}
	if notBlank(description) {
		a.Description = description
	}
	if notBlank(body) {
		a.Body = body
	}
	return nil
}
