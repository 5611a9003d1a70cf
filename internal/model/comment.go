package model

import "github.com/google/uuid"

// Comment 评论模型
type Comment struct {
	Base
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	AuthorID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}

// IsAuthoredBy 是否为该用户所写
func (c *Comment) IsAuthoredBy(userID uuid.UUID) bool {
	return c.AuthorID == userID
}
