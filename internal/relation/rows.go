package relation

import (
	"time"

	"github.com/google/uuid"
)

// UserFollow 关注关系表
type UserFollow struct {
	FollowerID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (UserFollow) TableName() string {
	return "user_follows"
}

// ArticleFavorite 文章收藏关系表
type ArticleFavorite struct {
	ArticleID uint      `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (ArticleFavorite) TableName() string {
	return "article_favorites"
}

// ArticleTag 文章-标签关联表
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey;autoIncrement:false" json:"article_id"`
	TagID     uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
}

// TableName 指定表名
func (ArticleTag) TableName() string {
	return "article_tags"
}

// Rows 需要迁移的关系表
func Rows() []any {
	return []any{&UserFollow{}, &ArticleFavorite{}, &ArticleTag{}}
}
