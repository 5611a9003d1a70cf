package dto

import "time"

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`         // 文章标题
	Description string   `json:"description" binding:"max=500"`            // 文章描述
	Body        string   `json:"body" binding:"required"`                  // 文章正文
	TagList     []string `json:"tag_list" binding:"omitempty,dive,max=50"` // 标签名列表
}

// ArticleUpdateRequest 更新文章请求，空白字段不修改
type ArticleUpdateRequest struct {
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Body        string `json:"body"`
}

// ArticleListRequest 文章列表筛选条件
type ArticleListRequest struct {
	Tag       string `form:"tag"`                                     // 标签名
	Author    string `form:"author"`                                  // 作者用户名
	Favorited string `form:"favorited"`                               // 收藏者用户名
	Offset    int    `form:"offset" binding:"omitempty,min=0"`        // 跳过条数
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"` // 每页条数
}

// 每页条数的默认值与上限
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize 填充分页默认值
func (r *ArticleListRequest) Normalize() {
	if r.Offset < 0 {
		r.Offset = 0
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
}

// Article 文章视图
type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tag_list"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favorites_count"`
	Author         Profile   `json:"author"`
}

// ArticleList 文章列表
type ArticleList struct {
	Articles      []Article `json:"articles"`
	ArticlesCount int64     `json:"articles_count"`
}
