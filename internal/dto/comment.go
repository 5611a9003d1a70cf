package dto

import "time"

// CommentCreateRequest 创建评论请求
type CommentCreateRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}

// Comment 评论视图
type Comment struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    Profile   `json:"author"`
}
