package domain

import (
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/relation"
)

// Arena 一次业务操作内的实体仓：实体按ID存放，实体之间只通过 Graph 中的ID关系互相引用
type Arena struct {
	Graph    *relation.Graph
	users    map[uuid.UUID]*model.User
	articles map[uint]*model.Article
	tags     map[uint]*model.Tag
}

// NewArena 创建空实体仓
func NewArena() *Arena {
	return &Arena{
		Graph:    relation.NewGraph(),
		users:    make(map[uuid.UUID]*model.User),
		articles: make(map[uint]*model.Article),
		tags:     make(map[uint]*model.Tag),
	}
}

// AddUser 放入用户，已存在时沿用已有行
func (a *Arena) AddUser(row *model.User) *User {
	if existing, ok := a.users[row.ID]; ok {
		row = existing
	} else {
		a.users[row.ID] = row
	}
	return &User{row: row, arena: a}
}

// User 按ID取用户
func (a *Arena) User(id uuid.UUID) (*User, bool) {
	row, ok := a.users[id]
	if !ok {
		return nil, false
	}
	return &User{row: row, arena: a}, true
}

// AddArticle 放入文章，已存在时沿用已有行
func (a *Arena) AddArticle(row *model.Article) *Article {
	if existing, ok := a.articles[row.ID]; ok {
		row = existing
	} else {
		a.articles[row.ID] = row
	}
	return &Article{row: row, arena: a}
}

// Article 按ID取文章
func (a *Arena) Article(id uint) (*Article, bool) {
	row, ok := a.articles[id]
	if !ok {
		return nil, false
	}
	return &Article{row: row, arena: a}, true
}

// AddTag 放入标签
func (a *Arena) AddTag(row *model.Tag) {
	if _, ok := a.tags[row.ID]; !ok {
		a.tags[row.ID] = row
	}
}

// Tag 按ID取标签
func (a *Arena) Tag(id uint) (*model.Tag, bool) {
	row, ok := a.tags[id]
	return row, ok
}

// CommentView 评论视图，作者须已放入实体仓
func (a *Arena) CommentView(c *model.Comment, viewer *User) dto.Comment {
	view := dto.Comment{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if author, ok := a.User(c.AuthorID); ok {
		view.Author = author.ProjectProfile(viewer)
	}
	return view
}
