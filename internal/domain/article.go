package domain

import (
	"sort"

	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/model"
)

// Article 文章聚合：内容字段来自行数据，标签与收藏关系来自关系图
type Article struct {
	row   *model.Article
	arena *Arena
}

func (a *Article) ID() uint {
	return a.row.ID
}

// Row 底层行数据，供持久化使用
func (a *Article) Row() *model.Article {
	return a.row
}

// Author 作者，未加载时返回 nil
func (a *Article) Author() *User {
	u, _ := a.arena.User(a.row.AuthorID)
	return u
}

// IsAuthoredBy 是否为该用户所写
func (a *Article) IsAuthoredBy(u *User) bool {
	return u != nil && a.row.IsAuthoredBy(u.ID())
}

// Update 作者部分更新文章
func (a *Article) Update(actor *User, title, description, body string) error {
	return a.row.Update(actor.idOrNil(), title, description, body)
}

// FavoritedBy 用户收藏文章，幂等
func (a *Article) FavoritedBy(u *User) *Article {
	a.arena.Graph.Favorites.Link(u.ID(), a.ID())
	return a
}

// UnfavoritedBy 用户取消收藏，幂等
func (a *Article) UnfavoritedBy(u *User) *Article {
	a.arena.Graph.Favorites.Unlink(u.ID(), a.ID())
	return a
}

// IsFavoritedBy 从文章一侧查询收藏关系
func (a *Article) IsFavoritedBy(u *User) bool {
	return u != nil && a.arena.Graph.Favorites.HeldBy(a.ID(), u.ID())
}

// FavoritesCount 收藏人数
func (a *Article) FavoritesCount() int {
	return a.arena.Graph.Favorites.BackwardCount(a.ID())
}

// AddTag 给文章打标签，幂等
func (a *Article) AddTag(tag *model.Tag) *Article {
	a.arena.AddTag(tag)
	a.arena.Graph.Tags.Link(a.ID(), tag.ID)
	return a
}

// HasTag 标签关系是否存在
func (a *Article) HasTag(tag *model.Tag) bool {
	return a.arena.Graph.Tags.Holds(a.ID(), tag.ID)
}

// TagNames 按字典序排列的标签名
func (a *Article) TagNames() []string {
	ids := a.arena.Graph.Tags.Forward(a.ID())
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if tag, ok := a.arena.Tag(id); ok {
			names = append(names, tag.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Detach 解除文章的全部收藏与标签关系，删除文章前调用
func (a *Article) Detach() {
	for _, userID := range a.arena.Graph.Favorites.Backward(a.ID()) {
		a.arena.Graph.Favorites.Unlink(userID, a.ID())
	}
	for _, tagID := range a.arena.Graph.Tags.Forward(a.ID()) {
		a.arena.Graph.Tags.Unlink(a.ID(), tagID)
	}
}

// View 查看者视角下的文章视图
func (a *Article) View(viewer *User) dto.Article {
	view := dto.Article{
		Slug:           a.row.Slug,
		Title:          a.row.Title,
		Description:    a.row.Description,
		Body:           a.row.Body,
		TagList:        a.TagNames(),
		CreatedAt:      a.row.CreatedAt,
		UpdatedAt:      a.row.UpdatedAt,
		Favorited:      a.IsFavoritedBy(viewer),
		FavoritesCount: a.FavoritesCount(),
	}
	if author := a.Author(); author != nil {
		view.Author = author.ProjectProfile(viewer)
	}
	return view
}
