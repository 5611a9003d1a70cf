package domain

import (
	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/model"
)

// User 用户聚合：资料字段来自行数据，关注与收藏关系来自关系图
type User struct {
	row   *model.User
	arena *Arena
}

func (u *User) ID() uuid.UUID {
	return u.row.ID
}

// Row 底层行数据，供持久化使用
func (u *User) Row() *model.User {
	return u.row
}

func (u *User) idOrNil() uuid.UUID {
	if u == nil {
		return uuid.Nil
	}
	return u.row.ID
}

// Follow 关注目标用户，返回当前用户视角下的目标资料
func (u *User) Follow(target *User) dto.Profile {
	u.arena.Graph.Follows.Link(u.ID(), target.ID())
	return target.ProjectProfile(u)
}

// Unfollow 取消关注目标用户
func (u *User) Unfollow(target *User) dto.Profile {
	u.arena.Graph.Follows.Unlink(u.ID(), target.ID())
	return target.ProjectProfile(u)
}

// IsFollowing 从关注者一侧查询
func (u *User) IsFollowing(target *User) bool {
	return target != nil && u.arena.Graph.Follows.Holds(u.ID(), target.ID())
}

// HasFollower 从被关注者一侧查询
func (u *User) HasFollower(other *User) bool {
	return other != nil && u.arena.Graph.Follows.HeldBy(u.ID(), other.ID())
}

// Following 已关注的用户ID
func (u *User) Following() []uuid.UUID {
	return u.arena.Graph.Follows.Forward(u.ID())
}

// Favorite 收藏文章，与 Article.FavoritedBy 作用于同一条关系
func (u *User) Favorite(article *Article) {
	u.arena.Graph.Favorites.Link(u.ID(), article.ID())
}

// Unfavorite 取消收藏文章
func (u *User) Unfavorite(article *Article) {
	u.arena.Graph.Favorites.Unlink(u.ID(), article.ID())
}

// HasFavorite 从用户一侧查询收藏关系
func (u *User) HasFavorite(article *Article) bool {
	return u.arena.Graph.Favorites.Holds(u.ID(), article.ID())
}

// ProjectProfile 查看者视角下的资料，匿名查看时 following 恒为 false
func (u *User) ProjectProfile(viewer *User) dto.Profile {
	return dto.Profile{
		Username:  u.row.Username,
		Bio:       u.row.Bio,
		Image:     u.row.Image,
		Following: viewer != nil && viewer.IsFollowing(u),
	}
}

// View 当前用户视图
func (u *User) View(token string) dto.User {
	return dto.User{
		Email:    u.row.Email,
		Token:    token,
		Username: u.row.Username,
		Bio:      u.row.Bio,
		Image:    u.row.Image,
	}
}
