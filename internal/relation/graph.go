package relation

import "github.com/google/uuid"

// Graph 三种对称关系：关注(用户->用户)、收藏(用户->文章)、标签(文章->标签)
type Graph struct {
	Follows   *Relation[uuid.UUID, uuid.UUID]
	Favorites *Relation[uuid.UUID, uint]
	Tags      *Relation[uint, uint]
}

// NewGraph 创建空关系图
func NewGraph() *Graph {
	return &Graph{
		Follows:   NewRelation[uuid.UUID, uuid.UUID](KindFollow),
		Favorites: NewRelation[uuid.UUID, uint](KindFavorite),
		Tags:      NewRelation[uint, uint](KindTag),
	}
}

// Dirty 任一关系存在待提交变化
func (g *Graph) Dirty() bool {
	return g.Follows.Dirty() || g.Favorites.Dirty() || g.Tags.Dirty()
}

// Commit 清空全部待提交变化
func (g *Graph) Commit() {
	g.Follows.Commit()
	g.Favorites.Commit()
	g.Tags.Commit()
}
