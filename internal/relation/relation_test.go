package relation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRelationTracksNetChanges(t *testing.T) {
	r := NewRelation[int, int](KindTag)
	r.Seed(1, 10)
	assert.False(t, r.Dirty())
	assert.True(t, r.Holds(1, 10))

	tests := []struct {
		name         string
		apply        func()
		wantLinked   []Edge[int, int]
		wantUnlinked []Edge[int, int]
	}{
		{
			name:         "link new edge",
			apply:        func() { r.Link(1, 11) },
			wantLinked:   []Edge[int, int]{{1, 11}},
			wantUnlinked: []Edge[int, int]{},
		},
		{
			name:         "relinking seeded edge is a no-op",
			apply:        func() { r.Link(1, 10) },
			wantLinked:   []Edge[int, int]{{1, 11}},
			wantUnlinked: []Edge[int, int]{},
		},
		{
			name:         "unlink seeded edge",
			apply:        func() { r.Unlink(1, 10) },
			wantLinked:   []Edge[int, int]{{1, 11}},
			wantUnlinked: []Edge[int, int]{{1, 10}},
		},
		{
			name:         "unlinking a pending link cancels it",
			apply:        func() { r.Unlink(1, 11) },
			wantLinked:   []Edge[int, int]{},
			wantUnlinked: []Edge[int, int]{{1, 10}},
		},
		{
			name:         "relinking a pending unlink cancels it",
			apply:        func() { r.Link(1, 10) },
			wantLinked:   []Edge[int, int]{},
			wantUnlinked: []Edge[int, int]{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			linked, unlinked := r.Pending()
			assert.ElementsMatch(t, tt.wantLinked, linked)
			assert.ElementsMatch(t, tt.wantUnlinked, unlinked)
		})
	}
}

func TestRelationCommit(t *testing.T) {
	r := NewRelation[int, int](KindFollow)
	r.Link(1, 2)
	r.Commit()

	assert.False(t, r.Dirty())
	assert.True(t, r.Holds(1, 2))
	assert.Equal(t, KindFollow, r.Kind())
}

func TestGraphFollowSymmetry(t *testing.T) {
	g := NewGraph()
	a, b := uuid.New(), uuid.New()

	g.Follows.Link(a, b)
	g.Follows.Link(a, b)
	assert.True(t, g.Follows.Holds(a, b))
	assert.True(t, g.Follows.HeldBy(b, a))
	assert.False(t, g.Follows.Holds(b, a))
	assert.Equal(t, 1, g.Follows.BackwardCount(b))
	assert.True(t, g.Dirty())

	g.Follows.Unlink(a, b)
	assert.False(t, g.Follows.Holds(a, b))
	assert.False(t, g.Follows.HeldBy(b, a))
	assert.False(t, g.Dirty())
}

func TestGraphCommitClearsAllRelations(t *testing.T) {
	g := NewGraph()
	u := uuid.New()
	g.Favorites.Link(u, 1)
	g.Tags.Link(1, 2)

	g.Commit()

	assert.False(t, g.Dirty())
	assert.True(t, g.Favorites.Holds(u, 1))
	assert.True(t, g.Tags.HeldBy(2, 1))
}
