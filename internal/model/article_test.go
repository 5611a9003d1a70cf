package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArticleDerivesSlug(t *testing.T) {
	a := NewArticle(uuid.New(), "Test Title", "desc", "body")
	assert.Equal(t, "test-title", a.Slug)
	assert.Equal(t, "Test Title", a.Title)
}

func TestArticleUpdate(t *testing.T) {
	author := uuid.New()

	tests := []struct {
		name                     string
		title, description, body string
		want                     Article
	}{
		{
			name:        "only description",
			description: "X",
			want:        Article{Title: "Test Title", Slug: "test-title", Description: "X", Body: "body"},
		},
		{
			name:  "title recomputes slug",
			title: "Updated Title",
			want:  Article{Title: "Updated Title", Slug: "updated-title", Description: "desc", Body: "body"},
		},
		{
			name:  "blank values ignored",
			title: "   ", description: "\t", body: "",
			want: Article{Title: "Test Title", Slug: "test-title", Description: "desc", Body: "body"},
		},
		{
			name:  "all fields",
			title: "New", description: "d", body: "b",
			want: Article{Title: "New", Slug: "new", Description: "d", Body: "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArticle(author, "Test Title", "desc", "body")
			require.NoError(t, a.Update(author, tt.title, tt.description, tt.body))
			assert.Equal(t, tt.want.Title, a.Title)
			assert.Equal(t, tt.want.Slug, a.Slug)
			assert.Equal(t, tt.want.Description, a.Description)
			assert.Equal(t, tt.want.Body, a.Body)
		})
	}
}

func TestArticleUpdateByOtherUser(t *testing.T) {
	a := NewArticle(uuid.New(), "Test Title", "desc", "body")

	err := a.Update(uuid.New(), "Hijacked", "x", "y")

	assert.ErrorIs(t, err, errcode.ErrForbidden)
	assert.EqualError(t, err, "You cannot edit articles written by others.")
	assert.Equal(t, "Test Title", a.Title)
	assert.Equal(t, "test-title", a.Slug)
	assert.Equal(t, "desc", a.Description)
	assert.Equal(t, "body", a.Body)
}

func TestUserUpdateSkipsBlankFields(t *testing.T) {
	u := &User{Email: "a@b.c", Username: "jake", Password: "hash", Bio: "old", Image: "img"}

	u.Update("", " ", "", "new bio", "")

	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, "jake", u.Username)
	assert.Equal(t, "hash", u.Password)
	assert.Equal(t, "new bio", u.Bio)
	assert.Equal(t, "img", u.Image)
}

func TestIsAuthoredBy(t *testing.T) {
	author := uuid.New()
	a := NewArticle(author, "t", "d", "b")
	c := &Comment{AuthorID: author}

	assert.True(t, a.IsAuthoredBy(author))
	assert.False(t, a.IsAuthoredBy(uuid.New()))
	assert.True(t, c.IsAuthoredBy(author))
	assert.False(t, c.IsAuthoredBy(uuid.Nil))
}
