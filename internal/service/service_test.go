package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/config"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/internal/relation"
	"github.com/nsxzhou1114/realworld-api/internal/repository"
	"github.com/nsxzhou1114/realworld-api/internal/testutil"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	articles *ArticleService
	comments *CommentService
	profiles *ProfileService
	tags     *TagService
	author   *model.User
	reader   *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		articles: NewArticleService(db),
		comments: NewCommentService(db),
		profiles: NewProfileService(db),
		tags:     NewTagService(db),
		author:   testutil.CreateUser(t, db, "author"),
		reader:   testutil.CreateUser(t, db, "reader"),
	}
}

func (f *fixture) create(t *testing.T, title string, tags ...string) *dto.Article {
	t.Helper()
	article, err := f.articles.Create(context.Background(), f.author.ID, dto.ArticleCreateRequest{
		Title:       title,
		Description: "description",
		Body:        "body",
		TagList:     tags,
	})
	require.NoError(t, err)
	return article
}

func TestCreateArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, "Test Title", "go", "api", "go")
	assert.Equal(t, "test-title", created.Slug)
	assert.Equal(t, []string{"api", "go"}, created.TagList)
	assert.Zero(t, created.FavoritesCount)
	assert.Equal(t, "author", created.Author.Username)

	got, err := f.articles.Get(ctx, uuid.Nil, "test-title")
	require.NoError(t, err)
	assert.Equal(t, created.TagList, got.TagList)
	assert.Equal(t, "body", got.Body)
}

func TestCreateArticleSlugConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Same Title")

	_, err := f.articles.Create(context.Background(), f.reader.ID, dto.ArticleCreateRequest{Title: "same   title", Body: "b"})
	assert.ErrorIs(t, err, errcode.ErrConflict)
}

func TestCreateArticleRequiresAuthor(t *testing.T) {
	f := newFixture(t)

	_, err := f.articles.Create(context.Background(), uuid.Nil, dto.ArticleCreateRequest{Title: "x", Body: "b"})
	assert.ErrorIs(t, err, errcode.ErrUnauthenticated)
}

func TestUpdateArticleTitleChangesSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Test Title")

	updated, err := f.articles.Update(ctx, f.author.ID, "test-title", dto.ArticleUpdateRequest{Title: "Updated Title"})
	require.NoError(t, err)
	assert.Equal(t, "updated-title", updated.Slug)
	assert.Equal(t, "Updated Title", updated.Title)

	_, err = f.articles.Get(ctx, uuid.Nil, "test-title")
	assert.ErrorIs(t, err, errcode.ErrNotFound)
	assert.Equal(t, "Article not found by slug: `test-title`", errcode.Message(err))

	_, err = f.articles.Get(ctx, uuid.Nil, "updated-title")
	assert.NoError(t, err)
}

func TestUpdateArticlePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Test Title")

	updated, err := f.articles.Update(ctx, f.author.ID, "test-title", dto.ArticleUpdateRequest{Title: "", Description: "X", Body: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Test Title", updated.Title)
	assert.Equal(t, "test-title", updated.Slug)
	assert.Equal(t, "X", updated.Description)
	assert.Equal(t, "body", updated.Body)
}

func TestUpdateArticleSlugConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "First")
	f.create(t, "Second")

	_, err := f.articles.Update(ctx, f.author.ID, "second", dto.ArticleUpdateRequest{Title: "First"})
	assert.ErrorIs(t, err, errcode.ErrConflict)

	got, err := f.articles.Get(ctx, uuid.Nil, "second")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
}

func TestNonAuthorCannotModifyArticle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Test Title", "go")

	_, err := f.articles.Update(ctx, f.reader.ID, "test-title", dto.ArticleUpdateRequest{Title: "Hijacked", Body: "new"})
	assert.ErrorIs(t, err, errcode.ErrForbidden)
	assert.Equal(t, "You cannot edit articles written by others.", errcode.Message(err))

	err = f.articles.Delete(ctx, f.reader.ID, "test-title")
	assert.ErrorIs(t, err, errcode.ErrForbidden)
	assert.Equal(t, "You cannot delete articles written by others.", errcode.Message(err))

	got, err := f.articles.Get(ctx, uuid.Nil, "test-title")
	require.NoError(t, err)
	assert.Equal(t, "Test Title", got.Title)
	assert.Equal(t, "body", got.Body)
	assert.Equal(t, []string{"go"}, got.TagList)
}

func TestDeleteMissingArticle(t *testing.T) {
	f := newFixture(t)

	err := f.articles.Delete(context.Background(), f.author.ID, "missing-slug")
	assert.ErrorIs(t, err, errcode.ErrNotFound)
	assert.Contains(t, errcode.Message(err), "missing-slug")
}

func TestDeleteArticleRemovesRelations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Doomed", "go")
	_, err := f.articles.Favorite(ctx, f.reader.ID, "doomed")
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, f.reader.ID, "doomed", dto.CommentCreateRequest{Body: "first"})
	require.NoError(t, err)

	require.NoError(t, f.articles.Delete(ctx, f.author.ID, "doomed"))

	_, err = f.articles.Get(ctx, uuid.Nil, "doomed")
	assert.ErrorIs(t, err, errcode.ErrNotFound)

	var favorites, tagLinks, comments int64
	require.NoError(t, f.db.Model(&relation.ArticleFavorite{}).Count(&favorites).Error)
	require.NoError(t, f.db.Model(&relation.ArticleTag{}).Count(&tagLinks).Error)
	require.NoError(t, f.db.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, favorites)
	assert.Zero(t, tagLinks)
	assert.Zero(t, comments)

	report, err := repository.NewRelationRepository(f.db).Dangling(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Total())

	// 孤立标签保留
	names, err := f.tags.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, names)
}

func TestFavoriteRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Liked")

	article, err := f.articles.Favorite(ctx, f.reader.ID, "liked")
	require.NoError(t, err)
	assert.Equal(t, 1, article.FavoritesCount)
	assert.True(t, article.Favorited)

	article, err = f.articles.Favorite(ctx, f.reader.ID, "liked")
	require.NoError(t, err)
	assert.Equal(t, 1, article.FavoritesCount)

	asAuthor, err := f.articles.Get(ctx, f.author.ID, "liked")
	require.NoError(t, err)
	assert.Equal(t, 1, asAuthor.FavoritesCount)
	assert.False(t, asAuthor.Favorited)

	article, err = f.articles.Unfavorite(ctx, f.reader.ID, "liked")
	require.NoError(t, err)
	assert.Zero(t, article.FavoritesCount)
	assert.False(t, article.Favorited)

	_, err = f.articles.Unfavorite(ctx, f.reader.ID, "liked")
	assert.NoError(t, err)

	_, err = f.articles.Favorite(ctx, f.reader.ID, "nope")
	assert.ErrorIs(t, err, errcode.ErrNotFound)
}

func TestListArticles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "One", "go")
	f.create(t, "Two", "rust")
	f.create(t, "Three", "go")
	_, err := f.articles.Favorite(ctx, f.reader.ID, "two")
	require.NoError(t, err)

	all, err := f.articles.List(ctx, uuid.Nil, dto.ArticleListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.ArticlesCount)
	require.Len(t, all.Articles, 3)
	assert.Equal(t, "three", all.Articles[0].Slug)

	byTag, err := f.articles.List(ctx, uuid.Nil, dto.ArticleListRequest{Tag: "go"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byTag.ArticlesCount)

	byFavorited, err := f.articles.List(ctx, f.reader.ID, dto.ArticleListRequest{Favorited: "reader"})
	require.NoError(t, err)
	require.Len(t, byFavorited.Articles, 1)
	assert.True(t, byFavorited.Articles[0].Favorited)

	paged, err := f.articles.List(ctx, uuid.Nil, dto.ArticleListRequest{Author: "author", Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, paged.ArticlesCount)
	require.Len(t, paged.Articles, 1)
	assert.Equal(t, "two", paged.Articles[0].Slug)

	none, err := f.articles.List(ctx, uuid.Nil, dto.ArticleListRequest{Author: "nobody"})
	require.NoError(t, err)
	assert.Zero(t, none.ArticlesCount)
	assert.NotNil(t, none.Articles)
}

func TestFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Followed Post")

	_, err := f.articles.Feed(ctx, uuid.Nil, dto.ArticleListRequest{})
	assert.ErrorIs(t, err, errcode.ErrUnauthenticated)

	empty, err := f.articles.Feed(ctx, f.reader.ID, dto.ArticleListRequest{})
	require.NoError(t, err)
	assert.Empty(t, empty.Articles)

	_, err = f.profiles.Follow(ctx, f.reader.ID, "author")
	require.NoError(t, err)

	feed, err := f.articles.Feed(ctx, f.reader.ID, dto.ArticleListRequest{})
	require.NoError(t, err)
	require.Len(t, feed.Articles, 1)
	assert.Equal(t, "followed-post", feed.Articles[0].Slug)
	assert.True(t, feed.Articles[0].Author.Following)
}

func TestProfileFollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.profiles.Get(ctx, f.reader.ID, "author")
	require.NoError(t, err)
	assert.False(t, profile.Following)

	profile, err = f.profiles.Follow(ctx, f.reader.ID, "author")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	_, err = f.profiles.Follow(ctx, f.reader.ID, "author")
	require.NoError(t, err)
	var rows int64
	require.NoError(t, f.db.Model(&relation.UserFollow{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	profile, err = f.profiles.Get(ctx, f.reader.ID, "author")
	require.NoError(t, err)
	assert.True(t, profile.Following)

	anon, err := f.profiles.Get(ctx, uuid.Nil, "author")
	require.NoError(t, err)
	assert.False(t, anon.Following)

	reverse, err := f.profiles.Get(ctx, f.author.ID, "reader")
	require.NoError(t, err)
	assert.False(t, reverse.Following)

	profile, err = f.profiles.Unfollow(ctx, f.reader.ID, "author")
	require.NoError(t, err)
	assert.False(t, profile.Following)

	_, err = f.profiles.Get(ctx, uuid.Nil, "ghost")
	assert.ErrorIs(t, err, errcode.ErrNotFound)
	assert.Equal(t, "User(`ghost`) not found", errcode.Message(err))

	_, err = f.profiles.Follow(ctx, uuid.Nil, "author")
	assert.ErrorIs(t, err, errcode.ErrUnauthenticated)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, "Discussed")

	first, err := f.comments.Create(ctx, f.reader.ID, "discussed", dto.CommentCreateRequest{Body: "first"})
	require.NoError(t, err)
	assert.Equal(t, "reader", first.Author.Username)
	second, err := f.comments.Create(ctx, f.author.ID, "discussed", dto.CommentCreateRequest{Body: "second"})
	require.NoError(t, err)

	_, err = f.comments.Create(ctx, f.reader.ID, "missing", dto.CommentCreateRequest{Body: "x"})
	assert.ErrorIs(t, err, errcode.ErrNotFound)

	list, err := f.comments.List(ctx, uuid.Nil, "discussed")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	err = f.comments.Delete(ctx, f.author.ID, first.ID)
	assert.ErrorIs(t, err, errcode.ErrForbidden)
	assert.Equal(t, "You cannot delete comments written by others.", errcode.Message(err))

	err = f.comments.Delete(ctx, f.reader.ID, 9999)
	assert.ErrorIs(t, err, errcode.ErrNotFound)
	assert.Equal(t, "Comment not found by id: `9999`", errcode.Message(err))

	require.NoError(t, f.comments.Delete(ctx, f.reader.ID, first.ID))
	list, err = f.comments.List(ctx, uuid.Nil, "discussed")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func newUserService(t *testing.T) (*UserService, *auth.JWT) {
	t.Helper()
	tokens, err := auth.NewJWT(config.JWTConfig{SecretKey: "secret", ExpireSeconds: 60, Issuer: "test", NodeID: 1}, auth.NewMemoryBlacklist())
	require.NoError(t, err)
	return NewUserService(testutil.NewDB(t), tokens, auth.NewPasswordHasher(bcrypt.MinCost)), tokens
}

func TestUserRegisterAndLogin(t *testing.T) {
	users, tokens := newUserService(t)
	ctx := context.Background()

	registered, err := users.Register(ctx, dto.RegisterRequest{Email: "jake@jake.jake", Username: "jake", Password: "jakejake"})
	require.NoError(t, err)
	assert.Equal(t, "jake", registered.Username)
	claims, err := tokens.Parse(ctx, registered.Token)
	require.NoError(t, err)

	_, err = users.Register(ctx, dto.RegisterRequest{Email: "jake@jake.jake", Username: "other", Password: "jakejake"})
	assert.ErrorIs(t, err, errcode.ErrConflict)
	_, err = users.Register(ctx, dto.RegisterRequest{Email: "other@jake.jake", Username: "jake", Password: "jakejake"})
	assert.ErrorIs(t, err, errcode.ErrConflict)

	loggedIn, err := users.Login(ctx, dto.LoginRequest{Email: "jake@jake.jake", Password: "jakejake"})
	require.NoError(t, err)
	assert.Equal(t, "jake@jake.jake", loggedIn.Email)

	_, err = users.Login(ctx, dto.LoginRequest{Email: "jake@jake.jake", Password: "wrong"})
	assert.ErrorIs(t, err, errcode.ErrInvalidCredentials)
	_, err = users.Login(ctx, dto.LoginRequest{Email: "nobody@jake.jake", Password: "jakejake"})
	assert.ErrorIs(t, err, errcode.ErrInvalidCredentials)

	current, err := users.Current(ctx, claims.UserID, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.Token, current.Token)

	_, err = users.Current(ctx, uuid.Nil, "")
	assert.ErrorIs(t, err, errcode.ErrUnauthenticated)
}

func TestUserUpdate(t *testing.T) {
	users, tokens := newUserService(t)
	ctx := context.Background()

	jake, err := users.Register(ctx, dto.RegisterRequest{Email: "jake@jake.jake", Username: "jake", Password: "jakejake"})
	require.NoError(t, err)
	_, err = users.Register(ctx, dto.RegisterRequest{Email: "anna@anna.anna", Username: "anna", Password: "annaanna"})
	require.NoError(t, err)
	claims, err := tokens.Parse(ctx, jake.Token)
	require.NoError(t, err)

	updated, err := users.Update(ctx, claims.UserID, jake.Token, dto.UserUpdateRequest{Bio: "I like to skateboard"})
	require.NoError(t, err)
	assert.Equal(t, "jake", updated.Username)
	assert.Equal(t, "I like to skateboard", updated.Bio)

	_, err = users.Update(ctx, claims.UserID, jake.Token, dto.UserUpdateRequest{Username: "anna"})
	assert.ErrorIs(t, err, errcode.ErrConflict)

	// 与自己原值相同不算冲突
	_, err = users.Update(ctx, claims.UserID, jake.Token, dto.UserUpdateRequest{Username: "jake"})
	assert.NoError(t, err)

	_, err = users.Update(ctx, claims.UserID, jake.Token, dto.UserUpdateRequest{Password: "newpassword"})
	require.NoError(t, err)
	_, err = users.Login(ctx, dto.LoginRequest{Email: "jake@jake.jake", Password: "jakejake"})
	assert.ErrorIs(t, err, errcode.ErrInvalidCredentials)
	_, err = users.Login(ctx, dto.LoginRequest{Email: "jake@jake.jake", Password: "newpassword"})
	assert.NoError(t, err)
}

func TestUserLogout(t *testing.T) {
	users, tokens := newUserService(t)
	ctx := context.Background()

	jake, err := users.Register(ctx, dto.RegisterRequest{Email: "jake@jake.jake", Username: "jake", Password: "jakejake"})
	require.NoError(t, err)

	require.NoError(t, users.Logout(ctx, jake.Token))
	_, err = tokens.Parse(ctx, jake.Token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	err = users.Logout(ctx, "garbage")
	assert.ErrorIs(t, err, errcode.ErrUnauthenticated)
}
