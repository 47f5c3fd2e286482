package api_test

import (
	"Agora/internal/mockapi"
	"Agora/pkg/api"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	free, err := f.client.CheckEmail(ctx, "kim@agora.dev")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = f.client.CheckEmail(ctx, "lee@agora.dev")
	require.NoError(t, err)
	assert.True(t, free)

	free, err = f.client.CheckNickname(ctx, "kim")
	require.NoError(t, err)
	assert.False(t, free)

	created, err := f.client.Signup(ctx, api.SignupRequest{Email: "lee@agora.dev", Password: "Passw0rd!", Nickname: "lee"})
	require.NoError(t, err)
	assert.Equal(t, "lee", created.Nickname)

	_, err = f.client.Signup(ctx, api.SignupRequest{Email: "lee@agora.dev", Password: "Passw0rd!", Nickname: "lee2"})
	assert.Equal(t, "email already registered", err.Error())

	f.login(t)
	updated, err := f.client.UpdateMe(ctx, api.UpdateUserRequest{Nickname: "kimchi"})
	require.NoError(t, err)
	assert.Equal(t, "kimchi", updated.Nickname)

	require.NoError(t, f.client.Logout(ctx))
	require.NoError(t, f.client.DeleteMe(ctx))

	_, err = f.client.Me(ctx)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, f.cred.IsActive())

	f.mock.RespondRaw(http.MethodGet, mockapi.RouteEmail, http.StatusOK, `{"data":"yes"}`)
	_, err = f.client.CheckEmail(ctx, "x@agora.dev")
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
}

func TestListPosts_Envelope(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		f.mock.AddPost(f.user.UserID, "title", "body")
	}

	page, err := f.client.ListPosts(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
	assert.Equal(t, "3", page.NextCursor)
	assert.Equal(t, int64(4), page.Items[0].PostID)
	assert.Equal(t, "kim", page.Items[0].Author.Nickname)

	page, err = f.client.ListPosts(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasNext)
	assert.Equal(t, "", page.NextCursor)
}

func TestListPosts_OpaqueStringCursor(t *testing.T) {
	f := setup(t)
	f.mock.RespondRaw(http.MethodGet, mockapi.RoutePosts, http.StatusOK,
		`{"data":{"postList":[{"postId":9,"title":"t"}],"cursor":{"nextCursor":"eyJpZCI6OX0=","hasNext":true}}}`)

	page, err := f.client.ListPosts(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "eyJpZCI6OX0=", page.NextCursor)
}

func TestListPosts_Malformed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	bodies := []string{
		`{"data":{"cursor":{"nextCursor":null,"hasNext":false}}}`,
		`{"data":{"postList":[],"cursor":{"nextCursor":null}}}`,
		`{"data":{"postList":{},"cursor":{"hasNext":false}}}`,
		`{"data":{"postList":[],"cursor":{"nextCursor":null,"hasNext":true}}}`,
		`{"data":{"postList":[{"postId":"x"}],"cursor":{"hasNext":false}}}`,
		`not json`,
	}
	for _, body := range bodies {
		f.mock.RespondRaw(http.MethodGet, mockapi.RoutePosts, http.StatusOK, body)
		_, err := f.client.ListPosts(ctx, "", 0)
		assert.Equal(t, api.KindMalformed, api.KindOf(err), body)
	}
}

func TestPostCRUD(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)

	created, err := f.client.CreatePost(ctx, api.PostRequest{Title: "hello", Content: "world", Images: []string{"http://img/a.png"}})
	require.NoError(t, err)
	assert.True(t, created.IsAuthor)

	got, err := f.client.GetPost(ctx, created.PostID)
	require.NoError(t, err)
	assert.Equal(t, "world", got.Content)
	assert.Equal(t, []string{"http://img/a.png"}, got.Images)
	assert.Equal(t, 1, got.ViewCount)

	updated, err := f.client.UpdatePost(ctx, created.PostID, api.PostRequest{Title: "hello", Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, "again", updated.Content)

	require.NoError(t, f.client.DeletePost(ctx, created.PostID))
	_, err = f.client.GetPost(ctx, created.PostID)
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestLikeAndUnlike(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)
	post := f.mock.AddPost(f.user.UserID, "t", "c")
	f.mock.SetLikes(post.PostID, 100, 101, 102, 103, 104)

	liked, err := f.client.LikePost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, api.LikeResult{LikeCount: 6, IsLiked: true}, liked)

	unliked, err := f.client.UnlikePost(ctx, post.PostID)
	require.NoError(t, err)
	assert.Nil(t, unliked.LikeCount)

	f.mock.EchoUnlikeCount(true)
	unliked, err = f.client.UnlikePost(ctx, post.PostID)
	require.NoError(t, err)
	require.NotNil(t, unliked.LikeCount)
	assert.Equal(t, 5, *unliked.LikeCount)

	f.mock.RespondRaw(http.MethodPost, mockapi.RouteLike, http.StatusOK, `{"data":{"likeCount":"6","isLiked":true}}`)
	_, err = f.client.LikePost(ctx, post.PostID)
	assert.Equal(t, api.KindMalformed, api.KindOf(err))

	f.mock.RespondRaw(http.MethodDelete, mockapi.RouteLike, http.StatusOK, `{"status":"pending"}`)
	_, err = f.client.UnlikePost(ctx, post.PostID)
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
}

func TestComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	post := f.mock.AddPost(f.user.UserID, "t", "c")
	for i := 0; i < 3; i++ {
		f.mock.AddComment(post.PostID, f.user.UserID, "seed")
	}

	page, err := f.client.ListComments(ctx, post.PostID, "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.Total)
	assert.Equal(t, 3, *page.Total)

	f.login(t)
	created, err := f.client.CreateComment(ctx, post.PostID, "first!")
	require.NoError(t, err)
	assert.Equal(t, "first!", created.Content)
	assert.Equal(t, "kim", created.User.Nickname)

	stored, err := f.client.UpdateComment(ctx, post.PostID, created.CommentID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", stored)

	require.NoError(t, f.client.DeleteComment(ctx, post.PostID, created.CommentID))
	assert.Equal(t, 3, f.mock.CommentCount(post.PostID))

	f.mock.RespondRaw(http.MethodPatch, mockapi.RouteComment, http.StatusOK, `{"data":{}}`)
	_, err = f.client.UpdateComment(ctx, post.PostID, 1, "x")
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
}
