package mutation_test

import (
	"Agora/internal/mockapi"
	"Agora/pkg/api"
	"Agora/pkg/mutation"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	appended []int64
	updated  []string
	removed  []int64
	counts   []int
}

func (v *view) options() []mutation.CommentOption {
	return []mutation.CommentOption{
		mutation.OnCommentAppend(func(c api.Comment) { v.appended = append(v.appended, c.CommentID) }),
		mutation.OnCommentUpdate(func(c api.Comment) { v.updated = append(v.updated, c.Content) }),
		mutation.OnCommentRemove(func(id int64) { v.removed = append(v.removed, id) }),
		mutation.OnCommentCount(func(n int) { v.counts = append(v.counts, n) }),
	}
}

func TestCommentList_CreateUpdateDelete(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	v := &view{}
	list := mutation.NewCommentList(b.client, b.postID, 0, v.options()...)

	created, err := list.Create(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", created.Content)
	assert.True(t, created.IsAuthor)
	assert.Equal(t, 1, list.CommentCount())
	assert.Equal(t, []int64{created.CommentID}, v.appended)

	require.NoError(t, list.Update(ctx, created.CommentID, "hello again"))
	got, ok := list.Find(created.CommentID)
	require.True(t, ok)
	assert.Equal(t, "hello again", got.Content)
	assert.Equal(t, []string{"hello again"}, v.updated)

	require.NoError(t, list.Delete(ctx, created.CommentID))
	assert.Empty(t, list.Comments())
	assert.Equal(t, 0, list.CommentCount())
	assert.Equal(t, []int64{created.CommentID}, v.removed)
	assert.Equal(t, []int{1, 0}, v.counts)
	assert.Equal(t, 0, b.mock.CommentCount(b.postID))
}

func TestCommentList_AppendKeepsOrderAndCount(t *testing.T) {
	b := newBackend(t)
	v := &view{}
	list := mutation.NewCommentList(b.client, b.postID, 7, v.options()...)

	list.Append(api.Comment{CommentID: 10}, api.Comment{CommentID: 11})
	list.Append(api.Comment{CommentID: 12})

	ids := make([]int64, 0)
	for _, c := range list.Comments() {
		ids = append(ids, c.CommentID)
	}
	assert.Equal(t, []int64{10, 11, 12}, ids)
	assert.Equal(t, []int64{10, 11, 12}, v.appended)
	assert.Equal(t, 7, list.CommentCount())

	list.SetCount(-3)
	assert.Equal(t, 0, list.CommentCount())

	list.Reset(4)
	assert.Empty(t, list.Comments())
	assert.Equal(t, 4, list.CommentCount())
}

func TestCommentList_CountDoesNotGoNegative(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	cm := b.mock.AddComment(b.postID, b.userID, "mine")
	list := mutation.NewCommentList(b.client, b.postID, 0)
	list.Append(cm)

	require.NoError(t, list.Delete(ctx, cm.CommentID))
	assert.Equal(t, 0, list.CommentCount())
}

func TestCommentList_FailuresLeaveState(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	cm := b.mock.AddComment(b.postID, b.userID, "original")
	v := &view{}
	list := mutation.NewCommentList(b.client, b.postID, 1, v.options()...)
	list.Append(cm)
	v.appended = nil

	b.mock.FailNext(http.MethodPost, mockapi.RouteComments, http.StatusBadRequest, "content is required")
	_, err := list.Create(ctx, "x")
	assert.Equal(t, "content is required", err.Error())

	b.mock.RespondRaw(http.MethodPatch, mockapi.RouteComment, http.StatusOK, `{"data":{}}`)
	err = list.Update(ctx, cm.CommentID, "changed")
	assert.Equal(t, api.KindMalformed, api.KindOf(err))

	b.mock.FailNext(http.MethodDelete, mockapi.RouteComment, http.StatusForbidden, "only the author can change this comment")
	err = list.Delete(ctx, cm.CommentID)
	assert.Equal(t, api.KindHTTP, api.KindOf(err))

	b.mock.RotateSecret()
	err = list.Delete(ctx, cm.CommentID)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, b.cred.IsActive())

	require.Len(t, list.Comments(), 1)
	assert.Equal(t, "original", list.Comments()[0].Content)
	assert.Equal(t, 1, list.CommentCount())
	assert.Empty(t, v.appended)
	assert.Empty(t, v.updated)
	assert.Empty(t, v.removed)
	assert.Empty(t, v.counts)
}

func TestCommentList_ControlToggled(t *testing.T) {
	b := newBackend(t)
	ctl := &switchboard{}
	list := mutation.NewCommentList(b.client, b.postID, 0, mutation.WithControl(ctl))

	_, err := list.Create(context.Background(), "hi")
	require.NoError(t, err)
	b.mock.FailNext(http.MethodPost, mockapi.RouteComments, http.StatusInternalServerError, "")
	_, err = list.Create(context.Background(), "hi")
	require.Error(t, err)
	assert.Equal(t, "HTTP error 500", err.Error())
	assert.Equal(t, []bool{true, false, true, false}, ctl.disabled)
}
