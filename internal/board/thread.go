package board

import (
	"Agora/pkg/api"
	"Agora/pkg/log"
	"Agora/pkg/mutation"
	"Agora/pkg/paging"
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const (
	StatusLoadingComments = "loading comments..."
	StatusAllComments     = "all comments loaded"
	StatusNoComments      = "no comments"
	StatusCommentsFailed  = "failed to load comments"
)

var (
	ErrNotLoaded     = errors.New("board: post not loaded")
	ErrLoginRequired = errors.New("login required")
	ErrEmptyComment  = errors.New("comment is empty")
	ErrNotAuthor     = errors.New("only the author can edit this comment")
	ErrNoSuchComment = errors.New("comment is not displayed")
)

// ThreadHandlers are the render callbacks of a post page. Any may be nil.
type ThreadHandlers struct {
	OnPost          func(*api.Post)
	OnLike          func(mutation.LikeState)
	OnCommentAppend func(api.Comment)
	OnCommentUpdate func(api.Comment)
	OnCommentRemove func(commentID int64)
	OnCommentCount  func(int)
	OnStatus        func(string)
	OnUnauthorized  func()

	LikeControl    mutation.Control
	CommentControl mutation.Control

	// CommentPageSize defaults to api.DefaultPageSize.
	CommentPageSize int
}

// Thread is the post detail page: the post, its like toggle and its
// comments, with one comment at a time open for editing.
type Thread struct {
	client *api.Client
	h      ThreadHandlers

	mu       sync.Mutex
	user     *api.User
	post     *api.Post
	like     *mutation.LikeToggle
	comments *mutation.CommentList
	pager    *paging.Paginator[api.Comment]
	editing  int64
	status   string
}

func NewThread(client *api.Client, h ThreadHandlers) *Thread {
	return &Thread{client: client, h: h}
}

// Load fetches the current user (when logged in), the post and the first
// page of comments. Loading again replaces everything.
func (t *Thread) Load(ctx context.Context, postID int64) error {
	var user *api.User
	if t.client.Credential().IsActive() {
		me, err := t.client.Me(ctx)
		switch {
		case api.IsUnauthorized(err):
			t.unauthorized()
			return err
		case err != nil:
			log.L.Warn("load current user", zap.Error(err))
		default:
			user = me
		}
	}

	post, err := t.client.GetPost(ctx, postID)
	if err != nil {
		if api.IsUnauthorized(err) {
			t.unauthorized()
		}
		return err
	}

	like := mutation.NewLikeToggle(t.client, post.PostID,
		mutation.LikeState{Liked: post.IsLiked, Count: post.LikeCount}, t.h.LikeControl)
	if t.h.OnLike != nil {
		like.OnChange(t.h.OnLike)
	}

	opts := []mutation.CommentOption{mutation.WithControl(t.h.CommentControl)}
	if t.h.OnCommentAppend != nil {
		opts = append(opts, mutation.OnCommentAppend(t.h.OnCommentAppend))
	}
	if t.h.OnCommentUpdate != nil {
		opts = append(opts, mutation.OnCommentUpdate(t.h.OnCommentUpdate))
	}
	if t.h.OnCommentRemove != nil {
		opts = append(opts, mutation.OnCommentRemove(t.h.OnCommentRemove))
	}
	if t.h.OnCommentCount != nil {
		opts = append(opts, mutation.OnCommentCount(t.h.OnCommentCount))
	}
	comments := mutation.NewCommentList(t.client, post.PostID, post.CommentCount, opts...)

	pager := paging.New(t.commentFetcher(post.PostID, user, comments),
		paging.OnStart[api.Comment](func() { t.setStatus(StatusLoadingComments) }),
		paging.OnAppend(func(c api.Comment) { comments.Append(c) }),
		paging.OnEnd[api.Comment](func(empty bool) {
			if empty {
				t.setStatus(StatusNoComments)
				return
			}
			t.setStatus(StatusAllComments)
		}),
		paging.OnError[api.Comment](func(err error) {
			log.L.Warn("load comments", zap.Int64("post_id", post.PostID), zap.Error(err))
			t.setStatus(StatusCommentsFailed + ": " + err.Error())
			if api.IsUnauthorized(err) {
				t.unauthorized()
			}
		}),
	)

	t.mu.Lock()
	previous := t.pager
	t.user = user
	t.post = post
	t.like = like
	t.comments = comments
	t.pager = pager
	t.editing = 0
	t.mu.Unlock()
	if previous != nil {
		// Drops whatever the old post's pager still has in flight.
		previous.Reset()
	}

	if t.h.OnPost != nil {
		t.h.OnPost(post)
	}
	_, err = t.LoadComments(ctx)
	return err
}

// commentFetcher marks the caller's own comments and takes the server total
// from the first page when it carries one.
func (t *Thread) commentFetcher(postID int64, user *api.User, comments *mutation.CommentList) paging.Fetcher[api.Comment] {
	size := t.h.CommentPageSize
	return func(ctx context.Context, cursor string) (paging.Page[api.Comment], error) {
		page, err := t.client.ListComments(ctx, postID, cursor, size)
		if err != nil {
			return paging.Page[api.Comment]{}, err
		}
		for i := range page.Items {
			page.Items[i].IsAuthor = user != nil && page.Items[i].User.UserID == user.UserID
		}
		if cursor == "" && page.Total != nil && t.showing(comments) {
			comments.SetCount(*page.Total)
		}
		return page.Page, nil
	}
}

// LoadComments fetches the next comment page.
func (t *Thread) LoadComments(ctx context.Context) (bool, error) {
	pager, err := t.loadedPager()
	if err != nil {
		return false, err
	}
	loaded, err := pager.LoadNext(ctx)
	if loaded {
		t.clearStatus(pager)
	}
	return loaded, err
}

// showing reports whether comments is the list on screen.
func (t *Thread) showing(comments *mutation.CommentList) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.comments == comments
}

func (t *Thread) clearStatus(pager *paging.Paginator[api.Comment]) {
	st := pager.State()
	if st.Loading || !st.HasMore {
		return
	}
	t.mu.Lock()
	if t.pager != pager || t.status != StatusLoadingComments {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.setStatus("")
}

// Scroll reports how much of the comment sentinel is visible.
func (t *Thread) Scroll(ctx context.Context, ratio float64) (bool, error) {
	if ratio < paging.VisibilityThreshold {
		return false, nil
	}
	return t.LoadComments(ctx)
}

// ToggleLike likes or unlikes the post. Anonymous visitors are sent to the
// login page.
func (t *Thread) ToggleLike(ctx context.Context) (mutation.LikeState, error) {
	t.mu.Lock()
	like := t.like
	t.mu.Unlock()
	if like == nil {
		return mutation.LikeState{}, ErrNotLoaded
	}
	if !t.client.Credential().IsActive() {
		t.unauthorized()
		return like.State(), ErrLoginRequired
	}
	state, err := like.Toggle(ctx)
	if api.IsUnauthorized(err) {
		t.unauthorized()
	}
	return state, err
}

// BeginEdit opens one of the caller's comments for editing and returns its
// current content.
func (t *Thread) BeginEdit(commentID int64) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.comments == nil {
		return "", ErrNotLoaded
	}
	c, ok := t.comments.Find(commentID)
	if !ok {
		return "", ErrNoSuchComment
	}
	if !c.IsAuthor {
		return "", ErrNotAuthor
	}
	t.editing = commentID
	return c.Content, nil
}

func (t *Thread) CancelEdit() {
	t.mu.Lock()
	t.editing = 0
	t.mu.Unlock()
}

// Editing returns the comment open for editing.
func (t *Thread) Editing() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.editing, t.editing != 0
}

// Submit updates the comment being edited, or creates a new one. The edit
// state is kept when the update fails.
func (t *Thread) Submit(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyComment
	}
	t.mu.Lock()
	comments, editing := t.comments, t.editing
	t.mu.Unlock()
	if comments == nil {
		return ErrNotLoaded
	}
	if !t.client.Credential().IsActive() {
		t.unauthorized()
		return ErrLoginRequired
	}

	var err error
	if editing != 0 {
		err = comments.Update(ctx, editing, content)
		if err == nil {
			t.CancelEdit()
		}
	} else {
		_, err = comments.Create(ctx, content)
	}
	if api.IsUnauthorized(err) {
		t.unauthorized()
	}
	return err
}

func (t *Thread) DeleteComment(ctx context.Context, commentID int64) error {
	t.mu.Lock()
	comments := t.comments
	t.mu.Unlock()
	if comments == nil {
		return ErrNotLoaded
	}
	err := comments.Delete(ctx, commentID)
	if err == nil {
		t.mu.Lock()
		if t.editing == commentID {
			t.editing = 0
		}
		t.mu.Unlock()
	}
	if api.IsUnauthorized(err) {
		t.unauthorized()
	}
	return err
}

// DeletePost removes the post; the page is expected to navigate away.
func (t *Thread) DeletePost(ctx context.Context) error {
	t.mu.Lock()
	post := t.post
	t.mu.Unlock()
	if post == nil {
		return ErrNotLoaded
	}
	err := t.client.DeletePost(ctx, post.PostID)
	if api.IsUnauthorized(err) {
		t.unauthorized()
	}
	return err
}

func (t *Thread) Post() *api.Post {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.post
}

// User is the logged-in viewer, nil for anonymous visitors.
func (t *Thread) User() *api.User {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.user
}

// CanEdit reports whether the viewer may edit or delete the post.
func (t *Thread) CanEdit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.user != nil && t.post != nil && t.post.IsAuthor
}

func (t *Thread) Like() mutation.LikeState {
	t.mu.Lock()
	like := t.like
	t.mu.Unlock()
	if like == nil {
		return mutation.LikeState{}
	}
	return like.State()
}

func (t *Thread) Comments() []api.Comment {
	t.mu.Lock()
	comments := t.comments
	t.mu.Unlock()
	if comments == nil {
		return nil
	}
	return comments.Comments()
}

func (t *Thread) CommentCount() int {
	t.mu.Lock()
	comments := t.comments
	t.mu.Unlock()
	if comments == nil {
		return 0
	}
	return comments.CommentCount()
}

func (t *Thread) HasMoreComments() bool {
	pager, err := t.loadedPager()
	return err == nil && pager.HasMore()
}

// Content is the post body split into render blocks.
func (t *Thread) Content() []Block {
	post := t.Post()
	if post == nil {
		return nil
	}
	return ParseContent(post.Content, post.Images)
}

func (t *Thread) Status() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *Thread) loadedPager() (*paging.Paginator[api.Comment], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pager == nil {
		return nil, ErrNotLoaded
	}
	return t.pager, nil
}

func (t *Thread) setStatus(s string) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
	if t.h.OnStatus != nil {
		t.h.OnStatus(s)
	}
}

func (t *Thread) unauthorized() {
	if t.h.OnUnauthorized != nil {
		t.h.OnUnauthorized()
	}
}
