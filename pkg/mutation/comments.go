package mutation

import (
	"Agora/pkg/api"
	"Agora/pkg/log"
	"context"
	"sync"

	"go.uber.org/zap"
)

// Commenter is the part of the request layer a CommentList needs.
type Commenter interface {
	CreateComment(ctx context.Context, postID int64, content string) (*api.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID int64, content string) (string, error)
	DeleteComment(ctx context.Context, postID, commentID int64) error
}

// CommentList is the displayed comment sequence of one post and its visible
// count. The count moves by one on create and delete and is never re-read
// from the server, so concurrent edits elsewhere make it drift.
type CommentList struct {
	client Commenter
	postID int64
	guard  *Guard

	mu       sync.Mutex
	comments []api.Comment
	count    int

	onAppend func(api.Comment)
	onUpdate func(api.Comment)
	onRemove func(commentID int64)
	onCount  func(int)
}

type CommentOption func(*CommentList)

func OnCommentAppend(fn func(api.Comment)) CommentOption {
	return func(l *CommentList) { l.onAppend = fn }
}

func OnCommentUpdate(fn func(api.Comment)) CommentOption {
	return func(l *CommentList) { l.onUpdate = fn }
}

func OnCommentRemove(fn func(commentID int64)) CommentOption {
	return func(l *CommentList) { l.onRemove = fn }
}

func OnCommentCount(fn func(count int)) CommentOption {
	return func(l *CommentList) { l.onCount = fn }
}

// WithControl disables ctl while a create, update or delete is pending.
func WithControl(ctl Control) CommentOption {
	return func(l *CommentList) { l.guard = NewGuard(ctl) }
}

func NewCommentList(client Commenter, postID int64, count int, opts ...CommentOption) *CommentList {
	l := &CommentList{client: client, postID: postID, count: count, guard: NewGuard(nil)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append adds comments that were loaded rather than created; the count is
// left alone.
func (l *CommentList) Append(comments ...api.Comment) {
	l.mu.Lock()
	l.comments = append(l.comments, comments...)
	fn := l.onAppend
	l.mu.Unlock()
	if fn != nil {
		for _, cm := range comments {
			fn(cm)
		}
	}
}

// SetCount overrides the visible count, e.g. with a server total.
func (l *CommentList) SetCount(n int) {
	l.mu.Lock()
	l.count = max(0, n)
	n = l.count
	fn := l.onCount
	l.mu.Unlock()
	if fn != nil {
		fn(n)
	}
}

func (l *CommentList) CommentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Comments returns a copy of the displayed sequence.
func (l *CommentList) Comments() []api.Comment {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.Comment, len(l.comments))
	copy(out, l.comments)
	return out
}

// Find returns the displayed comment with commentID.
func (l *CommentList) Find(commentID int64) (api.Comment, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.index(commentID); i >= 0 {
		return l.comments[i], true
	}
	return api.Comment{}, false
}

// Reset drops every displayed comment and sets the count to n.
func (l *CommentList) Reset(n int) {
	l.mu.Lock()
	l.comments = nil
	l.mu.Unlock()
	l.SetCount(n)
}

// Create posts a comment and appends the entry the server returns.
func (l *CommentList) Create(ctx context.Context, content string) (*api.Comment, error) {
	var created *api.Comment
	err := l.guard.Do(func() error {
		cm, err := l.client.CreateComment(ctx, l.postID, content)
		if err != nil {
			return err
		}
		cm.IsAuthor = true
		created = cm

		l.mu.Lock()
		l.comments = append(l.comments, *cm)
		l.count++
		count := l.count
		onAppend, onCount := l.onAppend, l.onCount
		l.mu.Unlock()

		if onAppend != nil {
			onAppend(*cm)
		}
		if onCount != nil {
			onCount(count)
		}
		return nil
	})
	if err != nil {
		l.logFailure("create", 0, err)
	}
	return created, err
}

// Update replaces the content of the matching entry with what the server
// stored. A comment that is no longer displayed is only updated remotely.
func (l *CommentList) Update(ctx context.Context, commentID int64, content string) error {
	err := l.guard.Do(func() error {
		stored, err := l.client.UpdateComment(ctx, l.postID, commentID, content)
		if err != nil {
			return err
		}

		l.mu.Lock()
		i := l.index(commentID)
		if i < 0 {
			l.mu.Unlock()
			return nil
		}
		l.comments[i].Content = stored
		cm := l.comments[i]
		fn := l.onUpdate
		l.mu.Unlock()

		if fn != nil {
			fn(cm)
		}
		return nil
	})
	if err != nil {
		l.logFailure("update", commentID, err)
	}
	return err
}

// Delete removes the matching entry once the server confirms.
func (l *CommentList) Delete(ctx context.Context, commentID int64) error {
	err := l.guard.Do(func() error {
		if err := l.client.DeleteComment(ctx, l.postID, commentID); err != nil {
			return err
		}

		l.mu.Lock()
		if i := l.index(commentID); i >= 0 {
			l.comments = append(l.comments[:i], l.comments[i+1:]...)
		}
		l.count = max(0, l.count-1)
		count := l.count
		onRemove, onCount := l.onRemove, l.onCount
		l.mu.Unlock()

		if onRemove != nil {
			onRemove(commentID)
		}
		if onCount != nil {
			onCount(count)
		}
		return nil
	})
	if err != nil {
		l.logFailure("delete", commentID, err)
	}
	return err
}

func (l *CommentList) index(commentID int64) int {
	for i, cm := range l.comments {
		if cm.CommentID == commentID {
			return i
		}
	}
	return -1
}

func (l *CommentList) logFailure(action string, commentID int64, err error) {
	log.L.Info("comment "+action+" failed", zap.Int64("post_id", l.postID),
		zap.Int64("comment_id", commentID), zap.Error(err))
}
