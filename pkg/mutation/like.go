package mutation

import (
	"Agora/pkg/api"
	"Agora/pkg/log"
	"context"
	"sync"

	"go.uber.org/zap"
)

// Liker is the part of the request layer a LikeToggle needs.
type Liker interface {
	LikePost(ctx context.Context, postID int64) (api.LikeResult, error)
	UnlikePost(ctx context.Context, postID int64) (api.UnlikeResult, error)
}

type LikeState struct {
	Liked bool
	Count int
}

// LikeToggle holds the committed like state of one post.
//
// A like commits the count and flag the server returns. An unlike commits
// liked=false and, unless the server echoes a count, max(0, count-1). That
// local decrement is an approximation and drifts when others like the same
// post in the meantime.
type LikeToggle struct {
	client Liker
	postID int64
	guard  *Guard

	mu       sync.Mutex
	state    LikeState
	onChange func(LikeState)
}

func NewLikeToggle(client Liker, postID int64, initial LikeState, ctl Control) *LikeToggle {
	return &LikeToggle{
		client: client,
		postID: postID,
		guard:  NewGuard(ctl),
		state:  initial,
	}
}

// OnChange registers the render callback for committed states.
func (l *LikeToggle) OnChange(fn func(LikeState)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

func (l *LikeToggle) State() LikeState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Toggle likes or unlikes depending on the committed state and returns the
// state in force afterwards. On error that is the state from before the call.
func (l *LikeToggle) Toggle(ctx context.Context) (LikeState, error) {
	err := l.guard.Do(func() error {
		before := l.State()
		next, err := l.request(ctx, before)
		if err != nil {
			log.L.Info("like toggle failed", zap.Int64("post_id", l.postID),
				zap.Bool("liked", before.Liked), zap.Error(err))
			return err
		}
		l.commit(next)
		return nil
	})
	return l.State(), err
}

func (l *LikeToggle) request(ctx context.Context, current LikeState) (LikeState, error) {
	if !current.Liked {
		res, err := l.client.LikePost(ctx, l.postID)
		if err != nil {
			return current, err
		}
		return LikeState{Liked: res.IsLiked, Count: res.LikeCount}, nil
	}

	res, err := l.client.UnlikePost(ctx, l.postID)
	if err != nil {
		return current, err
	}
	if res.LikeCount != nil {
		return LikeState{Liked: false, Count: *res.LikeCount}, nil
	}
	return LikeState{Liked: false, Count: max(0, current.Count-1)}, nil
}

func (l *LikeToggle) commit(next LikeState) {
	l.mu.Lock()
	l.state = next
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn(next)
	}
}
