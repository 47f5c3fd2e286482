package board

import (
	"Agora/pkg/api"
	"Agora/pkg/log"
	"Agora/pkg/paging"
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	StatusLoadingPosts = "loading posts..."
	StatusAllPosts     = "all posts loaded"
	StatusNoPosts      = "no posts yet"
	StatusPostsFailed  = "failed to load posts"
)

type FeedHandlers struct {
	OnPost         func(api.PostSummary)
	OnStatus       func(string)
	OnUnauthorized func()
}

// Feed is the post list page: an infinitely scrolling list, newest first.
type Feed struct {
	pager *paging.Paginator[api.PostSummary]
	h     FeedHandlers

	mu     sync.Mutex
	status string
}

func NewFeed(client *api.Client, size int, h FeedHandlers) *Feed {
	f := &Feed{h: h}
	f.pager = paging.New(client.PostFetcher(size),
		paging.OnStart[api.PostSummary](func() { f.setStatus(StatusLoadingPosts) }),
		paging.OnAppend(func(p api.PostSummary) {
			if f.h.OnPost != nil {
				f.h.OnPost(p)
			}
		}),
		paging.OnEnd[api.PostSummary](func(empty bool) {
			if empty {
				f.setStatus(StatusNoPosts)
				return
			}
			f.setStatus(StatusAllPosts)
		}),
		paging.OnError[api.PostSummary](func(err error) {
			log.L.Warn("load posts", zap.Error(err))
			f.setStatus(StatusPostsFailed)
			if api.IsUnauthorized(err) && f.h.OnUnauthorized != nil {
				f.h.OnUnauthorized()
			}
		}),
	)
	return f
}

// Load fetches the next page of posts.
func (f *Feed) Load(ctx context.Context) (bool, error) {
	loaded, err := f.pager.LoadNext(ctx)
	if loaded {
		f.clearStatus()
	}
	return loaded, err
}

// Scroll reports how much of the list sentinel is visible.
func (f *Feed) Scroll(ctx context.Context, ratio float64) (bool, error) {
	if ratio < paging.VisibilityThreshold {
		return false, nil
	}
	return f.Load(ctx)
}

// Refresh starts the list over from the first page.
func (f *Feed) Refresh() {
	f.pager.Reset()
	f.setStatus("")
}

func (f *Feed) Posts() []api.PostSummary {
	return f.pager.Items()
}

func (f *Feed) HasMore() bool {
	return f.pager.HasMore()
}

func (f *Feed) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// clearStatus drops the loading line once a page with more behind it is
// applied and no other fetch has started since.
func (f *Feed) clearStatus() {
	st := f.pager.State()
	if st.Loading || !st.HasMore {
		return
	}
	f.mu.Lock()
	if f.status != StatusLoadingPosts {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.setStatus("")
}

func (f *Feed) setStatus(s string) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
	if f.h.OnStatus != nil {
		f.h.OnStatus(s)
	}
}
