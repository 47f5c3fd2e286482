// Package paging drives incremental loading of a cursor-paginated list.
//
// A Paginator keeps at most one fetch in flight. Extra load requests that
// arrive while a fetch is running are dropped, and once the server reports
// the end of the list (or a fetch fails) no further fetch is ever issued
// until Reset. Every Reset starts a new generation; a page that belongs to
// an older generation is discarded on arrival.
package paging

import (
	"context"
	"errors"
	"sync"
)

// VisibilityThreshold is the sentinel ratio at which Trigger loads the next page.
const VisibilityThreshold = 0.8

var ErrNoFetcher = errors.New("paging: nil fetcher")

// Page is one server response. An empty NextCursor is the null cursor.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasNext    bool
}

// Fetcher loads the page that starts at cursor ("" for the first page).
type Fetcher[T any] func(ctx context.Context, cursor string) (Page[T], error)

// State is a snapshot of the paginator.
type State struct {
	Cursor     string
	Loading    bool
	HasMore    bool
	Loaded     int
	Generation uint64
}

type Option[T any] func(*Paginator[T])

// OnAppend is called once per item, in order, after a page is applied.
func OnAppend[T any](fn func(item T)) Option[T] {
	return func(p *Paginator[T]) { p.onAppend = fn }
}

// OnEnd is called when the list is exhausted; empty reports that nothing
// was ever loaded.
func OnEnd[T any](fn func(empty bool)) Option[T] {
	return func(p *Paginator[T]) { p.onEnd = fn }
}

// OnStart is called when a fetch is actually issued.
func OnStart[T any](fn func()) Option[T] {
	return func(p *Paginator[T]) { p.onStart = fn }
}

// OnError is called with the error that stopped the paginator.
func OnError[T any](fn func(err error)) Option[T] {
	return func(p *Paginator[T]) { p.onError = fn }
}

type Paginator[T any] struct {
	fetch Fetcher[T]

	mu         sync.Mutex
	items      []T
	cursor     string
	loading    bool
	hasMore    bool
	generation uint64

	onStart  func()
	onAppend func(T)
	onEnd    func(bool)
	onError  func(error)
}

func New[T any](fetch Fetcher[T], opts ...Option[T]) *Paginator[T] {
	p := &Paginator[T]{fetch: fetch, hasMore: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset returns the paginator to its initial state and invalidates any
// fetch still in flight.
func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.cursor = ""
	p.loading = false
	p.hasMore = true
	p.generation++
}

// LoadNext fetches the next page unless a fetch is in flight or the list is
// exhausted. It reports whether a page was applied. A failed fetch stops the
// paginator and the error is returned for display. Callbacks are skipped once
// a Reset has started a newer generation.
func (p *Paginator[T]) LoadNext(ctx context.Context) (bool, error) {
	if p.fetch == nil {
		return false, ErrNoFetcher
	}

	p.mu.Lock()
	if p.loading || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}
	p.loading = true
	gen := p.generation
	cursor := p.cursor
	p.mu.Unlock()

	settled := false
	defer func() {
		if settled {
			return
		}
		// The fetcher panicked.
		p.mu.Lock()
		if gen == p.generation {
			p.loading = false
		}
		p.mu.Unlock()
	}()

	if p.onStart != nil && p.current(gen) {
		p.onStart()
	}
	page, err := p.fetch(ctx, cursor)

	p.mu.Lock()
	settled = true
	if gen != p.generation {
		// Reset already cleared loading for the new generation.
		p.mu.Unlock()
		return false, nil
	}
	p.loading = false
	if err != nil {
		p.hasMore = false
		p.mu.Unlock()
		if p.onError != nil && p.current(gen) {
			p.onError(err)
		}
		return false, err
	}
	p.items = append(p.items, page.Items...)
	p.hasMore = page.HasNext
	if page.HasNext {
		p.cursor = page.NextCursor
	} else {
		p.cursor = ""
	}
	empty := len(p.items) == 0
	p.mu.Unlock()

	if p.onAppend != nil {
		for _, item := range page.Items {
			if !p.current(gen) {
				return true, nil
			}
			p.onAppend(item)
		}
	}
	if !page.HasNext && p.onEnd != nil && p.current(gen) {
		p.onEnd(empty)
	}
	return true, nil
}

func (p *Paginator[T]) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.generation
}

// Trigger is the level-triggered visibility signal: the next page loads when
// the sentinel is at least VisibilityThreshold visible and more pages exist.
// Signals that arrive during a fetch are dropped.
func (p *Paginator[T]) Trigger(ctx context.Context, ratio float64) (bool, error) {
	if ratio < VisibilityThreshold || !p.HasMore() {
		return false, nil
	}
	return p.LoadNext(ctx)
}

// Items returns a copy of everything loaded so far, in fetch order.
func (p *Paginator[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Paginator[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return State{
		Cursor:     p.cursor,
		Loading:    p.loading,
		HasMore:    p.hasMore,
		Loaded:     len(p.items),
		Generation: p.generation,
	}
}

func (p *Paginator[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

func (p *Paginator[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Paginator[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Empty reports the terminal empty state: exhausted with nothing loaded.
func (p *Paginator[T]) Empty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.hasMore && len(p.items) == 0
}
