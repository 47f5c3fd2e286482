// Package session holds the bearer credential of one board session.
//
// A Credential is created when a session starts and is handed to the
// request layer explicitly. When it is bound to a Store the token follows
// the session ID: a client that comes back with the same ID sees the
// token again, a different ID never does.
package session

import (
	"Agora/pkg/log"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoSession = errors.New("session: empty session id")

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

type Credential struct {
	mu    sync.RWMutex
	id    string
	token string
	store Store
}

// New returns a credential cell that lives only in memory.
func New() *Credential {
	return &Credential{}
}

// Open binds a credential to id and restores any token the store holds for it.
func Open(ctx context.Context, store Store, id string) (*Credential, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	c := &Credential{id: id, store: store}
	if store == nil {
		return c, nil
	}
	token, ok, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		c.token = token
	}
	return c, nil
}

// ID is the session identifier, empty for memory-only credentials.
func (c *Credential) ID() string {
	return c.id
}

func (c *Credential) Set(ctx context.Context, token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	return c.store.Save(ctx, c.id, token)
}

func (c *Credential) Get() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

// Clear drops the token. Repeated calls are harmless.
func (c *Credential) Clear(ctx context.Context) {
	c.mu.Lock()
	had := c.token != ""
	c.token = ""
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Delete(ctx, c.id); err != nil {
		log.L.Warn("clear session token", zap.String("session", c.id), zap.Error(err))
		return
	}
	if had {
		log.L.Info("session token cleared", zap.String("session", c.id))
	}
}

func (c *Credential) IsActive() bool {
	_, ok := c.Get()
	return ok
}
