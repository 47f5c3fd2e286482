package session

import (
	"Agora/config"
	"Agora/pkg/client"
	"context"
	"fmt"
	"time"
)

// ID names the session a credential is bound to. Empty means memory-only.
type ID string

// ProvideStore picks the store named by the session config.
func ProvideStore(conf *config.Config) (Store, func(), error) {
	switch conf.Session.Store {
	case config.SessionStoreMemory, "":
		return NewMemoryStore(), func() {}, nil
	case config.SessionStoreRedis:
		rdb, err := client.NewRedisClient(conf)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(rdb, conf.Session.KeyPrefix, conf.Session.TTL), func() { _ = rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("session: unknown store %q", conf.Session.Store)
	}
}

// ProvideCredential opens the credential of id, restoring a stored token.
func ProvideCredential(store Store, id ID) (*Credential, error) {
	if id == "" {
		return New(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return Open(ctx, store, string(id))
}
