package config

import "time"

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Session controls where a session's bearer credential lives.
type Session struct {
	Store     string        `json:"store" yaml:"store"`
	TTL       time.Duration `json:"ttl" yaml:"ttl"`
	KeyPrefix string        `json:"key_prefix" yaml:"key_prefix"`
}

func (s *Session) fill() {
	if s.Store == "" {
		s.Store = SessionStoreMemory
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "agora:session:"
	}
}
