package config

import "time"

// Static describes the directory served by the web server.
type Static struct {
	Root  string `json:"root" yaml:"root"`
	Index string `json:"index" yaml:"index"`
}

func (s *Static) fill() {
	if s.Root == "" {
		s.Root = "public"
	}
	if s.Index == "" {
		s.Index = "/login.html"
	}
}

// Backend is the REST API the pages and the board client talk to.
type Backend struct {
	BaseURL  string        `json:"base_url" yaml:"base_url"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
	Proxy    bool          `json:"proxy" yaml:"proxy"`
	PageSize int           `json:"page_size" yaml:"page_size"`
}

func (b *Backend) fill() {
	if b.BaseURL == "" {
		b.BaseURL = "http://localhost:8080"
	}
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
	if b.PageSize <= 0 {
		b.PageSize = 20
	}
}
