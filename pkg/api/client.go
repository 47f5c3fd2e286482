// Package api is the request layer of the board backend.
//
// Every call carries the session credential as a bearer token when one is
// active. Failures of any sort come back as *Error; a 401 from any endpoint
// also clears the credential.
package api

import (
	"Agora/config"
	"Agora/pkg/log"
	"Agora/pkg/session"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	http    *http.Client
	cred    *session.Credential
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, cred *session.Credential, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		cred:    cred,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClient builds a client from the backend section of the config.
func NewClient(conf *config.Config, cred *session.Credential) *Client {
	return New(conf.Backend.BaseURL, cred, WithHTTPClient(&http.Client{Timeout: conf.Backend.Timeout}))
}

// Credential is the session the client authenticates with.
func (c *Client) Credential() *session.Credential {
	return c.cred
}

// response is a successful reply; body is nil for 204.
type response struct {
	status int
	body   []byte
}

func (r *response) get(path string) gjson.Result {
	return gjson.GetBytes(r.body, path)
}

func (r *response) decode(path string, out any) error {
	raw := r.get(path).Raw
	if raw == "" {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal([]byte(raw), out)
}

func (c *Client) request(ctx context.Context, method, path string, params, body any) (*response, error) {
	url := c.baseURL + path
	if params != nil {
		values, err := query.Values(params)
		if err != nil {
			return nil, transportError(err)
		}
		if encoded := values.Encode(); encoded != "" {
			url += "?" + encoded
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, transportError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cred != nil {
		if token, ok := c.cred.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.L.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.L.Info("api unauthorized, clearing credential", zap.String("method", method), zap.String("path", path))
		if c.cred != nil {
			c.cred.Clear(ctx)
		}
		return nil, unauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if gjson.ValidBytes(data) {
			message = gjson.GetBytes(data, "message").String()
		}
		log.L.Info("api error response", zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode), zap.String("message", message))
		return nil, httpError(resp.StatusCode, message)
	}

	if resp.StatusCode == http.StatusNoContent {
		return &response{status: resp.StatusCode}, nil
	}
	if len(data) > 0 && !gjson.ValidBytes(data) {
		return nil, malformed(resp.StatusCode, method+" "+path)
	}
	return &response{status: resp.StatusCode, body: data}, nil
}
