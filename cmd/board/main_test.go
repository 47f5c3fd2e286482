package main

import (
	"Agora/internal/mockapi"
	"Agora/pkg/api"
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	mock *mockapi.Server
	url  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mock := mockapi.New()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return &harness{mock: mock, url: srv.URL}
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newCLI()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	base := []string{"board", "--config", "testdata/missing.yaml", "--api", h.url}
	err := app.Run(append(base, args...))
	return stdout.String(), stderr.String(), err
}

func TestPosts(t *testing.T) {
	h := newHarness(t)
	u := h.mock.AddUser("kim@agora.dev", "Passw0rd!", "kim")
	for i := 0; i < 3; i++ {
		h.mock.AddPost(u.UserID, "hello", "world")
	}

	stdout, _, err := h.run(t, "posts", "--size", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#4 hello")
	assert.Contains(t, stdout, "#3 hello")
	assert.NotContains(t, stdout, "#2 hello")

	stdout, _, err = h.run(t, "posts", "--size", "2", "--pages", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#2 hello")
	assert.Contains(t, stdout, "-- all posts loaded")
}

func TestPostShow(t *testing.T) {
	h := newHarness(t)
	u := h.mock.AddUser("kim@agora.dev", "Passw0rd!", "kim")
	p := h.mock.AddPost(u.UserID, "hello", "first\nhttp://cdn/a.png")
	h.mock.AddComment(p.PostID, u.UserID, "nice")

	stdout, _, err := h.run(t, "post", "show", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#2 hello")
	assert.Contains(t, stdout, "[image] http://cdn/a.png")
	assert.Contains(t, stdout, "nice")
	assert.Contains(t, stdout, "all comments loaded")

	_, _, err = h.run(t, "post", "show", "abc")
	assert.EqualError(t, err, `invalid id "abc"`)

	_, _, err = h.run(t, "post", "show", "99")
	assert.EqualError(t, err, "post not found")
}

func TestLoginAndSignup(t *testing.T) {
	h := newHarness(t)
	h.mock.AddUser("kim@agora.dev", "Passw0rd!", "kim")

	stdout, stderr, err := h.run(t, "login", "--email", "kim@agora.dev", "--password", "Passw0rd!")
	require.NoError(t, err)
	assert.Contains(t, stdout, "new session: ")
	assert.Contains(t, stdout, "logged in")
	assert.Contains(t, stderr, "session store is memory")

	_, _, err = h.run(t, "login", "--email", "kim@agora.dev", "--password", "Wrong000!")
	assert.EqualError(t, err, "email or password does not match")

	stdout, _, err = h.run(t, "signup", "--email", "lee@agora.dev", "--password", "Passw0rd!",
		"--confirm", "Passw0rd!", "--nickname", "lee")
	require.NoError(t, err)
	assert.Contains(t, stdout, "account created for lee")

	_, _, err = h.run(t, "signup", "--email", "lee@agora.dev", "--password", "Passw0rd!",
		"--confirm", "Passw0rd!", "--nickname", "lee2")
	assert.EqualError(t, err, "this email is already registered")
}

func TestAnonymous(t *testing.T) {
	h := newHarness(t)
	u := h.mock.AddUser("kim@agora.dev", "Passw0rd!", "kim")
	h.mock.AddPost(u.UserID, "hello", "world")

	stdout, _, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "not logged in\n", stdout)

	_, stderr, err := h.run(t, "like", "2")
	assert.EqualError(t, err, "login required")
	assert.Contains(t, stderr, "run `board login` again")

	_, stderr, err = h.run(t, "post", "create", "--title", "t", "--content", "c")
	assert.EqualError(t, err, api.MsgUnauthorized)
	assert.Contains(t, stderr, "run `board login` again")
}
