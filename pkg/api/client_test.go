package api_test

import (
	"Agora/internal/mockapi"
	"Agora/pkg/api"
	"Agora/pkg/session"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mock   *mockapi.Server
	srv    *httptest.Server
	cred   *session.Credential
	client *api.Client
	user   api.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	mock := mockapi.New()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)

	cred := session.New()
	f := &fixture{
		mock:   mock,
		srv:    srv,
		cred:   cred,
		client: api.New(srv.URL+"/", cred),
		user:   mock.AddUser("kim@agora.dev", "Passw0rd!", "kim"),
	}
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.cred.Set(context.Background(), f.mock.Token(f.user.UserID)))
}

func TestLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	token, err := f.client.Login(ctx, "kim@agora.dev", "Passw0rd!")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, f.cred.IsActive(), "login must not store the token by itself")

	_, err = f.client.Login(ctx, "kim@agora.dev", "wrong")
	require.Error(t, err)
	assert.Equal(t, api.KindHTTP, api.KindOf(err))
	assert.Equal(t, "email or password does not match", err.Error())

	f.mock.RespondRaw(http.MethodPost, mockapi.RouteAuth, http.StatusOK, `{"data":{}}`)
	_, err = f.client.Login(ctx, "kim@agora.dev", "Passw0rd!")
	assert.Equal(t, api.KindMalformed, api.KindOf(err))
}

func TestBearerHeader(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.client.Me(ctx)
	assert.True(t, api.IsUnauthorized(err))

	f.login(t)
	me, err := f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kim", me.Nickname)
	assert.Equal(t, f.user.UserID, me.UserID)
}

func TestUnauthorizedClearsCredential(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.login(t)

	f.mock.RotateSecret()
	_, err := f.client.LikePost(ctx, 1)
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, api.MsgUnauthorized, err.Error())
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
	assert.False(t, f.cred.IsActive())
}

func TestHTTPErrorMessages(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.mock.FailNext(http.MethodGet, mockapi.RoutePosts, http.StatusServiceUnavailable, "maintenance window")
	_, err := f.client.ListPosts(ctx, "", 0)
	assert.Equal(t, api.KindHTTP, api.KindOf(err))
	assert.Equal(t, "maintenance window", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, api.StatusOf(err))

	f.mock.RespondRaw(http.MethodGet, mockapi.RoutePosts, http.StatusBadGateway, "<html>bad gateway</html>")
	_, err = f.client.ListPosts(ctx, "", 0)
	assert.Equal(t, "HTTP error 502", err.Error())

	f.mock.RespondRaw(http.MethodGet, mockapi.RoutePosts, http.StatusInternalServerError, "")
	_, err = f.client.ListPosts(ctx, "", 0)
	assert.Equal(t, "HTTP error 500", err.Error())

	_, err = f.client.GetPost(ctx, 999)
	assert.Equal(t, "post not found", err.Error())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := api.New(url, session.New())
	_, err := client.ListPosts(context.Background(), "", 0)
	require.Error(t, err)
	assert.Equal(t, api.KindTransport, api.KindOf(err))
	assert.Contains(t, err.Error(), "network error")
}

func TestNilCredential(t *testing.T) {
	f := setup(t)
	client := api.New(f.srv.URL, nil)
	page, err := client.ListPosts(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", api.KindTransport.String())
	assert.Equal(t, "unauthorized", api.KindUnauthorized.String())
	assert.Equal(t, "http", api.KindHTTP.String())
	assert.Equal(t, "malformed", api.KindMalformed.String())
	assert.Equal(t, "unknown", api.Kind(0).String())
	assert.Equal(t, api.Kind(0), api.KindOf(assert.AnError))
}
