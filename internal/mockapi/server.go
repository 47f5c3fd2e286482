// Package mockapi is an in-memory implementation of the board backend. It
// backs the client tests and the web server's mock-api command, and lets a
// caller script failures per route.
package mockapi

import (
	"Agora/middleware"
	"Agora/pkg/api"
	"Agora/pkg/jwt"
	"Agora/pkg/response"
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Route patterns as registered, for FailNext and Calls.
const (
	RouteAuth     = "/api/auth"
	RouteUsers    = "/api/users"
	RouteMe       = "/api/users/me"
	RouteEmail    = "/api/users/email"
	RouteNickname = "/api/users/nickname"
	RoutePosts    = "/api/posts"
	RoutePost     = "/api/posts/:id"
	RouteLike     = "/api/posts/:id/like"
	RouteComments = "/api/posts/:id/comments"
	RouteComment  = "/api/posts/:id/comments/:commentId"
)

type account struct {
	api.User
	password string
}

type record struct {
	post  api.Post
	likes map[int64]bool
}

type failure struct {
	status int
	body   string
	json   bool
}

type Server struct {
	mu       sync.Mutex
	secret   []byte
	nextID   int64
	users    []*account
	posts    []*record
	comments map[int64][]*api.Comment
	failures map[string][]failure
	calls    map[string]int
	echo     bool
	now      func() time.Time

	engine *gin.Engine
}

func New() *Server {
	s := &Server{
		secret:   newSecret(),
		comments: make(map[int64][]*api.Comment),
		failures: make(map[string][]failure),
		calls:    make(map[string]int),
		now:      time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func newSecret() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

func (s *Server) currentSecret() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.secret
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.script())

	authorize := middleware.Auth(s.currentSecret)
	identify := middleware.OptionalAuth(s.currentSecret)

	a := r.Group("/api")
	s.registerUsers(a, authorize)
	s.registerPosts(a, authorize, identify)
	s.registerComments(a, authorize, identify)
	return r
}

// script counts calls and replays scripted failures before any handler runs.
func (s *Server) script() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		s.mu.Lock()
		s.calls[key]++
		var f *failure
		if queue := s.failures[key]; len(queue) > 0 {
			f = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if f == nil {
			c.Next()
			return
		}
		if f.json {
			response.Abort(c, f.status, f.body)
			return
		}
		c.Data(f.status, "text/html; charset=utf-8", []byte(f.body))
		c.Abort()
	}
}

// FailNext makes the next call to method+route answer status with a JSON
// message body.
func (s *Server) FailNext(method, route string, status int, message string) {
	s.push(method, route, failure{status: status, body: message, json: true})
}

// RespondRaw makes the next call to method+route answer status with body
// exactly as given.
func (s *Server) RespondRaw(method, route string, status int, body string) {
	s.push(method, route, failure{status: status, body: body})
}

func (s *Server) push(method, route string, f failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + route
	s.failures[key] = append(s.failures[key], f)
}

// Calls is the number of requests that matched method+route.
func (s *Server) Calls(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+route]
}

// RotateSecret invalidates every issued token.
func (s *Server) RotateSecret() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secret = newSecret()
}

// EchoUnlikeCount makes unlike confirmations carry the new count.
func (s *Server) EchoUnlikeCount(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echo = on
}

// Token issues an access token for userID.
func (s *Server) Token(userID int64) string {
	token, err := jwt.GenerateToken(s.currentSecret(), userID, jwt.TypeAccess, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}
