package mockapi

import (
	"Agora/pkg/api"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerUsers(r gin.IRouter, authorize gin.HandlerFunc) {
	r.POST("/auth", context.Wrap(s.login))
	r.DELETE("/auth", authorize, context.Wrap(s.logout))
	r.POST("/users", context.Wrap(s.signup))
	r.GET("/users/me", authorize, context.Wrap(s.me))
	r.PATCH("/users/me", authorize, context.Wrap(s.updateMe))
	r.DELETE("/users/me", authorize, context.Wrap(s.deleteMe))
	r.GET("/users/email", context.Wrap(s.checkEmail))
	r.GET("/users/nickname", context.Wrap(s.checkNickname))
}

// AddUser registers an account and returns its public profile.
func (s *Server) AddUser(email, password, nickname string) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(email, password, nickname, "")
}

func (s *Server) addUser(email, password, nickname, image string) api.User {
	u := &account{
		User: api.User{
			UserID:          s.id(),
			Email:           email,
			Nickname:        nickname,
			ProfileImageURL: image,
		},
		password: password,
	}
	s.users = append(s.users, u)
	return u.User
}

func (s *Server) findUser(match func(*account) bool) *account {
	for _, u := range s.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (s *Server) userByID(id int64) *account {
	return s.findUser(func(u *account) bool { return u.UserID == id })
}

func (s *Server) caller(c *gin.Context) (*account, error) {
	uid, err := context.GetUserID(c)
	if err != nil {
		return nil, response.NewError(http.StatusUnauthorized, "authorization required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByID(uid)
	if u == nil {
		return nil, response.NewError(http.StatusUnauthorized, "account no longer exists")
	}
	return u, nil
}

func (s *Server) login(c *gin.Context) error {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	u := s.findUser(func(u *account) bool {
		return strings.EqualFold(u.Email, req.Email) && u.password == req.Password
	})
	s.mu.Unlock()
	if u == nil {
		return response.NewError(http.StatusBadRequest, "email or password does not match")
	}

	response.Success(c, gin.H{"accessToken": s.Token(u.UserID)})
	return nil
}

func (s *Server) logout(c *gin.Context) error {
	response.NoContent(c)
	return nil
}

func (s *Server) signup(c *gin.Context) error {
	var req api.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.Nickname == "" {
		return response.NewError(http.StatusBadRequest, "email, password and nickname are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findUser(func(u *account) bool { return strings.EqualFold(u.Email, req.Email) }) != nil {
		return response.NewError(http.StatusConflict, "email already registered")
	}
	if s.findUser(func(u *account) bool { return u.Nickname == req.Nickname }) != nil {
		return response.NewError(http.StatusConflict, "nickname already taken")
	}
	user := s.addUser(req.Email, req.Password, req.Nickname, req.ProfileImageURL)
	response.Created(c, user)
	return nil
}

func (s *Server) me(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	response.Success(c, u.User)
	return nil
}

func (s *Server) updateMe(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	var req api.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if req.Nickname != "" {
		u.Nickname = req.Nickname
	}
	if req.ProfileImageURL != "" {
		u.ProfileImageURL = req.ProfileImageURL
	}
	response.Success(c, u.User)
	return nil
}

func (s *Server) deleteMe(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.users {
		if other == u {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	response.NoContent(c)
	return nil
}

func (s *Server) checkEmail(c *gin.Context) error {
	email := c.Query("email")
	if email == "" {
		return response.NewError(http.StatusBadRequest, "email is required")
	}
	s.mu.Lock()
	taken := s.findUser(func(u *account) bool { return strings.EqualFold(u.Email, email) }) != nil
	s.mu.Unlock()
	response.Success(c, !taken)
	return nil
}

func (s *Server) checkNickname(c *gin.Context) error {
	nickname := c.Query("nickname")
	if nickname == "" {
		return response.NewError(http.StatusBadRequest, "nickname is required")
	}
	s.mu.Lock()
	taken := s.findUser(func(u *account) bool { return u.Nickname == nickname }) != nil
	s.mu.Unlock()
	response.Success(c, !taken)
	return nil
}
