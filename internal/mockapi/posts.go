package mockapi

import (
	"Agora/pkg/api"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

func (s *Server) registerPosts(r gin.IRouter, authorize, identify gin.HandlerFunc) {
	r.GET("/posts", identify, context.Wrap(s.listPosts))
	r.POST("/posts", authorize, context.Wrap(s.createPost))
	r.GET("/posts/:id", identify, context.Wrap(s.getPost))
	r.PATCH("/posts/:id", authorize, context.Wrap(s.updatePost))
	r.DELETE("/posts/:id", authorize, context.Wrap(s.deletePost))
	r.POST("/posts/:id/like", authorize, context.Wrap(s.like))
	r.DELETE("/posts/:id/like", authorize, context.Wrap(s.unlike))
}

// AddPost stores a post written by authorID.
func (s *Server) AddPost(authorID int64, title, content string) api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPost(authorID, api.PostRequest{Title: title, Content: content})
}

func (s *Server) addPost(authorID int64, req api.PostRequest) api.Post {
	var author api.Author
	if u := s.userByID(authorID); u != nil {
		author = authorOf(u)
	}
	rec := &record{
		post: api.Post{
			PostID:    s.id(),
			Title:     req.Title,
			Content:   req.Content,
			Images:    req.Images,
			CreatedAt: s.now().UTC().Truncate(time.Second),
			User:      author,
		},
		likes: make(map[int64]bool),
	}
	s.posts = append(s.posts, rec)
	return rec.post
}

// LikeCount is the number of likes the backend holds for postID.
func (s *Server) LikeCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec := s.record(postID); rec != nil {
		return len(rec.likes)
	}
	return 0
}

// SetLikes replaces the likes of postID with the given users.
func (s *Server) SetLikes(postID int64, userIDs ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(postID)
	if rec == nil {
		return
	}
	rec.likes = make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		rec.likes[id] = true
	}
}

func authorOf(u *account) api.Author {
	return api.Author{UserID: u.UserID, Nickname: u.Nickname, ProfileImageURL: u.ProfileImageURL}
}

func (s *Server) record(postID int64) *record {
	for _, rec := range s.posts {
		if rec.post.PostID == postID {
			return rec
		}
	}
	return nil
}

// view renders the post as seen by uid (0 for anonymous). Caller holds mu.
func (s *Server) view(rec *record, uid int64) api.Post {
	p := rec.post
	p.LikeCount = len(rec.likes)
	p.CommentCount = len(s.comments[p.PostID])
	p.IsLiked = rec.likes[uid]
	p.IsAuthor = uid != 0 && p.User.UserID == uid
	return p
}

func optionalUID(c *gin.Context) int64 {
	uid, _ := context.GetUserID(c)
	return uid
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

// listParams reads cursor and size; an empty cursor is the first page.
func listParams(c *gin.Context) (int64, int, error) {
	var cursor int64
	if raw := c.Query("cursor"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, response.NewError(http.StatusBadRequest, "cursor is invalid")
		}
		cursor = v
	}
	size := api.DefaultPageSize
	if raw := c.Query("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= maxPageSize {
			size = v
		}
	}
	return cursor, size, nil
}

func cursorBlock(hasNext bool, last int64) gin.H {
	if !hasNext {
		return gin.H{"nextCursor": nil, "hasNext": false}
	}
	return gin.H{"nextCursor": last, "hasNext": true}
}

// listPosts pages newest first; the cursor is the last post ID returned.
func (s *Server) listPosts(c *gin.Context) error {
	cursor, size, err := listParams(c)
	if err != nil {
		return err
	}
	uid := optionalUID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]api.PostSummary, 0, size)
	hasNext := false
	for i := len(s.posts) - 1; i >= 0; i-- {
		rec := s.posts[i]
		if cursor != 0 && rec.post.PostID >= cursor {
			continue
		}
		if len(list) == size {
			hasNext = true
			break
		}
		p := s.view(rec, uid)
		list = append(list, api.PostSummary{
			PostID:       p.PostID,
			Title:        p.Title,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			ViewCount:    p.ViewCount,
			CreatedAt:    p.CreatedAt,
			Author:       p.User,
		})
	}
	var last int64
	if len(list) > 0 {
		last = list[len(list)-1].PostID
	}
	response.Success(c, gin.H{"postList": list, "cursor": cursorBlock(hasNext, last)})
	return nil
}

func (s *Server) getPost(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid := optionalUID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(id)
	if rec == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	rec.post.ViewCount++
	response.Success(c, s.view(rec, uid))
	return nil
}

func bindPost(c *gin.Context) (api.PostRequest, error) {
	var req api.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, response.NewError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return req, response.NewError(http.StatusBadRequest, "title and content are required")
	}
	return req, nil
}

func (s *Server) createPost(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	req, err := bindPost(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.addPost(u.UserID, req)
	response.Created(c, s.view(s.record(p.PostID), u.UserID))
	return nil
}

// owned returns the post if uid wrote it. Caller holds mu.
func (s *Server) owned(id, uid int64) (*record, error) {
	rec := s.record(id)
	if rec == nil {
		return nil, response.NewError(http.StatusNotFound, "post not found")
	}
	if rec.post.User.UserID != uid {
		return nil, response.NewError(http.StatusForbidden, "only the author can change this post")
	}
	return rec, nil
}

func (s *Server) updatePost(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req, err := bindPost(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.owned(id, u.UserID)
	if err != nil {
		return err
	}
	rec.post.Title = req.Title
	rec.post.Content = req.Content
	rec.post.Images = req.Images
	response.Success(c, s.view(rec, u.UserID))
	return nil
}

func (s *Server) deletePost(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.owned(id, u.UserID); err != nil {
		return err
	}
	for i, rec := range s.posts {
		if rec.post.PostID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	delete(s.comments, id)
	response.NoContent(c)
	return nil
}

func (s *Server) like(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(id)
	if rec == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	rec.likes[u.UserID] = true
	response.Success(c, gin.H{"likeCount": len(rec.likes), "isLiked": true})
	return nil
}

func (s *Server) unlike(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(id)
	if rec == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	delete(rec.likes, u.UserID)
	var data any
	if s.echo {
		data = gin.H{"likeCount": len(rec.likes)}
	}
	response.Success(c, data)
	return nil
}
