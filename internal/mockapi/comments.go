package mockapi

import (
	"Agora/pkg/api"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerComments(r gin.IRouter, authorize, identify gin.HandlerFunc) {
	r.GET("/posts/:id/comments", identify, context.Wrap(s.listComments))
	r.POST("/posts/:id/comments", authorize, context.Wrap(s.createComment))
	r.PATCH("/posts/:id/comments/:commentId", authorize, context.Wrap(s.updateComment))
	r.DELETE("/posts/:id/comments/:commentId", authorize, context.Wrap(s.deleteComment))
}

// AddComment stores a comment by authorID under postID.
func (s *Server) AddComment(postID, authorID int64, content string) api.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addComment(postID, authorID, content)
}

func (s *Server) addComment(postID, authorID int64, content string) api.Comment {
	var author api.Author
	if u := s.userByID(authorID); u != nil {
		author = authorOf(u)
	}
	cm := &api.Comment{
		CommentID: s.id(),
		Content:   content,
		CreatedAt: s.now().UTC().Truncate(time.Second),
		User:      author,
	}
	s.comments[postID] = append(s.comments[postID], cm)
	return *cm
}

// CommentCount is the number of comments the backend holds for postID.
func (s *Server) CommentCount(postID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments[postID])
}

func (s *Server) comment(postID, commentID int64) (*api.Comment, int) {
	for i, cm := range s.comments[postID] {
		if cm.CommentID == commentID {
			return cm, i
		}
	}
	return nil, -1
}

// listComments pages oldest first; the cursor is the last comment ID returned.
func (s *Server) listComments(c *gin.Context) error {
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cursor, size, err := listParams(c)
	if err != nil {
		return err
	}
	uid := optionalUID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record(postID) == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	all := s.comments[postID]
	list := make([]api.Comment, 0, size)
	hasNext := false
	for _, cm := range all {
		if cm.CommentID <= cursor {
			continue
		}
		if len(list) == size {
			hasNext = true
			break
		}
		view := *cm
		view.IsAuthor = uid != 0 && cm.User.UserID == uid
		list = append(list, view)
	}
	var last int64
	if len(list) > 0 {
		last = list[len(list)-1].CommentID
	}
	response.Success(c, gin.H{
		"commentList": list,
		"cursor":      cursorBlock(hasNext, last),
		"pagination":  gin.H{"totalElements": len(all)},
	})
	return nil
}

func bindComment(c *gin.Context) (api.CommentRequest, error) {
	var req api.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		return req, response.NewError(http.StatusBadRequest, "content is required")
	}
	return req, nil
}

func (s *Server) createComment(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	req, err := bindComment(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record(postID) == nil {
		return response.NewError(http.StatusNotFound, "post not found")
	}
	cm := s.addComment(postID, u.UserID, req.Content)
	cm.IsAuthor = true
	response.Created(c, cm)
	return nil
}

// ownedComment returns the comment if uid wrote it. Caller holds mu.
func (s *Server) ownedComment(postID, commentID, uid int64) (*api.Comment, int, error) {
	cm, i := s.comment(postID, commentID)
	if cm == nil {
		return nil, -1, response.NewError(http.StatusNotFound, "comment not found")
	}
	if cm.User.UserID != uid {
		return nil, -1, response.NewError(http.StatusForbidden, "only the author can change this comment")
	}
	return cm, i, nil
}

func (s *Server) updateComment(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}
	req, err := bindComment(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cm, _, err := s.ownedComment(postID, commentID, u.UserID)
	if err != nil {
		return err
	}
	cm.Content = req.Content
	view := *cm
	view.IsAuthor = true
	response.Success(c, view)
	return nil
}

func (s *Server) deleteComment(c *gin.Context) error {
	u, err := s.caller(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, i, err := s.ownedComment(postID, commentID, u.UserID)
	if err != nil {
		return err
	}
	list := s.comments[postID]
	s.comments[postID] = append(list[:i], list[i+1:]...)
	response.NoContent(c)
	return nil
}
