package api

import (
	"Agora/pkg/paging"
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// CommentPage is a comment list page. Total is set when the server reports
// pagination.totalElements.
type CommentPage struct {
	paging.Page[Comment]
	Total *int
}

func (c *Client) ListComments(ctx context.Context, postID int64, cursor string, size int) (CommentPage, error) {
	resp, err := c.request(ctx, http.MethodGet, commentsPath(postID), listQuery{Cursor: cursor, Size: pageSize(size)}, nil)
	if err != nil {
		return CommentPage{}, err
	}
	page, err := decodePage[Comment](resp, "commentList", "comment list")
	if err != nil {
		return CommentPage{}, err
	}
	out := CommentPage{Page: page}
	if total := resp.get("data.pagination.totalElements"); total.Type == gjson.Number {
		n := int(total.Int())
		out.Total = &n
	}
	return out, nil
}

func (c *Client) CreateComment(ctx context.Context, postID int64, content string) (*Comment, error) {
	resp, err := c.request(ctx, http.MethodPost, commentsPath(postID), nil, CommentRequest{Content: content})
	if err != nil {
		return nil, err
	}
	if resp.get("data.commentId").Type != gjson.Number {
		return nil, malformed(resp.status, "create comment")
	}
	var comment Comment
	if err := resp.decode("data", &comment); err != nil {
		return nil, malformed(resp.status, "create comment")
	}
	return &comment, nil
}

// UpdateComment returns the content the server stored.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID int64, content string) (string, error) {
	resp, err := c.request(ctx, http.MethodPatch, commentPath(postID, commentID), nil, CommentRequest{Content: content})
	if err != nil {
		return "", err
	}
	stored := resp.get("data.content")
	if stored.Type != gjson.String {
		return "", malformed(resp.status, "update comment")
	}
	return stored.String(), nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID int64) error {
	_, err := c.request(ctx, http.MethodDelete, commentPath(postID, commentID), nil, nil)
	return err
}

func commentsPath(postID int64) string {
	return fmt.Sprintf("/api/posts/%d/comments", postID)
}

func commentPath(postID, commentID int64) string {
	return fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
}
