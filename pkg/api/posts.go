package api

import (
	"Agora/pkg/paging"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

const DefaultPageSize = 20

type listQuery struct {
	Cursor string `url:"cursor,omitempty"`
	Size   int    `url:"size"`
}

func (c *Client) ListPosts(ctx context.Context, cursor string, size int) (paging.Page[PostSummary], error) {
	resp, err := c.request(ctx, http.MethodGet, "/api/posts", listQuery{Cursor: cursor, Size: pageSize(size)}, nil)
	if err != nil {
		return paging.Page[PostSummary]{}, err
	}
	return decodePage[PostSummary](resp, "postList", "post list")
}

// PostFetcher adapts ListPosts to a paginator.
func (c *Client) PostFetcher(size int) paging.Fetcher[PostSummary] {
	return func(ctx context.Context, cursor string) (paging.Page[PostSummary], error) {
		return c.ListPosts(ctx, cursor, size)
	}
}

func (c *Client) GetPost(ctx context.Context, postID int64) (*Post, error) {
	resp, err := c.request(ctx, http.MethodGet, postPath(postID), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodePost(resp, "post detail")
}

func (c *Client) CreatePost(ctx context.Context, req PostRequest) (*Post, error) {
	resp, err := c.request(ctx, http.MethodPost, "/api/posts", nil, req)
	if err != nil {
		return nil, err
	}
	return decodePost(resp, "create post")
}

func (c *Client) UpdatePost(ctx context.Context, postID int64, req PostRequest) (*Post, error) {
	resp, err := c.request(ctx, http.MethodPatch, postPath(postID), nil, req)
	if err != nil {
		return nil, err
	}
	return decodePost(resp, "update post")
}

func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	_, err := c.request(ctx, http.MethodDelete, postPath(postID), nil, nil)
	return err
}

// LikePost requires both likeCount and isLiked in the confirmation.
func (c *Client) LikePost(ctx context.Context, postID int64) (LikeResult, error) {
	resp, err := c.request(ctx, http.MethodPost, postPath(postID)+"/like", nil, nil)
	if err != nil {
		return LikeResult{}, err
	}
	count := resp.get("data.likeCount")
	liked := resp.get("data.isLiked")
	if count.Type != gjson.Number || !liked.IsBool() {
		return LikeResult{}, malformed(resp.status, "like")
	}
	return LikeResult{LikeCount: int(count.Int()), IsLiked: liked.Bool()}, nil
}

// UnlikePost requires status "success". The count is optional.
func (c *Client) UnlikePost(ctx context.Context, postID int64) (UnlikeResult, error) {
	resp, err := c.request(ctx, http.MethodDelete, postPath(postID)+"/like", nil, nil)
	if err != nil {
		return UnlikeResult{}, err
	}
	if resp.get("status").String() != "success" {
		return UnlikeResult{}, malformed(resp.status, "unlike")
	}
	var result UnlikeResult
	if count := resp.get("data.likeCount"); count.Type == gjson.Number {
		n := int(count.Int())
		result.LikeCount = &n
	}
	return result, nil
}

func postPath(postID int64) string {
	return fmt.Sprintf("/api/posts/%d", postID)
}

func pageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	return size
}

func decodePost(resp *response, what string) (*Post, error) {
	if resp.get("data.postId").Type != gjson.Number {
		return nil, malformed(resp.status, what)
	}
	var post Post
	if err := resp.decode("data", &post); err != nil {
		return nil, malformed(resp.status, what)
	}
	return &post, nil
}

// decodePage reads the shared list envelope:
// { data: { <listKey>: [...], cursor: { nextCursor, hasNext } } }
func decodePage[T any](resp *response, listKey, what string) (paging.Page[T], error) {
	list := resp.get("data." + listKey)
	hasNext := resp.get("data.cursor.hasNext")
	if !list.IsArray() || !hasNext.IsBool() {
		return paging.Page[T]{}, malformed(resp.status, what)
	}

	items := make([]T, 0)
	if err := json.Unmarshal([]byte(list.Raw), &items); err != nil {
		return paging.Page[T]{}, malformed(resp.status, what)
	}

	page := paging.Page[T]{Items: items, HasNext: hasNext.Bool()}
	if next := resp.get("data.cursor.nextCursor"); next.Exists() && next.Type != gjson.Null {
		page.NextCursor = next.String()
	}
	// hasNext without a cursor would fetch the first page again.
	if page.HasNext && page.NextCursor == "" {
		return paging.Page[T]{}, malformed(resp.status, what)
	}
	return page, nil
}
