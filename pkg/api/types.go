package api

import "time"

// Author is the user block embedded in posts and comments.
type Author struct {
	UserID          int64  `json:"userId"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type User struct {
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type UpdateUserRequest struct {
	Nickname        string `json:"nickname,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// PostSummary is one entry of the post list.
type PostSummary struct {
	PostID       int64     `json:"postId"`
	Title        string    `json:"title"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	ViewCount    int       `json:"viewCount"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       Author    `json:"author"`
}

type Post struct {
	PostID       int64     `json:"postId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Images       []string  `json:"images,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	ViewCount    int       `json:"viewCount"`
	IsLiked      bool      `json:"isLiked"`
	IsAuthor     bool      `json:"isAuthor"`
	CreatedAt    time.Time `json:"createdAt"`
	User         Author    `json:"user"`
}

type PostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type Comment struct {
	CommentID int64     `json:"commentId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	User      Author    `json:"user"`
	IsAuthor  bool      `json:"isAuthor"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

// LikeResult is the confirmation of a like: the server's count and flag.
type LikeResult struct {
	LikeCount int
	IsLiked   bool
}

// UnlikeResult is the confirmation of an unlike. LikeCount is nil unless the
// server echoed a count.
type UnlikeResult struct {
	LikeCount *int
}
