package board

import (
	"Agora/pkg/api"
	"context"
)

// SavePost validates the form and creates a post, or updates postID when it
// is non-zero.
func SavePost(ctx context.Context, client *api.Client, postID int64, form PostForm) (*api.Post, error) {
	form.normalize()
	if err := Validate(form); err != nil {
		return nil, err
	}
	req := api.PostRequest{Title: form.Title, Content: form.Content, Images: form.Images}
	if postID == 0 {
		return client.CreatePost(ctx, req)
	}
	return client.UpdatePost(ctx, postID, req)
}
