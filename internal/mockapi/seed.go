package mockapi

import "fmt"

// Demo credentials created by Seed.
const (
	DemoEmail    = "demo@agora.dev"
	DemoPassword = "Demo1234!"
)

// Seed fills the server with a demo account, posts and comments.
func (s *Server) Seed(posts, commentsPerPost int) {
	demo := s.AddUser(DemoEmail, DemoPassword, "demo")
	other := s.AddUser("guest@agora.dev", "Guest1234!", "guest")
	for i := 1; i <= posts; i++ {
		author := demo.UserID
		if i%2 == 0 {
			author = other.UserID
		}
		p := s.AddPost(author, fmt.Sprintf("Post #%d", i), fmt.Sprintf("Body of post %d.\nSecond paragraph.", i))
		for j := 1; j <= commentsPerPost; j++ {
			s.AddComment(p.PostID, other.UserID, fmt.Sprintf("comment %d on post %d", j, i))
		}
	}
}
