package main

import (
	"Agora/internal/board"
	"Agora/pkg/api"
	"fmt"
	"io"
)

func printHeader(w io.Writer, h board.ProfileHeader, user *api.User) {
	if !h.LoggedIn {
		fmt.Fprintln(w, "not logged in")
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", user.Nickname, user.Email)
	fmt.Fprintf(w, "avatar: %s\n", h.ImageURL)
}

func printPostSummary(w io.Writer, p api.PostSummary) {
	fmt.Fprintf(w, "#%d %s\n", p.PostID, p.Title)
	fmt.Fprintf(w, "    likes %s  comments %s  views %s  %s  by %s\n",
		board.FormatCount(p.LikeCount), board.FormatCount(p.CommentCount), board.FormatCount(p.ViewCount),
		board.FormatDateTime(p.CreatedAt.Local()), p.Author.Nickname)
}

func printThread(w io.Writer, t *board.Thread) {
	p := t.Post()
	like := t.Like()
	fmt.Fprintf(w, "#%d %s\n", p.PostID, p.Title)
	fmt.Fprintf(w, "by %s at %s\n\n", p.User.Nickname, board.FormatDateTime(p.CreatedAt.Local()))
	for _, b := range t.Content() {
		switch b.Kind {
		case board.BlockImage:
			fmt.Fprintf(w, "[image] %s\n", b.URL)
		default:
			fmt.Fprintln(w, b.Text)
		}
	}
	mark := ""
	if like.Liked {
		mark = " (you)"
	}
	fmt.Fprintf(w, "\nlikes %s%s  views %s  comments %s\n",
		board.FormatCount(like.Count), mark, board.FormatCount(p.ViewCount), board.FormatCount(t.CommentCount()))
	printComments(w, t)
}

func printComments(w io.Writer, t *board.Thread) {
	for _, c := range t.Comments() {
		mine := ""
		if c.IsAuthor {
			mine = " *"
		}
		fmt.Fprintf(w, "  [%d] %s%s %s\n      %s\n", c.CommentID, c.User.Nickname, mine,
			board.FormatDateTime(c.CreatedAt.Local()), c.Content)
	}
	if status := t.Status(); status != "" {
		fmt.Fprintln(w, "  --", status)
	}
}
