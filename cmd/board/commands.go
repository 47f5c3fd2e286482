package main

import (
	"Agora/internal/board"
	"Agora/pkg/api"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and store the token in the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(ctx *cli.Context) error {
			app, cleanup, err := open(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			form := board.LoginForm{Email: ctx.String("email"), Password: ctx.String("password")}
			if err := app.Auth.Login(ctx.Context, form); err != nil {
				return err
			}
			fmt.Fprintln(out(ctx), "logged in")
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "log out and forget the token",
		Action: func(ctx *cli.Context) error {
			app, cleanup, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := app.Auth.Logout(ctx.Context); err != nil && !api.IsUnauthorized(err) {
				return err
			}
			fmt.Fprintln(out(ctx), "logged out")
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "confirm", Required: true, Usage: "password again"},
			&cli.StringFlag{Name: "nickname", Required: true},
			&cli.StringFlag{Name: "image", Usage: "profile image url"},
		},
		Action: func(ctx *cli.Context) error {
			app, cleanup, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := app.Auth.Signup(ctx.Context, board.SignupForm{
				Email:           ctx.String("email"),
				Password:        ctx.String("password"),
				PasswordConfirm: ctx.String("confirm"),
				Nickname:        ctx.String("nickname"),
				ProfileImageURL: ctx.String("image"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out(ctx), "account created for %s, now run `board login`\n", user.Nickname)
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged-in user",
		Action: func(ctx *cli.Context) error {
			app, cleanup, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := app.Auth.CurrentUser(ctx.Context)
			if api.IsUnauthorized(err) {
				expired(ctx)()
			}
			if err != nil {
				return err
			}
			printHeader(out(ctx), board.Header(user), user)
			return nil
		},
	}
}

func postsCommand() *cli.Command {
	return &cli.Command{
		Name:  "posts",
		Usage: "list posts, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "pages", Value: 1, Usage: "number of pages to load, 0 for all"},
			&cli.IntFlag{Name: "size", Usage: "page size, defaults to the config"},
		},
		Action: func(ctx *cli.Context) error {
			app, cleanup, err := open(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			size := ctx.Int("size")
			if size <= 0 {
				size = app.Config.Backend.PageSize
			}
			w := out(ctx)
			feed := board.NewFeed(app.Client, size, board.FeedHandlers{
				OnPost:         func(p api.PostSummary) { printPostSummary(w, p) },
				OnUnauthorized: expired(ctx),
			})
			for pages := 0; feed.HasMore() && (ctx.Int("pages") <= 0 || pages < ctx.Int("pages")); pages++ {
				if _, err := feed.Scroll(ctx.Context, 1); err != nil {
					return err
				}
			}
			if status := feed.Status(); status != "" {
				fmt.Fprintln(w, "--", status)
			}
			return nil
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "show, create, edit or delete a post",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				ArgsUsage: "<postID>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "comment-pages", Value: 1, Usage: "comment pages to load, 0 for all"},
				},
				Action: func(ctx *cli.Context) error {
					return withThread(ctx, func(app *App, thread *board.Thread) error {
						if err := loadCommentPages(ctx, thread, ctx.Int("comment-pages")); err != nil {
							return err
						}
						printThread(out(ctx), thread)
						return nil
					})
				},
			},
			{
				Name:  "create",
				Flags: postFlags(),
				Action: func(ctx *cli.Context) error {
					return savePost(ctx, 0)
				},
			},
			{
				Name:      "edit",
				ArgsUsage: "<postID>",
				Flags:     postFlags(),
				Action: func(ctx *cli.Context) error {
					id, err := argID(ctx, 0)
					if err != nil {
						return err
					}
					return savePost(ctx, id)
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<postID>",
				Action: func(ctx *cli.Context) error {
					return withThread(ctx, func(app *App, thread *board.Thread) error {
						if !thread.CanEdit() {
							return errors.New("only the author can delete this post")
						}
						if err := thread.DeletePost(ctx.Context); err != nil {
							return err
						}
						fmt.Fprintln(out(ctx), "post deleted")
						return nil
					})
				},
			},
		},
	}
}

func postFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: true},
		&cli.StringFlag{Name: "content", Required: true},
		&cli.StringSliceFlag{Name: "image", Usage: "attached image url, repeatable"},
	}
}

func savePost(ctx *cli.Context, postID int64) error {
	app, cleanup, err := open(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	post, err := board.SavePost(ctx.Context, app.Client, postID, board.PostForm{
		Title:   ctx.String("title"),
		Content: ctx.String("content"),
		Images:  ctx.StringSlice("image"),
	})
	if api.IsUnauthorized(err) {
		expired(ctx)()
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out(ctx), "saved post %d\n", post.PostID)
	return nil
}

func likeCommand() *cli.Command {
	return &cli.Command{
		Name:      "like",
		Usage:     "like the post, or unlike it if already liked",
		ArgsUsage: "<postID>",
		Action: func(ctx *cli.Context) error {
			return withThread(ctx, func(app *App, thread *board.Thread) error {
				state, err := thread.ToggleLike(ctx.Context)
				if err != nil {
					return err
				}
				verb := "unliked"
				if state.Liked {
					verb = "liked"
				}
				fmt.Fprintf(out(ctx), "%s, %s likes\n", verb, board.FormatCount(state.Count))
				return nil
			})
		},
	}
}

func commentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "comments",
		Usage:     "list the comments of a post",
		ArgsUsage: "<postID>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "pages", Value: 0, Usage: "comment pages to load, 0 for all"},
		},
		Action: func(ctx *cli.Context) error {
			return withThread(ctx, func(app *App, thread *board.Thread) error {
				if err := loadCommentPages(ctx, thread, ctx.Int("pages")); err != nil {
					return err
				}
				printComments(out(ctx), thread)
				return nil
			})
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "add, edit or delete a comment",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<postID>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "content", Required: true}},
				Action: func(ctx *cli.Context) error {
					return withThread(ctx, func(app *App, thread *board.Thread) error {
						if err := thread.Submit(ctx.Context, ctx.String("content")); err != nil {
							return err
						}
						fmt.Fprintf(out(ctx), "comment added, %s comments\n", board.FormatCount(thread.CommentCount()))
						return nil
					})
				},
			},
			{
				Name:      "edit",
				ArgsUsage: "<postID> <commentID>",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "content", Required: true}},
				Action: func(ctx *cli.Context) error {
					commentID, err := argID(ctx, 1)
					if err != nil {
						return err
					}
					return withThread(ctx, func(app *App, thread *board.Thread) error {
						if err := loadCommentPages(ctx, thread, 0); err != nil {
							return err
						}
						if _, err := thread.BeginEdit(commentID); err != nil {
							return err
						}
						if err := thread.Submit(ctx.Context, ctx.String("content")); err != nil {
							return err
						}
						fmt.Fprintln(out(ctx), "comment updated")
						return nil
					})
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<postID> <commentID>",
				Action: func(ctx *cli.Context) error {
					commentID, err := argID(ctx, 1)
					if err != nil {
						return err
					}
					return withThread(ctx, func(app *App, thread *board.Thread) error {
						if err := thread.DeleteComment(ctx.Context, commentID); err != nil {
							return err
						}
						fmt.Fprintf(out(ctx), "comment deleted, %s comments\n", board.FormatCount(thread.CommentCount()))
						return nil
					})
				},
			},
		},
	}
}

// withThread loads the post named by the first argument and hands it to fn.
func withThread(ctx *cli.Context, fn func(*App, *board.Thread) error) error {
	postID, err := argID(ctx, 0)
	if err != nil {
		return err
	}
	app, cleanup, err := open(ctx, false)
	if err != nil {
		return err
	}
	defer cleanup()

	thread := board.NewThread(app.Client, board.ThreadHandlers{
		OnUnauthorized:  expired(ctx),
		CommentPageSize: app.Config.Backend.PageSize,
	})
	if err := thread.Load(ctx.Context, postID); err != nil {
		return err
	}
	return fn(app, thread)
}

// loadCommentPages loads up to pages more comment pages; 0 loads all.
func loadCommentPages(ctx *cli.Context, thread *board.Thread, pages int) error {
	for n := 1; thread.HasMoreComments() && (pages <= 0 || n < pages); n++ {
		if _, err := thread.Scroll(ctx.Context, 1); err != nil {
			return err
		}
	}
	return nil
}

func argID(ctx *cli.Context, i int) (int64, error) {
	raw := ctx.Args().Get(i)
	if raw == "" {
		return 0, fmt.Errorf("missing argument %d, see --help", i+1)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
