package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/michaeljip/rt07/modules/account"
	"github.com/michaeljip/rt07/modules/feed"
	"github.com/michaeljip/rt07/modules/navigation"
	"github.com/michaeljip/rt07/pkg/validator"
	"github.com/michaeljip/rt07/svc/identity"
	"github.com/michaeljip/rt07/svc/session"
)

var errQuit = errors.New("quit")

type app struct {
	log      *slog.Logger
	sessions *session.Manager
	router   *navigation.Router
	accounts *account.Service
	google   *identity.Adapter
	posts    *feed.Service

	in  *bufio.Reader
	out io.Writer
}

func newApp(
	log *slog.Logger,
	sessions *session.Manager,
	router *navigation.Router,
	accounts *account.Service,
	google *identity.Adapter,
	posts *feed.Service,
) *app {
	return &app{
		log:      log,
		sessions: sessions,
		router:   router,
		accounts: accounts,
		google:   google,
		posts:    posts,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run restores the session, starts the router, and renders whichever stack
// the router selects until the user quits or ctx is cancelled.
func (a *app) Run(ctx context.Context) error {
	go a.router.Run(ctx)
	a.sessions.Restore(ctx)

	for ctx.Err() == nil {
		var err error
		switch a.router.Current() {
		case navigation.StackSpinner:
			fmt.Fprintln(a.out, "loading...")
			time.Sleep(50 * time.Millisecond)
		case navigation.StackLogin:
			err = a.loginScreen(ctx)
		case navigation.StackMain:
			err = a.homeScreen(ctx)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (a *app) loginScreen(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n== Sign in ==")
	fmt.Fprintln(a.out, "[enter] credentials  [g] google  [q] quit")

	switch a.readLine("> ") {
	case "q":
		return errQuit
	case "g":
		if err := a.accounts.GoogleLogin(ctx); err != nil {
			fmt.Fprintln(a.out, identity.Message(err))
		}
		return nil
	}

	email := a.readLine("email: ")
	password := a.readLine("password: ")

	err := a.accounts.Login(ctx, email, password)
	if err == nil {
		return nil
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		for _, field := range verr.Fields() {
			fmt.Fprintf(a.out, "%s: %s\n", field, strings.Join(verr.Get(field), "; "))
		}
		return nil
	}
	fmt.Fprintf(a.out, "login failed: %v\n", err)
	return nil
}

func (a *app) homeScreen(ctx context.Context) error {
	posts, err := a.posts.List(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "could not load posts: %v\n", err)
		if a.readLine("[enter] retry  [q] quit > ") == "q" {
			return errQuit
		}
		return nil
	}

	if u := a.sessions.State().User; u != nil {
		fmt.Fprintf(a.out, "\n== Posts (%s) ==\n", u.Email)
	} else if g := a.sessions.State().GoogleUser; g != nil {
		fmt.Fprintf(a.out, "\n== Posts (%s) ==\n", g.Email)
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "%3d  %s\n", p.ID, p.Title)
	}
	fmt.Fprintln(a.out, "[id] open post  [r] refresh  [logout]  [q] quit")

	for {
		input := a.readLine("> ")
		switch input {
		case "q":
			return errQuit
		case "r":
			if _, err := a.posts.Refresh(ctx); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
			}
			return nil
		case "logout":
			a.google.SignOut(ctx)
			if err := a.sessions.Logout(ctx); err != nil {
				fmt.Fprintf(a.out, "logout failed: %v\n", err)
			}
			return nil
		default:
			id, err := strconv.Atoi(input)
			if err != nil {
				continue
			}
			// Hand the already-fetched list item to the detail view; Get
			// falls back to fetching by id for anything not listed.
			for _, p := range posts {
				if p.ID == id {
					a.posts.Seed(p)
					break
				}
			}
			a.detailScreen(ctx, id)
			return nil
		}
	}
}

func (a *app) detailScreen(ctx context.Context, id int) {
	post, err := a.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, feed.ErrPostNotFound) {
			fmt.Fprintln(a.out, "post not found")
		} else {
			fmt.Fprintf(a.out, "could not load post: %v\n", err)
		}
		return
	}

	fmt.Fprintf(a.out, "\n== %s ==\n%s\n", post.Title, post.Body)

	author, err := a.posts.Author(ctx, post.UserID)
	if err != nil {
		fmt.Fprintf(a.out, "author unavailable: %v\n", err)
	} else {
		fmt.Fprintf(a.out, "\nby %s (@%s) <%s>\n", author.Name, author.Username, author.Email)
		if author.Company != nil {
			fmt.Fprintf(a.out, "at %s\n", author.Company.Name)
		}
	}

	a.readLine("[enter] back > ")
}

func (a *app) readLine(prompt string) string {
	fmt.Fprint(a.out, prompt)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptAuthCode returns an AuthCodeFunc that prints the consent URL and
// reads the verification code from the terminal.
func promptAuthCode(in io.Reader, out io.Writer) identity.AuthCodeFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, authURL string) (string, error) {
		fmt.Fprintf(out, "open in a browser:\n\n  %s\n\ncode: ", authURL)
		code, err := reader.ReadString('\n')
		if err != nil && code == "" {
			return "", identity.ErrSignInCancelled
		}
		code = strings.TrimSpace(code)
		if code == "" {
			return "", identity.ErrSignInCancelled
		}
		return code, nil
	}
}
