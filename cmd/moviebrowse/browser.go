package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"gomovies/bookmark"
	"gomovies/errs"
	"gomovies/fetch"
	"gomovies/movie"
	"gomovies/search"
	"gomovies/tab"
	"gomovies/user"
)

const helpText = `commands:
  <text>             search movies (empty line clears the search)
  :open <id>         show movie details
  :save | :unsave    bookmark or forget the last opened movie
  :tab <name>        switch to home, bookmark or profile
  :refresh           reload the trending rail
  :signout           end the signed-in session
  :quit              exit`

// sessionEnder ends a signed-in session. auth.Usecase satisfies it.
type sessionEnder interface {
	SignOut(ctx context.Context, sessionID string) error
}

// browser is the terminal front end. All output goes through print so that
// pipeline notifications and command output do not interleave.
type browser struct {
	ctx       context.Context
	pipeline  *search.Pipeline
	catalog   movie.Service
	bookmarks bookmark.Service
	users     user.Service
	sessions  sessionEnder
	sessionID string

	mu      sync.Mutex
	out     io.Writer
	current tab.Tab
	opened  *movie.Details
	last    string
}

func newBrowser(ctx context.Context, out io.Writer, p *search.Pipeline, catalog movie.Service, bookmarks bookmark.Service, users user.Service) *browser {
	b := &browser{
		ctx:       ctx,
		pipeline:  p,
		catalog:   catalog,
		bookmarks: bookmarks,
		users:     users,
		out:       out,
		current:   tab.Home,
	}
	p.Subscribe(b.onViewChanged)
	return b
}

// withSession lets :signout end the session the browser was started with.
func (b *browser) withSession(sessions sessionEnder, sessionID string) *browser {
	b.sessions = sessions
	b.sessionID = sessionID
	return b
}

// handle runs one input line and reports whether the user asked to quit.
func (b *browser) handle(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch {
	case !strings.HasPrefix(cmd, ":"):
		b.setTab(tab.Home)
		b.pipeline.SetQuery(line)
	case cmd == ":quit" || cmd == ":q":
		return true
	case cmd == ":help":
		b.print(helpText)
	case cmd == ":open":
		b.open(arg)
	case cmd == ":save":
		b.save()
	case cmd == ":unsave":
		b.unsave()
	case cmd == ":tab":
		t, err := tab.Parse(arg)
		if err != nil {
			b.print(errMessage(err))
			return false
		}
		b.setTab(t)
		b.renderTab(t)
	case cmd == ":refresh":
		b.pipeline.RefreshTrending(b.ctx)
	case cmd == ":signout":
		b.signOut()
	default:
		b.print("unknown command " + cmd + ", try :help")
	}
	return false
}

func (b *browser) setTab(t tab.Tab) {
	b.mu.Lock()
	changed := b.current != t
	b.current = t
	b.mu.Unlock()

	if changed {
		b.print(tab.Bar(t))
	}
}

func (b *browser) currentTab() tab.Tab {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *browser) signedIn() bool {
	_, ok := user.FromContext(b.ctx)
	return ok
}

func (b *browser) renderTab(t tab.Tab) {
	if t.RequiresAuth() && !b.signedIn() {
		b.print(t.SignInPrompt())
		b.print("Sign in with -token, or continue as guest on the home tab.")
		return
	}

	switch t {
	case tab.Home:
		b.renderView(b.pipeline.View(), true)
	case tab.Bookmark:
		b.renderBookmarks()
	case tab.Profile:
		b.renderProfile()
	default:
		panic(fmt.Sprintf("moviebrowse: unhandled tab %d", int(t)))
	}
}

func (b *browser) onViewChanged() {
	if b.currentTab() != tab.Home {
		return
	}
	b.renderView(b.pipeline.View(), false)
}

// renderView prints v unless it matches what was printed last. force skips
// that check.
func (b *browser) renderView(v search.View, force bool) {
	var sb strings.Builder
	switch v.Kind {
	case search.ViewLoading:
		sb.WriteString("loading...")
	case search.ViewError:
		sb.WriteString("error: " + v.Message)
	case search.ViewNoResults:
		sb.WriteString(v.Message)
	case search.ViewSearchResults:
		fmt.Fprintf(&sb, "Search results for %s\n", v.Query)
		writeMovies(&sb, v.Movies)
	case search.ViewListing:
		if len(v.Trending) > 0 {
			sb.WriteString("Trending\n")
			for i, m := range v.Trending {
				fmt.Fprintf(&sb, "  %d. %s (%d)\n", i+1, m.Title, m.MovieID)
			}
		}
		sb.WriteString("All movies\n")
		writeMovies(&sb, v.Movies)
	}
	text := strings.TrimRight(sb.String(), "\n")

	b.mu.Lock()
	if !force && text == b.last {
		b.mu.Unlock()
		return
	}
	b.last = text
	b.mu.Unlock()

	b.print(text)
}

func writeMovies(sb *strings.Builder, movies []movie.Movie) {
	for _, m := range movies {
		fmt.Fprintf(sb, "  %-8d %s", m.ID, m.Title)
		if y := m.Year(); y != "" {
			fmt.Fprintf(sb, " (%s)", y)
		}
		sb.WriteString("  " + stars(m.Stars()) + "\n")
	}
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// open shows the details screen. The screen owns its own coordinator, started
// as soon as the screen opens.
func (b *browser) open(id string) {
	if id == "" {
		b.print("usage: :open <id>")
		return
	}

	details := fetch.New(b.ctx, func(ctx context.Context) (movie.Details, error) {
		return b.catalog.FetchMovieDetails(ctx, id)
	}, fetch.WithAutoRun())

	b.print("loading...")
	s := settle(b.ctx, details)
	if s.Err != nil {
		b.print("error: " + s.Err.Error())
		return
	}
	if !s.Loaded {
		return
	}

	d := s.Data
	b.mu.Lock()
	b.opened = &d
	b.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", d.Title)
	if y := d.Year(); y != "" {
		fmt.Fprintf(&sb, " (%s)", y)
	}
	fmt.Fprintf(&sb, "\n%s  %s\n", stars(d.Stars()), d.RuntimeLabel())
	if genres := d.GenreNames(); len(genres) > 0 {
		sb.WriteString(strings.Join(genres, ", ") + "\n")
	}
	if d.Overview != "" {
		sb.WriteString(d.Overview + "\n")
	}
	sb.WriteString("poster: " + d.FullPoster())
	if b.signedIn() {
		if b.bookmarks.IsBookmarked(b.ctx, d.ID) {
			sb.WriteString("\n★ bookmarked (:unsave to remove)")
		} else {
			sb.WriteString("\n☆ not bookmarked (:save to add)")
		}
	}
	b.print(sb.String())
}

// settle waits until c is no longer loading or ctx is done.
func settle[T any](ctx context.Context, c *fetch.Coordinator[T]) fetch.State[T] {
	done := make(chan fetch.State[T], 1)
	unsubscribe := c.Subscribe(func(s fetch.State[T]) {
		if s.Loading {
			return
		}
		select {
		case done <- s:
		default:
		}
	})
	defer unsubscribe()

	if s := c.State(); !s.Loading {
		return s
	}
	select {
	case s := <-done:
		return s
	case <-ctx.Done():
		return c.State()
	}
}

func (b *browser) openedMovie() (movie.Movie, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.opened == nil {
		return movie.Movie{}, false
	}
	return b.opened.Movie, true
}

func (b *browser) save() {
	m, ok := b.openedMovie()
	if !ok {
		b.print("open a movie first")
		return
	}
	if err := b.bookmarks.AddBookmark(b.ctx, m); err != nil {
		b.print("error: " + errMessage(err))
		return
	}
	b.print("bookmarked " + m.Title)
}

func (b *browser) unsave() {
	m, ok := b.openedMovie()
	if !ok {
		b.print("open a movie first")
		return
	}
	if err := b.bookmarks.RemoveBookmark(b.ctx, m.ID); err != nil {
		b.print("error: " + errMessage(err))
		return
	}
	b.print("removed " + m.Title)
}

func (b *browser) renderBookmarks() {
	bookmarks := b.bookmarks.GetUserBookmarks(b.ctx)
	if len(bookmarks) == 0 {
		b.print("No bookmarks yet")
		return
	}

	movies := make([]movie.Movie, 0, len(bookmarks))
	for _, bm := range bookmarks {
		movies = append(movies, bm.Movie())
	}
	var sb strings.Builder
	sb.WriteString("Bookmarks\n")
	writeMovies(&sb, movies)
	b.print(strings.TrimRight(sb.String(), "\n"))
}

func (b *browser) renderProfile() {
	u, err := b.users.CurrentUser(b.ctx)
	if err != nil {
		b.print("error: " + errMessage(err))
		return
	}
	lines := []string{u.DisplayName(), u.Email}
	if u.AvatarURL != "" {
		lines = append(lines, "avatar: "+u.AvatarURL)
	}
	if b.sessions != nil {
		lines = append(lines, ":signout to sign out")
	}
	b.print(strings.Join(lines, "\n"))
}

// signOut ends the session and continues as a guest on the home tab.
func (b *browser) signOut() {
	if !b.signedIn() || b.sessions == nil {
		b.print("error: " + errMessage(user.ErrNotLoggedIn))
		return
	}
	if err := b.sessions.SignOut(b.ctx, b.sessionID); err != nil {
		b.print("error: " + errMessage(err))
		return
	}

	// An empty user reads as signed out.
	b.ctx = user.NewContext(b.ctx, user.User{})
	b.sessions, b.sessionID = nil, ""
	b.mu.Lock()
	b.opened = nil
	b.mu.Unlock()

	b.print("Signed out")
	b.setTab(tab.Home)
}

func (b *browser) print(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.out, s)
}

func errMessage(err error) string {
	if errs.ErrorCode(err) != errs.EINTERNAL {
		return errs.ErrorMessage(err)
	}
	return err.Error()
}
