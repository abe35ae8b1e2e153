// Package search drives the home screen: a default listing, a debounced
// search and the trending rail, each behind its own fetch coordinator.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gomovies/fetch"
	"gomovies/movie"
	"gomovies/trending"
)

const DefaultDebounce = 500 * time.Millisecond

type Option func(*Pipeline)

func WithDebounce(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

type Pipeline struct {
	ctx      context.Context
	catalog  movie.Service
	trend    trending.Service
	logger   *slog.Logger
	debounce time.Duration

	movies   *fetch.Coordinator[[]movie.Movie]
	results  *fetch.Coordinator[[]movie.Movie]
	trending *fetch.Coordinator[[]trending.Movie]

	debouncer *Debouncer
	unsubs    []func()

	mu        sync.Mutex
	query     string
	listeners map[int]func()
	nextID    int
}

type queryKey struct{}

// New starts the default listing and trending reads immediately. In-flight
// calls run on ctx and are not cancelled by Close.
func New(ctx context.Context, catalog movie.Service, trend trending.Service, opts ...Option) *Pipeline {
	p := &Pipeline{
		ctx:       ctx,
		catalog:   catalog,
		trend:     trend,
		logger:    slog.Default(),
		debounce:  DefaultDebounce,
		listeners: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.debouncer = NewDebouncer(p.debounce)

	p.movies = fetch.New(ctx, func(ctx context.Context) ([]movie.Movie, error) {
		return catalog.FetchMovies(ctx, "")
	}, fetch.WithAutoRun())

	p.results = fetch.New(ctx, func(ctx context.Context) ([]movie.Movie, error) {
		q, _ := ctx.Value(queryKey{}).(string)
		return catalog.FetchMovies(ctx, q)
	})

	p.trending = fetch.New(ctx, func(ctx context.Context) ([]trending.Movie, error) {
		return trend.GetTrendingMovies(ctx), nil
	}, fetch.WithAutoRun())

	p.unsubs = []func(){
		p.movies.Subscribe(func(fetch.State[[]movie.Movie]) { p.changed() }),
		p.results.Subscribe(func(fetch.State[[]movie.Movie]) { p.changed() }),
		p.trending.Subscribe(func(fetch.State[[]trending.Movie]) { p.changed() }),
	}
	return p
}

// SetQuery records the typed query and restarts the debounce window.
func (p *Pipeline) SetQuery(q string) {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()

	p.debouncer.Trigger(func() { p.search(q) })
	p.changed()
}

func (p *Pipeline) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *Pipeline) search(q string) {
	const op = "search.Pipeline.search"

	term := strings.TrimSpace(q)
	if term == "" {
		p.results.Reset()
		return
	}

	results, err := p.results.Refetch(context.WithValue(p.ctx, queryKey{}, term))
	if err != nil {
		p.logger.Error("error searching movies", "op", op, "query", term, "error", err)
		return
	}
	if len(results) == 0 {
		return
	}
	// The box was cleared or retyped while the request was in flight.
	if term != strings.TrimSpace(p.Query()) {
		return
	}

	first := results[0]
	go p.trend.UpdateSearchCount(p.ctx, term, first)
}

// View selects what to render. Loading wins over errors; errors are checked
// trending first, then the default listing, then search.
func (p *Pipeline) View() View {
	movies := p.movies.State()
	results := p.results.State()
	trend := p.trending.State()
	query := strings.TrimSpace(p.Query())

	if movies.Loading || results.Loading || trend.Loading {
		return View{Kind: ViewLoading, Query: query}
	}

	for _, err := range []error{trend.Err, movies.Err, results.Err} {
		if err != nil {
			return View{Kind: ViewError, Query: query, Err: err, Message: err.Error()}
		}
	}

	if query != "" {
		if results.Loaded && len(results.Data) == 0 {
			return View{
				Kind:    ViewNoResults,
				Query:   query,
				Message: fmt.Sprintf("No results for %s", query),
			}
		}
		return View{Kind: ViewSearchResults, Query: query, Movies: results.Data}
	}

	v := View{Kind: ViewListing, Movies: movies.Data}
	if len(trend.Data) > 0 {
		v.Trending = trend.Data
	}
	return v
}

// Subscribe registers fn to be called whenever the view may have changed.
func (p *Pipeline) Subscribe(fn func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// RefreshTrending re-reads the trending rail.
func (p *Pipeline) RefreshTrending(ctx context.Context) {
	_, _ = p.trending.Refetch(ctx)
}

// Close cancels a pending search and detaches listeners.
func (p *Pipeline) Close() {
	p.debouncer.Stop()
	for _, unsub := range p.unsubs {
		unsub()
	}

	p.mu.Lock()
	p.listeners = make(map[int]func())
	p.mu.Unlock()
}

func (p *Pipeline) changed() {
	p.mu.Lock()
	fns := make([]func(), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
