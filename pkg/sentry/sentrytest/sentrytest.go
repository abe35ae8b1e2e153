// Package sentrytest records the events reported through pkg/sentry.
package sentrytest

import (
	"sync"
	"testing"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

const dsn = "https://public@sentry.example.com/1"

// Transport keeps every event instead of sending it.
type Transport struct {
	mu     sync.Mutex
	events []*sentrygo.Event
}

func (t *Transport) Flush(time.Duration) bool { return true }

func (t *Transport) Configure(sentrygo.ClientOptions) {}

func (t *Transport) SendEvent(e *sentrygo.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
}

func (t *Transport) Events() []*sentrygo.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*sentrygo.Event(nil), t.events...)
}

// Capture enables reporting and binds the current hub to a recording
// transport until the test ends.
func Capture(tb testing.TB) *Transport {
	tb.Helper()
	tb.Setenv("APP_ENV", "test")
	tb.Setenv("SENTRY_DSN", dsn)

	transport := new(Transport)
	client, err := sentrygo.NewClient(sentrygo.ClientOptions{
		Dsn:       dsn,
		Transport: transport,
	})
	if err != nil {
		tb.Fatalf("sentry client: %v", err)
	}

	hub := sentrygo.CurrentHub()
	previous := hub.Client()
	hub.BindClient(client)
	tb.Cleanup(func() { hub.BindClient(previous) })
	return transport
}
