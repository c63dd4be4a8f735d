package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const linksXML = `<?xml version="1.0"?>
<links>
  <link id="1"><url>https://www.youtube.com/@toxic5018</url></link>
  <link id="2"><url>https://www.tiktok.com/@toxic5018</url></link>
  <link id="3"><url>https://discord.gg/toxic</url></link>
  <link id="4"><url>https://github.com/toxic5018</url></link>
</links>`

type scriptedFetcher struct {
	mu      sync.Mutex
	calls   []time.Time
	results []fetchResult
}

type fetchResult struct {
	body string
	err  error
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.calls)
	f.calls = append(f.calls, time.Now())
	if idx >= len(f.results) {
		idx = len(f.results) - 1
	}
	r := f.results[idx]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

func (f *scriptedFetcher) callTimes() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.calls...)
}

func TestLoadLinks_StopsAfterMaxAttempts(t *testing.T) {
	delay := 40 * time.Millisecond
	f := &scriptedFetcher{results: []fetchResult{{err: &HTTPError{Resource: "link.xml", Status: 500}}}}
	l := New(Options{Fetcher: f, LinksPath: "link.xml", Attempts: 3, RetryDelay: delay})

	_, err := l.LoadLinks(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("LoadLinks error = %v, want *HTTPError", err)
	}

	calls := f.callTimes()
	if len(calls) != 3 {
		t.Fatalf("fetch count = %d, want 3", len(calls))
	}
	for i := 1; i < len(calls); i++ {
		if gap := calls[i].Sub(calls[i-1]); gap < delay {
			t.Fatalf("attempt %d started %v after previous, want >= %v", i+1, gap, delay)
		}
	}
}

func TestLoadLinks_RecoversAfterTransientFailure(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{
		{err: &HTTPError{Resource: "link.xml", Status: 503}},
		{body: linksXML},
	}}
	l := New(Options{Fetcher: f, LinksPath: "link.xml", RetryDelay: 5 * time.Millisecond})

	set, err := l.LoadLinks(context.Background())
	if err != nil {
		t.Fatalf("LoadLinks returned error: %v", err)
	}
	if got := len(f.callTimes()); got != 2 {
		t.Fatalf("fetch count = %d, want 2", got)
	}
	u, err := set.URL("4")
	if err != nil || u != "https://github.com/toxic5018" {
		t.Fatalf("URL(4) = %q, %v", u, err)
	}
}

func TestLoadVersion_RetriesMalformedDocument(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{
		{body: "<info><version>1.0</info>"},
		{body: "<info><version>1.2.3</version></info>"},
	}}
	l := New(Options{Fetcher: f, VersionPath: "version.xml", RetryDelay: 0})

	rec, err := l.LoadVersion(context.Background())
	if err != nil {
		t.Fatalf("LoadVersion returned error: %v", err)
	}
	if rec.Text() != "Version: 1.2.3" {
		t.Fatalf("Text() = %q, want %q", rec.Text(), "Version: 1.2.3")
	}
	if got := len(f.callTimes()); got != 2 {
		t.Fatalf("fetch count = %d, want 2", got)
	}
}

func TestLoadVersion_ExhaustedReturnsParseError(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{body: "not xml <"}}}
	l := New(Options{Fetcher: f, VersionPath: "version.xml", Attempts: 2, RetryDelay: 0})

	_, err := l.LoadVersion(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("LoadVersion error = %v, want *ParseError", err)
	}
	if got := len(f.callTimes()); got != 2 {
		t.Fatalf("fetch count = %d, want 2", got)
	}
}

func TestLoad_ContextCancelStopsRetrying(t *testing.T) {
	f := &scriptedFetcher{results: []fetchResult{{err: errors.New("connection refused")}}}
	l := New(Options{Fetcher: f, LinksPath: "link.xml", Attempts: 3, RetryDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.LoadLinks(ctx)
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(f.callTimes()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("LoadLinks error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("LoadLinks did not return after cancel")
	}
	if got := len(f.callTimes()); got != 1 {
		t.Fatalf("fetch count = %d, want 1", got)
	}
}

func TestLoad_LogsEachRetry(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := &scriptedFetcher{results: []fetchResult{{err: &HTTPError{Resource: "version.xml", Status: 404}}}}
	l := New(Options{Fetcher: f, VersionPath: "version.xml", Attempts: 3, RetryDelay: 0, Logger: zap.New(core)})

	if _, err := l.LoadVersion(context.Background()); err == nil {
		t.Fatal("LoadVersion returned nil error")
	}
	if got := logs.FilterMessage("fetching document").Len(); got != 3 {
		t.Fatalf("attempt logs = %d, want 3", got)
	}
	if got := logs.FilterMessage("document fetch failed, retrying").Len(); got != 2 {
		t.Fatalf("retry logs = %d, want 2", got)
	}
	if got := logs.FilterMessage("document unavailable").Len(); got != 1 {
		t.Fatalf("exhausted logs = %d, want 1", got)
	}
}

func TestClient_FetchAgainstServer(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/site/link.xml":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(linksXML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/site", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	l := New(Options{Fetcher: c, LinksPath: "link.xml", VersionPath: "version.xml", RetryDelay: 0})

	set, err := l.LoadLinks(context.Background())
	if err != nil {
		t.Fatalf("LoadLinks returned error: %v", err)
	}
	if len(set.Records) != 4 {
		t.Fatalf("records = %d, want 4", len(set.Records))
	}

	_, err = l.LoadVersion(context.Background())
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusNotFound {
		t.Fatalf("LoadVersion error = %v, want 404 *HTTPError", err)
	}
	if got := hits.Load(); got != 4 {
		t.Fatalf("server hits = %d, want 4 (1 links + 3 version)", got)
	}
	server.CloseClientConnections()
	c.http.CloseIdleConnections()
}

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("toxic5018.me/home?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if got, want := u.String(), "http://toxic5018.me/home/"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
	if _, err := parseBaseURL("  "); err == nil {
		t.Fatal("parseBaseURL accepted empty url")
	}
}
