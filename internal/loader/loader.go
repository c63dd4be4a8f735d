package loader

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	// DefaultAttempts is the fetch budget per invocation.
	DefaultAttempts = 3
	// DefaultRetryDelay is the fixed wait between attempts.
	DefaultRetryDelay = time.Second
)

// Options configure a Loader.
type Options struct {
	Fetcher     Fetcher
	LinksPath   string
	VersionPath string
	Attempts    int           // zero uses DefaultAttempts
	RetryDelay  time.Duration // negative uses DefaultRetryDelay
	Logger      *zap.Logger
}

// Loader fetches and parses the site documents with bounded retry.
type Loader struct {
	fetcher     Fetcher
	linksPath   string
	versionPath string
	attempts    int
	delay       time.Duration
	logger      *zap.Logger
}

// New builds a Loader from opts.
func New(opts Options) *Loader {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	delay := opts.RetryDelay
	if delay < 0 {
		delay = DefaultRetryDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fetcher:     opts.Fetcher,
		linksPath:   opts.LinksPath,
		versionPath: opts.VersionPath,
		attempts:    attempts,
		delay:       delay,
		logger:      logger,
	}
}

// LoadLinks fetches and parses the links document.
func (l *Loader) LoadLinks(ctx context.Context) (LinkSet, error) {
	return load(ctx, l, l.linksPath, ParseLinks)
}

// LoadVersion fetches and parses the version document.
func (l *Loader) LoadVersion(ctx context.Context) (VersionRecord, error) {
	return load(ctx, l, l.versionPath, ParseVersion)
}

// load runs fetch+parse until it succeeds or the attempt budget is spent.
// Each call owns its backoff state, so concurrent loads never share counters.
func load[T any](ctx context.Context, l *Loader, name string, parse func(string, []byte) (T, error)) (T, error) {
	attempt := 0
	op := func() (T, error) {
		var zero T
		attempt++
		l.logger.Debug("fetching document",
			zap.String("resource", name),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", l.attempts))

		body, err := l.fetcher.Fetch(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return zero, backoff.Permanent(err)
			}
			return zero, err
		}
		return parse(name, body)
	}

	res, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(l.delay)),
		backoff.WithMaxTries(uint(l.attempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.logger.Warn("document fetch failed, retrying",
				zap.String("resource", name),
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if errors.As(err, &perm) {
			err = perm.Unwrap()
		}
		l.logger.Error("document unavailable",
			zap.String("resource", name),
			zap.Int("attempts", attempt),
			zap.Error(err))
		return res, err
	}
	l.logger.Info("document loaded", zap.String("resource", name), zap.Int("attempt", attempt))
	return res, nil
}
