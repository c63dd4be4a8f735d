package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/homepage/internal/loader"
	"github.com/five82/homepage/internal/state"
)

// documentLoader is the part of loader.Loader the app drives.
type documentLoader interface {
	LoadLinks(ctx context.Context) (loader.LinkSet, error)
	LoadVersion(ctx context.Context) (loader.VersionRecord, error)
}

// failedLoader stands in when no fetcher could be built, so both documents
// go straight to their fallbacks.
type failedLoader struct{ err error }

func (f failedLoader) LoadLinks(context.Context) (loader.LinkSet, error) {
	return loader.LinkSet{}, f.err
}

func (f failedLoader) LoadVersion(context.Context) (loader.VersionRecord, error) {
	return loader.VersionRecord{}, f.err
}

// runLoaders loads both documents concurrently and applies each result, or
// its fallback, to store. A document failure never cancels the other load;
// only cancellation of ctx is returned.
func runLoaders(ctx context.Context, ld documentLoader, store *state.Store, logger *zap.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		set, err := ld.LoadLinks(gCtx)
		if err != nil {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			logger.Warn("links unavailable; buttons disabled", zap.Error(err))
			store.LinksUnavailable(err)
			return nil
		}
		store.ApplyLinks(set)
		return nil
	})

	g.Go(func() error {
		rec, err := ld.LoadVersion(gCtx)
		if err != nil {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			logger.Warn("version unavailable", zap.Error(err))
			store.VersionUnavailable(err)
			return nil
		}
		store.ApplyVersion(rec)
		return nil
	})

	return g.Wait()
}
