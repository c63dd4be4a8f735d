package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/homepage/internal/config"
	"github.com/five82/homepage/internal/loader"
	"github.com/five82/homepage/internal/logging"
	"github.com/five82/homepage/internal/prefs"
	"github.com/five82/homepage/internal/state"
	"github.com/five82/homepage/internal/storage"
	"github.com/five82/homepage/internal/systheme"
	"github.com/five82/homepage/internal/ui"
)

// Options configure the homepage application.
type Options struct {
	ConfigPath string        // empty uses config.DefaultPath()
	Tick       time.Duration // UI refresh interval; zero uses the UI default
}

// Run boots the homepage TUI until the user quits or the context is
// cancelled. Only configuration and UI failures are returned; everything
// else degrades.
func Run(ctx context.Context, opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		// The terminal belongs to the UI; run without a log file.
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	kv := openStorage(cfg, logger)
	defer func() { _ = kv.Close() }()

	userPrefs := prefs.NewStore(kv, logger)
	progress := userPrefs.LoadProgress()
	logger.Debug("level progress loaded", zap.Int("level", progress.Level), zap.Int("clicks", progress.Clicks))

	signal, closeSignal := openSignal(cfg, logger)
	defer closeSignal()

	themeCtl := prefs.NewThemeController(userPrefs, signal, logger)
	appearance := themeCtl.Start()
	defer themeCtl.Close()

	store := state.NewStore(linkIDs(cfg.Links))
	logWelcome(logger, cfg)

	// Loading runs alongside the UI so the page appears immediately in its
	// loading state.
	loadCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := runLoaders(loadCtx, newLoader(cfg, logger), store, logger); err != nil {
			logger.Debug("loaders stopped", zap.Error(err))
		}
	}()
	defer func() {
		cancel()
		<-done
	}()

	uiOpts := ui.Options{
		Context: ctx,
		Store:   store,
		Prefs:   userPrefs,
		Theme:   themeCtl,
		Profile: ui.Profile{
			Name:    cfg.Name,
			Tagline: cfg.Tagline,
			Links:   cfg.Links,
		},
		LogPath:    cfg.LogFile,
		Logger:     logger,
		Tick:       opts.Tick,
		Appearance: appearance,
	}
	if err := ui.Run(uiOpts); err != nil {
		logger.Error("ui exited", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("homepage closed")
	return nil
}

// openStorage opens the configured backend, falling back to memory so the
// session still works when durable storage is unavailable.
func openStorage(cfg config.Config, logger *zap.Logger) storage.Store {
	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		logger.Warn("storage unavailable; preferences will last for this session only",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("path", cfg.Storage.Path),
			zap.Error(err))
		return storage.NewMemory()
	}
	logger.Debug("storage opened", zap.String("backend", cfg.Storage.Backend), zap.String("path", cfg.Storage.Path))
	return kv
}

// openSignal watches the appearance file when one is configured. The
// terminal background is the fallback preference either way.
func openSignal(cfg config.Config, logger *zap.Logger) (systheme.Signal, func()) {
	probe := lipgloss.HasDarkBackground()
	if cfg.AppearancePath == "" {
		return systheme.NewStatic(probe), func() {}
	}
	sig, err := systheme.NewFileSignal(cfg.AppearancePath, probe, logger)
	if err != nil {
		logger.Warn("system theme watch failed; using terminal background",
			zap.String("path", cfg.AppearancePath), zap.Error(err))
		return systheme.NewStatic(probe), func() {}
	}
	return sig, func() { _ = sig.Close() }
}

func newLoader(cfg config.Config, logger *zap.Logger) documentLoader {
	client, err := loader.NewClient(cfg.SiteURL, cfg.RequestTimeout())
	if err != nil {
		return failedLoader{err: err}
	}
	return loader.New(loader.Options{
		Fetcher:     client,
		LinksPath:   cfg.LinksPath,
		VersionPath: cfg.VersionPath,
		Attempts:    cfg.Attempts,
		RetryDelay:  cfg.RetryDelay(),
		Logger:      logger,
	})
}

func linkIDs(buttons []config.LinkButton) []string {
	ids := make([]string, len(buttons))
	for i, b := range buttons {
		ids[i] = b.ID
	}
	return ids
}

// logWelcome writes the startup banner to the log.
func logWelcome(logger *zap.Logger, cfg config.Config) {
	logger.Info("welcome to " + cfg.Name + "'s homepage")
	logger.Info("homepage starting",
		zap.String("site", cfg.SiteURL),
		zap.String("storage", cfg.Storage.Backend),
		zap.Int("links", len(cfg.Links)))
}
