package systheme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileSignal derives the system preference from a small appearance file
// containing "dark" or "light", watched with fsnotify. When the file is
// missing or unreadable the probe value is used instead.
type FileSignal struct {
	hub
	path   string
	probe  bool
	logger *zap.Logger

	valueMu sync.RWMutex
	dark    bool

	watcher *fsnotify.Watcher
	done    chan struct{}
	stopped chan struct{}
	closeMu sync.Once
}

// NewFileSignal starts watching path. probe is the fallback preference,
// typically the terminal's detected background.
func NewFileSignal(path string, probe bool, logger *zap.Logger) (*FileSignal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &FileSignal{
		path:    path,
		probe:   probe,
		logger:  logger,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.dark = s.read()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		close(s.stopped)
		return nil, err
	}
	// Watch the directory so creation and removal of the file are seen.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		logger.Warn("appearance watch unavailable; using static preference",
			zap.String("path", path), zap.Error(err))
		close(s.stopped)
		return s, nil
	}
	s.watcher = w
	go s.loop()
	return s, nil
}

func (s *FileSignal) PrefersDark() bool {
	s.valueMu.RLock()
	defer s.valueMu.RUnlock()
	return s.dark
}

func (s *FileSignal) Subscribe(fn func(dark bool)) Subscription {
	return s.subscribe(fn)
}

// Close stops the watcher and waits for the event loop to exit.
func (s *FileSignal) Close() error {
	var err error
	s.closeMu.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
		<-s.stopped
	})
	return err
}

func (s *FileSignal) loop() {
	defer close(s.stopped)
	target := filepath.Clean(s.path)
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			s.refresh()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("appearance watch error", zap.Error(err))
		}
	}
}

func (s *FileSignal) refresh() {
	dark := s.read()
	s.valueMu.Lock()
	changed := dark != s.dark
	s.dark = dark
	s.valueMu.Unlock()
	if changed {
		s.logger.Info("system appearance changed", zap.Bool("dark", dark))
		s.notify(dark)
	}
}

func (s *FileSignal) read() bool {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read appearance file", zap.String("path", s.path), zap.Error(err))
		}
		return s.probe
	}
	dark, ok := ParseAppearance(string(bytes))
	if !ok {
		return s.probe
	}
	return dark
}

// ParseAppearance interprets appearance file content. ok is false for
// anything other than dark or light.
func ParseAppearance(content string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(content)) {
	case "dark", "prefer-dark":
		return true, true
	case "light", "prefer-light", "default":
		return false, true
	default:
		return false, false
	}
}
