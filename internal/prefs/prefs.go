package prefs

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/homepage/internal/storage"
)

// Key names a persisted preference.
type Key string

const (
	UseSystemDefault Key = "useSystemDefault"
	DarkMode         Key = "darkMode"
	BackgroundMotion Key = "backgroundMotion"
	VisualEffects    Key = "visualEffects"
)

// Keys lists every preference in display order.
var Keys = []Key{UseSystemDefault, DarkMode, BackgroundMotion, VisualEffects}

// Value is a tri-state preference value.
type Value int

const (
	Unset Value = iota
	Enabled
	Disabled
)

func (v Value) String() string {
	switch v {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return "unset"
	}
}

// ParseValue maps a stored string to a Value. Anything unrecognised is Unset.
func ParseValue(s string) Value {
	switch s {
	case "enabled":
		return Enabled
	case "disabled":
		return Disabled
	default:
		return Unset
	}
}

// On reports whether key is effectively on. Motion and effects default to on
// when unset; the theme keys default to off.
func (v Value) On(key Key) bool {
	switch v {
	case Enabled:
		return true
	case Disabled:
		return false
	}
	return key == BackgroundMotion || key == VisualEffects
}

// PreferenceSet maps every key to its value. Missing keys read as Unset.
type PreferenceSet map[Key]Value

// Get returns the value for key.
func (p PreferenceSet) Get(key Key) Value {
	return p[key]
}

func (p PreferenceSet) clone() PreferenceSet {
	dup := make(PreferenceSet, len(p))
	for k, v := range p {
		dup[k] = v
	}
	return dup
}

// Store is the typed preference and progress layer over durable storage.
// Every write goes straight through to the backend.
type Store struct {
	kv     storage.Store
	logger *zap.Logger

	mu       sync.Mutex
	cache    map[Key]Value
	progress LevelProgress
}

// NewStore wraps kv. A nil logger discards output.
func NewStore(kv storage.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger, cache: make(map[Key]Value)}
}

// Get reads key from storage. Storage failures are logged and fall back to
// the last value this Store saw, or Unset.
func (s *Store) Get(key Key) Value {
	raw, ok, err := s.kv.Get(string(key))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("preference read failed", zap.String("key", string(key)), zap.Error(err))
		return s.cache[key]
	}
	if !ok {
		delete(s.cache, key)
		return Unset
	}
	v := ParseValue(raw)
	s.cache[key] = v
	return v
}

// Set writes key immediately. The in-memory value is updated even when the
// write fails, so the session keeps what the user chose.
func (s *Store) Set(key Key, v Value) error {
	if v == Unset {
		return fmt.Errorf("set %s: cannot store %s", key, v)
	}
	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()

	if err := s.kv.Set(string(key), v.String()); err != nil {
		s.logger.Warn("preference write failed", zap.String("key", string(key)), zap.Error(err))
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.logger.Debug("preference saved", zap.String("key", string(key)), zap.Stringer("value", v))
	return nil
}

// LoadAll reads every preference key.
func (s *Store) LoadAll() PreferenceSet {
	set := make(PreferenceSet, len(Keys))
	for _, key := range Keys {
		set[key] = s.Get(key)
	}
	return set
}

// IsStorageError reports whether err came from the storage backend.
func IsStorageError(err error) bool {
	var se *storage.Error
	return errors.As(err, &se)
}
