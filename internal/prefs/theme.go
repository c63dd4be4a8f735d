package prefs

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/homepage/internal/systheme"
)

// ErrControlLocked is returned when dark mode is toggled while the system
// default drives the theme.
var ErrControlLocked = errors.New("dark mode follows the system default")

// Appearance is the resolved presentation state.
type Appearance struct {
	Dark              bool
	FollowSystem      bool
	DarkControlLocked bool
	Motion            bool
	Effects           bool
}

// Resolve applies theme precedence: the live system signal wins while
// useSystemDefault is enabled, otherwise the stored darkMode decides.
func Resolve(p PreferenceSet, systemDark bool) Appearance {
	follow := p.Get(UseSystemDefault) == Enabled
	a := Appearance{
		FollowSystem:      follow,
		DarkControlLocked: follow,
		Motion:            p.Get(BackgroundMotion).On(BackgroundMotion),
		Effects:           p.Get(VisualEffects).On(VisualEffects),
	}
	if follow {
		a.Dark = systemDark
	} else {
		a.Dark = p.Get(DarkMode) == Enabled
	}
	return a
}

// ThemeController drives the theme state machine over a Store and a system
// signal. It holds at most one signal subscription at a time.
type ThemeController struct {
	store  *Store
	signal systheme.Signal
	logger *zap.Logger

	mu       sync.Mutex
	prefs    PreferenceSet
	sub      systheme.Subscription
	subGen   uint64
	onChange func(Appearance)
}

// NewThemeController builds a controller. Call Start before use.
func NewThemeController(store *Store, signal systheme.Signal, logger *zap.Logger) *ThemeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeController{
		store:  store,
		signal: signal,
		logger: logger,
		prefs:  make(PreferenceSet),
	}
}

// OnChange registers fn for appearance changes driven by the system signal.
// A later call replaces fn.
func (c *ThemeController) OnChange(fn func(Appearance)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Start loads every preference and subscribes when the system default is on.
func (c *ThemeController) Start() Appearance {
	set := c.store.LoadAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs = set
	c.syncSubscriptionLocked()
	a := Resolve(c.prefs, c.signal.PrefersDark())
	c.logger.Info("appearance loaded",
		zap.Bool("dark", a.Dark),
		zap.Bool("follow_system", a.FollowSystem),
		zap.Bool("motion", a.Motion),
		zap.Bool("effects", a.Effects))
	return a
}

// Preferences returns a copy of the current preference set.
func (c *ThemeController) Preferences() PreferenceSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs.clone()
}

// Appearance resolves the current state against the live signal.
func (c *ThemeController) Appearance() Appearance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Resolve(c.prefs, c.signal.PrefersDark())
}

// Toggle flips key, persists it and returns the new appearance. A storage
// failure is returned alongside the applied appearance; the in-memory value
// still changes.
func (c *ThemeController) Toggle(key Key) (Appearance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key == DarkMode && c.prefs.Get(UseSystemDefault) == Enabled {
		return Resolve(c.prefs, c.signal.PrefersDark()), ErrControlLocked
	}

	next := Enabled
	if c.prefs.Get(key).On(key) {
		next = Disabled
	}
	c.prefs[key] = next
	err := c.store.Set(key, next)

	if key == UseSystemDefault {
		c.syncSubscriptionLocked()
	}
	return Resolve(c.prefs, c.signal.PrefersDark()), err
}

// Subscribed reports whether a system signal subscription is held.
func (c *ThemeController) Subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub != nil
}

// Close drops the subscription.
func (c *ThemeController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsubscribeLocked()
}

func (c *ThemeController) syncSubscriptionLocked() {
	if c.prefs.Get(UseSystemDefault) != Enabled {
		c.unsubscribeLocked()
		return
	}
	// Re-registration replaces the handle rather than stacking listeners.
	c.unsubscribeLocked()
	c.subGen++
	gen := c.subGen
	c.sub = c.signal.Subscribe(func(dark bool) { c.handleSignal(gen, dark) })
	c.logger.Debug("subscribed to system theme")
}

func (c *ThemeController) unsubscribeLocked() {
	if c.sub == nil {
		return
	}
	c.sub.Cancel()
	c.sub = nil
	c.logger.Debug("unsubscribed from system theme")
}

func (c *ThemeController) handleSignal(gen uint64, dark bool) {
	c.mu.Lock()
	if c.sub == nil || gen != c.subGen {
		c.mu.Unlock()
		return
	}
	a := Resolve(c.prefs, dark)
	fn := c.onChange
	c.mu.Unlock()

	c.logger.Info("system theme changed", zap.Bool("dark", dark))
	if fn != nil {
		fn(a)
	}
}
