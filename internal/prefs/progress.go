package prefs

import (
	"encoding/json"
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"
)

const (
	// ProgressKey is the storage key of the level record.
	ProgressKey = "levelProgress"
	// ClicksToLevelUp is the number of interactions per level.
	ClicksToLevelUp = 10
)

// LevelProgress is the click-counter state.
type LevelProgress struct {
	Level  int `json:"level"`
	Clicks int `json:"clicks"`
}

// Percent is the bar fill in [0,1].
func (p LevelProgress) Percent() float64 {
	return float64(p.Clicks) / ClicksToLevelUp
}

func (p LevelProgress) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Level, validation.Min(0)),
		validation.Field(&p.Clicks, validation.Min(0), validation.Max(ClicksToLevelUp)),
	)
}

// ValidationError reports a persisted level record that was discarded.
type ValidationError struct {
	Raw string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", ProgressKey, e.Raw, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Interaction is the result of one profile-picture click.
type Interaction struct {
	// Progress is what storage now holds.
	Progress LevelProgress
	// Display is what to render until the level-up reset fires. It equals
	// Progress unless LeveledUp.
	Display   LevelProgress
	LeveledUp bool
}

// ParseProgress decodes and validates a stored level record.
func ParseProgress(raw string) (LevelProgress, error) {
	var rec struct {
		Level  *float64 `json:"level"`
		Clicks *float64 `json:"clicks"`
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return LevelProgress{}, &ValidationError{Raw: raw, Err: err}
	}
	level, err := wholeNumber("level", rec.Level)
	if err != nil {
		return LevelProgress{}, &ValidationError{Raw: raw, Err: err}
	}
	clicks, err := wholeNumber("clicks", rec.Clicks)
	if err != nil {
		return LevelProgress{}, &ValidationError{Raw: raw, Err: err}
	}
	p := LevelProgress{Level: level, Clicks: clicks}
	if err := p.Validate(); err != nil {
		return LevelProgress{}, &ValidationError{Raw: raw, Err: err}
	}
	return p, nil
}

func wholeNumber(field string, f *float64) (int, error) {
	switch {
	case f == nil:
		return 0, fmt.Errorf("%s is missing", field)
	case math.Trunc(*f) != *f:
		return 0, fmt.Errorf("%s is not a whole number", field)
	case math.Abs(*f) > math.MaxInt32:
		return 0, fmt.Errorf("%s is out of range", field)
	}
	return int(*f), nil
}

// LoadProgress reads the level record. Valid records, including a full bar
// at the threshold, are kept exactly as stored; invalid records are logged
// and replaced with {0,0}.
func (s *Store) LoadProgress() LevelProgress {
	p := s.readProgress()

	s.mu.Lock()
	s.progress = p
	s.mu.Unlock()
	return p
}

func (s *Store) readProgress() LevelProgress {
	raw, ok, err := s.kv.Get(ProgressKey)
	if err != nil {
		s.logger.Warn("level progress read failed", zap.Error(err))
		return LevelProgress{}
	}
	if !ok {
		return LevelProgress{}
	}
	p, err := ParseProgress(raw)
	if err != nil {
		s.logger.Warn("level progress reset", zap.Error(err))
		s.saveProgress(LevelProgress{})
		return LevelProgress{}
	}
	return p
}

// Progress returns the in-memory level record.
func (s *Store) Progress() LevelProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// RecordInteraction counts one click and persists the result before
// returning. Reaching the threshold, or clicking past a full bar loaded from
// storage, levels up.
func (s *Store) RecordInteraction() Interaction {
	s.mu.Lock()
	p := s.progress
	p.Clicks++
	if p.Clicks < ClicksToLevelUp {
		s.progress = p
		s.mu.Unlock()
		s.saveProgress(p)
		return Interaction{Progress: p, Display: p}
	}
	next := LevelProgress{Level: p.Level + 1}
	s.progress = next
	s.mu.Unlock()
	s.saveProgress(next)

	s.logger.Info("level up", zap.Int("level", next.Level))
	return Interaction{
		Progress:  next,
		Display:   LevelProgress{Level: next.Level, Clicks: ClicksToLevelUp},
		LeveledUp: true,
	}
}

func (s *Store) saveProgress(p LevelProgress) {
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("encode level progress", zap.Error(err))
		return
	}
	if err := s.kv.Set(ProgressKey, string(data)); err != nil {
		s.logger.Warn("level progress write failed", zap.Error(err))
	}
}
