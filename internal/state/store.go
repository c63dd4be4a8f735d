package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/homepage/internal/loader"
)

// VersionErrorText is shown when the version document could not be loaded.
const VersionErrorText = "Version: Error loading"

// Status tracks one document's load state.
type Status int

const (
	Loading Status = iota
	Ready
	Degraded
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	default:
		return "loading"
	}
}

// LinkTarget is where a social button navigates. Unavailable buttons carry
// the reason instead of a URL.
type LinkTarget struct {
	ID        string
	URL       string
	Available bool
	Reason    string
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Links         []LinkTarget
	LinksStatus   Status
	VersionText   string
	VersionStatus Status
	LastUpdated   time.Time
	LastError     error
}

// Link returns the target for id.
func (s Snapshot) Link(id string) (LinkTarget, bool) {
	for _, l := range s.Links {
		if l.ID == id {
			return l, true
		}
	}
	return LinkTarget{}, false
}

// Loading reports whether either document is still in flight.
func (s Snapshot) Loading() bool {
	return s.LinksStatus == Loading || s.VersionStatus == Loading
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore returns a Store expecting the given link ids, all pending.
func NewStore(linkIDs []string) *Store {
	links := make([]LinkTarget, len(linkIDs))
	for i, id := range linkIDs {
		links[i] = LinkTarget{ID: id, Reason: "still loading"}
	}
	return &Store{snapshot: Snapshot{Links: links}}
}

// ApplyLinks points every expected button at its URL from set. Buttons the
// document does not cover are marked unavailable individually.
func (s *Store) ApplyLinks(set loader.LinkSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Links {
		link := &s.snapshot.Links[i]
		u, err := set.URL(link.ID)
		if err != nil {
			link.URL = ""
			link.Available = false
			link.Reason = err.Error()
			continue
		}
		link.URL = u
		link.Available = true
		link.Reason = ""
	}
	s.snapshot.LinksStatus = Ready
	s.snapshot.LastUpdated = time.Now()
}

// LinksUnavailable applies the fallback to every button after the links
// document could not be loaded.
func (s *Store) LinksUnavailable(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Links {
		s.snapshot.Links[i].URL = ""
		s.snapshot.Links[i].Available = false
		s.snapshot.Links[i].Reason = "links unavailable"
	}
	s.snapshot.LinksStatus = Degraded
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// ApplyVersion sets the footer text from rec.
func (s *Store) ApplyVersion(rec loader.VersionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.VersionText = rec.Text()
	s.snapshot.VersionStatus = Ready
	s.snapshot.LastUpdated = time.Now()
}

// VersionUnavailable records that the version document could not be loaded.
func (s *Store) VersionUnavailable(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.VersionText = VersionErrorText
	s.snapshot.VersionStatus = Degraded
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Links = cloneLinks(s.snapshot.Links)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLinks(links []LinkTarget) []LinkTarget {
	if len(links) == 0 {
		return nil
	}
	dup := make([]LinkTarget, len(links))
	copy(dup, links)
	return dup
}
